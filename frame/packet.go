package frame

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// LeadCount is the number of leads carried by a peripheral packet
const LeadCount = 3

// packetHeaderSize is [u32 seq][u16 fs][u16 n]
const packetHeaderSize = 8

var (
	ErrShortPacket   = errors.New("packet too short")
	ErrInvalidHeader = errors.New("invalid packet header")
	ErrNoSuchLead    = errors.New("no such lead")
)

// MultiLeadFrame is one decoded peripheral packet. All leads share the same
// length and sample rate; samples are raw ADC counts.
type MultiLeadFrame struct {
	Seq         uint32             `json:"seq"`
	SampleRate  int                `json:"sample_rate"`
	CountsPerMV float32            `json:"counts_per_mv"`
	Leads       [LeadCount][]int16 `json:"leads"`
}

// Len returns the per-lead sample count
func (m MultiLeadFrame) Len() int {
	return len(m.Leads[0])
}

// LeadMillivolts converts one lead from ADC counts to millivolts
func (m MultiLeadFrame) LeadMillivolts(lead int) ([]float64, error) {
	if lead < 0 || lead >= LeadCount {
		return nil, fmt.Errorf("lead %d: %w", lead, ErrNoSuchLead)
	}

	counts := m.Leads[lead]
	mv := make([]float64, len(counts))
	if m.CountsPerMV == 0 {
		return mv, nil
	}

	scale := float64(m.CountsPerMV)
	for i, c := range counts {
		mv[i] = float64(c) / scale
	}
	return mv, nil
}

// DecodePacket parses a little-endian peripheral notification:
//
//	[u32 seq][u16 fs][u16 n] [int16 lead0 x n][int16 lead1 x n][int16 lead2 x n]
//
// Trailing bytes after the third lead are ignored.
func DecodePacket(payload []byte, countsPerMV float32) (MultiLeadFrame, error) {
	if len(payload) < packetHeaderSize {
		return MultiLeadFrame{}, fmt.Errorf("decode header: %w (%d bytes)", ErrShortPacket, len(payload))
	}

	seq := binary.LittleEndian.Uint32(payload[0:4])
	fs := int(binary.LittleEndian.Uint16(payload[4:6]))
	n := int(binary.LittleEndian.Uint16(payload[6:8]))
	if fs == 0 || n == 0 {
		return MultiLeadFrame{}, fmt.Errorf("decode packet %d: %w (fs=%d n=%d)", seq, ErrInvalidHeader, fs, n)
	}

	body := payload[packetHeaderSize:]
	if need := LeadCount * n * 2; len(body) < need {
		return MultiLeadFrame{}, fmt.Errorf("decode packet %d: %w (need %d body bytes, have %d)",
			seq, ErrShortPacket, need, len(body))
	}

	decoded := MultiLeadFrame{Seq: seq, SampleRate: fs, CountsPerMV: countsPerMV}
	for lead := range LeadCount {
		samples := make([]int16, n)
		offset := lead * n * 2
		for i := range samples {
			samples[i] = int16(binary.LittleEndian.Uint16(body[offset+2*i:]))
		}
		decoded.Leads[lead] = samples
	}

	return decoded, nil
}

// EncodePacket is the inverse of DecodePacket. Leads must share a length
// that fits in a u16.
func EncodePacket(m MultiLeadFrame) ([]byte, error) {
	n := m.Len()
	for lead := range LeadCount {
		if len(m.Leads[lead]) != n {
			return nil, fmt.Errorf("encode packet %d: %w (lead %d has %d samples, want %d)",
				m.Seq, ErrInvalidHeader, lead, len(m.Leads[lead]), n)
		}
	}
	if n == 0 || n > 0xFFFF || m.SampleRate <= 0 || m.SampleRate > 0xFFFF {
		return nil, fmt.Errorf("encode packet %d: %w (fs=%d n=%d)", m.Seq, ErrInvalidHeader, m.SampleRate, n)
	}

	payload := make([]byte, packetHeaderSize+LeadCount*n*2)
	binary.LittleEndian.PutUint32(payload[0:4], m.Seq)
	binary.LittleEndian.PutUint16(payload[4:6], uint16(m.SampleRate))
	binary.LittleEndian.PutUint16(payload[6:8], uint16(n))

	body := payload[packetHeaderSize:]
	for lead := range LeadCount {
		offset := lead * n * 2
		for i, s := range m.Leads[lead] {
			binary.LittleEndian.PutUint16(body[offset+2*i:], uint16(s))
		}
	}

	return payload, nil
}
