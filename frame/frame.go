// Package frame carries ECG samples from sources (demo generator, BLE
// peripheral) to the analyzer: the int16 sample encoding, the peripheral
// packet layout and the rolling window that turns a stream into fixed
// analysis windows.
package frame

import (
	"errors"
	"fmt"
	"math"
)

// Flag marks provenance and quality of a frame
type Flag uint32

const (
	FlagNone      Flag = 0
	FlagDemo      Flag = 1 << 0 // produced by the demo generator
	FlagFiltered  Flag = 1 << 1 // samples have been filtered
	FlagSaturated Flag = 1 << 2 // hardware saturation detected
	FlagArtifact  Flag = 1 << 3 // significant motion or noise
)

// Has reports whether all bits of other are set
func (f Flag) Has(other Flag) bool {
	return f&other == other
}

// MicrovoltsPerUnit is the sample resolution: one int16 unit is 1 µV, so
// 1.000 mV is stored as 1000.
const MicrovoltsPerUnit = 1000.0

var ErrSampleRateMismatch = errors.New("sample rates differ")

// Frame is one chunk of single-lead samples at a uniform sample rate
type Frame struct {
	Seq        uint32  `json:"seq"`
	SampleRate int     `json:"sample_rate"`
	Samples    []int16 `json:"samples"` // mV * 1000
	HeartRate  *int    `json:"heart_rate,omitempty"`
	SQI        *int    `json:"sqi,omitempty"` // signal quality 0..100
	Flags      Flag    `json:"flags"`
}

// Len returns the number of samples in the frame
func (f Frame) Len() int {
	return len(f.Samples)
}

// Millivolts decodes the samples to millivolts
func (f Frame) Millivolts() []float64 {
	mv := make([]float64, len(f.Samples))
	for i, s := range f.Samples {
		mv[i] = float64(s) / MicrovoltsPerUnit
	}
	return mv
}

// FromMillivolts builds a frame from millivolt samples
func FromMillivolts(seq uint32, sampleRate int, mv []float64, flags Flag) Frame {
	return Frame{
		Seq:        seq,
		SampleRate: sampleRate,
		Samples:    EncodeMillivolts(mv),
		Flags:      flags,
	}
}

// EncodeMillivolts converts millivolts to int16 units, truncating toward
// zero and clamping to the int16 range
func EncodeMillivolts(mv []float64) []int16 {
	out := make([]int16, len(mv))
	for i, v := range mv {
		units := math.Trunc(v * MicrovoltsPerUnit)
		switch {
		case math.IsNaN(units):
			units = 0
		case units > math.MaxInt16:
			units = math.MaxInt16
		case units < math.MinInt16:
			units = math.MinInt16
		}
		out[i] = int16(units)
	}
	return out
}

// Concat appends other's samples and returns the merged frame, which takes
// other's sequence number. Both frames must share a sample rate.
func (f Frame) Concat(other Frame) (Frame, error) {
	if f.SampleRate != other.SampleRate {
		return Frame{}, fmt.Errorf("concat frame %d onto %d: %w (%d vs %d)",
			other.Seq, f.Seq, ErrSampleRateMismatch, f.SampleRate, other.SampleRate)
	}

	merged := f
	merged.Samples = make([]int16, 0, len(f.Samples)+len(other.Samples))
	merged.Samples = append(merged.Samples, f.Samples...)
	merged.Samples = append(merged.Samples, other.Samples...)
	merged.Seq = other.Seq
	merged.Flags = f.Flags | other.Flags

	return merged, nil
}
