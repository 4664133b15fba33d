package frame

import (
	"fmt"
)

// Window keeps the most recent Capacity millivolt samples of a stream,
// overwriting the oldest once full. Snapshot hands a chronological copy to
// the analyzer, so analysis never aliases the live buffer.
//
// A Window is not safe for concurrent use.
type Window struct {
	buffer     []float64
	sampleRate int
	writePos   int
	count      int
}

// NewWindow creates a window holding seconds of samples at sampleRate
func NewWindow(sampleRate int, seconds float64) *Window {
	size := max(int(float64(sampleRate)*seconds), 1)
	return &Window{
		buffer:     make([]float64, size),
		sampleRate: sampleRate,
	}
}

// SampleRate returns the rate the window was created for
func (w *Window) SampleRate() int {
	return w.sampleRate
}

// Capacity returns the maximum number of samples held
func (w *Window) Capacity() int {
	return len(w.buffer)
}

// Len returns the number of samples currently held
func (w *Window) Len() int {
	return w.count
}

// Full reports whether the window holds Capacity samples
func (w *Window) Full() bool {
	return w.count == len(w.buffer)
}

// Append adds samples, dropping the oldest ones once the window is full
func (w *Window) Append(samples []float64) {
	size := len(w.buffer)
	if len(samples) > size {
		samples = samples[len(samples)-size:]
	}

	for _, sample := range samples {
		w.buffer[w.writePos] = sample
		w.writePos = (w.writePos + 1) % size
		if w.count < size {
			w.count++
		}
	}
}

// AppendFrame decodes a frame into the window. The frame must match the
// window's sample rate.
func (w *Window) AppendFrame(f Frame) error {
	if f.SampleRate != w.sampleRate {
		return fmt.Errorf("append frame %d: %w (window %d Hz, frame %d Hz)",
			f.Seq, ErrSampleRateMismatch, w.sampleRate, f.SampleRate)
	}
	w.Append(f.Millivolts())
	return nil
}

// Snapshot returns the held samples, oldest first
func (w *Window) Snapshot() []float64 {
	out := make([]float64, w.count)
	start := (w.writePos - w.count + len(w.buffer)) % len(w.buffer)
	for i := range out {
		out[i] = w.buffer[(start+i)%len(w.buffer)]
	}
	return out
}

// Reset empties the window
func (w *Window) Reset() {
	w.writePos = 0
	w.count = 0
}
