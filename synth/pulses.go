// Package synth generates synthetic ECG-like traces: plain Gaussian pulse
// trains with known timing, and a demo P-QRS-T waveform. Outputs are in
// millivolts and deterministic for a given configuration.
package synth

import (
	"math"
)

// PulseConfig describes a train of identical Gaussian pulses
type PulseConfig struct {
	SampleRate int     // Hz
	Samples    int     // total trace length
	Count      int     // number of pulses; 0 fills the trace
	Offset     float64 // seconds, center of the first pulse
	Spacing    float64 // seconds between pulse centers
	Amplitude  float64 // mV
	Width      float64 // seconds, Gaussian sigma
}

// PulseTrain renders the configured pulses on a zero baseline. Pulses whose
// center falls past the end of the trace are not rendered.
func PulseTrain(cfg PulseConfig) []float64 {
	trace := make([]float64, max(cfg.Samples, 0))
	if cfg.SampleRate <= 0 || cfg.Width <= 0 || cfg.Spacing <= 0 || len(trace) == 0 {
		return trace
	}

	fs := float64(cfg.SampleRate)
	duration := float64(len(trace)) / fs

	for k := 0; cfg.Count == 0 || k < cfg.Count; k++ {
		center := cfg.Offset + float64(k)*cfg.Spacing
		if center >= duration {
			break
		}
		for i := range trace {
			trace[i] += cfg.Amplitude * gauss(float64(i)/fs, center, cfg.Width)
		}
	}

	return trace
}

// PulseCenters returns the sample index nearest to each rendered pulse center
func PulseCenters(cfg PulseConfig) []int {
	centers := []int{}
	if cfg.SampleRate <= 0 || cfg.Spacing <= 0 {
		return centers
	}

	fs := float64(cfg.SampleRate)
	for k := 0; cfg.Count == 0 || k < cfg.Count; k++ {
		idx := int(math.Round((cfg.Offset + float64(k)*cfg.Spacing) * fs))
		if idx >= cfg.Samples {
			break
		}
		centers = append(centers, idx)
	}
	return centers
}

func gauss(x, mu, sigma float64) float64 {
	z := (x - mu) / sigma
	return math.Exp(-0.5 * z * z)
}
