package temporal

import (
	"math"

	"github.com/RyanBlaney/cardioscope/algorithms/common"
)

// Envelope provides slope envelope extraction for beat detection
type Envelope struct {
	// No state needed - stateless calculation
}

// NewEnvelope creates a new envelope extractor
func NewEnvelope() *Envelope {
	return &Envelope{}
}

// ComputeDerivative returns the absolute first difference of the signal,
// aligned so that index i holds |x[i] - x[i-1]|. Index 0 has no predecessor
// and is zero, which keeps envelope indices identical to trace indices.
func (e *Envelope) ComputeDerivative(signal []float64) []float64 {
	derivative := make([]float64, len(signal))
	for i := 1; i < len(signal); i++ {
		derivative[i] = math.Abs(signal[i] - signal[i-1])
	}
	return derivative
}

// ComputeSmoothed smooths an envelope with a centered moving average
func (e *Envelope) ComputeSmoothed(envelope []float64, windowSize int) []float64 {
	if len(envelope) == 0 {
		return []float64{}
	}
	return common.CenteredMean(envelope, windowSize)
}

// ComputeDerivativeEnergy computes the smoothed absolute-slope envelope.
// Fast QRS slopes dominate it while the slower P and T waves barely register.
func (e *Envelope) ComputeDerivativeEnergy(signal []float64, windowSize int) []float64 {
	return e.ComputeSmoothed(e.ComputeDerivative(signal), windowSize)
}

// SmoothingWidth returns the envelope smoothing width for a sample rate:
// sampleRate/divisor samples, never below minWidth.
func SmoothingWidth(sampleRate, divisor, minWidth int) int {
	if divisor <= 0 {
		return max(minWidth, 1)
	}
	return max(minWidth, sampleRate/divisor, 1)
}
