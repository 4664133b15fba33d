package filters

import (
	"fmt"
	"math"
	"slices"
)

// ButterworthQ gives a maximally flat second-order section
const ButterworthQ = math.Sqrt2 / 2

// Biquad is a second-order IIR section.
//
// This implementation uses the cookbook formulas from Robert Bristow-Johnson's
// "Cookbook formulae for audio EQ biquad filter coefficients"
// Reference: https://webaudio.github.io/Audio-EQ-Cookbook/audio-eq-cookbook.html
type Biquad struct {
	sampleRate int

	// Coefficients normalized by a0
	b0, b1, b2 float64
	a1, a2     float64

	// Direct form II state
	w1, w2 float64
}

// NewHighpass creates a high-pass section with the given cutoff in Hz
func NewHighpass(sampleRate int, cutoff, q float64) *Biquad {
	cosW0, alpha := prewarp(sampleRate, cutoff, q)
	return newBiquad(sampleRate,
		(1+cosW0)/2, -(1 + cosW0), (1+cosW0)/2,
		1+alpha, -2*cosW0, 1-alpha)
}

// NewLowpass creates a low-pass section with the given cutoff in Hz
func NewLowpass(sampleRate int, cutoff, q float64) *Biquad {
	cosW0, alpha := prewarp(sampleRate, cutoff, q)
	return newBiquad(sampleRate,
		(1-cosW0)/2, 1-cosW0, (1-cosW0)/2,
		1+alpha, -2*cosW0, 1-alpha)
}

func prewarp(sampleRate int, cutoff, q float64) (cosW0, alpha float64) {
	w0 := 2.0 * math.Pi * cutoff / float64(sampleRate)

	// Prevent numerical issues at Nyquist
	if w0 >= math.Pi {
		w0 = math.Pi * 0.99
	}

	return math.Cos(w0), math.Sin(w0) / (2.0 * q)
}

func newBiquad(sampleRate int, b0, b1, b2, a0, a1, a2 float64) *Biquad {
	return &Biquad{
		sampleRate: sampleRate,
		b0:         b0 / a0,
		b1:         b1 / a0,
		b2:         b2 / a0,
		a1:         a1 / a0,
		a2:         a2 / a0,
	}
}

// Process filters a single sample.
//
// w[n] = x[n] - a1*w[n-1] - a2*w[n-2]
// y[n] = b0*w[n] + b1*w[n-1] + b2*w[n-2]
func (bq *Biquad) Process(input float64) float64 {
	w := input - bq.a1*bq.w1 - bq.a2*bq.w2
	output := bq.b0*w + bq.b1*bq.w1 + bq.b2*bq.w2

	bq.w2 = bq.w1
	bq.w1 = w

	return output
}

// ProcessBuffer filters a whole buffer, continuing from the current state
func (bq *Biquad) ProcessBuffer(input []float64) []float64 {
	output := make([]float64, len(input))
	for i, sample := range input {
		output[i] = bq.Process(sample)
	}
	return output
}

// Reset clears the delay line
func (bq *Biquad) Reset() {
	bq.w1, bq.w2 = 0.0, 0.0
}

// Magnitude returns the linear gain at frequency Hz.
//
// H(e^jw) = (b0 + b1*e^-jw + b2*e^-j2w) / (1 + a1*e^-jw + a2*e^-j2w)
func (bq *Biquad) Magnitude(frequency float64) float64 {
	w := 2.0 * math.Pi * frequency / float64(bq.sampleRate)

	cosW, sinW := math.Cos(w), math.Sin(w)
	cos2W, sin2W := math.Cos(2*w), math.Sin(2*w)

	numReal := bq.b0 + bq.b1*cosW + bq.b2*cos2W
	numImag := -bq.b1*sinW - bq.b2*sin2W
	denReal := 1.0 + bq.a1*cosW + bq.a2*cos2W
	denImag := -bq.a1*sinW - bq.a2*sin2W

	return math.Sqrt((numReal*numReal + numImag*numImag) / (denReal*denReal + denImag*denImag))
}

// BandpassFilter limits an ECG trace to [lowCutoff, highCutoff] Hz with a
// Butterworth high-pass section followed by a Butterworth low-pass section.
// The high-pass removes baseline wander, the low-pass muscle noise and most
// mains residue.
type BandpassFilter struct {
	sampleRate int
	lowCutoff  float64
	highCutoff float64
	highpass   *Biquad
	lowpass    *Biquad
}

// NewBandpassFilter creates a band-pass filter. The cutoffs must satisfy
// 0 < lowCutoff < highCutoff < sampleRate/2.
func NewBandpassFilter(sampleRate int, lowCutoff, highCutoff float64) (*BandpassFilter, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", sampleRate)
	}
	nyquist := float64(sampleRate) / 2
	if lowCutoff <= 0 || highCutoff <= lowCutoff || highCutoff >= nyquist {
		return nil, fmt.Errorf("band [%.2f, %.2f] Hz must lie inside (0, %.1f) Hz", lowCutoff, highCutoff, nyquist)
	}

	return &BandpassFilter{
		sampleRate: sampleRate,
		lowCutoff:  lowCutoff,
		highCutoff: highCutoff,
		highpass:   NewHighpass(sampleRate, lowCutoff, ButterworthQ),
		lowpass:    NewLowpass(sampleRate, highCutoff, ButterworthQ),
	}, nil
}

// Process filters a single sample
func (bf *BandpassFilter) Process(input float64) float64 {
	return bf.lowpass.Process(bf.highpass.Process(input))
}

// ProcessBuffer filters a buffer, continuing from the current state
func (bf *BandpassFilter) ProcessBuffer(input []float64) []float64 {
	output := make([]float64, len(input))
	for i, sample := range input {
		output[i] = bf.Process(sample)
	}
	return output
}

// ProcessZeroPhase filters the buffer forward and then backward, which
// cancels the phase delay and squares the magnitude response. Fiducial
// positions in the output line up with the input. State is reset before and
// after.
func (bf *BandpassFilter) ProcessZeroPhase(input []float64) []float64 {
	bf.Reset()
	output := bf.ProcessBuffer(input)

	slices.Reverse(output)
	bf.Reset()
	output = bf.ProcessBuffer(output)
	slices.Reverse(output)

	bf.Reset()
	return output
}

// Reset clears the state of both sections
func (bf *BandpassFilter) Reset() {
	bf.highpass.Reset()
	bf.lowpass.Reset()
}

// Magnitude returns the single-pass linear gain at frequency Hz
func (bf *BandpassFilter) Magnitude(frequency float64) float64 {
	return bf.highpass.Magnitude(frequency) * bf.lowpass.Magnitude(frequency)
}

// Band returns the configured cutoffs
func (bf *BandpassFilter) Band() (lowCutoff, highCutoff float64) {
	return bf.lowCutoff, bf.highCutoff
}
