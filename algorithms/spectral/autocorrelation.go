package spectral

import (
	"github.com/RyanBlaney/cardioscope/algorithms/common"
)

// Autocorrelation computes autocorrelation through the power spectrum
// (Wiener-Khinchin) instead of the quadratic lag loop
type Autocorrelation struct {
	fft *FFT
}

// NewAutocorrelation creates a new FFT-backed autocorrelation calculator
func NewAutocorrelation() *Autocorrelation {
	return &Autocorrelation{fft: NewFFT()}
}

// Compute returns the mean-removed autocorrelation of signal for lags
// 0..len(signal)-1, normalized so that lag 0 equals 1. The signal is zero
// padded to at least twice its length so the result is linear, not circular.
// A constant signal has no structure and yields all zeros.
func (a *Autocorrelation) Compute(signal []float64) []float64 {
	n := len(signal)
	if n == 0 {
		return []float64{}
	}

	mean := common.Mean(signal)
	padded := make([]float64, common.NextPowerOfTwo(2*n))
	for i, v := range signal {
		padded[i] = v - mean
	}

	spectrum := a.fft.Compute(padded)
	for i, c := range spectrum {
		spectrum[i] = complex(real(c)*real(c)+imag(c)*imag(c), 0)
	}

	acf := a.fft.ComputeInverseReal(spectrum)[:n]
	if acf[0] <= 1e-20 {
		return make([]float64, n)
	}

	norm := acf[0]
	for i := range acf {
		acf[i] /= norm
	}

	return acf
}
