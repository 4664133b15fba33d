package spectral

import (
	"github.com/mjibson/go-dsp/fft"
)

// FFT provides Fast Fourier Transform functionality
type FFT struct {
	// No state needed for now
}

// NewFFT creates a new FFT calculator
func NewFFT() *FFT {
	return &FFT{}
}

// Compute computes the Fast Fourier Transform of a real signal using
// mjibson/go-dsp, which handles non-power-of-2 sizes as well.
func (f *FFT) Compute(x []float64) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}
	return fft.FFTReal(x)
}

// ComputeInverseReal computes the inverse FFT and returns the real part only
func (f *FFT) ComputeInverseReal(x []complex128) []float64 {
	if len(x) == 0 {
		return []float64{}
	}

	result := fft.IFFT(x)
	realResult := make([]float64, len(result))
	for i, val := range result {
		realResult[i] = real(val)
	}

	return realResult
}
