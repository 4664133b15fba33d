package filters

import (
	"github.com/RyanBlaney/cardioscope/algorithms/common"
)

// RemoveMean centers a trace on zero by subtracting its arithmetic mean.
// The input is left untouched and a new slice is returned.
func RemoveMean(signal []float64) []float64 {
	centered := make([]float64, len(signal))
	if len(signal) == 0 {
		return centered
	}

	mean := common.Mean(signal)
	for i, sample := range signal {
		centered[i] = sample - mean
	}

	return centered
}
