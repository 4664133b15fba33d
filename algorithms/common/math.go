package common

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Basic statistical helpers shared by the detectors, backed by gonum

// Mean calculates the arithmetic mean of a slice using gonum.
// An empty slice has a mean of zero.
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(data, nil)
}

// MeanInts calculates the arithmetic mean of integer data
func MeanInts(data []int) float64 {
	if len(data) == 0 {
		return 0.0
	}

	values := make([]float64, len(data))
	for i, v := range data {
		values[i] = float64(v)
	}
	return stat.Mean(values, nil)
}

// Diff returns the consecutive differences data[i+1]-data[i]
func Diff(data []int) []int {
	if len(data) < 2 {
		return []int{}
	}

	out := make([]int, len(data)-1)
	for i := range out {
		out[i] = data[i+1] - data[i]
	}
	return out
}

// SecondsToSamples converts a duration in seconds to a whole number of
// samples, rounding to the nearest sample.
func SecondsToSamples(seconds float64, sampleRate int) int {
	return int(math.Round(seconds * float64(sampleRate)))
}

// MillisToSamples converts milliseconds to the nearest whole sample count
func MillisToSamples(ms float64, sampleRate int) int {
	return SecondsToSamples(ms/1000.0, sampleRate)
}

// SamplesToMillis converts a sample count to milliseconds
func SamplesToMillis(samples float64, sampleRate int) float64 {
	if sampleRate <= 0 {
		return 0.0
	}
	return samples * 1000.0 / float64(sampleRate)
}

// NextPowerOfTwo finds the next power of 2 >= n
func NextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}

	power := 1
	for power < n {
		power <<= 1
	}
	return power
}
