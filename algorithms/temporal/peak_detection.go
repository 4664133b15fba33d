package temporal

import (
	"github.com/RyanBlaney/cardioscope/algorithms/common"
)

// PeakDetection picks refractory-gated peaks from an envelope against a
// per-sample threshold
type PeakDetection struct {
	// No state needed - thresholds are computed per call
}

// NewPeakDetection creates a new peak detector
func NewPeakDetection() *PeakDetection {
	return &PeakDetection{}
}

// AdaptiveThreshold computes factor times the trailing mean of the envelope
// over window samples. The threshold follows slow amplitude drift without
// looking at the whole trace.
func (pd *PeakDetection) AdaptiveThreshold(envelope []float64, window int, factor float64) []float64 {
	threshold := common.TrailingMean(envelope, window)
	for i := range threshold {
		threshold[i] *= factor
	}
	return threshold
}

// RelativeFloor computes fraction times the largest envelope value within
// halfWindow samples on either side of each index.
func (pd *PeakDetection) RelativeFloor(envelope []float64, halfWindow int, fraction float64) []float64 {
	if fraction <= 0 {
		return make([]float64, len(envelope))
	}

	floor := common.SlidingMax(envelope, halfWindow, halfWindow)
	for i := range floor {
		floor[i] *= fraction
	}
	return floor
}

// CombineThresholds returns the element-wise maximum of the given thresholds.
// All inputs must share the same length.
func (pd *PeakDetection) CombineThresholds(thresholds ...[]float64) []float64 {
	if len(thresholds) == 0 {
		return []float64{}
	}

	combined := append([]float64{}, thresholds[0]...)
	for _, t := range thresholds[1:] {
		for i := range combined {
			combined[i] = max(combined[i], t[i])
		}
	}
	return combined
}

// PickPeaks scans the envelope left to right and accepts index i when it is
// strictly above threshold[i], is not below either neighbour, and lies at
// least refractory samples after the previously accepted peak. A later and
// higher candidate inside the refractory window is discarded, never merged.
func (pd *PeakDetection) PickPeaks(envelope, threshold []float64, refractory int) []int {
	peaks := []int{}
	if len(envelope) < 3 || len(threshold) != len(envelope) {
		return peaks
	}

	last := -1
	for i := 1; i < len(envelope)-1; i++ {
		if envelope[i] <= threshold[i] {
			continue
		}
		if envelope[i] < envelope[i-1] || envelope[i] < envelope[i+1] {
			continue
		}
		if last >= 0 && i-last < refractory {
			continue
		}

		peaks = append(peaks, i)
		last = i
	}

	return peaks
}
