package temporal

import (
	"math"

	"github.com/RyanBlaney/cardioscope/algorithms/spectral"
)

// RateEstimation estimates a beat rate from the periodicity of an envelope,
// independently of individual peak picks
type RateEstimation struct {
	autocorrelation *spectral.Autocorrelation
}

// NewRateEstimation creates a new rate estimator
func NewRateEstimation() *RateEstimation {
	return &RateEstimation{
		autocorrelation: spectral.NewAutocorrelation(),
	}
}

// EstimateRate returns the dominant beat rate in beats per minute found in
// the envelope, searching lags that correspond to [minBPM, maxBPM]. The flag
// is false when the envelope is too short for the slowest rate or carries no
// positive periodic correlation in range.
func (re *RateEstimation) EstimateRate(envelope []float64, sampleRate int, minBPM, maxBPM float64) (float64, bool) {
	if sampleRate <= 0 || minBPM <= 0 || maxBPM <= minBPM {
		return 0.0, false
	}

	framesPerMinute := 60.0 * float64(sampleRate)
	minLag := max(int(math.Floor(framesPerMinute/maxBPM)), 1)
	maxLag := int(math.Ceil(framesPerMinute / minBPM))

	if len(envelope) < 2 || minLag >= len(envelope)-1 {
		return 0.0, false
	}
	maxLag = min(maxLag, len(envelope)-2)

	autocorr := re.autocorrelation.Compute(envelope)

	bestLag := 0
	bestVal := 0.0
	for lag := minLag; lag <= maxLag; lag++ {
		if autocorr[lag] > autocorr[lag-1] &&
			autocorr[lag] >= autocorr[lag+1] &&
			autocorr[lag] > bestVal {
			bestVal = autocorr[lag]
			bestLag = lag
		}
	}

	if bestLag == 0 {
		return 0.0, false
	}

	period := re.parabolicInterpolation(autocorr, bestLag)
	return framesPerMinute / period, true
}

// parabolicInterpolation provides sub-sample lag accuracy
func (re *RateEstimation) parabolicInterpolation(data []float64, peakIndex int) float64 {
	if peakIndex <= 0 || peakIndex >= len(data)-1 {
		return float64(peakIndex)
	}

	y1 := data[peakIndex-1]
	y2 := data[peakIndex]
	y3 := data[peakIndex+1]

	denom := 2.0 * (2.0*y2 - y1 - y3)
	if math.Abs(denom) < 1e-10 {
		return float64(peakIndex)
	}

	offset := (y3 - y1) / denom
	return float64(peakIndex) + offset
}
