package cardio

import (
	"math"

	"github.com/RyanBlaney/cardioscope/algorithms/common"
)

// Measure converts fiducial indices into interval metrics. Heart rate needs
// at least two R-peaks. PR, QRS and QT pair their two sequences by position
// up to the shorter length and average over those pairs; there is no outlier
// rejection. Anything without enough paired data is left nil.
func Measure(fiducials FiducialSet, sampleRate int) IntervalMetrics {
	var metrics IntervalMetrics
	if sampleRate <= 0 {
		return metrics
	}

	metrics.HeartRate = heartRate(fiducials.R, sampleRate)
	metrics.PR = meanDurationMs(fiducials.P, fiducials.Q, sampleRate)
	metrics.QRS = meanDurationMs(fiducials.Q, fiducials.S, sampleRate)
	metrics.QT = meanDurationMs(fiducials.Q, fiducials.T, sampleRate)

	return metrics
}

// heartRate returns 60*fs/mean(RR) in beats per minute
func heartRate(rPeaks []int, sampleRate int) *float64 {
	if len(rPeaks) < 2 {
		return nil
	}

	meanRR := common.MeanInts(common.Diff(rPeaks))
	if meanRR <= 0 {
		return nil
	}

	bpm := 60.0 * float64(sampleRate) / meanRR
	return &bpm
}

// meanDurationMs averages end[i]-start[i] in milliseconds, rounded to the
// nearest millisecond
func meanDurationMs(start, end []int, sampleRate int) *int {
	pairs := min(len(start), len(end))
	if pairs == 0 {
		return nil
	}

	durations := make([]float64, pairs)
	for i := range pairs {
		durations[i] = common.SamplesToMillis(float64(end[i]-start[i]), sampleRate)
	}

	ms := int(math.Round(common.Mean(durations)))
	return &ms
}
