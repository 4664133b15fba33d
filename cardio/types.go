// Package cardio detects ECG fiducial points (R-peaks and approximate Q, S, P
// and T locations) in a single-lead trace and derives heart rate, PR, QRS
// and QT intervals from them.
package cardio

import (
	"fmt"
	"strconv"
	"time"
)

// FiducialSet holds the sample indices of the detected fiducial points, one
// entry per beat in trace order. Q, S, P and T can be shorter than R when a
// beat's search window falls outside the trace.
type FiducialSet struct {
	R []int `json:"r"`
	Q []int `json:"q"`
	S []int `json:"s"`
	P []int `json:"p"`
	T []int `json:"t"`
}

// emptyFiducials returns a set of empty, non-nil sequences
func emptyFiducials() FiducialSet {
	return FiducialSet{
		R: []int{},
		Q: []int{},
		S: []int{},
		P: []int{},
		T: []int{},
	}
}

// Empty reports whether no R-peak was detected
func (f FiducialSet) Empty() bool {
	return len(f.R) == 0
}

// IntervalMetrics are the clinical intervals derived from a FiducialSet.
// A nil field means there was not enough paired data to compute it.
type IntervalMetrics struct {
	HeartRate *float64 `json:"heart_rate_bpm,omitempty"`
	PR        *int     `json:"pr_ms,omitempty"`
	QRS       *int     `json:"qrs_ms,omitempty"`
	QT        *int     `json:"qt_ms,omitempty"`
}

// HasAny reports whether at least one metric is present
func (m IntervalMetrics) HasAny() bool {
	return m.HeartRate != nil || m.PR != nil || m.QRS != nil || m.QT != nil
}

// String renders the metrics as a single display line, using "--" for
// absent values, e.g. "HR: 80 bpm   PR: 160 ms   QRS: -- ms   QT: 380 ms".
func (m IntervalMetrics) String() string {
	hr := "--"
	if m.HeartRate != nil {
		hr = strconv.FormatFloat(*m.HeartRate, 'f', 0, 64)
	}
	return fmt.Sprintf("HR: %s bpm   PR: %s ms   QRS: %s ms   QT: %s ms",
		hr, optionalInt(m.PR), optionalInt(m.QRS), optionalInt(m.QT))
}

func optionalInt(v *int) string {
	if v == nil {
		return "--"
	}
	return strconv.Itoa(*v)
}

// Summary is the full analysis of one trace window, ready for display or
// export layers that receive it as an argument
type Summary struct {
	SampleRate int             `json:"sample_rate"`
	Duration   time.Duration   `json:"duration"`
	BeatCount  int             `json:"beat_count"`
	Fiducials  FiducialSet     `json:"fiducials"`
	Metrics    IntervalMetrics `json:"metrics"`
	Rhythm     Rhythm          `json:"rhythm"`

	// Quality is the 0-100 beat consistency score, absent with too few beats
	Quality *int `json:"quality,omitempty"`

	// Filtered is set when the band-pass prefilter ran
	Filtered bool `json:"filtered"`

	// SpectralRate is the envelope-periodicity heart rate, an independent
	// cross-check of Metrics.HeartRate
	SpectralRate *float64 `json:"spectral_rate_bpm,omitempty"`
}
