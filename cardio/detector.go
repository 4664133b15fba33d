package cardio

import (
	"math"

	"github.com/RyanBlaney/cardioscope/algorithms/common"
	"github.com/RyanBlaney/cardioscope/algorithms/filters"
	"github.com/RyanBlaney/cardioscope/algorithms/temporal"
	"github.com/RyanBlaney/cardioscope/cardio/config"
	"github.com/RyanBlaney/cardioscope/logging"
)

// Detector locates R-peaks and the surrounding Q, S, P and T points in a
// single-lead trace. A Detector holds no per-call state and is safe for
// concurrent use.
type Detector struct {
	config   config.DetectorConfig
	envelope *temporal.Envelope
	peaks    *temporal.PeakDetection
	logger   logging.Logger
}

// NewDetector creates a detector. A nil config selects the defaults and
// out-of-range fields are replaced by their defaults.
func NewDetector(cfg *config.DetectorConfig) *Detector {
	detectorConfig := config.DefaultDetectorConfig()
	if cfg != nil {
		detectorConfig = cfg.Sanitize()
	}

	return &Detector{
		config:   detectorConfig,
		envelope: temporal.NewEnvelope(),
		peaks:    temporal.NewPeakDetection(),
		logger: logging.WithFields(logging.Fields{
			"component": "fiducial_detector",
		}),
	}
}

// Config returns the effective configuration
func (d *Detector) Config() config.DetectorConfig {
	return d.config
}

// Detect finds the fiducial points of trace, sampled at sampleRate Hz. The
// trace is DC-centered internally, so callers may pass raw millivolts.
// Traces shorter than the minimum length, traces holding NaN or Inf, and a
// non-positive sample rate produce empty sequences.
func (d *Detector) Detect(trace []float64, sampleRate int) FiducialSet {
	fiducials, _ := d.detect(trace, sampleRate)
	return fiducials
}

// detect also returns the derivative envelope for callers that reuse it
func (d *Detector) detect(trace []float64, sampleRate int) (FiducialSet, []float64) {
	logger := d.logger.WithFields(logging.Fields{
		"function":    "Detect",
		"samples":     len(trace),
		"sample_rate": sampleRate,
	})

	if sampleRate <= 0 {
		logger.Debug("Non-positive sample rate, skipping detection")
		return emptyFiducials(), nil
	}

	minSamples := common.SecondsToSamples(d.config.MinTraceSeconds, sampleRate)
	if len(trace) < max(minSamples, 3) {
		logger.Debug("Trace shorter than minimum analysis window", logging.Fields{
			"min_samples": minSamples,
		})
		return emptyFiducials(), nil
	}

	if idx, ok := firstNonFinite(trace); ok {
		logger.Debug("Trace holds a non-finite sample, skipping detection", logging.Fields{
			"index": idx,
		})
		return emptyFiducials(), nil
	}

	centered := filters.RemoveMean(trace)

	width := temporal.SmoothingWidth(sampleRate, d.config.SmoothingDivisor, d.config.MinSmoothingWidth)
	envelope := d.envelope.ComputeDerivativeEnergy(centered, width)

	rPeaks := d.pickRPeaks(envelope, sampleRate)
	fiducials := d.locateWaves(centered, rPeaks, sampleRate)

	logger.Debug("Fiducial detection completed", logging.Fields{
		"smoothing_width": width,
		"r_peaks":         len(fiducials.R),
		"q_points":        len(fiducials.Q),
		"s_points":        len(fiducials.S),
		"p_points":        len(fiducials.P),
		"t_points":        len(fiducials.T),
	})

	return fiducials, envelope
}

// pickRPeaks thresholds the envelope and applies the refractory gate
func (d *Detector) pickRPeaks(envelope []float64, sampleRate int) []int {
	window := max(int(d.config.ThresholdWindowSeconds*float64(sampleRate)), 1)
	adaptive := d.peaks.AdaptiveThreshold(envelope, window, d.config.ThresholdFactor)

	threshold := adaptive
	if !d.config.DisableFloor {
		halfWindow := common.SecondsToSamples(d.config.PeakWindowSeconds/2, sampleRate)
		floor := d.peaks.RelativeFloor(envelope, halfWindow, d.config.PeakFraction)
		threshold = d.peaks.CombineThresholds(adaptive, floor)
	}

	return d.peaks.PickPeaks(envelope, threshold, d.refractorySamples(sampleRate))
}

// refractorySamples rounds up so accepted peaks are never closer than the
// configured time. The epsilon absorbs products like 0.22*100 = 22.000000000000004.
func (d *Detector) refractorySamples(sampleRate int) int {
	return max(int(math.Ceil(d.config.RefractorySeconds*float64(sampleRate)-1e-9)), 1)
}

// waveSearch describes one fiducial search relative to each R-peak
type waveSearch struct {
	window config.WindowMs
	find   func(data []float64, span common.Span) (int, bool)
	out    *[]int
}

// locateWaves searches the centered trace around every R-peak. Each search
// window starts no earlier than the previous hit of the same wave, which
// keeps every sequence sorted even when windows of neighbouring beats overlap.
func (d *Detector) locateWaves(centered []float64, rPeaks []int, sampleRate int) FiducialSet {
	fiducials := emptyFiducials()
	fiducials.R = rPeaks

	searches := []waveSearch{
		{window: d.config.QWindow, find: common.ArgMin, out: &fiducials.Q},
		{window: d.config.SWindow, find: common.ArgMin, out: &fiducials.S},
		{window: d.config.PWindow, find: common.ArgMax, out: &fiducials.P},
		{window: d.config.TWindow, find: common.ArgMax, out: &fiducials.T},
	}

	for _, search := range searches {
		from := common.MillisToSamples(search.window.From, sampleRate)
		to := common.MillisToSamples(search.window.To, sampleRate)

		for _, r := range rPeaks {
			span := common.Around(r, from, to)
			if found := *search.out; len(found) > 0 {
				span.Start = max(span.Start, found[len(found)-1])
			}

			if idx, ok := search.find(centered, span); ok {
				*search.out = append(*search.out, idx)
			}
		}
	}

	return fiducials
}

func firstNonFinite(trace []float64) (int, bool) {
	for i, v := range trace {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return i, true
		}
	}
	return 0, false
}

// Detect finds fiducial points with the default detector configuration
func Detect(trace []float64, sampleRate int) FiducialSet {
	return NewDetector(nil).Detect(trace, sampleRate)
}
