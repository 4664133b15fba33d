package cardio

import (
	"time"

	"github.com/RyanBlaney/cardioscope/algorithms/filters"
	"github.com/RyanBlaney/cardioscope/algorithms/temporal"
	"github.com/RyanBlaney/cardioscope/cardio/config"
	"github.com/RyanBlaney/cardioscope/frame"
	"github.com/RyanBlaney/cardioscope/logging"
)

// Analyzer runs detection and measurement over fixed trace windows and
// assembles summaries. Like Detector it keeps no state between calls.
type Analyzer struct {
	config   *config.AnalyzerConfig
	detector *Detector
	rate     *temporal.RateEstimation
	logger   logging.Logger
}

// NewAnalyzer creates an analyzer. A nil config selects the defaults.
func NewAnalyzer(cfg *config.AnalyzerConfig) *Analyzer {
	effective := config.DefaultAnalyzerConfig()
	if cfg != nil {
		effective = cfg.Sanitize()
	}

	return &Analyzer{
		config:   effective,
		detector: NewDetector(&effective.Detector),
		rate:     temporal.NewRateEstimation(),
		logger: logging.WithFields(logging.Fields{
			"component": "ecg_analyzer",
		}),
	}
}

// Config returns the effective configuration
func (a *Analyzer) Config() config.AnalyzerConfig {
	return *a.config
}

// Analyze detects fiducials and measures intervals in one call
func (a *Analyzer) Analyze(trace []float64, sampleRate int) (FiducialSet, IntervalMetrics) {
	analyzed, _ := a.prefilter(trace, sampleRate)
	fiducials := a.detector.Detect(analyzed, sampleRate)
	return fiducials, Measure(fiducials, sampleRate)
}

// Summarize analyzes a window and adds duration, beat count, rhythm band,
// beat quality and the spectral heart-rate cross-check
func (a *Analyzer) Summarize(trace []float64, sampleRate int) Summary {
	analyzed, filtered := a.prefilter(trace, sampleRate)
	fiducials, envelope := a.detector.detect(analyzed, sampleRate)
	metrics := Measure(fiducials, sampleRate)

	summary := Summary{
		SampleRate: sampleRate,
		BeatCount:  len(fiducials.R),
		Fiducials:  fiducials,
		Metrics:    metrics,
		Rhythm:     Classify(metrics.HeartRate, a.config.Rhythm),
		Filtered:   filtered,
	}
	if quality, ok := Quality(analyzed, fiducials, sampleRate, a.config.Quality); ok {
		summary.Quality = &quality
	}
	if sampleRate > 0 {
		summary.Duration = time.Duration(len(trace)) * time.Second / time.Duration(sampleRate)
	}

	if a.config.RateEstimate.Enabled && envelope != nil {
		bpm, ok := a.rate.EstimateRate(envelope, sampleRate,
			a.config.RateEstimate.MinBPM, a.config.RateEstimate.MaxBPM)
		if ok {
			summary.SpectralRate = &bpm
		}
	}

	a.logger.Debug("Window summarized", logging.Fields{
		"beats":    summary.BeatCount,
		"rhythm":   summary.Rhythm,
		"filtered": filtered,
		"line":     metrics.String(),
	})

	return summary
}

// SummarizeWindow summarizes the current contents of a rolling window
func (a *Analyzer) SummarizeWindow(w *frame.Window) Summary {
	return a.Summarize(w.Snapshot(), w.SampleRate())
}

// prefilter band-limits the trace when enabled. A band the sample rate
// cannot represent leaves the trace untouched.
func (a *Analyzer) prefilter(trace []float64, sampleRate int) ([]float64, bool) {
	if !a.config.Prefilter.Enabled || sampleRate <= 0 || len(trace) == 0 {
		return trace, false
	}

	bandpass, err := filters.NewBandpassFilter(sampleRate, a.config.Prefilter.LowHz, a.config.Prefilter.HighHz)
	if err != nil {
		a.logger.Warn("Prefilter skipped", logging.Fields{
			"sample_rate": sampleRate,
			"error":       err.Error(),
		})
		return trace, false
	}

	return bandpass.ProcessZeroPhase(trace), true
}

// Analyze detects fiducials and measures intervals with default settings
func Analyze(trace []float64, sampleRate int) (FiducialSet, IntervalMetrics) {
	return NewAnalyzer(nil).Analyze(trace, sampleRate)
}

// Summarize analyzes a window with default settings
func Summarize(trace []float64, sampleRate int) Summary {
	return NewAnalyzer(nil).Summarize(trace, sampleRate)
}
