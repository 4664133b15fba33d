package config

// WindowMs is a search window relative to an R-peak, in milliseconds.
// Negative offsets lie before the peak.
type WindowMs struct {
	From float64 `json:"from" yaml:"from"`
	To   float64 `json:"to" yaml:"to"`
}

// DetectorConfig configures R-peak picking and fiducial localization
type DetectorConfig struct {
	// Envelope smoothing width is SampleRate/SmoothingDivisor, not below MinSmoothingWidth
	SmoothingDivisor  int `json:"smoothing_divisor" yaml:"smoothing_divisor"`
	MinSmoothingWidth int `json:"min_smoothing_width" yaml:"min_smoothing_width"`

	// Adaptive threshold: ThresholdFactor times the trailing envelope mean
	ThresholdWindowSeconds float64 `json:"threshold_window_seconds" yaml:"threshold_window_seconds"`
	ThresholdFactor        float64 `json:"threshold_factor" yaml:"threshold_factor"`

	// Relative floor: PeakFraction times the envelope maximum over a centered
	// window of PeakWindowSeconds. DisableFloor leaves only the trailing threshold.
	PeakFraction      float64 `json:"peak_fraction" yaml:"peak_fraction"`
	PeakWindowSeconds float64 `json:"peak_window_seconds" yaml:"peak_window_seconds"`
	DisableFloor      bool    `json:"disable_floor" yaml:"disable_floor"`

	RefractorySeconds float64 `json:"refractory_seconds" yaml:"refractory_seconds"`

	// Traces shorter than this yield no fiducials
	MinTraceSeconds float64 `json:"min_trace_seconds" yaml:"min_trace_seconds"`

	QWindow WindowMs `json:"q_window" yaml:"q_window"`
	SWindow WindowMs `json:"s_window" yaml:"s_window"`
	PWindow WindowMs `json:"p_window" yaml:"p_window"`
	TWindow WindowMs `json:"t_window" yaml:"t_window"`
}

// RhythmConfig holds the rate bands used to label a heart rate
type RhythmConfig struct {
	BradycardiaBelow float64 `json:"bradycardia_below" yaml:"bradycardia_below"`
	TachycardiaAbove float64 `json:"tachycardia_above" yaml:"tachycardia_above"`
}

// RateEstimateConfig bounds the spectral heart-rate search
type RateEstimateConfig struct {
	Enabled bool    `json:"enabled" yaml:"enabled"`
	MinBPM  float64 `json:"min_bpm" yaml:"min_bpm"`
	MaxBPM  float64 `json:"max_bpm" yaml:"max_bpm"`
}

// PrefilterConfig selects an optional zero-phase band-pass applied before
// detection
type PrefilterConfig struct {
	Enabled bool    `json:"enabled" yaml:"enabled"`
	LowHz   float64 `json:"low_hz" yaml:"low_hz"`
	HighHz  float64 `json:"high_hz" yaml:"high_hz"`
}

// QualityConfig controls the beat-consistency score. Window is the beat
// segment around each R-peak.
type QualityConfig struct {
	Window   WindowMs `json:"window" yaml:"window"`
	MinBeats int      `json:"min_beats" yaml:"min_beats"`
}

// AnalyzerConfig groups everything the analyzer needs
type AnalyzerConfig struct {
	Detector     DetectorConfig     `json:"detector" yaml:"detector"`
	Rhythm       RhythmConfig       `json:"rhythm" yaml:"rhythm"`
	RateEstimate RateEstimateConfig `json:"rate_estimate" yaml:"rate_estimate"`
	Prefilter    PrefilterConfig    `json:"prefilter" yaml:"prefilter"`
	Quality      QualityConfig      `json:"quality" yaml:"quality"`
}

// DefaultDetectorConfig returns the canonical envelope/adaptive-threshold
// parameter set
func DefaultDetectorConfig() DetectorConfig {
	return DetectorConfig{
		SmoothingDivisor:       40, // ~25 ms
		MinSmoothingWidth:      3,
		ThresholdWindowSeconds: 0.5,
		ThresholdFactor:        1.5,
		PeakFraction:           0.3,
		PeakWindowSeconds:      2.0,
		RefractorySeconds:      0.22,
		MinTraceSeconds:        2.0,
		QWindow:                WindowMs{From: -60, To: -10},
		SWindow:                WindowMs{From: 10, To: 60},
		PWindow:                WindowMs{From: -220, To: -90},
		TWindow:                WindowMs{From: 180, To: 500},
	}
}

// DefaultRhythmConfig returns the conventional adult resting rate bands
func DefaultRhythmConfig() RhythmConfig {
	return RhythmConfig{
		BradycardiaBelow: 60,
		TachycardiaAbove: 100,
	}
}

// DefaultRateEstimateConfig searches 30-220 bpm
func DefaultRateEstimateConfig() RateEstimateConfig {
	return RateEstimateConfig{
		Enabled: true,
		MinBPM:  30,
		MaxBPM:  220,
	}
}

// DefaultPrefilterConfig is the 0.5-40 Hz monitoring band, disabled
func DefaultPrefilterConfig() PrefilterConfig {
	return PrefilterConfig{
		Enabled: false,
		LowHz:   0.5,
		HighHz:  40,
	}
}

// DefaultQualityConfig scores the QRS complex and the start of the ST segment
func DefaultQualityConfig() QualityConfig {
	return QualityConfig{
		Window:   WindowMs{From: -150, To: 250},
		MinBeats: 3,
	}
}

// DefaultAnalyzerConfig returns sensible defaults for the whole analyzer
func DefaultAnalyzerConfig() *AnalyzerConfig {
	return &AnalyzerConfig{
		Detector:     DefaultDetectorConfig(),
		Rhythm:       DefaultRhythmConfig(),
		RateEstimate: DefaultRateEstimateConfig(),
		Prefilter:    DefaultPrefilterConfig(),
		Quality:      DefaultQualityConfig(),
	}
}

// Sanitize returns a copy with every section sanitized
func (c AnalyzerConfig) Sanitize() *AnalyzerConfig {
	return &AnalyzerConfig{
		Detector:     c.Detector.Sanitize(),
		Rhythm:       c.Rhythm.Sanitize(),
		RateEstimate: c.RateEstimate.Sanitize(),
		Prefilter:    c.Prefilter.Sanitize(),
		Quality:      c.Quality.Sanitize(),
	}
}

// Sanitize replaces out-of-range values with their defaults
func (c DetectorConfig) Sanitize() DetectorConfig {
	def := DefaultDetectorConfig()

	if c.SmoothingDivisor <= 0 {
		c.SmoothingDivisor = def.SmoothingDivisor
	}
	if c.MinSmoothingWidth <= 0 {
		c.MinSmoothingWidth = def.MinSmoothingWidth
	}
	if c.ThresholdWindowSeconds <= 0 {
		c.ThresholdWindowSeconds = def.ThresholdWindowSeconds
	}
	if c.ThresholdFactor <= 0 {
		c.ThresholdFactor = def.ThresholdFactor
	}
	if c.PeakFraction <= 0 || c.PeakFraction >= 1 {
		c.PeakFraction = def.PeakFraction
	}
	if c.PeakWindowSeconds <= 0 {
		c.PeakWindowSeconds = def.PeakWindowSeconds
	}
	if c.RefractorySeconds <= 0 {
		c.RefractorySeconds = def.RefractorySeconds
	}
	if c.MinTraceSeconds <= 0 {
		c.MinTraceSeconds = def.MinTraceSeconds
	}
	c.QWindow = c.QWindow.orDefault(def.QWindow)
	c.SWindow = c.SWindow.orDefault(def.SWindow)
	c.PWindow = c.PWindow.orDefault(def.PWindow)
	c.TWindow = c.TWindow.orDefault(def.TWindow)

	return c
}

// Sanitize replaces inverted or non-positive bands with the defaults
func (c RhythmConfig) Sanitize() RhythmConfig {
	if c.BradycardiaBelow <= 0 || c.TachycardiaAbove <= c.BradycardiaBelow {
		return DefaultRhythmConfig()
	}
	return c
}

// Sanitize replaces an invalid search range with the default one, keeping
// the Enabled switch
func (c RateEstimateConfig) Sanitize() RateEstimateConfig {
	if c.MinBPM <= 0 || c.MaxBPM <= c.MinBPM {
		def := DefaultRateEstimateConfig()
		def.Enabled = c.Enabled
		return def
	}
	return c
}

// Sanitize replaces an invalid band with the default one, keeping the
// Enabled switch. The upper edge is checked against Nyquist when the filter
// is built.
func (c PrefilterConfig) Sanitize() PrefilterConfig {
	if c.LowHz <= 0 || c.HighHz <= c.LowHz {
		def := DefaultPrefilterConfig()
		def.Enabled = c.Enabled
		return def
	}
	return c
}

func (c QualityConfig) Sanitize() QualityConfig {
	def := DefaultQualityConfig()
	c.Window = c.Window.orDefault(def.Window)
	if c.MinBeats < 2 {
		c.MinBeats = def.MinBeats
	}
	return c
}

func (w WindowMs) orDefault(def WindowMs) WindowMs {
	if w.To < w.From || (w.From == 0 && w.To == 0) {
		return def
	}
	return w
}
