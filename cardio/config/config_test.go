package config

import (
	"reflect"
	"testing"
)

func TestDetectorConfig_SanitizeZeroValue(t *testing.T) {
	got := DetectorConfig{}.Sanitize()
	want := DefaultDetectorConfig()

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Sanitize() = %+v\nwant %+v", got, want)
	}
}

func TestDetectorConfig_SanitizeKeepsValidValues(t *testing.T) {
	cfg := DefaultDetectorConfig()
	cfg.ThresholdFactor = 2.0
	cfg.PeakFraction = 0.5
	cfg.DisableFloor = true
	cfg.MinTraceSeconds = 5
	cfg.TWindow = WindowMs{From: 150, To: 450}

	if got := cfg.Sanitize(); !reflect.DeepEqual(got, cfg) {
		t.Errorf("valid config changed: %+v", got)
	}
}

func TestDetectorConfig_SanitizeInvalidValues(t *testing.T) {
	cfg := DefaultDetectorConfig()
	cfg.PeakFraction = 1.0
	cfg.RefractorySeconds = -0.1
	cfg.MinTraceSeconds = -1
	cfg.QWindow = WindowMs{From: -10, To: -60}

	got := cfg.Sanitize()
	def := DefaultDetectorConfig()
	if got.PeakFraction != def.PeakFraction {
		t.Errorf("PeakFraction = %v, want %v", got.PeakFraction, def.PeakFraction)
	}
	if got.RefractorySeconds != def.RefractorySeconds {
		t.Errorf("RefractorySeconds = %v, want %v", got.RefractorySeconds, def.RefractorySeconds)
	}
	if got.MinTraceSeconds != def.MinTraceSeconds {
		t.Errorf("MinTraceSeconds = %v, want %v", got.MinTraceSeconds, def.MinTraceSeconds)
	}
	if got.QWindow != def.QWindow {
		t.Errorf("inverted QWindow = %+v, want %+v", got.QWindow, def.QWindow)
	}
}

func TestRhythmConfig_Sanitize(t *testing.T) {
	cases := []struct {
		in   RhythmConfig
		want RhythmConfig
	}{
		{RhythmConfig{}, DefaultRhythmConfig()},
		{RhythmConfig{BradycardiaBelow: 100, TachycardiaAbove: 60}, DefaultRhythmConfig()},
		{RhythmConfig{BradycardiaBelow: 50, TachycardiaAbove: 110}, RhythmConfig{BradycardiaBelow: 50, TachycardiaAbove: 110}},
	}

	for _, tc := range cases {
		if got := tc.in.Sanitize(); got != tc.want {
			t.Errorf("Sanitize(%+v) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

func TestRateEstimateConfig_Sanitize(t *testing.T) {
	got := RateEstimateConfig{Enabled: false, MinBPM: 200, MaxBPM: 40}.Sanitize()
	if got.Enabled {
		t.Error("Sanitize must keep Enabled")
	}
	if got.MinBPM != 30 || got.MaxBPM != 220 {
		t.Errorf("range = [%v, %v], want [30, 220]", got.MinBPM, got.MaxBPM)
	}

	valid := RateEstimateConfig{Enabled: true, MinBPM: 40, MaxBPM: 180}
	if got := valid.Sanitize(); got != valid {
		t.Errorf("valid range changed: %+v", got)
	}
}

func TestAnalyzerConfig_Sanitize(t *testing.T) {
	got := AnalyzerConfig{
		Prefilter: PrefilterConfig{Enabled: true, LowHz: 10, HighHz: 5},
		Quality:   QualityConfig{MinBeats: 1},
	}.Sanitize()

	if !got.Prefilter.Enabled || got.Prefilter.LowHz != 0.5 || got.Prefilter.HighHz != 40 {
		t.Errorf("prefilter = %+v, want enabled default band", got.Prefilter)
	}
	if got.Quality != DefaultQualityConfig() {
		t.Errorf("quality = %+v, want defaults", got.Quality)
	}
	if got.Rhythm != DefaultRhythmConfig() {
		t.Errorf("rhythm = %+v, want defaults", got.Rhythm)
	}
}
