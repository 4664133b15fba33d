package cardio

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/RyanBlaney/cardioscope/cardio/config"
	"github.com/RyanBlaney/cardioscope/frame"
	"github.com/RyanBlaney/cardioscope/synth"
)

func TestClassify(t *testing.T) {
	rhythm := config.DefaultRhythmConfig()

	cases := []struct {
		hr   *float64
		want Rhythm
	}{
		{nil, RhythmUnknown},
		{ptr(45.0), RhythmBradycardia},
		{ptr(59.9), RhythmBradycardia},
		{ptr(60.0), RhythmNormal},
		{ptr(100.0), RhythmNormal},
		{ptr(100.1), RhythmTachycardia},
	}

	for _, tc := range cases {
		if got := Classify(tc.hr, rhythm); got != tc.want {
			t.Errorf("Classify(%v) = %s, want %s", tc.hr, got, tc.want)
		}
	}

	// inverted bands fall back to the defaults
	inverted := config.RhythmConfig{BradycardiaBelow: 120, TachycardiaAbove: 50}
	if got := Classify(ptr(80.0), inverted); got != RhythmNormal {
		t.Errorf("Classify with inverted bands = %s, want normal", got)
	}
}

func TestSummarize_PulseTrains(t *testing.T) {
	cases := []struct {
		bpm    float64
		rhythm Rhythm
	}{
		{50, RhythmBradycardia},
		{72, RhythmNormal},
		{120, RhythmTachycardia},
	}

	for _, tc := range cases {
		_, trace := pulseTrain(t, tc.bpm, 0)
		s := Summarize(trace, testSampleRate)

		if s.SampleRate != testSampleRate {
			t.Errorf("%.0f bpm: sample rate = %d", tc.bpm, s.SampleRate)
		}
		if s.Duration != testWindowSecs*time.Second {
			t.Errorf("%.0f bpm: duration = %v, want %ds", tc.bpm, s.Duration, testWindowSecs)
		}
		if s.BeatCount != len(s.Fiducials.R) {
			t.Errorf("%.0f bpm: beat count %d != %d R-peaks", tc.bpm, s.BeatCount, len(s.Fiducials.R))
		}
		if s.Rhythm != tc.rhythm {
			t.Errorf("%.0f bpm: rhythm = %s, want %s", tc.bpm, s.Rhythm, tc.rhythm)
		}
		if s.SpectralRate == nil {
			t.Errorf("%.0f bpm: spectral rate absent", tc.bpm)
		} else if math.Abs(*s.SpectralRate-tc.bpm) > rateToleranceBPM {
			t.Errorf("%.0f bpm: spectral rate = %.2f", tc.bpm, *s.SpectralRate)
		}
	}
}

func TestSummarize_FlatTrace(t *testing.T) {
	s := Summarize(make([]float64, testWindowSecs*testSampleRate), testSampleRate)

	if s.BeatCount != 0 || !s.Fiducials.Empty() {
		t.Errorf("flat trace produced %d beats", s.BeatCount)
	}
	if s.Rhythm != RhythmUnknown {
		t.Errorf("rhythm = %s, want unknown", s.Rhythm)
	}
	if s.SpectralRate != nil {
		t.Errorf("spectral rate = %v, want absent", *s.SpectralRate)
	}
	assertAllAbsent(t, s.Metrics)
}

func TestSummarize_ZeroSampleRate(t *testing.T) {
	s := Summarize(make([]float64, 100), 0)
	if s.Duration != 0 || s.BeatCount != 0 || s.Rhythm != RhythmUnknown {
		t.Errorf("unexpected summary for fs=0: %+v", s)
	}
}

func TestNewAnalyzer_SanitizesConfig(t *testing.T) {
	a := NewAnalyzer(&config.AnalyzerConfig{
		RateEstimate: config.RateEstimateConfig{Enabled: false},
	})

	if got := a.detector.Config(); !reflect.DeepEqual(got, config.DefaultDetectorConfig()) {
		t.Errorf("zero detector config sanitized to %+v", got)
	}
	if a.config.Rhythm != config.DefaultRhythmConfig() {
		t.Errorf("zero rhythm config sanitized to %+v", a.config.Rhythm)
	}

	_, trace := pulseTrain(t, 72, 0)
	if s := a.Summarize(trace, testSampleRate); s.SpectralRate != nil {
		t.Errorf("spectral rate = %v with estimation disabled", *s.SpectralRate)
	}
}

func TestNewAnalyzer_ZeroConfigKeepsMinimumLength(t *testing.T) {
	_, trace := pulseTrain(t, 180, 0)
	short := trace[:testSampleRate]

	f, m := NewAnalyzer(&config.AnalyzerConfig{}).Analyze(short, testSampleRate)
	if !f.Empty() {
		t.Errorf("one second trace gave R-peaks %v", f.R)
	}
	assertAllAbsent(t, m)
}

func TestAnalyze_MatchesDetectAndMeasure(t *testing.T) {
	_, trace := pulseTrain(t, 80, 0)

	f, m := Analyze(trace, testSampleRate)
	want := Detect(trace, testSampleRate)
	if !reflect.DeepEqual(f, want) {
		t.Errorf("Analyze fiducials differ from Detect")
	}
	if !reflect.DeepEqual(m, Measure(want, testSampleRate)) {
		t.Errorf("Analyze metrics differ from Measure")
	}
}

func TestSummarize_Prefilter(t *testing.T) {
	cfg := config.DefaultAnalyzerConfig()
	cfg.Prefilter.Enabled = true
	a := NewAnalyzer(cfg)

	trace := synth.NewDemo(synth.DefaultDemoConfig()).Generate(testWindowSecs)
	s := a.Summarize(trace, testSampleRate)

	if !s.Filtered {
		t.Error("summary not marked as filtered")
	}
	if s.Metrics.HeartRate == nil || math.Abs(*s.Metrics.HeartRate-72) > 4 {
		t.Errorf("filtered heart rate = %v, want 72 +/- 4", s.Metrics.HeartRate)
	}
	if s.Quality == nil {
		t.Error("quality absent")
	}

	// a 40 Hz upper edge does not fit under a 30 Hz Nyquist
	low := a.Summarize(make([]float64, 600), 60)
	if low.Filtered {
		t.Error("prefilter ran above Nyquist")
	}
}

func TestSummarizeWindow(t *testing.T) {
	demo := synth.NewDemo(synth.CleanDemoConfig(testSampleRate, 72))
	w := frame.NewWindow(testSampleRate, testWindowSecs)

	for !w.Full() {
		if err := w.AppendFrame(demo.NextFrame()); err != nil {
			t.Fatal(err)
		}
	}

	s := NewAnalyzer(nil).SummarizeWindow(w)
	if s.Duration != testWindowSecs*time.Second {
		t.Errorf("duration = %v", s.Duration)
	}
	if s.Rhythm != RhythmNormal {
		t.Errorf("rhythm = %s, want normal", s.Rhythm)
	}
	if s.Metrics.HeartRate == nil || math.Abs(*s.Metrics.HeartRate-72) > rateToleranceBPM {
		t.Errorf("heart rate = %v, want 72", s.Metrics.HeartRate)
	}
}
