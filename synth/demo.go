package synth

import (
	"math"
	"math/rand/v2"

	"github.com/RyanBlaney/cardioscope/frame"
)

// Wave is one Gaussian component of a beat. Center and Width are fractions
// of the R-R interval.
type Wave struct {
	Amplitude float64 // mV
	Center    float64
	Width     float64
}

// DefaultMorphology is a textbook P-Q-R-S-T beat
func DefaultMorphology() []Wave {
	return []Wave{
		{Amplitude: 0.15, Center: 0.18, Width: 0.040},  // P
		{Amplitude: -0.06, Center: 0.34, Width: 0.012}, // Q
		{Amplitude: 1.10, Center: 0.36, Width: 0.010},  // R
		{Amplitude: -0.25, Center: 0.39, Width: 0.014}, // S
		{Amplitude: 0.30, Center: 0.65, Width: 0.090},  // T
	}
}

// DemoConfig configures the demo generator
type DemoConfig struct {
	SampleRate int
	HeartRate  float64 // bpm
	Morphology []Wave

	// slow sinusoidal heart-rate variation, peak deviation in bpm
	RateWobble   float64
	RateWobbleHz float64

	BaselineMV float64 // respiration-like wander
	BaselineHz float64
	MainsMV    float64 // power-line residue
	MainsHz    float64
	NoiseMV    float64 // uniform white noise half-range
	Seed       uint64

	FrameSeconds float64 // chunk length for Frames
}

// DefaultDemoConfig returns the 360 Hz, 72 bpm demo signal
func DefaultDemoConfig() DemoConfig {
	return DemoConfig{
		SampleRate:   360,
		HeartRate:    72,
		Morphology:   DefaultMorphology(),
		RateWobble:   2,
		RateWobbleHz: 0.2,
		BaselineMV:   0.02,
		BaselineHz:   0.3,
		MainsMV:      0.005,
		MainsHz:      50,
		NoiseMV:      0.003,
		Seed:         1,
		FrameSeconds: 0.18,
	}
}

// CleanDemoConfig is the demo signal without wobble, wander, mains or noise
func CleanDemoConfig(sampleRate int, heartRate float64) DemoConfig {
	return DemoConfig{
		SampleRate:   sampleRate,
		HeartRate:    heartRate,
		Morphology:   DefaultMorphology(),
		FrameSeconds: 0.18,
	}
}

// Demo produces an endless demo ECG, one sample at a time
type Demo struct {
	cfg   DemoConfig
	rng   *rand.Rand
	phase float64 // position within the current beat, [0, 1)
	n     int     // samples produced
	seq   uint32
}

// NewDemo creates a demo generator
func NewDemo(cfg DemoConfig) *Demo {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = 360
	}
	if cfg.HeartRate <= 0 {
		cfg.HeartRate = 72
	}
	if len(cfg.Morphology) == 0 {
		cfg.Morphology = DefaultMorphology()
	}
	if cfg.FrameSeconds <= 0 {
		cfg.FrameSeconds = 0.18
	}

	return &Demo{
		cfg: cfg,
		rng: rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
	}
}

// Config returns the generator configuration
func (d *Demo) Config() DemoConfig {
	return d.cfg
}

// RateAt returns the instantaneous heart rate at time t seconds
func (d *Demo) RateAt(t float64) float64 {
	bpm := d.cfg.HeartRate + d.cfg.RateWobble*math.Sin(2*math.Pi*d.cfg.RateWobbleHz*t)
	return min(max(bpm, 20), 300)
}

// Next returns the next sample in mV and advances time
func (d *Demo) Next() float64 {
	fs := float64(d.cfg.SampleRate)
	t := float64(d.n) / fs

	mv := 0.0
	for _, w := range d.cfg.Morphology {
		mv += w.Amplitude * gauss(d.phase, w.Center, w.Width)
	}

	mv += d.cfg.BaselineMV * math.Sin(2*math.Pi*d.cfg.BaselineHz*t)
	mv += d.cfg.MainsMV * math.Sin(2*math.Pi*d.cfg.MainsHz*t)
	if d.cfg.NoiseMV > 0 {
		mv += d.cfg.NoiseMV * (2*d.rng.Float64() - 1)
	}

	d.phase += d.RateAt(t) / 60.0 / fs
	if d.phase >= 1.0 {
		d.phase -= 1.0
	}
	d.n++

	return mv
}

// Generate returns the next seconds of signal
func (d *Demo) Generate(seconds float64) []float64 {
	out := make([]float64, max(int(seconds*float64(d.cfg.SampleRate)), 0))
	for i := range out {
		out[i] = d.Next()
	}
	return out
}

// NextFrame returns the next FrameSeconds chunk as a demo-flagged frame
func (d *Demo) NextFrame() frame.Frame {
	samples := max(int(d.cfg.FrameSeconds*float64(d.cfg.SampleRate)), 1)
	mv := make([]float64, samples)
	for i := range mv {
		mv[i] = d.Next()
	}

	hr := int(math.Round(d.RateAt(float64(d.n) / float64(d.cfg.SampleRate))))
	f := frame.FromMillivolts(d.seq, d.cfg.SampleRate, mv, frame.FlagDemo)
	f.HeartRate = &hr
	d.seq++

	return f
}
