package filters

import (
	"math"
	"testing"
)

func TestBiquad_EdgeGains(t *testing.T) {
	hp := NewHighpass(360, 0.5, ButterworthQ)
	if g := hp.Magnitude(0); g > 1e-9 {
		t.Errorf("high-pass DC gain = %v, want 0", g)
	}
	if g := hp.Magnitude(0.5); math.Abs(g-math.Sqrt2/2) > 0.01 {
		t.Errorf("high-pass gain at cutoff = %v, want -3 dB", g)
	}

	lp := NewLowpass(360, 40, ButterworthQ)
	if g := lp.Magnitude(0); math.Abs(g-1) > 1e-9 {
		t.Errorf("low-pass DC gain = %v, want 1", g)
	}
	if g := lp.Magnitude(180); g > 1e-6 {
		t.Errorf("low-pass Nyquist gain = %v, want 0", g)
	}
}

func TestNewBandpassFilter_Validation(t *testing.T) {
	cases := []struct {
		fs        int
		low, high float64
	}{
		{0, 0.5, 40},
		{360, 0, 40},
		{360, 40, 0.5},
		{360, 0.5, 180},
	}
	for _, tc := range cases {
		if _, err := NewBandpassFilter(tc.fs, tc.low, tc.high); err == nil {
			t.Errorf("NewBandpassFilter(%d, %v, %v) accepted an invalid band", tc.fs, tc.low, tc.high)
		}
	}
}

func TestBandpassFilter_Response(t *testing.T) {
	bf, err := NewBandpassFilter(360, 0.5, 40)
	if err != nil {
		t.Fatal(err)
	}

	if g := bf.Magnitude(10); g < 0.95 || g > 1.01 {
		t.Errorf("passband gain at 10 Hz = %v", g)
	}
	if g := bf.Magnitude(0.05); g > 0.05 {
		t.Errorf("gain at 0.05 Hz = %v, want strong attenuation", g)
	}
	if g := bf.Magnitude(100); g > 0.2 {
		t.Errorf("gain at 100 Hz = %v, want strong attenuation", g)
	}
	if low, high := bf.Band(); low != 0.5 || high != 40 {
		t.Errorf("Band() = %v, %v", low, high)
	}
}

func TestBandpassFilter_RemovesOffset(t *testing.T) {
	bf, err := NewBandpassFilter(360, 0.5, 40)
	if err != nil {
		t.Fatal(err)
	}

	constant := make([]float64, 3600)
	for i := range constant {
		constant[i] = 2.0
	}

	out := bf.ProcessBuffer(constant)
	if tail := out[len(out)-1]; math.Abs(tail) > 1e-3 {
		t.Errorf("offset not removed, tail = %v", tail)
	}
}

func TestBandpassFilter_ZeroPhaseKeepsPeakPosition(t *testing.T) {
	bf, err := NewBandpassFilter(360, 0.5, 40)
	if err != nil {
		t.Fatal(err)
	}

	signal := make([]float64, 720)
	for i := range signal {
		z := (float64(i) - 360) / 8
		signal[i] = math.Exp(-0.5 * z * z)
	}

	out := bf.ProcessZeroPhase(signal)
	peak := 0
	for i := range out {
		if out[i] > out[peak] {
			peak = i
		}
	}
	if peak < 359 || peak > 361 {
		t.Errorf("zero-phase peak at %d, want 360", peak)
	}

	// state is cleared, so a second pass gives the same result
	again := bf.ProcessZeroPhase(signal)
	for i := range out {
		if out[i] != again[i] {
			t.Fatalf("second pass differs at %d", i)
		}
	}
}
