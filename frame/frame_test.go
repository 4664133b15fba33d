package frame

import (
	"errors"
	"math"
	"slices"
	"testing"
)

func TestEncodeMillivolts(t *testing.T) {
	mv := []float64{0, 1.0, -0.5, 0.0019, -0.0019, 40, -40, math.NaN()}
	want := []int16{0, 1000, -500, 1, -1, math.MaxInt16, math.MinInt16, 0}

	if got := EncodeMillivolts(mv); !slices.Equal(got, want) {
		t.Errorf("EncodeMillivolts() = %v, want %v", got, want)
	}
}

func TestFrame_Millivolts(t *testing.T) {
	f := FromMillivolts(7, 250, []float64{1.25, -0.25, 0}, FlagDemo)

	if f.Seq != 7 || f.SampleRate != 250 || !f.Flags.Has(FlagDemo) {
		t.Fatalf("unexpected frame header: %+v", f)
	}
	if f.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", f.Len())
	}

	want := []float64{1.25, -0.25, 0}
	for i, v := range f.Millivolts() {
		if math.Abs(v-want[i]) > 1e-9 {
			t.Errorf("sample %d = %v, want %v", i, v, want[i])
		}
	}
}

func TestFlag_Has(t *testing.T) {
	flags := FlagDemo | FlagArtifact
	if !flags.Has(FlagDemo) || !flags.Has(FlagArtifact) {
		t.Error("set flags not reported")
	}
	if flags.Has(FlagSaturated) || flags.Has(FlagDemo|FlagFiltered) {
		t.Error("unset flags reported")
	}
	if !flags.Has(FlagNone) {
		t.Error("FlagNone is always contained")
	}
}

func TestFrame_Concat(t *testing.T) {
	a := Frame{Seq: 1, SampleRate: 360, Samples: []int16{1, 2}, Flags: FlagDemo}
	b := Frame{Seq: 2, SampleRate: 360, Samples: []int16{3}, Flags: FlagArtifact}

	merged, err := a.Concat(b)
	if err != nil {
		t.Fatalf("Concat() error: %v", err)
	}
	if merged.Seq != 2 {
		t.Errorf("Seq = %d, want 2", merged.Seq)
	}
	if !slices.Equal(merged.Samples, []int16{1, 2, 3}) {
		t.Errorf("Samples = %v", merged.Samples)
	}
	if merged.Flags != FlagDemo|FlagArtifact {
		t.Errorf("Flags = %b", merged.Flags)
	}

	// the receiver is untouched
	if !slices.Equal(a.Samples, []int16{1, 2}) {
		t.Errorf("receiver samples modified: %v", a.Samples)
	}

	_, err = a.Concat(Frame{SampleRate: 250})
	if !errors.Is(err, ErrSampleRateMismatch) {
		t.Errorf("Concat() error = %v, want ErrSampleRateMismatch", err)
	}
}
