package stats

import (
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestSegments(t *testing.T) {
	data := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}

	segments := Segments(data, []int{0, 3, 6, 9}, -1, 2)
	if len(segments) != 2 {
		t.Fatalf("got %d segments, want 2 (edges skipped)", len(segments))
	}
	if !floats.Equal(segments[0], []float64{2, 3, 4, 5}) || !floats.Equal(segments[1], []float64{5, 6, 7, 8}) {
		t.Errorf("segments = %v", segments)
	}

	if got := Segments(data, []int{5}, 2, 1); len(got) != 0 {
		t.Errorf("inverted window gave %v", got)
	}
}

func TestTemplate(t *testing.T) {
	template := Template([][]float64{{1, 2, 3}, {3, 4, 5}})
	if !floats.Equal(template, []float64{2, 3, 4}) {
		t.Errorf("Template() = %v", template)
	}
	if got := Template(nil); len(got) != 0 {
		t.Errorf("Template(nil) = %v", got)
	}
}

func TestPearson(t *testing.T) {
	a := []float64{1, 2, 3, 4}

	if r := Pearson(a, []float64{2, 4, 6, 8}); !scalar.EqualWithinAbs(r, 1, 1e-12) {
		t.Errorf("Pearson(scaled) = %v, want 1", r)
	}
	if r := Pearson(a, []float64{4, 3, 2, 1}); !scalar.EqualWithinAbs(r, -1, 1e-12) {
		t.Errorf("Pearson(reversed) = %v, want -1", r)
	}
	if r := Pearson(a, []float64{5, 5, 5, 5}); r != 0 {
		t.Errorf("Pearson(flat) = %v, want 0", r)
	}
	if r := Pearson(a, a[:3]); r != 0 {
		t.Errorf("Pearson(mismatched) = %v, want 0", r)
	}
}

func TestTemplateCorrelation(t *testing.T) {
	segments := [][]float64{{0, 1, 0}, {0, 2, 0}, {1, 0, 1}}
	corr := TemplateCorrelation(segments, []float64{0, 1, 0})

	want := []float64{1, 1, -1}
	if !floats.EqualApprox(corr, want, 1e-12) {
		t.Errorf("TemplateCorrelation() = %v, want %v", corr, want)
	}
}
