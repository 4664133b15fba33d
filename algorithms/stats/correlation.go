package stats

import (
	"math"

	"github.com/RyanBlaney/cardioscope/algorithms/common"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Segments cuts [center+from, center+to] out of data for every center.
// Centers whose segment would leave the data are skipped, so every returned
// segment has length to-from+1.
func Segments(data []float64, centers []int, from, to int) [][]float64 {
	segments := [][]float64{}
	if to < from {
		return segments
	}

	for _, c := range centers {
		span := common.Around(c, from, to)
		if span.Start < 0 || span.End >= len(data) {
			continue
		}
		segments = append(segments, data[span.Start:span.End+1])
	}
	return segments
}

// Template returns the sample-wise mean of equal-length segments
func Template(segments [][]float64) []float64 {
	if len(segments) == 0 {
		return []float64{}
	}

	template := make([]float64, len(segments[0]))
	for _, seg := range segments {
		floats.Add(template, seg)
	}
	floats.Scale(1/float64(len(segments)), template)
	return template
}

// Pearson returns the linear correlation of a and b, or 0 when either is
// flat and the correlation is undefined
func Pearson(a, b []float64) float64 {
	if len(a) != len(b) || len(a) < 2 {
		return 0.0
	}

	r := stat.Correlation(a, b, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0.0
	}
	return max(min(r, 1.0), -1.0)
}

// TemplateCorrelation correlates every segment with the template
func TemplateCorrelation(segments [][]float64, template []float64) []float64 {
	correlations := make([]float64, len(segments))
	for i, seg := range segments {
		correlations[i] = Pearson(seg, template)
	}
	return correlations
}
