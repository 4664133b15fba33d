package common

import (
	"gonum.org/v1/gonum/floats"
)

// Span is an inclusive index range [Start, End]
type Span struct {
	Start int
	End   int
}

// Empty reports whether the span holds no index
func (s Span) Empty() bool {
	return s.End < s.Start
}

// Len returns the number of indices covered by the span
func (s Span) Len() int {
	if s.Empty() {
		return 0
	}
	return s.End - s.Start + 1
}

// Clamp restricts the span to [0, n-1]. The returned flag is false when
// nothing of the span lies inside the data.
func (s Span) Clamp(n int) (Span, bool) {
	if n <= 0 {
		return Span{}, false
	}

	clamped := Span{Start: max(s.Start, 0), End: min(s.End, n-1)}
	if clamped.Empty() {
		return Span{}, false
	}
	return clamped, true
}

// Around builds the span [center+from, center+to]
func Around(center, from, to int) Span {
	return Span{Start: center + from, End: center + to}
}

// WindowMeans returns, for every index i, the mean of data over
// [i-before, i+after] clamped to the data. Window sums come from a single
// prefix-sum scan, so the cost is linear in len(data).
func WindowMeans(data []float64, before, after int) []float64 {
	if len(data) == 0 {
		return []float64{}
	}
	before = max(before, 0)
	after = max(after, 0)

	prefix := floats.CumSum(make([]float64, len(data)), data)
	means := make([]float64, len(data))

	for i := range data {
		span, _ := Span{Start: i - before, End: i + after}.Clamp(len(data))
		sum := prefix[span.End]
		if span.Start > 0 {
			sum -= prefix[span.Start-1]
		}
		means[i] = sum / float64(span.Len())
	}

	return means
}

// CenteredMean smooths data with a moving average of the given width
// centered on each sample. Even widths lean one sample to the right.
func CenteredMean(data []float64, width int) []float64 {
	if width <= 1 {
		return append([]float64{}, data...)
	}
	return WindowMeans(data, (width-1)/2, width/2)
}

// TrailingMean averages each sample with the width-1 samples preceding it.
// Early samples average over whatever history exists.
func TrailingMean(data []float64, width int) []float64 {
	if width <= 1 {
		return append([]float64{}, data...)
	}
	return WindowMeans(data, width-1, 0)
}

// SlidingMax returns the maximum of data over [i-before, i+after] for every
// index, clamped to the data, using a monotonic deque.
func SlidingMax(data []float64, before, after int) []float64 {
	n := len(data)
	if n == 0 {
		return []float64{}
	}
	before = max(before, 0)
	after = max(after, 0)

	out := make([]float64, n)
	deque := make([]int, 0, min(before+after+1, n))
	next := 0

	for i := range n {
		hi := min(i+after, n-1)
		for ; next <= hi; next++ {
			for len(deque) > 0 && data[deque[len(deque)-1]] <= data[next] {
				deque = deque[:len(deque)-1]
			}
			deque = append(deque, next)
		}

		for deque[0] < i-before {
			deque = deque[1:]
		}
		out[i] = data[deque[0]]
	}

	return out
}

// ArgMin returns the index of the smallest value inside span, clamped to the
// data. Ties go to the earliest index.
func ArgMin(data []float64, span Span) (int, bool) {
	return argExtremum(data, span, func(candidate, best float64) bool {
		return candidate < best
	})
}

// ArgMax returns the index of the largest value inside span, clamped to the
// data. Ties go to the earliest index.
func ArgMax(data []float64, span Span) (int, bool) {
	return argExtremum(data, span, func(candidate, best float64) bool {
		return candidate > best
	})
}

func argExtremum(data []float64, span Span, better func(candidate, best float64) bool) (int, bool) {
	clamped, ok := span.Clamp(len(data))
	if !ok {
		return 0, false
	}

	best := clamped.Start
	for i := clamped.Start + 1; i <= clamped.End; i++ {
		if better(data[i], data[best]) {
			best = i
		}
	}
	return best, true
}
