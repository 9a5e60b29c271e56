package features

import "math"

// The aggregates below follow the column arithmetic the feature definitions
// were written against: "nan" variants skip NaN and give NaN when nothing is
// left, mean propagates NaN, and division by zero yields ±Inf or NaN.

func filter[T any](xs []T, keep func(T) bool) []T {
	var out []T
	for _, x := range xs {
		if keep(x) {
			out = append(out, x)
		}
	}
	return out
}

func column[T any](xs []T, f func(T) float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = f(x)
	}
	return out
}

func nanMax(xs []float64) float64 {
	out := math.NaN()
	for _, x := range xs {
		if math.IsNaN(x) {
			continue
		}
		if math.IsNaN(out) || x > out {
			out = x
		}
	}
	return out
}

func nanMin(xs []float64) float64 {
	out := math.NaN()
	for _, x := range xs {
		if math.IsNaN(x) {
			continue
		}
		if math.IsNaN(out) || x < out {
			out = x
		}
	}
	return out
}

func nanSum(xs []float64) float64 {
	var s float64
	for _, x := range xs {
		if !math.IsNaN(x) {
			s += x
		}
	}
	return s
}

// sum adds everything; one NaN makes the result NaN.
func sum(xs []float64) float64 {
	var s float64
	for _, x := range xs {
		s += x
	}
	return s
}

// mean is NaN for an empty slice or when any element is NaN.
func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	return sum(xs) / float64(len(xs))
}

// firstMax keeps the first element and replaces it only by a strictly
// greater one, so a leading NaN sticks.
func firstMax(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	out := xs[0]
	for _, x := range xs[1:] {
		if x > out {
			out = x
		}
	}
	return out
}

func firstMin(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	out := xs[0]
	for _, x := range xs[1:] {
		if x < out {
			out = x
		}
	}
	return out
}

// argMax returns the index of the first maximum, skipping NaN; -1 if none.
func argMax(xs []float64) int {
	idx := -1
	for i, x := range xs {
		if math.IsNaN(x) {
			continue
		}
		if idx < 0 || x > xs[idx] {
			idx = i
		}
	}
	return idx
}

func argMin(xs []float64) int {
	idx := -1
	for i, x := range xs {
		if math.IsNaN(x) {
			continue
		}
		if idx < 0 || x < xs[idx] {
			idx = i
		}
	}
	return idx
}

// ratios divides element-wise; +Inf results become NaN.
func ratios(num, den []float64) []float64 {
	out := make([]float64, len(num))
	for i := range num {
		r := num[i] / den[i]
		if math.IsInf(r, 1) {
			r = math.NaN()
		}
		out[i] = r
	}
	return out
}

func distinct[T any](xs []T, key func(T) string) int {
	seen := make(map[string]struct{}, len(xs))
	for _, x := range xs {
		seen[key(x)] = struct{}{}
	}
	return len(seen)
}

func distinctFloats(xs []float64) int {
	seen := make(map[float64]struct{}, len(xs))
	nan := false
	for _, x := range xs {
		if math.IsNaN(x) {
			nan = true
			continue
		}
		seen[x] = struct{}{}
	}
	if nan {
		return len(seen) + 1
	}
	return len(seen)
}

// groupSizes counts rows per key.
func groupSizes[T any](xs []T, key func(T) string) []float64 {
	idx := make(map[string]int)
	var out []float64
	for _, x := range xs {
		k := key(x)
		i, ok := idx[k]
		if !ok {
			i = len(out)
			idx[k] = i
			out = append(out, 0)
		}
		out[i]++
	}
	return out
}

func count[T any](xs []T, pred func(T) bool) int {
	n := 0
	for _, x := range xs {
		if pred(x) {
			n++
		}
	}
	return n
}
