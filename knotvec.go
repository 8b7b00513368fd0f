package nurbs

import "slices"

// KnotVec is a non-decreasing sequence of parameters. It partitions the
// domain of a spline into spans and controls the support of the basis
// functions. A usable knot vector has at least two distinct values; the
// evaluation domain is the closed interval from its first to its last
// knot.
//
// A KnotVec constructed by [NewKnotVec] stays well formed as long as it
// is only mutated through its methods.
type KnotVec []float64

// NewKnotVec returns the given knots as a knot vector. It returns
// [ErrNotSorted] if the knots are not monotone non-decreasing, and
// [ErrZeroRange] if fewer than two distinct values are present.
func NewKnotVec(knots []float64) (KnotVec, error) {
	if !slices.IsSorted(knots) {
		return nil, ErrNotSorted
	}
	if len(knots) < 2 || SoSmall(knots[len(knots)-1]-knots[0]) {
		return nil, ErrZeroRange
	}
	return KnotVec(knots), nil
}

// BezierKnots returns the clamped knot vector of a Bézier curve of the
// given degree: degree+1 zeros followed by degree+1 ones.
func BezierKnots(degree int) KnotVec {
	k := make(KnotVec, 2*(degree+1))
	for i := degree + 1; i < len(k); i++ {
		k[i] = 1
	}
	return k
}

// UniformKnots returns the clamped knot vector on [0, 1] whose interior
// knots split the range into division equal spans.
func UniformKnots(degree, division int) KnotVec {
	k := make(KnotVec, 0, 2*(degree+1)+division-1)
	for range degree + 1 {
		k = append(k, 0)
	}
	for i := 1; i < division; i++ {
		k = append(k, float64(i)/float64(division))
	}
	for range degree + 1 {
		k = append(k, 1)
	}
	return k
}

// Clone returns a copy of k.
func (k KnotVec) Clone() KnotVec {
	return append(KnotVec(nil), k...)
}

// RangeLength returns the length of the parameter range, i.e. the
// difference between the last and the first knot.
func (k KnotVec) RangeLength() float64 {
	return k[len(k)-1] - k[0]
}

// IsClamped reports whether the first and last degree+1 knots each
// coincide, which makes a spline of that degree interpolate its endpoint
// control points.
func (k KnotVec) IsClamped(degree int) bool {
	return Near(k[0], k[degree]) && Near(k[len(k)-1], k[len(k)-1-degree])
}

// Multiplicity returns the number of knots equal to x up to [Tolerance].
func (k KnotVec) Multiplicity(x float64) int {
	m := 0
	for _, knot := range k {
		if Near(knot, x) {
			m++
		}
	}
	return m
}

// Floor returns the largest index whose knot does not exceed x. The
// second return value is false if x lies below the first knot.
func (k KnotVec) Floor(x float64) (int, bool) {
	for i := len(k) - 1; i >= 0; i-- {
		if k[i] <= x {
			return i, true
		}
	}
	return 0, false
}

// AddKnot inserts x after any existing knots of the same value, or at the
// front if x lies below the first knot, and returns the insertion index.
func (k *KnotVec) AddKnot(x float64) int {
	idx := 0
	if i, ok := k.Floor(x); ok {
		idx = i + 1
	}
	*k = slices.Insert(*k, idx, x)
	return idx
}

// Remove removes the knot at index idx.
func (k *KnotVec) Remove(idx int) {
	*k = slices.Delete(*k, idx, idx+1)
}

// Translate shifts every knot by d.
func (k KnotVec) Translate(d float64) {
	for i := range k {
		k[i] += d
	}
}

// Normalize rescales the knot vector to the range [0, 1]. It returns
// [ErrZeroRange] if the range is empty.
func (k KnotVec) Normalize() error {
	rng := k.RangeLength()
	if SoSmall(rng) {
		return ErrZeroRange
	}
	first := k[0]
	for i := range k {
		k[i] = (k[i] - first) / rng
	}
	return nil
}

// Invert reflects the knot vector about the midpoint of its range,
// keeping it non-decreasing. Applying it twice restores the original.
func (k KnotVec) Invert() {
	first, last := k[0], k[len(k)-1]
	for i, j := 0, len(k)-1; i <= j; i, j = i+1, j-1 {
		k[i], k[j] = first+last-k[j], first+last-k[i]
	}
}

// BasisFunctions evaluates all degree-d B-spline basis functions over k
// at the parameter t. The result has one entry per control point of a
// spline with this knot vector, i.e. len(k)−degree−1 entries.
//
// The computation is the triangular up-recurrence on the unit pulse of
// the span containing t. Coincident knots produce zero-width spans whose
// terms vanish via invOrZero. Parameters outside the knot range are
// clamped: the last non-empty span is reused at and beyond the right
// endpoint.
func (k KnotVec) BasisFunctions(degree int, t float64) []float64 {
	n := len(k) - degree - 1

	// The unit pulse lives on the span [k[idx-1], k[idx]).
	idx := -1
	for i, knot := range k {
		if t < knot {
			idx = i
			break
		}
	}
	if idx < 0 {
		// t is at or beyond the last knot; reuse the last non-empty span.
		last := k[len(k)-1]
		for i := len(k) - 1; i >= 0; i-- {
			if k[i] < last {
				idx = i + 1
				break
			}
		}
	}
	if idx < 1 {
		idx = 1
	}

	res := make([]float64, len(k)-1)
	res[idx-1] = 1
	for d := 1; d <= degree; d++ {
		for i := range len(k) - d - 1 {
			a := (t - k[i]) * invOrZero(k[i+d]-k[i])
			b := (k[i+d+1] - t) * invOrZero(k[i+d+1]-k[i+1])
			res[i] = a*res[i] + b*res[i+1]
		}
	}
	return res[:n]
}
