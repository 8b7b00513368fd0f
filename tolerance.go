package nurbs

import "math"

// Tolerance is the general tolerance for geometric comparisons. Two
// lengths that differ by less than it are considered equal.
const Tolerance = 1.0e-7

// Tolerance2 is the square-order tolerance, for quantities that are
// quadratic in a length, such as squared distances.
const Tolerance2 = Tolerance * Tolerance

// SoSmall reports whether x is negligible, i.e. |x| ≤ [Tolerance].
func SoSmall(x float64) bool {
	return math.Abs(x) <= Tolerance
}

// SoSmall2 reports whether x is negligible in square order, i.e.
// |x| ≤ [Tolerance2].
func SoSmall2(x float64) bool {
	return math.Abs(x) <= Tolerance2
}

// Near reports whether x and y are equal up to [Tolerance], relative to
// their magnitudes.
func Near(x, y float64) bool {
	return math.Abs(x-y) <= Tolerance*max(1, math.Abs(x), math.Abs(y))
}

// Near2 reports whether x and y are equal up to [Tolerance2], relative to
// their magnitudes.
func Near2(x, y float64) bool {
	return math.Abs(x-y) <= Tolerance2*max(1, math.Abs(x), math.Abs(y))
}

// invOrZero returns 1/x, or 0 if x is negligible. It is the only guard
// the kernel applies to denominators that may vanish; a coincident knot
// span contributes zero instead of dividing by zero.
func invOrZero(x float64) float64 {
	if SoSmall(x) {
		return 0
	}
	return 1 / x
}
