package nurbs

// Matrix is a square matrix, stored in row-major order, acting on [Vec]
// values of matching dimension. B-spline evaluation commutes with linear
// maps of the control points, so applying a matrix to a curve or surface
// (see [BSplineCurve.Transform] and [BSplineSurface.Transform]) leaves
// the knot vectors untouched.
type Matrix [][]float64

// Identity returns the n×n identity matrix.
func Identity(n int) Matrix {
	m := make(Matrix, n)
	for i := range m {
		m[i] = make([]float64, n)
		m[i][i] = 1
	}
	return m
}

// Apply returns m·v.
func (m Matrix) Apply(v Vec) Vec {
	out := make(Vec, len(m))
	for i, row := range m {
		var sum float64
		for j, a := range row {
			sum += a * v[j]
		}
		out[i] = sum
	}
	return out
}
