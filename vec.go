package nurbs

import (
	"fmt"
	"math"
	"strings"
)

// Vec is a fixed-length tuple of scalars. The kernel uses dimensions one
// through four: dimensions two and three describe plane and space points,
// and a Vec of dimension n+1 doubles as the rational projective
// representation of an n-dimensional point, its last component being the
// weight (see [Vec.Project]).
//
// All arithmetic methods require operands of equal dimension and return
// fresh values.
type Vec []float64

// V returns the vector with the given components.
func V(xs ...float64) Vec {
	return Vec(xs)
}

// ZeroVec returns the zero vector of dimension n.
func ZeroVec(n int) Vec {
	return make(Vec, n)
}

func (v Vec) String() string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = fmt.Sprintf("%g", x)
	}
	return "⟨" + strings.Join(parts, ", ") + "⟩"
}

// Clone returns a copy of v.
func (v Vec) Clone() Vec {
	return append(Vec(nil), v...)
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	out := make(Vec, len(v))
	for i := range v {
		out[i] = v[i] + o[i]
	}
	return out
}

// Sub returns v − o.
func (v Vec) Sub(o Vec) Vec {
	out := make(Vec, len(v))
	for i := range v {
		out[i] = v[i] - o[i]
	}
	return out
}

// Neg returns −v.
func (v Vec) Neg() Vec {
	out := make(Vec, len(v))
	for i := range v {
		out[i] = -v[i]
	}
	return out
}

// Scale returns s·v.
func (v Vec) Scale(s float64) Vec {
	out := make(Vec, len(v))
	for i := range v {
		out[i] = s * v[i]
	}
	return out
}

// Dot returns the dot product of v and o.
func (v Vec) Dot(o Vec) float64 {
	var sum float64
	for i := range v {
		sum += v[i] * o[i]
	}
	return sum
}

// Cross returns the cross product of v and o. Both must be
// three-dimensional.
func (v Vec) Cross(o Vec) Vec {
	if len(v) != 3 || len(o) != 3 {
		panic("Cross requires three-dimensional vectors")
	}
	return Vec{
		v[1]*o[2] - v[2]*o[1],
		v[2]*o[0] - v[0]*o[2],
		v[0]*o[1] - v[1]*o[0],
	}
}

// Norm returns the Euclidean norm of v.
func (v Vec) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// NormSquared returns the squared Euclidean norm of v.
//
// This function is more efficient than squaring the result of [Vec.Norm].
func (v Vec) NormSquared() float64 {
	return v.Dot(v)
}

// Near reports whether each component of v is near the corresponding
// component of o up to [Tolerance].
func (v Vec) Near(o Vec) bool {
	if len(v) != len(o) {
		return false
	}
	for i := range v {
		if !Near(v[i], o[i]) {
			return false
		}
	}
	return true
}

// Near2 reports whether each component of v is near the corresponding
// component of o up to [Tolerance2].
func (v Vec) Near2(o Vec) bool {
	if len(v) != len(o) {
		return false
	}
	for i := range v {
		if !Near2(v[i], o[i]) {
			return false
		}
	}
	return true
}

// Project interprets v as a rational projective point and returns its
// projection: the first n−1 components divided by the last, the weight.
func (v Vec) Project() Vec {
	n := len(v) - 1
	out := make(Vec, n)
	w := 1 / v[n]
	for i := range out {
		out[i] = v[i] * w
	}
	return out
}

// ProjectedDerivative returns the derivative of the projection of v,
// given the derivative der of v itself. By the quotient rule this is
//
//	(der[0..n]·v[n] − v[0..n]·der[n]) / v[n]²
//
// It converts a projective control-point derivative into the Euclidean
// derivative of the rational curve or surface.
func (v Vec) ProjectedDerivative(der Vec) Vec {
	n := len(v) - 1
	out := make(Vec, n)
	w2 := 1 / (v[n] * v[n])
	for i := range out {
		out[i] = (der[i]*v[n] - v[i]*der[n]) * w2
	}
	return out
}
