package nurbs

// ParametricCurve describes a curve parametrized by a scalar.
//
// User-defined unions over several curve representations participate in
// generic algorithms by implementing this interface and dispatching on
// the variant.
type ParametricCurve interface {
	// Eval evaluates the curve at the parameter t.
	Eval(t float64) Vec
}

// BoundedCurve describes a parametric curve with a finite evaluation
// domain.
type BoundedCurve interface {
	ParametricCurve
	// ParameterRange returns the evaluation domain of the curve.
	ParameterRange() (float64, float64)
}

// ParametricSurface describes a surface parametrized by two scalars.
type ParametricSurface interface {
	// Eval evaluates the surface at the parameters (u, v).
	Eval(u, v float64) Vec
}

// BoundedSurface describes a parametric surface with a finite evaluation
// domain.
type BoundedSurface interface {
	ParametricSurface
	// ParameterRange returns the evaluation domain of the surface.
	ParameterRange() (u0, u1, v0, v1 float64)
}

var (
	_ BoundedCurve   = (*BSplineCurve)(nil)
	_ BoundedSurface = (*BSplineSurface)(nil)
)
