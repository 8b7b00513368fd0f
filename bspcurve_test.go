package nurbs

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

// parabola returns the quadratic Bézier curve tracing (t, 2t(1-t)).
func parabola() *BSplineCurve {
	return NewBSplineCurveUnchecked(BezierKnots(2), []Vec{
		V(0, 0),
		V(0.5, 1),
		V(1, 0),
	})
}

// unitCircle returns the quadratic NURBS representation of the unit
// circle, one rational Bézier arc per quadrant.
func unitCircle() *BSplineCurve {
	knots := KnotVec{0, 0, 0, 0.25, 0.25, 0.5, 0.5, 0.75, 0.75, 1, 1, 1}
	w := math.Sqrt2 / 2
	pts := []Vec{
		V(1, 0, 1),
		V(w, w, w),
		V(0, 1, 1),
		V(-w, w, w),
		V(-1, 0, 1),
		V(-w, -w, w),
		V(0, -1, 1),
		V(w, -w, w),
		V(1, 0, 1),
	}
	return NewBSplineCurveUnchecked(knots, pts)
}

func TestNewBSplineCurve(t *testing.T) {
	c, err := NewBSplineCurve(BezierKnots(2), []Vec{V(0, 0), V(0.5, 1), V(1, 0)})
	if err != nil {
		t.Fatal(err)
	}
	if got := c.Degree(); got != 2 {
		t.Errorf("got degree %d, want 2", got)
	}

	if _, err := NewBSplineCurve(BezierKnots(2), nil); !errors.Is(err, ErrEmptyControlPoints) {
		t.Errorf("got %v, want ErrEmptyControlPoints", err)
	}
	_, err = NewBSplineCurve(KnotVec{0, 0, 1, 1}, []Vec{V(0), V(1), V(2), V(3)})
	if err != (TooShortKnotVectorError{Knots: 4, ControlPoints: 4}) {
		t.Errorf("got %v, want TooShortKnotVectorError", err)
	}
	_, err = NewBSplineCurve(KnotVec{1, 1, 1, 1}, []Vec{V(0), V(1)})
	if !errors.Is(err, ErrZeroRange) {
		t.Errorf("got %v, want ErrZeroRange", err)
	}
}

func TestBSplineCurveEval(t *testing.T) {
	c := parabola()
	const n = 32
	for i := range n + 1 {
		u := float64(i) / n
		assertNear2(t, V(u, 2*u*(1-u)), c.Eval(u))
	}
}

func TestNURBSCircle(t *testing.T) {
	c := unitCircle()
	der := c.Differentiate()
	const n = 100
	for i := range n {
		u := float64(i) / n
		p := c.Eval(u).Project()
		if !Near2(p.Norm(), 1) {
			t.Errorf("point %v at %g is not on the unit circle", p, u)
		}
		// the tangent of a circle is orthogonal to the radius
		tang := c.Eval(u).ProjectedDerivative(der.Eval(u))
		if dot := p.Dot(tang); math.Abs(dot) > Tolerance {
			t.Errorf("tangent %v at %g is not orthogonal to %v", tang, u, p)
		}
	}
}

func TestBSplineCurveDifferentiate(t *testing.T) {
	tests := []*BSplineCurve{
		parabola(),
		NewBSplineCurveUnchecked(
			KnotVec{0, 0, 0, 0, 0.5, 1, 1, 1, 1},
			[]Vec{V(0, 0), V(1, 2), V(2, -1), V(3, 3), V(4, 0)},
		),
	}
	for _, c := range tests {
		der := c.Differentiate()
		const n = 10
		for i := 1; i < n; i++ {
			u := float64(i) / n
			const delta = 1e-6
			dApprox := c.Eval(u + delta).Sub(c.Eval(u - delta)).Scale(1 / (2 * delta))
			d := der.Eval(u)
			if err := d.Sub(dApprox).Norm(); err > 1e-5 {
				t.Errorf("got difference of %g at %g, want at most %g", err, u, 1e-5)
			}
		}
	}
}

func TestBSplineCurveDifferentiateConstant(t *testing.T) {
	c := NewBSplineCurveUnchecked(KnotVec{0, 1}, []Vec{V(3, 4)})
	der := c.Differentiate()
	assertNear(t, V(0, 0), der.Eval(0.5))
}

func TestBSplineCurveAddKnot(t *testing.T) {
	org := parabola()
	c := org.Clone()
	for _, u := range []float64{0, 0.3, 0.5, 1} {
		c.AddKnot(u)
	}
	if got, want := len(c.Knots()), len(org.Knots())+4; got != want {
		t.Errorf("got %d knots, want %d", got, want)
	}
	if got, want := len(c.ControlPoints()), len(org.ControlPoints())+4; got != want {
		t.Errorf("got %d control points, want %d", got, want)
	}
	if !c.Near2(org) {
		t.Error("knot insertion changed the curve")
	}
}

func TestBSplineCurveRemoveKnot(t *testing.T) {
	org := parabola()
	c := org.Clone()
	c.AddKnot(0.4)
	if err := c.RemoveKnot(3); err != nil {
		t.Fatal(err)
	}
	approx := cmpopts.EquateApprox(0, 1e-9)
	diff(t, org.Knots(), c.Knots(), approx)
	diff(t, org.ControlPoints(), c.ControlPoints(), approx)
}

func TestBSplineCurveRemoveKnotRejected(t *testing.T) {
	// a clamped boundary knot of a Bézier curve cannot be removed
	c := parabola()
	if err := c.RemoveKnot(2); err != (CannotRemoveKnotError{Index: 2}) {
		t.Errorf("got %v, want CannotRemoveKnotError", err)
	}

	// a polyline with a genuine corner cannot drop the corner knot
	corner := NewBSplineCurveUnchecked(
		KnotVec{0, 0, 0.5, 1, 1},
		[]Vec{V(0, 0), V(1, 1), V(2, 0)},
	)
	if err := corner.RemoveKnot(2); err != (CannotRemoveKnotError{Index: 2}) {
		t.Errorf("got %v, want CannotRemoveKnotError", err)
	}
}

func TestBSplineCurveSimplify(t *testing.T) {
	org := parabola()
	c := org.Clone()
	for _, u := range []float64{0, 0.3, 0.5, 1} {
		c.AddKnot(u)
	}
	c.Simplify()
	diff(t, org.Knots(), c.Knots(), cmpopts.EquateApprox(0, 1e-9))
	if !c.Near2(org) {
		t.Error("simplification changed the curve")
	}
}

func TestBSplineCurveCutConcat(t *testing.T) {
	org := NewBSplineCurveUnchecked(BezierKnots(3), []Vec{
		V(0, 0), V(1, 2), V(2, -1), V(3, 1),
	})
	front := org.Clone()
	back := front.Cut(0.3)

	if _, last := front.ParameterRange(); !Near(last, 0.3) {
		t.Errorf("got front range end %g, want 0.3", last)
	}
	if first, _ := back.ParameterRange(); !Near(first, 0.3) {
		t.Errorf("got back range start %g, want 0.3", first)
	}
	const n = 10
	for i := range n + 1 {
		u := float64(i) / n
		assertNear(t, org.Eval(0.3*u), front.Eval(0.3*u))
		assertNear(t, org.Eval(0.3+0.7*u), back.Eval(0.3+0.7*u))
	}

	front.Concat(back)
	if !front.Near2(org) {
		t.Error("cutting and concatenating changed the curve")
	}
}

func TestBSplineCurveReverse(t *testing.T) {
	c := parabola()
	r := c.Clone().Reverse()
	const n = 10
	for i := range n + 1 {
		u := float64(i) / n
		assertNear(t, c.Eval(u), r.Eval(1-u))
	}
	diff(t, c.ControlPoints(), r.Clone().Reverse().ControlPoints())
}

func TestBSplineCurveElevateDegree(t *testing.T) {
	org := parabola()
	c := org.Clone().ElevateDegree()
	if got := c.Degree(); got != 3 {
		t.Errorf("got degree %d, want 3", got)
	}
	diff(t, BezierKnots(3), c.Knots())
	if !c.Near2(org) {
		t.Error("degree elevation changed the curve")
	}

	// every interior knot gains one multiplicity
	org = NewBSplineCurveUnchecked(
		KnotVec{0, 0, 0, 0.5, 1, 1, 1},
		[]Vec{V(0, 0), V(1, 2), V(2, 2), V(3, 0)},
	)
	c = org.Clone().ElevateDegree()
	if got := c.Degree(); got != 3 {
		t.Errorf("got degree %d, want 3", got)
	}
	diff(t, KnotVec{0, 0, 0, 0, 0.5, 0.5, 1, 1, 1, 1}, c.Knots(), cmpopts.EquateApprox(0, 1e-12))
	if !c.Near2(org) {
		t.Error("degree elevation changed the curve")
	}
}

func TestBSplineCurveMatchDegree(t *testing.T) {
	line := NewBSplineCurveUnchecked(BezierKnots(1), []Vec{V(0, 0), V(2, 2)})
	quad := parabola()
	orgLine, orgQuad := line.Clone(), quad.Clone()

	line.MatchDegree(quad)
	if line.Degree() != quad.Degree() {
		t.Errorf("got degrees %d and %d, want equal", line.Degree(), quad.Degree())
	}
	if !line.Near2(orgLine) || !quad.Near2(orgQuad) {
		t.Error("degree matching changed a curve")
	}
}

func TestBSplineCurveMatchKnots(t *testing.T) {
	a := parabola()
	a.AddKnot(0.3)
	b := parabola()
	b.AddKnot(0.6).AddKnot(0.6)

	a.MatchKnots(b)
	diff(t, a.Knots(), b.Knots())
	if !a.Near2(parabola()) || !b.Near2(parabola()) {
		t.Error("knot matching changed a curve")
	}

	// repeating is a no-op
	knots := a.Knots().Clone()
	a.MatchKnots(b)
	diff(t, knots, a.Knots())
	diff(t, knots, b.Knots())
}

func TestBSplineCurveKnotNormalize(t *testing.T) {
	c := NewBSplineCurveUnchecked(KnotVec{2, 2, 4, 6, 6}, []Vec{V(0, 0), V(1, 1), V(2, 0)})
	org := c.Clone()
	c.KnotNormalize()
	diff(t, KnotVec{0, 0, 0.5, 1, 1}, c.Knots())
	assertNear(t, org.Eval(4), c.Eval(0.5))
}

func TestBSplineCurveTransform(t *testing.T) {
	rot := Matrix{
		{0, -1},
		{1, 0},
	}
	c := parabola()
	r := c.Clone().Transform(rot)
	const n = 10
	for i := range n + 1 {
		u := float64(i) / n
		assertNear(t, rot.Apply(c.Eval(u)), r.Eval(u))
	}

	s := c.Clone().Scale(2)
	assertNear(t, c.Eval(0.5).Scale(2), s.Eval(0.5))
}

func TestBSplineCurveIsConstant(t *testing.T) {
	c := NewBSplineCurveUnchecked(BezierKnots(2), []Vec{V(1, 2), V(1, 2), V(1, 2)})
	if !c.IsConstant() {
		t.Error("got non-constant, want constant")
	}
	if parabola().IsConstant() {
		t.Error("got constant, want non-constant")
	}

	// projectively constant control points with varying weights
	r := NewBSplineCurveUnchecked(BezierKnots(2), []Vec{V(1, 2, 1), V(2, 4, 2), V(3, 6, 3)})
	if !r.IsRationalConstant() {
		t.Error("got non-constant, want rationally constant")
	}
	if r.IsConstant() {
		t.Error("got constant, want non-constant control points")
	}
}

func TestBSplineCurveNear(t *testing.T) {
	c := parabola()
	d := parabola()
	d.AddKnot(0.5)
	if !c.Near(d) || !c.Near2(d) {
		t.Error("equal curves compare unequal")
	}
	d.ControlPoints()[1][1] += 1e-3
	if c.Near(d) {
		t.Error("distinct curves compare equal")
	}

	e := parabola()
	e.KnotTranslate(1)
	if c.Near(e) {
		t.Error("curves over different ranges compare equal")
	}
}

func TestBSplineCurveProjectedNear(t *testing.T) {
	c := unitCircle()
	d := c.Clone()
	// scaling a homogeneous curve does not move its projection
	d.Scale(3)
	if !c.ProjectedNear(d) || !c.ProjectedNear2(d) {
		t.Error("projectively equal curves compare unequal")
	}
	if c.Near(d) {
		t.Error("scaled homogeneous curves compare equal")
	}

	d.ControlPoints()[2][0] += 1e-3
	if c.ProjectedNear(d) {
		t.Error("distinct projections compare equal")
	}
}
