package nurbs

import (
	"math"
	"testing"
)

// segment is a straight line used to exercise the curve interfaces with a
// non-spline implementation.
type segment struct {
	from, to Vec
}

func (l segment) Eval(t float64) Vec {
	return l.from.Scale(1 - t).Add(l.to.Scale(t))
}

func (l segment) ParameterRange() (float64, float64) { return 0, 1 }

// chordLength approximates the arc length of any bounded curve by
// sampling.
func chordLength(c BoundedCurve, n int) float64 {
	first, last := c.ParameterRange()
	sum := 0.0
	prev := c.Eval(first)
	for i := 1; i <= n; i++ {
		t := first + (last-first)*float64(i)/float64(n)
		pt := c.Eval(t)
		sum += pt.Sub(prev).Norm()
		prev = pt
	}
	return sum
}

func TestBoundedCurveDispatch(t *testing.T) {
	curves := []BoundedCurve{
		segment{V(0, 0), V(3, 4)},
		NewBSplineCurveUnchecked(BezierKnots(1), []Vec{V(0, 0), V(3, 4)}),
	}
	for _, c := range curves {
		if got := chordLength(c, 16); !Near(got, 5) {
			t.Errorf("%T: got length %g, want 5", c, got)
		}
	}
}

func TestBoundedSurfaceDispatch(t *testing.T) {
	var s BoundedSurface = patch()
	u0, u1, v0, v1 := s.ParameterRange()
	assertNear(t, V(0.5, 0.5), s.Eval((u0+u1)/2, (v0+v1)/2))
}

func TestTolerances(t *testing.T) {
	if !SoSmall(Tolerance / 2) || SoSmall(Tolerance * 2) {
		t.Error("SoSmall does not match the tolerance")
	}
	if !SoSmall2(Tolerance2 / 2) || SoSmall2(Tolerance2 * 2) {
		t.Error("SoSmall2 does not match the tolerance")
	}
	// the comparison scale grows with the magnitude of the operands
	if !Near(1e10, 1e10+1) {
		t.Error("Near does not scale with the operands")
	}
	if Near(0, 1e-6) {
		t.Error("Near accepts a difference above the tolerance")
	}
	if got := invOrZero(0); got != 0 {
		t.Errorf("got %g, want 0", got)
	}
	if got := invOrZero(4); got != 0.25 {
		t.Errorf("got %g, want 0.25", got)
	}
	if got := invOrZero(math.Copysign(Tolerance/2, -1)); got != 0 {
		t.Errorf("got %g, want 0", got)
	}
}
