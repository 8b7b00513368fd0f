package nurbs

import "slices"

// BSplineCurve is a B-spline curve: a knot vector paired with control
// points, with the number of knots strictly exceeding the number of
// control points. Rational (NURBS) curves are represented uniformly as
// non-rational curves in one higher dimension, the last coordinate being
// the weight; see [Vec.Project].
//
// The zero value is not usable; construct curves with [NewBSplineCurve]
// or [NewBSplineCurveUnchecked].
type BSplineCurve struct {
	knots   KnotVec
	ctrlPts []Vec
}

// NewBSplineCurve returns the B-spline curve with the given knot vector
// and control points. It returns [ErrEmptyControlPoints] if there are no
// control points, a [TooShortKnotVectorError] if the knot vector does not
// exceed the control points in number, and [ErrZeroRange] if the knot
// vector covers an empty range.
func NewBSplineCurve(knots KnotVec, ctrlPts []Vec) (*BSplineCurve, error) {
	if len(ctrlPts) == 0 {
		return nil, ErrEmptyControlPoints
	}
	if len(knots) <= len(ctrlPts) {
		return nil, TooShortKnotVectorError{len(knots), len(ctrlPts)}
	}
	if SoSmall(knots.RangeLength()) {
		return nil, ErrZeroRange
	}
	return NewBSplineCurveUnchecked(knots, ctrlPts), nil
}

// NewBSplineCurveUnchecked is like [NewBSplineCurve] but skips all
// validation. It exists for performance-critical callers that can
// guarantee the invariants themselves; violating them results in
// undefined behavior.
func NewBSplineCurveUnchecked(knots KnotVec, ctrlPts []Vec) *BSplineCurve {
	return &BSplineCurve{knots: knots, ctrlPts: ctrlPts}
}

// Clone returns a deep copy of the curve.
func (c *BSplineCurve) Clone() *BSplineCurve {
	pts := make([]Vec, len(c.ctrlPts))
	for i, pt := range c.ctrlPts {
		pts[i] = pt.Clone()
	}
	return &BSplineCurve{knots: c.knots.Clone(), ctrlPts: pts}
}

// Knots returns the curve's knot vector. The caller must not mutate it.
func (c *BSplineCurve) Knots() KnotVec { return c.knots }

// ControlPoints returns the curve's control points. The caller must not
// mutate them.
func (c *BSplineCurve) ControlPoints() []Vec { return c.ctrlPts }

// ControlPoint returns the i-th control point.
func (c *BSplineCurve) ControlPoint(i int) Vec { return c.ctrlPts[i] }

// Degree returns the degree of the curve's basis functions.
func (c *BSplineCurve) Degree() int { return len(c.knots) - len(c.ctrlPts) - 1 }

// ParameterRange returns the evaluation domain of the curve, the closed
// interval from the first to the last knot.
func (c *BSplineCurve) ParameterRange() (float64, float64) {
	return c.knots[0], c.knots[len(c.knots)-1]
}

// IsClamped reports whether the knot vector is clamped for the curve's
// degree, i.e. the curve interpolates its endpoint control points.
func (c *BSplineCurve) IsClamped() bool {
	return c.knots.IsClamped(c.Degree())
}

func (c *BSplineCurve) dim() int { return len(c.ctrlPts[0]) }

// Eval evaluates the curve at the parameter t. Parameters outside the
// knot range are clamped; evaluation never fails.
func (c *BSplineCurve) Eval(t float64) Vec {
	basis := c.knots.BasisFunctions(c.Degree(), t)
	res := ZeroVec(c.dim())
	for i, b := range basis {
		pt := c.ctrlPts[i]
		for j := range res {
			res[j] += b * pt[j]
		}
	}
	return res
}

// deltaControlPoint is the finite difference of neighboring control
// points, extended by the boundary deltas P[0] and −P[n−1] at the ends.
func (c *BSplineCurve) deltaControlPoint(i int) Vec {
	switch i {
	case 0:
		return c.ctrlPts[0].Clone()
	case len(c.ctrlPts):
		return c.ctrlPts[i-1].Neg()
	default:
		return c.ctrlPts[i].Sub(c.ctrlPts[i-1])
	}
}

// Differentiate returns the derivative of the curve as a new curve. The
// degree drops by one; differentiating a degree-zero curve yields the
// constant zero curve of the same shape.
func (c *BSplineCurve) Differentiate() *BSplineCurve {
	n := len(c.ctrlPts)
	k := c.Degree()
	knots := c.knots.Clone()

	if k == 0 {
		pts := make([]Vec, n)
		for i := range pts {
			pts[i] = ZeroVec(c.dim())
		}
		return NewBSplineCurveUnchecked(knots, pts)
	}

	pts := make([]Vec, 0, n+1)
	for i := 0; i <= n; i++ {
		coef := float64(k) * invOrZero(knots[i+k]-knots[i])
		pts = append(pts, c.deltaControlPoint(i).Scale(coef))
	}
	return NewBSplineCurveUnchecked(knots, pts)
}

// AddKnot inserts the knot x and updates the control points by Boehm's
// algorithm, leaving the curve unchanged pointwise. If x lies below the
// knot range a zero control point is prepended instead.
func (c *BSplineCurve) AddKnot(x float64) *BSplineCurve {
	if x < c.knots[0] {
		c.knots.AddKnot(x)
		c.ctrlPts = slices.Insert(c.ctrlPts, 0, ZeroVec(c.dim()))
		return c
	}

	k := c.Degree()
	n := len(c.ctrlPts)
	idx := c.knots.AddKnot(x)
	start := max(idx-k, 0)
	var end int
	if idx > n {
		c.ctrlPts = append(c.ctrlPts, ZeroVec(c.dim()))
		end = n + 1
	} else {
		c.ctrlPts = slices.Insert(c.ctrlPts, idx-1, c.ctrlPts[idx-1].Clone())
		end = idx
	}
	for i := start; i < end; i++ {
		i0 := end + start - i - 1
		delta := c.knots[i0+k+1] - c.knots[i0]
		a := invOrZero(delta) * (c.knots[idx] - c.knots[i0])
		p := c.deltaControlPoint(i0).Scale(1 - a)
		c.ctrlPts[i0] = c.ctrlPts[i0].Sub(p)
	}
	return c
}

// RemoveKnot removes the knot at index idx, inverting Boehm's recurrence,
// provided the curve stays unchanged pointwise. A back knot clamped
// beyond multiplicity degree+1 is removed together with the unsupported
// last control point. RemoveKnot returns a [CannotRemoveKnotError] if idx
// lies in the clamped prefix or suffix, or if the reconstructed control
// point does not agree with the existing one up to [Tolerance]; the curve
// is left untouched in that case.
func (c *BSplineCurve) RemoveKnot(idx int) error {
	k := c.Degree()
	n := len(c.ctrlPts)
	if idx < 0 || idx >= len(c.knots) {
		return CannotRemoveKnotError{idx}
	}

	// A back knot clamped beyond multiplicity degree+1 supports no control
	// point. The last control point is dead weight and goes with the knot.
	back := c.knots[len(c.knots)-1]
	if Near(c.knots[idx], back) && c.knots.Multiplicity(back) > k+1 {
		c.ctrlPts = c.ctrlPts[:n-1]
		c.knots.Remove(idx)
		return nil
	}

	if idx < k+1 || idx >= n {
		return CannotRemoveKnotError{idx}
	}

	// Invert the insertion recurrence from the left. Once a coefficient
	// vanishes the remaining control points coincide with the reduced ones
	// shifted by one, so reconstruction stops there.
	newPts := make([]Vec, 0, k+1)
	newPts = append(newPts, c.ctrlPts[idx-k-1].Clone())
	stop := idx
	for i := idx - k; i < idx; i++ {
		delta := c.knots[i+k+1] - c.knots[i]
		a := invOrZero(delta) * (c.knots[idx] - c.knots[i])
		if SoSmall(a) {
			stop = i
			break
		}
		last := newPts[len(newPts)-1]
		pt := c.ctrlPts[i].Scale(1 / a).Sub(last.Scale((1 - a) / a))
		newPts = append(newPts, pt)
	}

	if !c.ctrlPts[stop].Near(newPts[len(newPts)-1]) {
		return CannotRemoveKnotError{idx}
	}

	for i, pt := range newPts[1:] {
		c.ctrlPts[idx-k+i] = pt
	}
	c.ctrlPts = slices.Delete(c.ctrlPts, stop, stop+1)
	c.knots.Remove(idx)
	return nil
}

// Simplify removes every removable knot, attempting removal from the back
// until a full pass removes nothing. The curve is unchanged pointwise.
func (c *BSplineCurve) Simplify() *BSplineCurve {
	for {
		n := len(c.knots)
		removed := false
		for i := 1; i <= n; i++ {
			if c.RemoveKnot(n-i) == nil {
				removed = true
			}
		}
		if !removed {
			return c
		}
	}
}

// KnotTranslate shifts the knot vector by d.
func (c *BSplineCurve) KnotTranslate(d float64) *BSplineCurve {
	c.knots.Translate(d)
	return c
}

// KnotNormalize rescales the knot vector to [0, 1].
func (c *BSplineCurve) KnotNormalize() *BSplineCurve {
	if err := c.knots.Normalize(); err != nil {
		panic(err)
	}
	return c
}

// Reverse reverses the orientation of the curve: the control points are
// reversed and the knot vector is reflected about the midpoint of its
// range.
func (c *BSplineCurve) Reverse() *BSplineCurve {
	slices.Reverse(c.ctrlPts)
	c.knots.Invert()
	return c
}

// Transform applies the matrix m to every control point.
func (c *BSplineCurve) Transform(m Matrix) *BSplineCurve {
	for i, pt := range c.ctrlPts {
		c.ctrlPts[i] = m.Apply(pt)
	}
	return c
}

// Scale multiplies every control point by s.
func (c *BSplineCurve) Scale(s float64) *BSplineCurve {
	for i, pt := range c.ctrlPts {
		c.ctrlPts[i] = pt.Scale(s)
	}
	return c
}

// Cut splits the curve at the interior parameter t by raising the
// multiplicity of t. The receiver keeps the part of the curve before t
// and the part after t is returned. Cut panics if t does not lie strictly
// inside the knot range.
func (c *BSplineCurve) Cut(t float64) *BSplineCurve {
	first, last := c.ParameterRange()
	if t <= first || t >= last {
		panic("Cut parameter outside the knot range")
	}

	k := c.Degree()
	mult := 0
	for _, knot := range c.knots {
		if Near(knot, t) {
			mult++
		}
	}
	for range k - mult {
		c.AddKnot(t)
	}
	j := 0
	for i, knot := range c.knots {
		if Near(knot, t) {
			j = i
			break
		}
	}

	var backKnots KnotVec
	var backPts []Vec
	if mult <= k {
		// the curve interpolates P[j-1] at t; both halves share it
		backKnots = append(KnotVec{t}, c.knots[j:].Clone()...)
		backPts = clonePoints(c.ctrlPts[j-1:])
		c.knots = append(c.knots[:j+k].Clone(), t)
		c.ctrlPts = c.ctrlPts[:j]
	} else {
		// t is already fully clamped; split without sharing
		backKnots = c.knots[j:].Clone()
		backPts = clonePoints(c.ctrlPts[j:])
		c.knots = c.knots[:j+k+1].Clone()
		c.ctrlPts = c.ctrlPts[:j]
	}
	return NewBSplineCurveUnchecked(backKnots, backPts)
}

func clonePoints(pts []Vec) []Vec {
	out := make([]Vec, len(pts))
	for i, pt := range pts {
		out[i] = pt.Clone()
	}
	return out
}

// Concat appends other to the receiver. Both curves must be clamped; the
// one of lower degree is elevated until the degrees agree. other is
// translated so that its knot range follows the receiver's, its first
// control point is merged with the receiver's last, and the two must
// coincide up to [Tolerance]. Concat panics otherwise.
func (c *BSplineCurve) Concat(other *BSplineCurve) *BSplineCurve {
	if !c.IsClamped() || !other.IsClamped() {
		panic("Concat requires clamped curves")
	}
	c.MatchDegree(other)
	k := c.Degree()
	other.KnotTranslate(c.knots[len(c.knots)-1] - other.knots[0])
	if !c.ctrlPts[len(c.ctrlPts)-1].Near(other.ctrlPts[0]) {
		panic("Concat requires curves sharing an endpoint")
	}
	c.knots = append(c.knots[:len(c.knots)-1], other.knots[k+1:]...)
	c.ctrlPts = append(c.ctrlPts, other.ctrlPts[1:]...)
	return c
}

// clamp raises the multiplicity of the boundary knots to degree+1,
// leaving the curve unchanged pointwise.
func (c *BSplineCurve) clamp() {
	k := c.Degree()
	for {
		mult := 0
		for _, knot := range c.knots {
			if Near(knot, c.knots[0]) {
				mult++
			}
		}
		if mult > k {
			break
		}
		c.AddKnot(c.knots[0])
	}
	for {
		mult := 0
		last := c.knots[len(c.knots)-1]
		for _, knot := range c.knots {
			if Near(knot, last) {
				mult++
			}
		}
		if mult > k {
			break
		}
		c.AddKnot(last)
	}
}

// bezierSegments decomposes a clamped curve into its Bézier segments by
// cutting at every distinct interior knot. Neighboring segments share
// their endpoint control points.
func (c *BSplineCurve) bezierSegments() []*BSplineCurve {
	cl := c.Clone()
	var segs []*BSplineCurve
	for {
		t, ok := cl.firstInteriorKnot()
		if !ok {
			return append(segs, cl)
		}
		back := cl.Cut(t)
		segs = append(segs, cl)
		cl = back
	}
}

// firstInteriorKnot returns the smallest knot value strictly inside the
// knot range.
func (c *BSplineCurve) firstInteriorKnot() (float64, bool) {
	first, last := c.ParameterRange()
	for _, knot := range c.knots {
		if !Near(knot, first) {
			if Near(knot, last) {
				return 0, false
			}
			return knot, true
		}
	}
	return 0, false
}

// elevateBezierDegree raises the degree of a Bézier segment by one,
// replacing the control points with the exact convex combinations of the
// old ones. The shape of the segment is unchanged.
func (c *BSplineCurve) elevateBezierDegree() {
	k := c.Degree()
	pts := make([]Vec, 0, k+2)
	pts = append(pts, c.ctrlPts[0].Clone())
	for i := 1; i <= k; i++ {
		a := float64(i) / float64(k+1)
		pts = append(pts, c.ctrlPts[i-1].Scale(a).Add(c.ctrlPts[i].Scale(1-a)))
	}
	pts = append(pts, c.ctrlPts[k].Clone())

	knots := make(KnotVec, 0, len(c.knots)+2)
	knots = append(knots, c.knots[0])
	knots = append(knots, c.knots...)
	knots = append(knots, c.knots[len(c.knots)-1])
	c.knots = knots
	c.ctrlPts = pts
}

// ElevateDegree raises the degree of the curve by one without changing
// its shape: the curve is decomposed into Bézier segments, each segment
// is elevated exactly, and the segments are concatenated again. Interior
// knots end up with their multiplicity raised by one, matching the
// smoothness the curve had before.
func (c *BSplineCurve) ElevateDegree() *BSplineCurve {
	c.clamp()
	segs := c.bezierSegments()
	for _, seg := range segs {
		seg.elevateBezierDegree()
	}
	res := segs[0]
	for _, seg := range segs[1:] {
		res.Concat(seg)
	}
	*c = *res
	// concatenation leaves the junction knots at full multiplicity
	return c.Simplify()
}

// MatchDegree elevates whichever of c and other has the lower degree
// until both degrees agree. Neither curve changes shape.
func (c *BSplineCurve) MatchDegree(other *BSplineCurve) {
	for c.Degree() < other.Degree() {
		c.ElevateDegree()
	}
	for other.Degree() < c.Degree() {
		other.ElevateDegree()
	}
}

// MatchKnots makes the knot vectors of c and other identical without
// changing the shape of either curve: both are normalized to [0, 1] and
// each receives the knots it is missing from the other, by multiplicity.
// Callers typically simplify both curves first; repeating MatchKnots is a
// no-op.
func (c *BSplineCurve) MatchKnots(other *BSplineCurve) {
	c.KnotNormalize()
	other.KnotNormalize()

	ka, kb := c.knots.Clone(), other.knots.Clone()
	i, j := 0, 0
	for i < len(ka) && j < len(kb) {
		switch {
		case Near(ka[i], kb[j]):
			i++
			j++
		case ka[i] < kb[j]:
			other.AddKnot(ka[i])
			i++
		default:
			c.AddKnot(kb[j])
			j++
		}
	}
	for ; i < len(ka); i++ {
		other.AddKnot(ka[i])
	}
	for ; j < len(kb); j++ {
		c.AddKnot(kb[j])
	}
}

// IsConstant reports whether all control points coincide up to
// [Tolerance]. For a clamped knot vector this means the curve is
// constant.
func (c *BSplineCurve) IsConstant() bool {
	for _, pt := range c.ctrlPts {
		if !pt.Near(c.ctrlPts[0]) {
			return false
		}
	}
	return true
}

// IsRationalConstant reports whether all control points project to the
// same point, i.e. they may differ by scalar weights only.
func (c *BSplineCurve) IsRationalConstant() bool {
	pt := c.ctrlPts[0].Project()
	for _, p := range c.ctrlPts {
		if !p.Project().Near(pt) {
			return false
		}
	}
	return true
}

// subNear samples both curves on every non-empty knot span and reports
// whether eq holds at every sample. Per span, divCoef times the larger
// degree points are taken.
func (c *BSplineCurve) subNear(other *BSplineCurve, divCoef int, eq func(a, b Vec) bool) bool {
	if !Near(c.knots[0], other.knots[0]) ||
		!Near(c.knots.RangeLength(), other.knots.RangeLength()) {
		return false
	}
	division := max(c.Degree(), other.Degree()) * divCoef
	for i := 1; i < len(c.knots); i++ {
		delta := c.knots[i] - c.knots[i-1]
		if SoSmall(delta) {
			continue
		}
		for j := range division {
			t := c.knots[i-1] + delta*float64(j)/float64(division)
			if !eq(c.Eval(t), other.Eval(t)) {
				return false
			}
		}
	}
	return true
}

// Near reports whether c and other agree as curves up to [Tolerance],
// sampled over the knot spans.
func (c *BSplineCurve) Near(other *BSplineCurve) bool {
	return c.subNear(other, 1, Vec.Near)
}

// Near2 is like [BSplineCurve.Near] with [Tolerance2].
func (c *BSplineCurve) Near2(other *BSplineCurve) bool {
	return c.subNear(other, 1, Vec.Near2)
}

// ProjectedNear reports whether c and other agree as rational curves up
// to [Tolerance], comparing samples after projection. The sampling
// density is doubled to compensate for the projective division.
func (c *BSplineCurve) ProjectedNear(other *BSplineCurve) bool {
	return c.subNear(other, 2, func(a, b Vec) bool {
		return a.Project().Near(b.Project())
	})
}

// ProjectedNear2 is like [BSplineCurve.ProjectedNear] with [Tolerance2].
func (c *BSplineCurve) ProjectedNear2(other *BSplineCurve) bool {
	return c.subNear(other, 2, func(a, b Vec) bool {
		return a.Project().Near2(b.Project())
	})
}
