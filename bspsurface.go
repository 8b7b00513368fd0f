package nurbs

import (
	"iter"
	"slices"
)

// BSplineSurface is a B-spline surface: a pair of knot vectors and a
// rectangular control net. The net is indexed [i][j] with the u parameter
// running along i and the v parameter along j. Rational (NURBS) surfaces
// are represented as non-rational surfaces in one higher dimension, the
// last coordinate being the weight.
//
// The zero value is not usable; construct surfaces with
// [NewBSplineSurface] or [NewBSplineSurfaceUnchecked].
type BSplineSurface struct {
	uknots  KnotVec
	vknots  KnotVec
	ctrlPts [][]Vec
}

// NewBSplineSurface returns the B-spline surface with the given knot
// vectors and control net. It returns [ErrEmptyControlPoints] if the net
// has no rows or empty rows, a [TooShortKnotVectorError] if either knot
// vector does not exceed the corresponding net extent,
// [ErrZeroRange] if either knot vector covers an empty range, and
// [ErrIrregularControlPoints] if the rows have unequal lengths.
func NewBSplineSurface(uknots, vknots KnotVec, ctrlPts [][]Vec) (*BSplineSurface, error) {
	if len(ctrlPts) == 0 || len(ctrlPts[0]) == 0 {
		return nil, ErrEmptyControlPoints
	}
	if len(uknots) <= len(ctrlPts) {
		return nil, TooShortKnotVectorError{len(uknots), len(ctrlPts)}
	}
	if len(vknots) <= len(ctrlPts[0]) {
		return nil, TooShortKnotVectorError{len(vknots), len(ctrlPts[0])}
	}
	if SoSmall(uknots.RangeLength()) || SoSmall(vknots.RangeLength()) {
		return nil, ErrZeroRange
	}
	for _, row := range ctrlPts {
		if len(row) != len(ctrlPts[0]) {
			return nil, ErrIrregularControlPoints
		}
	}
	return NewBSplineSurfaceUnchecked(uknots, vknots, ctrlPts), nil
}

// NewBSplineSurfaceUnchecked is like [NewBSplineSurface] but skips all
// validation. It exists for performance-critical callers that can
// guarantee the invariants themselves; violating them results in
// undefined behavior.
func NewBSplineSurfaceUnchecked(uknots, vknots KnotVec, ctrlPts [][]Vec) *BSplineSurface {
	return &BSplineSurface{uknots: uknots, vknots: vknots, ctrlPts: ctrlPts}
}

// Clone returns a deep copy of the surface.
func (s *BSplineSurface) Clone() *BSplineSurface {
	pts := make([][]Vec, len(s.ctrlPts))
	for i, row := range s.ctrlPts {
		pts[i] = clonePoints(row)
	}
	return &BSplineSurface{uknots: s.uknots.Clone(), vknots: s.vknots.Clone(), ctrlPts: pts}
}

// UKnots returns the knot vector of the first parameter. The caller must
// not mutate it.
func (s *BSplineSurface) UKnots() KnotVec { return s.uknots }

// VKnots returns the knot vector of the second parameter. The caller must
// not mutate it.
func (s *BSplineSurface) VKnots() KnotVec { return s.vknots }

// ControlPoints returns the control net. The caller must not mutate it.
func (s *BSplineSurface) ControlPoints() [][]Vec { return s.ctrlPts }

// ControlPoint returns the control point at index (i, j).
func (s *BSplineSurface) ControlPoint(i, j int) Vec { return s.ctrlPts[i][j] }

// UDegree returns the degree of the basis functions in u.
func (s *BSplineSurface) UDegree() int { return len(s.uknots) - len(s.ctrlPts) - 1 }

// VDegree returns the degree of the basis functions in v.
func (s *BSplineSurface) VDegree() int { return len(s.vknots) - len(s.ctrlPts[0]) - 1 }

// Degrees returns the degrees in u and v.
func (s *BSplineSurface) Degrees() (int, int) { return s.UDegree(), s.VDegree() }

// ParameterRange returns the evaluation domain of the surface.
func (s *BSplineSurface) ParameterRange() (u0, u1, v0, v1 float64) {
	return s.uknots[0], s.uknots[len(s.uknots)-1], s.vknots[0], s.vknots[len(s.vknots)-1]
}

// IsClamped reports whether both knot vectors are clamped.
func (s *BSplineSurface) IsClamped() bool {
	return s.uknots.IsClamped(s.UDegree()) && s.vknots.IsClamped(s.VDegree())
}

func (s *BSplineSurface) dim() int { return len(s.ctrlPts[0][0]) }

// IsConstant reports whether all control points coincide up to
// [Tolerance]. For clamped knot vectors this means the surface is
// constant.
func (s *BSplineSurface) IsConstant() bool {
	for _, row := range s.ctrlPts {
		for _, pt := range row {
			if !pt.Near(s.ctrlPts[0][0]) {
				return false
			}
		}
	}
	return true
}

// IsRationalConstant reports whether all control points project to the
// same point, i.e. they may differ by scalar weights only.
func (s *BSplineSurface) IsRationalConstant() bool {
	pt := s.ctrlPts[0][0].Project()
	for _, row := range s.ctrlPts {
		for _, p := range row {
			if !p.Project().Near(pt) {
				return false
			}
		}
	}
	return true
}

// Eval evaluates the surface at the parameters (u, v). Parameters outside
// the knot ranges are clamped; evaluation never fails.
func (s *BSplineSurface) Eval(u, v float64) Vec {
	du, dv := s.Degrees()
	basis0 := s.uknots.BasisFunctions(du, u)
	basis1 := s.vknots.BasisFunctions(dv, v)
	res := ZeroVec(s.dim())
	for i, b0 := range basis0 {
		row := s.ctrlPts[i]
		for j, b1 := range basis1 {
			c := b0 * b1
			pt := row[j]
			for d := range res {
				res[d] += c * pt[d]
			}
		}
	}
	return res
}

func (s *BSplineSurface) uDelta(i, j int) Vec {
	switch i {
	case 0:
		return s.ctrlPts[0][j].Clone()
	case len(s.ctrlPts):
		return s.ctrlPts[i-1][j].Neg()
	default:
		return s.ctrlPts[i][j].Sub(s.ctrlPts[i-1][j])
	}
}

func (s *BSplineSurface) vDelta(i, j int) Vec {
	switch j {
	case 0:
		return s.ctrlPts[i][0].Clone()
	case len(s.ctrlPts[0]):
		return s.ctrlPts[i][j-1].Neg()
	default:
		return s.ctrlPts[i][j].Sub(s.ctrlPts[i][j-1])
	}
}

func zeroNet(rows, cols, dim int) [][]Vec {
	net := make([][]Vec, rows)
	for i := range net {
		net[i] = zeroRow(cols, dim)
	}
	return net
}

func zeroRow(cols, dim int) []Vec {
	row := make([]Vec, cols)
	for j := range row {
		row[j] = ZeroVec(dim)
	}
	return row
}

// DifferentiateU returns the partial derivative of the surface by the
// first parameter as a new surface. The u degree drops by one;
// differentiating a u-degree-zero surface yields the constant zero
// surface of the same shape.
func (s *BSplineSurface) DifferentiateU() *BSplineSurface {
	n0, n1 := len(s.ctrlPts), len(s.ctrlPts[0])
	k := s.UDegree()
	uknots, vknots := s.uknots.Clone(), s.vknots.Clone()

	if k == 0 {
		return NewBSplineSurfaceUnchecked(uknots, vknots, zeroNet(n0, n1, s.dim()))
	}

	pts := make([][]Vec, 0, n0+1)
	for i := 0; i <= n0; i++ {
		coef := float64(k) * invOrZero(uknots[i+k]-uknots[i])
		row := make([]Vec, n1)
		for j := range row {
			row[j] = s.uDelta(i, j).Scale(coef)
		}
		pts = append(pts, row)
	}
	return NewBSplineSurfaceUnchecked(uknots, vknots, pts)
}

// DifferentiateV returns the partial derivative of the surface by the
// second parameter as a new surface, analogously to
// [BSplineSurface.DifferentiateU].
func (s *BSplineSurface) DifferentiateV() *BSplineSurface {
	n0, n1 := len(s.ctrlPts), len(s.ctrlPts[0])
	k := s.VDegree()
	uknots, vknots := s.uknots.Clone(), s.vknots.Clone()

	if k == 0 {
		return NewBSplineSurfaceUnchecked(uknots, vknots, zeroNet(n0, n1, s.dim()))
	}

	pts := make([][]Vec, n0)
	for i := range pts {
		pts[i] = make([]Vec, 0, n1+1)
	}
	for j := 0; j <= n1; j++ {
		coef := float64(k) * invOrZero(vknots[j+k]-vknots[j])
		for i := range pts {
			pts[i] = append(pts[i], s.vDelta(i, j).Scale(coef))
		}
	}
	return NewBSplineSurfaceUnchecked(uknots, vknots, pts)
}

// Transpose swaps the two parameters: the knot vectors are exchanged and
// the control net is transposed. Applying it twice restores the original
// surface.
func (s *BSplineSurface) Transpose() *BSplineSurface {
	s.uknots, s.vknots = s.vknots, s.uknots

	n0, n1 := len(s.ctrlPts), len(s.ctrlPts[0])
	pts := make([][]Vec, n1)
	for j := range pts {
		pts[j] = make([]Vec, n0)
		for i := range pts[j] {
			pts[j][i] = s.ctrlPts[i][j]
		}
	}
	s.ctrlPts = pts
	return s
}

// AddUKnot inserts the knot x into the u knot vector and updates the
// control net row-wise by Boehm's algorithm, leaving the surface
// unchanged pointwise. If x lies below the knot range a zero row is
// prepended; if the insertion index exceeds the net extent the net grows
// by one row.
func (s *BSplineSurface) AddUKnot(x float64) *BSplineSurface {
	k := s.UDegree()
	n0, n1 := len(s.ctrlPts), len(s.ctrlPts[0])
	if x < s.uknots[0] {
		s.uknots.AddKnot(x)
		s.ctrlPts = slices.Insert(s.ctrlPts, 0, zeroRow(n1, s.dim()))
		return s
	}

	idx := s.uknots.AddKnot(x)
	start := max(idx-k, 0)
	var end int
	if idx > n0 {
		s.ctrlPts = append(s.ctrlPts, zeroRow(n1, s.dim()))
		end = n0 + 1
	} else {
		s.ctrlPts = slices.Insert(s.ctrlPts, idx-1, clonePoints(s.ctrlPts[idx-1]))
		end = idx
	}
	for i := start; i < end; i++ {
		i0 := end + start - i - 1
		delta := s.uknots[i0+k+1] - s.uknots[i0]
		a := invOrZero(delta) * (s.uknots[idx] - s.uknots[i0])
		for j := range n1 {
			p := s.uDelta(i0, j).Scale(1 - a)
			s.ctrlPts[i0][j] = s.ctrlPts[i0][j].Sub(p)
		}
	}
	return s
}

// AddVKnot inserts the knot x into the v knot vector and updates the
// control net column-wise, analogously to [BSplineSurface.AddUKnot].
func (s *BSplineSurface) AddVKnot(x float64) *BSplineSurface {
	k := s.VDegree()
	n0, n1 := len(s.ctrlPts), len(s.ctrlPts[0])
	if x < s.vknots[0] {
		s.vknots.AddKnot(x)
		for i := range s.ctrlPts {
			s.ctrlPts[i] = slices.Insert(s.ctrlPts[i], 0, ZeroVec(s.dim()))
		}
		return s
	}

	idx := s.vknots.AddKnot(x)
	start := max(idx-k, 0)
	var end int
	if idx > n1 {
		for i := range s.ctrlPts {
			s.ctrlPts[i] = append(s.ctrlPts[i], ZeroVec(s.dim()))
		}
		end = n1 + 1
	} else {
		for i := range s.ctrlPts {
			s.ctrlPts[i] = slices.Insert(s.ctrlPts[i], idx-1, s.ctrlPts[i][idx-1].Clone())
		}
		end = idx
	}
	for j := start; j < end; j++ {
		j0 := end + start - j - 1
		delta := s.vknots[j0+k+1] - s.vknots[j0]
		a := invOrZero(delta) * (s.vknots[idx] - s.vknots[j0])
		for i := range n0 {
			p := s.vDelta(i, j0).Scale(1 - a)
			s.ctrlPts[i][j0] = s.ctrlPts[i][j0].Sub(p)
		}
	}
	return s
}

// RemoveUKnot removes the u knot at index idx, inverting Boehm's
// recurrence row-wise, provided the surface stays unchanged pointwise. A
// back knot clamped beyond multiplicity degree+1 is removed together with
// the unsupported last row. RemoveUKnot returns a [CannotRemoveKnotError]
// if idx lies in the clamped prefix or suffix, or if the reconstructed
// control row does not agree with the existing one up to [Tolerance]; the
// surface is left untouched in that case.
func (s *BSplineSurface) RemoveUKnot(idx int) error {
	k := s.UDegree()
	n := len(s.ctrlPts)
	if idx < 0 || idx >= len(s.uknots) {
		return CannotRemoveKnotError{idx}
	}

	// A back knot clamped beyond multiplicity degree+1 supports no control
	// row. The last row is dead weight and goes with the knot.
	back := s.uknots[len(s.uknots)-1]
	if Near(s.uknots[idx], back) && s.uknots.Multiplicity(back) > k+1 {
		s.ctrlPts = s.ctrlPts[:n-1]
		s.uknots.Remove(idx)
		return nil
	}

	if idx < k+1 || idx >= n {
		return CannotRemoveKnotError{idx}
	}

	// Invert the insertion recurrence from the left, row by row. Once a
	// coefficient vanishes the remaining rows coincide with the reduced ones
	// shifted by one, so reconstruction stops there.
	newRows := make([][]Vec, 0, k+1)
	newRows = append(newRows, clonePoints(s.ctrlPts[idx-k-1]))
	stop := idx
	for i := idx - k; i < idx; i++ {
		delta := s.uknots[i+k+1] - s.uknots[i]
		a := invOrZero(delta) * (s.uknots[idx] - s.uknots[i])
		if SoSmall(a) {
			stop = i
			break
		}
		last := newRows[len(newRows)-1]
		row := make([]Vec, len(last))
		for j := range row {
			row[j] = s.ctrlPts[i][j].Scale(1 / a).Sub(last[j].Scale((1 - a) / a))
		}
		newRows = append(newRows, row)
	}

	last := newRows[len(newRows)-1]
	for j, pt := range s.ctrlPts[stop] {
		if !pt.Near(last[j]) {
			return CannotRemoveKnotError{idx}
		}
	}

	for i, row := range newRows[1:] {
		s.ctrlPts[idx-k+i] = row
	}
	s.ctrlPts = slices.Delete(s.ctrlPts, stop, stop+1)
	s.uknots.Remove(idx)
	return nil
}

// RemoveVKnot removes the v knot at index idx, analogously to
// [BSplineSurface.RemoveUKnot] but column-wise.
func (s *BSplineSurface) RemoveVKnot(idx int) error {
	k := s.VDegree()
	n := len(s.ctrlPts[0])
	if idx < 0 || idx >= len(s.vknots) {
		return CannotRemoveKnotError{idx}
	}

	back := s.vknots[len(s.vknots)-1]
	if Near(s.vknots[idx], back) && s.vknots.Multiplicity(back) > k+1 {
		for i := range s.ctrlPts {
			s.ctrlPts[i] = s.ctrlPts[i][:n-1]
		}
		s.vknots.Remove(idx)
		return nil
	}

	if idx < k+1 || idx >= n {
		return CannotRemoveKnotError{idx}
	}

	column := func(j int) []Vec {
		col := make([]Vec, len(s.ctrlPts))
		for i := range col {
			col[i] = s.ctrlPts[i][j].Clone()
		}
		return col
	}

	newCols := make([][]Vec, 0, k+1)
	newCols = append(newCols, column(idx-k-1))
	stop := idx
	for j := idx - k; j < idx; j++ {
		delta := s.vknots[j+k+1] - s.vknots[j]
		a := invOrZero(delta) * (s.vknots[idx] - s.vknots[j])
		if SoSmall(a) {
			stop = j
			break
		}
		last := newCols[len(newCols)-1]
		col := make([]Vec, len(last))
		for i := range col {
			col[i] = s.ctrlPts[i][j].Scale(1 / a).Sub(last[i].Scale((1 - a) / a))
		}
		newCols = append(newCols, col)
	}

	last := newCols[len(newCols)-1]
	for i := range s.ctrlPts {
		if !s.ctrlPts[i][stop].Near(last[i]) {
			return CannotRemoveKnotError{idx}
		}
	}

	for j, col := range newCols[1:] {
		for i, pt := range col {
			s.ctrlPts[i][idx-k+j] = pt
		}
	}
	for i := range s.ctrlPts {
		s.ctrlPts[i] = slices.Delete(s.ctrlPts[i], stop, stop+1)
	}
	s.vknots.Remove(idx)
	return nil
}

// Simplify removes every removable knot of both axes, attempting removal
// from the back until a full pass removes nothing. The surface is
// unchanged pointwise.
func (s *BSplineSurface) Simplify() *BSplineSurface {
	for {
		n0, n1 := len(s.uknots), len(s.vknots)
		removed := false
		for i := 1; i <= n0; i++ {
			if s.RemoveUKnot(n0-i) == nil {
				removed = true
			}
		}
		for j := 1; j <= n1; j++ {
			if s.RemoveVKnot(n1-j) == nil {
				removed = true
			}
		}
		if !removed {
			return s
		}
	}
}

// KnotNormalize rescales both knot vectors to [0, 1].
func (s *BSplineSurface) KnotNormalize() *BSplineSurface {
	if err := s.uknots.Normalize(); err != nil {
		panic(err)
	}
	if err := s.vknots.Normalize(); err != nil {
		panic(err)
	}
	return s
}

// UKnotTranslate shifts the u knot vector by d.
func (s *BSplineSurface) UKnotTranslate(d float64) *BSplineSurface {
	s.uknots.Translate(d)
	return s
}

// VKnotTranslate shifts the v knot vector by d.
func (s *BSplineSurface) VKnotTranslate(d float64) *BSplineSurface {
	s.vknots.Translate(d)
	return s
}

// Transform applies the matrix m to every control point.
func (s *BSplineSurface) Transform(m Matrix) *BSplineSurface {
	for _, row := range s.ctrlPts {
		for j, pt := range row {
			row[j] = m.Apply(pt)
		}
	}
	return s
}

// Scale multiplies every control point by x.
func (s *BSplineSurface) Scale(x float64) *BSplineSurface {
	for _, row := range s.ctrlPts {
		for j, pt := range row {
			row[j] = pt.Scale(x)
		}
	}
	return s
}

// Homotopy returns the linear loft between two curves: the degree-one
// ruled surface in v that joins c0 at v=0 to c1 at v=1. The curves are
// first brought to a common degree and knot vector; the arguments are not
// modified.
func Homotopy(c0, c1 *BSplineCurve) *BSplineSurface {
	c0, c1 = c0.Clone(), c1.Clone()
	c0.MatchDegree(c1)
	c0.Simplify()
	c1.Simplify()
	c0.MatchKnots(c1)

	uknots := c0.knots.Clone()
	vknots := KnotVec{0, 0, 1, 1}
	pts := make([][]Vec, len(c0.ctrlPts))
	for i := range pts {
		pts[i] = []Vec{c0.ctrlPts[i].Clone(), c1.ctrlPts[i].Clone()}
	}
	return NewBSplineSurfaceUnchecked(uknots, vknots, pts)
}

// ByBoundary returns a surface filling the area enclosed by four edge
// curves that traverse the boundary in order. Opposite edges are brought
// to a common degree and knot vector (c2 and c3 are reversed first so
// that opposite edges share orientation); the boundary rows and columns
// of the control net are taken verbatim from the edges and the interior
// points blend the two linear interpolations between opposite edges. The
// arguments are not modified.
func ByBoundary(c0, c1, c2, c3 *BSplineCurve) *BSplineSurface {
	c0, c1 = c0.Clone(), c1.Clone()
	c2, c3 = c2.Clone(), c3.Clone()
	c2.Reverse()
	c3.Reverse()
	c0.MatchDegree(c2)
	c0.Simplify()
	c2.Simplify()
	c0.MatchKnots(c2)
	c1.MatchDegree(c3)
	c1.Simplify()
	c3.Simplify()
	c1.MatchKnots(c3)

	n := len(c0.ctrlPts)
	m := len(c3.ctrlPts)
	pts := make([][]Vec, 0, n)
	pts = append(pts, clonePoints(c3.ctrlPts))
	for i := 1; i < n-1; i++ {
		u := float64(i) / float64(n)
		pt0 := c0.ctrlPts[i].Scale(u).Add(c2.ctrlPts[i].Scale(1 - u))
		row := make([]Vec, 0, m)
		row = append(row, c0.ctrlPts[i].Clone())
		for j := 1; j < m-1; j++ {
			v := float64(j) / float64(m)
			pt1 := c3.ctrlPts[j].Scale(v).Add(c1.ctrlPts[j].Scale(1 - v))
			row = append(row, pt0.Add(pt1).Scale(0.5))
		}
		row = append(row, c2.ctrlPts[i].Clone())
		pts = append(pts, row)
	}
	pts = append(pts, clonePoints(c1.ctrlPts))

	srf, err := NewBSplineSurface(c0.knots.Clone(), c3.knots.Clone(), pts)
	if err != nil {
		panic(err)
	}
	return srf
}

// SplitBoundary extracts the four edge curves of the surface, in the
// order: the v=0 edge along u, the u=1 edge along v, the v=1 edge along
// u, and the u=0 edge along v.
func (s *BSplineSurface) SplitBoundary() [4]*BSplineCurve {
	n1 := len(s.ctrlPts[0])
	pts0 := make([]Vec, len(s.ctrlPts))
	pts2 := make([]Vec, len(s.ctrlPts))
	for i, row := range s.ctrlPts {
		pts0[i] = row[0].Clone()
		pts2[i] = row[n1-1].Clone()
	}
	return [4]*BSplineCurve{
		NewBSplineCurveUnchecked(s.uknots.Clone(), pts0),
		NewBSplineCurveUnchecked(s.vknots.Clone(), clonePoints(s.ctrlPts[len(s.ctrlPts)-1])),
		NewBSplineCurveUnchecked(s.uknots.Clone(), pts2),
		NewBSplineCurveUnchecked(s.vknots.Clone(), clonePoints(s.ctrlPts[0])),
	}
}

// Boundary concatenates the four edge curves into the single closed curve
// tracing the boundary of the surface, each successive edge's knot range
// translated to follow the previous one. The surface must be clamped.
func (s *BSplineSurface) Boundary() *BSplineCurve {
	r0 := s.uknots.RangeLength()
	r1 := s.vknots.RangeLength()
	b := s.SplitBoundary()
	b[0].Concat(b[1].KnotTranslate(r0))
	b[0].Concat(b[2].Reverse().KnotTranslate(r0 + r1))
	b[0].Concat(b[3].Reverse().KnotTranslate(2*r0 + r1))
	return b[0]
}

// subNear samples both surfaces on every non-empty knot span of both axes
// and reports whether eq holds at every sample. Per span, divCoef times
// the larger degree points are taken in each axis.
func (s *BSplineSurface) subNear(other *BSplineSurface, divCoef int, eq func(a, b Vec) bool) bool {
	if !Near(s.uknots[0], other.uknots[0]) ||
		!Near(s.uknots.RangeLength(), other.uknots.RangeLength()) {
		return false
	}
	if !Near(s.vknots[0], other.vknots[0]) ||
		!Near(s.vknots.RangeLength(), other.vknots.RangeLength()) {
		return false
	}

	sd0, sd1 := s.Degrees()
	od0, od1 := other.Degrees()
	division0 := max(sd0, od0) * divCoef
	division1 := max(sd1, od1) * divCoef

	for i0 := 1; i0 < len(s.uknots); i0++ {
		delta0 := s.uknots[i0] - s.uknots[i0-1]
		if SoSmall(delta0) {
			continue
		}
		for j0 := range division0 {
			u := s.uknots[i0-1] + delta0*float64(j0)/float64(division0)
			for i1 := 1; i1 < len(s.vknots); i1++ {
				delta1 := s.vknots[i1] - s.vknots[i1-1]
				if SoSmall(delta1) {
					continue
				}
				for j1 := range division1 {
					v := s.vknots[i1-1] + delta1*float64(j1)/float64(division1)
					if !eq(s.Eval(u, v), other.Eval(u, v)) {
						return false
					}
				}
			}
		}
	}
	return true
}

// Near reports whether s and other agree as surfaces up to [Tolerance],
// sampled over the knot spans of both axes.
func (s *BSplineSurface) Near(other *BSplineSurface) bool {
	return s.subNear(other, 1, Vec.Near)
}

// Near2 is like [BSplineSurface.Near] with [Tolerance2].
func (s *BSplineSurface) Near2(other *BSplineSurface) bool {
	return s.subNear(other, 1, Vec.Near2)
}

// ProjectedNear reports whether s and other agree as rational surfaces up
// to [Tolerance], comparing samples after projection. The sampling
// density is doubled to compensate for the projective division.
func (s *BSplineSurface) ProjectedNear(other *BSplineSurface) bool {
	return s.subNear(other, 2, func(a, b Vec) bool {
		return a.Project().Near(b.Project())
	})
}

// ProjectedNear2 is like [BSplineSurface.ProjectedNear] with [Tolerance2].
func (s *BSplineSurface) ProjectedNear2(other *BSplineSurface) bool {
	return s.subNear(other, 2, func(a, b Vec) bool {
		return a.Project().Near2(b.Project())
	})
}

// NormalVector returns the unit normal of a three-dimensional surface at
// the parameters (u, v).
func (s *BSplineSurface) NormalVector(u, v float64) Vec {
	der0 := s.DifferentiateU().Eval(u, v)
	der1 := s.DifferentiateV().Eval(u, v)
	n := der0.Cross(der1)
	return n.Scale(1 / n.Norm())
}

// NormalVectors returns the unit normals of a three-dimensional surface
// at the given parameter pairs. The derivative surfaces are computed only
// once.
func (s *BSplineSurface) NormalVectors(params iter.Seq2[float64, float64]) []Vec {
	der0 := s.DifferentiateU()
	der1 := s.DifferentiateV()
	var res []Vec
	for u, v := range params {
		n := der0.Eval(u, v).Cross(der1.Eval(u, v))
		res = append(res, n.Scale(1/n.Norm()))
	}
	return res
}

// RationalNormalVector returns the unit normal of a rational
// (four-dimensional projective) surface at the parameters (u, v). The
// projective derivatives are converted to Euclidean ones by the quotient
// rule before taking the cross product.
func (s *BSplineSurface) RationalNormalVector(u, v float64) Vec {
	pt := s.Eval(u, v)
	der0 := s.DifferentiateU().Eval(u, v)
	der1 := s.DifferentiateV().Eval(u, v)
	n := pt.ProjectedDerivative(der0).Cross(pt.ProjectedDerivative(der1))
	return n.Scale(1 / n.Norm())
}

// RationalNormalVectors returns the unit normals of a rational surface at
// the given parameter pairs. The derivative surfaces are computed only
// once.
func (s *BSplineSurface) RationalNormalVectors(params iter.Seq2[float64, float64]) []Vec {
	der0 := s.DifferentiateU()
	der1 := s.DifferentiateV()
	var res []Vec
	for u, v := range params {
		pt := s.Eval(u, v)
		n := pt.ProjectedDerivative(der0.Eval(u, v)).Cross(pt.ProjectedDerivative(der1.Eval(u, v)))
		res = append(res, n.Scale(1/n.Norm()))
	}
	return res
}
