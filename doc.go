// Package nurbs provides non-uniform rational B-spline (NURBS) curves
// and surfaces for CAD-style geometry processing.
//
// # Truck
//
// The algorithms in this package are a manual, idiomatic Go port of the
// B-spline kernel of the [truck] Rust crates. Truck is a CAD kernel
// written from scratch in Rust; this package ports its geometric core,
// the spline representation and the structural algorithms on it, and
// leaves modeling, meshing, and rendering to other packages.
//
// # Features
//
// We provide the following notable features:
//
//   - Evaluation of B-spline curves and surfaces of any degree (see
//     [BSplineCurve.Eval] and [BSplineSurface.Eval])
//   - Exact derivative curves and surfaces (see
//     [BSplineCurve.Differentiate], [BSplineSurface.DifferentiateU])
//   - Knot insertion by Boehm's algorithm and tolerance-checked knot
//     removal (see [BSplineCurve.AddKnot], [BSplineCurve.RemoveKnot])
//   - Knot simplification (see [BSplineCurve.Simplify])
//   - Exact degree elevation and co-refinement of curve pairs (see
//     [BSplineCurve.MatchDegree], [BSplineCurve.MatchKnots])
//   - Lofting and Coons-style boundary fill (see [Homotopy],
//     [ByBoundary])
//   - Normal fields of spatial and rational surfaces (see
//     [BSplineSurface.NormalVector],
//     [BSplineSurface.RationalNormalVector])
//
// # Rational geometry
//
// Rational curves and surfaces are represented uniformly as non-rational
// ones in one higher dimension: the last coordinate of each control
// point is its weight, and the rational value is the componentwise
// quotient by the weight (see [Vec.Project]). There is no separate
// weighted-control-point type; every structural algorithm applies to
// rational geometry unchanged, and only evaluation results need
// projecting.
//
// # Tolerances
//
// Geometric comparisons use the fixed tolerances [Tolerance] and
// [Tolerance2]. Denominators that may vanish, i.e. spans between
// coincident knots, contribute zero instead of dividing by zero; this is
// the only place near-zero checks appear in the evaluation paths.
//
// The kernel is value-oriented and non-blocking: no operation performs
// I/O or shares mutable state, so callers may freely parallelize across
// independent curve and surface instances.
//
// [truck]: https://github.com/ricosjp/truck
package nurbs
