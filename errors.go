package nurbs

import (
	"errors"
	"fmt"
)

// Errors reported by the validating constructors. The Unchecked
// constructors skip these checks entirely; callers that use them must
// guarantee the invariants themselves.
var (
	// ErrEmptyControlPoints is returned when a curve or surface is
	// constructed without control points.
	ErrEmptyControlPoints = errors.New("nurbs: no control points")

	// ErrZeroRange is returned when a knot vector covers an empty
	// parameter range, i.e. all knots are equal.
	ErrZeroRange = errors.New("nurbs: knot vector has zero range")

	// ErrNotSorted is returned when a knot sequence is not monotone
	// non-decreasing.
	ErrNotSorted = errors.New("nurbs: knots are not sorted")

	// ErrIrregularControlPoints is returned when the rows of a surface's
	// control net have unequal lengths.
	ErrIrregularControlPoints = errors.New("nurbs: control net is not rectangular")
)

// TooShortKnotVectorError is returned when a knot vector does not exceed
// the number of control points it is paired with, which would force a
// negative degree.
type TooShortKnotVectorError struct {
	Knots         int
	ControlPoints int
}

func (err TooShortKnotVectorError) Error() string {
	return fmt.Sprintf("nurbs: knot vector of length %d is too short for %d control points",
		err.Knots, err.ControlPoints)
}

// CannotRemoveKnotError is returned by knot removal when removing the
// knot at Index would change the shape of the spline, or when Index lies
// in the clamped prefix or suffix of the knot vector.
type CannotRemoveKnotError struct {
	Index int
}

func (err CannotRemoveKnotError) Error() string {
	return fmt.Sprintf("nurbs: cannot remove knot %d", err.Index)
}
