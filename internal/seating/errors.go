// Package seating implements the in-memory seating domain: the seat graph,
// surface management, manual assignment, constraints and the auto-assignment
// solver. Persistence and transport live elsewhere; this package only
// mutates plan state and reports what changed.
package seating

import "errors"

// Sentinel errors shared across the package. Handlers translate these into
// HTTP status codes: validation errors become 400, not-found 404, the two
// assignment conflicts 409 and persistence failures 502.
var (
	// ErrPlanNotSelected is returned when an operation needs an open
	// session but no plan has been selected yet.
	ErrPlanNotSelected = errors.New("no seating plan selected")

	// ErrSurfaceNotFound is returned when a table or chair row lookup
	// yields nothing.
	ErrSurfaceNotFound = errors.New("surface not found")

	// ErrSeatNotFound is returned when a seat id does not exist in the plan.
	ErrSeatNotFound = errors.New("seat not found")

	// ErrConstraintNotFound is returned when removing an unknown constraint.
	ErrConstraintNotFound = errors.New("constraint not found")

	// ErrSeatOccupied is returned when assigning to a seat that already
	// holds a different occupant.
	ErrSeatOccupied = errors.New("seat already occupied")

	// ErrOccupantSeated is returned when the occupant already holds a
	// different seat. There is no implicit move; callers unassign first.
	ErrOccupantSeated = errors.New("occupant already seated")

	// ErrInvalidSurface is returned for malformed surface specs such as a
	// non-positive capacity or an unknown shape.
	ErrInvalidSurface = errors.New("invalid surface spec")

	// ErrInvalidConstraint is returned for malformed constraints, e.g.
	// fewer than two members or an unknown type.
	ErrInvalidConstraint = errors.New("invalid constraint")

	// ErrInvalidOccupant is returned when an assignment names an empty
	// occupant id.
	ErrInvalidOccupant = errors.New("invalid occupant id")

	// ErrPersistence wraps a failed repository flush. The optimistic
	// in-memory state is kept so the caller can retry the flush.
	ErrPersistence = errors.New("plan flush failed")
)
