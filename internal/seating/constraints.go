package seating

import (
	"fmt"

	"github.com/lhoska/venue-seating-planner/internal/model"
)

// ConstraintStore holds the declarative co-location rules of one plan.
// Constraints never reference seats; Validate evaluates them against
// whatever the seat graph currently says, so they survive assignment
// changes and surface edits untouched.
type ConstraintStore struct {
	list []model.Constraint // creation order
}

func newConstraintStore(cs []model.Constraint) *ConstraintStore {
	out := &ConstraintStore{list: make([]model.Constraint, len(cs))}
	copy(out.list, cs)
	return out
}

// Add validates and stores a constraint. A constraint with a duplicate id
// replaces the stored one.
func (cs *ConstraintStore) Add(c model.Constraint) error {
	if !c.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidConstraint, c.Type)
	}
	if len(c.MemberIDs) < 2 {
		return fmt.Errorf("%w: needs at least two members", ErrInvalidConstraint)
	}
	for i, existing := range cs.list {
		if existing.ID == c.ID {
			cs.list[i] = c
			return nil
		}
	}
	cs.list = append(cs.list, c)
	return nil
}

// Remove deletes a constraint by id.
func (cs *ConstraintStore) Remove(id string) error {
	for i, c := range cs.list {
		if c.ID == id {
			cs.list = append(cs.list[:i], cs.list[i+1:]...)
			return nil
		}
	}
	return ErrConstraintNotFound
}

// ListActive returns the active constraints in creation order.
func (cs *ConstraintStore) ListActive() []model.Constraint {
	var out []model.Constraint
	for _, c := range cs.list {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out
}

// All returns every stored constraint, active or not.
func (cs *ConstraintStore) All() []model.Constraint {
	out := make([]model.Constraint, len(cs.list))
	copy(out, cs.list)
	return out
}

// ConstraintResult reports the evaluation of a single constraint against
// the current assignment. For a violated must-not-sit-together rule the
// first conflicting pair and their shared surface are recorded so a
// human-readable suggestion can be produced.
type ConstraintResult struct {
	Constraint model.Constraint `json:"constraint"`
	Satisfied  bool             `json:"satisfied"`
	ConflictA  string           `json:"conflictA,omitempty"`
	ConflictB  string           `json:"conflictB,omitempty"`
	SurfaceID  string           `json:"surfaceId,omitempty"`
}

// Validate evaluates every active constraint against the graph.
// A must-sit-together rule is satisfied when all of its members that are
// currently seated share one surface; unseated members do not violate it.
// A must-not-sit-together rule is satisfied when no two seated members
// share a surface.
func (cs *ConstraintStore) Validate(g *SeatGraph) []ConstraintResult {
	var out []ConstraintResult
	for _, c := range cs.list {
		if !c.IsActive {
			continue
		}
		out = append(out, evaluate(c, g))
	}
	return out
}

func evaluate(c model.Constraint, g *SeatGraph) ConstraintResult {
	res := ConstraintResult{Constraint: c, Satisfied: true}
	switch c.Type {
	case model.MustSitTogether:
		first := ""
		for _, m := range c.MemberIDs {
			seat, ok := g.SeatOf(m)
			if !ok {
				continue
			}
			if first == "" {
				first = seat.SurfaceID
				continue
			}
			if seat.SurfaceID != first {
				res.Satisfied = false
				res.SurfaceID = seat.SurfaceID
				return res
			}
		}
	case model.MustNotSitTogether:
		bySurface := make(map[string]string, len(c.MemberIDs))
		for _, m := range c.MemberIDs {
			seat, ok := g.SeatOf(m)
			if !ok {
				continue
			}
			if other, clash := bySurface[seat.SurfaceID]; clash {
				res.Satisfied = false
				res.ConflictA = other
				res.ConflictB = m
				res.SurfaceID = seat.SurfaceID
				return res
			}
			bySurface[seat.SurfaceID] = m
		}
	}
	return res
}
