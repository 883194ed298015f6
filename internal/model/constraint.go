package model

import "time"

// ConstraintType names the two social seating rules the planner knows.
type ConstraintType string

const (
	// MustSitTogether requires all seated members to share one surface.
	MustSitTogether ConstraintType = "must-sit-together"
	// MustNotSitTogether forbids any two seated members from sharing a surface.
	MustNotSitTogether ConstraintType = "must-not-sit-together"
)

// Valid reports whether t is a known constraint type.
func (t ConstraintType) Valid() bool {
	return t == MustSitTogether || t == MustNotSitTogether
}

// Constraint is a declarative co-location rule between occupants. Members
// are opaque occupant ids (primary guest, plus-one or child ids) and the
// constraint holds no seat references; it is evaluated against whatever
// the current assignment is. Constraints survive assignment changes and
// surface edits.
//
// Fields:
//  ID        – primary key identifier ("constraint_..." prefix).
//  PlanID    – owning seating plan.
//  Type      – must-sit-together or must-not-sit-together.
//  MemberIDs – two or more occupant ids the rule binds.
//  Weight    – priority weight used when reporting violations.
//  IsActive  – inactive constraints are kept but not evaluated.
//  CreatedAt – creation timestamp.
type Constraint struct {
	ID        string         `json:"id"`
	PlanID    string         `json:"planId"`
	Type      ConstraintType `json:"type"`
	MemberIDs []string       `json:"memberIds"`
	Weight    int            `json:"weight"`
	IsActive  bool           `json:"isActive"`
	CreatedAt time.Time      `json:"createdAt"`
}

// Binds reports whether the constraint names the given occupant.
func (c *Constraint) Binds(occupantID string) bool {
	for _, m := range c.MemberIDs {
		if m == occupantID {
			return true
		}
	}
	return false
}
