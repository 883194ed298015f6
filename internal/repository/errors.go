// Package repository implements MySQL persistence for plan documents,
// constraints and the read-only guest roster, plus the Redis snapshot
// cache. Sentinel errors defined here let handlers distinguish failure
// scenarios without inspecting driver errors.
package repository

import "errors"

// ErrPlanNotFound is returned when a seating plan lookup yields no rows.
var ErrPlanNotFound = errors.New("seating plan not found")

// ErrConstraintNotFound is returned when a constraint delete matches no rows.
var ErrConstraintNotFound = errors.New("constraint not found")

// ErrForbidden is returned when the caller attempts an operation on a plan
// owned by someone else. Handlers translate this into HTTP 403.
var ErrForbidden = errors.New("forbidden")
