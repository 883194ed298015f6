package model

import (
	"fmt"
	"time"
)

// Seat is the atomic unit of capacity. Seats belong to exactly one
// surface and are numbered 1..capacity within it. The seat id is derived
// deterministically from (surface id, position) so that resizing a surface
// never orphans positions that survive the resize.
//
// Fields:
//  ID         – "seat_<surfaceID>_<position>".
//  SurfaceID  – owning table or chair row.
//  Position   – 1-based index within the surface.
//  OccupantID – occupant currently assigned, empty when the seat is free.
//  IsReserved – held back from assignment without naming an occupant.
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type Seat struct {
	ID         string    `json:"id"`
	SurfaceID  string    `json:"surfaceId"`
	Position   int       `json:"position"`
	OccupantID string    `json:"occupantId,omitempty"`
	IsReserved bool      `json:"isReserved"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// SeatID derives the deterministic seat identifier for a surface position.
func SeatID(surfaceID string, position int) string {
	return fmt.Sprintf("seat_%s_%d", surfaceID, position)
}

// NewSeat builds an empty seat for the given surface position.
func NewSeat(surfaceID string, position int, now time.Time) Seat {
	return Seat{
		ID:        SeatID(surfaceID, position),
		SurfaceID: surfaceID,
		Position:  position,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Occupied reports whether the seat currently has an occupant.
func (s *Seat) Occupied() bool { return s.OccupantID != "" }

// Open reports whether the seat can receive a new occupant.
func (s *Seat) Open() bool { return s.OccupantID == "" && !s.IsReserved }
