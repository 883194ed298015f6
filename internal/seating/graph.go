package seating

import (
	"sort"
	"time"

	"github.com/lhoska/venue-seating-planner/internal/model"
)

// SeatGraph indexes every seat of a plan for O(1) lookup by seat id and by
// occupant id, plus ordered per-surface listings. It enforces the one
// structural invariant of the whole subsystem: the occupant→seat mapping is
// a partial injective function. All mutations go through Assign, Clear,
// Swap and the seat add/remove methods so the indexes never drift.
//
// The graph is not safe for concurrent use; the owning Session serializes
// access to it.
type SeatGraph struct {
	seats      map[string]*model.Seat // seat id -> seat
	byOccupant map[string]string      // occupant id -> seat id
	bySurface  map[string][]string    // surface id -> seat ids ordered by position
}

// NewSeatGraph builds a graph from an existing seat set, e.g. a loaded or
// freshly received plan document.
func NewSeatGraph(seats []model.Seat) *SeatGraph {
	g := &SeatGraph{
		seats:      make(map[string]*model.Seat, len(seats)),
		byOccupant: make(map[string]string, len(seats)),
		bySurface:  make(map[string][]string),
	}
	for _, s := range seats {
		g.Add(s)
	}
	return g
}

// Add inserts a seat, keeping the per-surface listing ordered by position.
// A seat with the same id replaces the previous one.
func (g *SeatGraph) Add(seat model.Seat) {
	if old, ok := g.seats[seat.ID]; ok {
		g.removeIndexes(old)
	}
	s := seat
	g.seats[s.ID] = &s
	if s.OccupantID != "" {
		g.byOccupant[s.OccupantID] = s.ID
	}
	ids := append(g.bySurface[s.SurfaceID], s.ID)
	sort.Slice(ids, func(i, j int) bool {
		return g.seats[ids[i]].Position < g.seats[ids[j]].Position
	})
	g.bySurface[s.SurfaceID] = ids
}

// Remove deletes a seat outright and returns it. The second result is
// false when the seat does not exist.
func (g *SeatGraph) Remove(seatID string) (model.Seat, bool) {
	s, ok := g.seats[seatID]
	if !ok {
		return model.Seat{}, false
	}
	out := *s
	g.removeIndexes(s)
	delete(g.seats, seatID)
	return out, true
}

// RemoveSurface deletes every seat of a surface and returns the removed
// seats ordered by position.
func (g *SeatGraph) RemoveSurface(surfaceID string) []model.Seat {
	ids := g.bySurface[surfaceID]
	out := make([]model.Seat, 0, len(ids))
	for _, id := range ids {
		s := g.seats[id]
		out = append(out, *s)
		if s.OccupantID != "" {
			delete(g.byOccupant, s.OccupantID)
		}
		delete(g.seats, id)
	}
	delete(g.bySurface, surfaceID)
	return out
}

func (g *SeatGraph) removeIndexes(s *model.Seat) {
	if s.OccupantID != "" {
		delete(g.byOccupant, s.OccupantID)
	}
	ids := g.bySurface[s.SurfaceID]
	for i, id := range ids {
		if id == s.ID {
			g.bySurface[s.SurfaceID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	if len(g.bySurface[s.SurfaceID]) == 0 {
		delete(g.bySurface, s.SurfaceID)
	}
}

// Seat returns a copy of the seat with the given id.
func (g *SeatGraph) Seat(seatID string) (model.Seat, bool) {
	s, ok := g.seats[seatID]
	if !ok {
		return model.Seat{}, false
	}
	return *s, true
}

// SeatOf returns a copy of the seat currently held by the occupant.
func (g *SeatGraph) SeatOf(occupantID string) (model.Seat, bool) {
	id, ok := g.byOccupant[occupantID]
	if !ok {
		return model.Seat{}, false
	}
	return *g.seats[id], true
}

// IsSeated reports whether the occupant holds any seat.
func (g *SeatGraph) IsSeated(occupantID string) bool {
	_, ok := g.byOccupant[occupantID]
	return ok
}

// SurfaceSeats returns copies of a surface's seats ordered by position.
func (g *SeatGraph) SurfaceSeats(surfaceID string) []model.Seat {
	ids := g.bySurface[surfaceID]
	out := make([]model.Seat, 0, len(ids))
	for _, id := range ids {
		out = append(out, *g.seats[id])
	}
	return out
}

// OpenSeats returns the surface's unoccupied, unreserved seats ordered by
// position.
func (g *SeatGraph) OpenSeats(surfaceID string) []model.Seat {
	var out []model.Seat
	for _, id := range g.bySurface[surfaceID] {
		if s := g.seats[id]; s.Open() {
			out = append(out, *s)
		}
	}
	return out
}

// Occupants returns the occupant ids seated on a surface, ordered by seat
// position.
func (g *SeatGraph) Occupants(surfaceID string) []string {
	var out []string
	for _, id := range g.bySurface[surfaceID] {
		if s := g.seats[id]; s.OccupantID != "" {
			out = append(out, s.OccupantID)
		}
	}
	return out
}

// Len returns the total number of seats in the graph.
func (g *SeatGraph) Len() int { return len(g.seats) }

// AssignedCount returns the number of occupied seats.
func (g *SeatGraph) AssignedCount() int { return len(g.byOccupant) }

// Assign seats an occupant. Assigning the occupant to the seat it already
// holds is a no-op. Assigning to a reserved seat releases the reservation;
// the planner named an occupant explicitly.
func (g *SeatGraph) Assign(seatID, occupantID string, now time.Time) error {
	s, ok := g.seats[seatID]
	if !ok {
		return ErrSeatNotFound
	}
	if s.OccupantID == occupantID {
		return nil
	}
	if s.OccupantID != "" {
		return ErrSeatOccupied
	}
	if cur, seated := g.byOccupant[occupantID]; seated && cur != seatID {
		return ErrOccupantSeated
	}
	s.OccupantID = occupantID
	s.IsReserved = false
	s.UpdatedAt = now
	g.byOccupant[occupantID] = seatID
	return nil
}

// Clear empties a seat and returns the occupant that was removed, if any.
// Clearing an already empty seat is not an error.
func (g *SeatGraph) Clear(seatID string, now time.Time) (string, error) {
	s, ok := g.seats[seatID]
	if !ok {
		return "", ErrSeatNotFound
	}
	occ := s.OccupantID
	if occ == "" {
		return "", nil
	}
	s.OccupantID = ""
	s.UpdatedAt = now
	delete(g.byOccupant, occ)
	return occ, nil
}

// Swap exchanges the occupants of two seats atomically, including the case
// where one side is empty. Swapping a seat with itself is a no-op.
func (g *SeatGraph) Swap(seatA, seatB string, now time.Time) error {
	a, ok := g.seats[seatA]
	if !ok {
		return ErrSeatNotFound
	}
	b, ok := g.seats[seatB]
	if !ok {
		return ErrSeatNotFound
	}
	if seatA == seatB {
		return nil
	}
	a.OccupantID, b.OccupantID = b.OccupantID, a.OccupantID
	a.UpdatedAt, b.UpdatedAt = now, now
	if a.OccupantID != "" {
		g.byOccupant[a.OccupantID] = a.ID
	}
	if b.OccupantID != "" {
		g.byOccupant[b.OccupantID] = b.ID
	}
	return nil
}
