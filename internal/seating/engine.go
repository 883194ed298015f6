package seating

import (
	"fmt"

	"github.com/lhoska/venue-seating-planner/internal/model"
)

// Manual assignment operations. Each one re-establishes the injective
// occupancy invariant before returning: no occupant in two seats, no seat
// with two occupants. Conflicts are rejected before any mutation, so a
// failed call leaves the plan exactly as it was.

// Assign seats an occupant on a specific seat. It fails with
// ErrSeatOccupied when the seat holds a different occupant and with
// ErrOccupantSeated when the occupant already holds a different seat;
// there is no implicit move.
func (s *Session) Assign(occupantID, seatID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if occupantID == "" {
		return fmt.Errorf("%w: empty", ErrInvalidOccupant)
	}
	if err := s.graph.Assign(seatID, occupantID, s.Now()); err != nil {
		return err
	}
	s.recount()
	s.plan.UpdatedAt = s.Now()
	return nil
}

// Unassign clears a seat. Clearing an empty seat is a no-op, not an error.
// When the cleared occupant is a party's primary guest, the guest's
// plus-one is cleared as well: a dependent never stays seated once its
// anchor leaves. Children are left alone; they may be seated independently.
// The returned slice lists every occupant that lost a seat.
func (s *Session) Unassign(seatID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.Now()
	occ, err := s.graph.Clear(seatID, now)
	if err != nil {
		return nil, err
	}
	if occ == "" {
		return nil, nil
	}
	cleared := []string{occ}
	if !model.IsPlusOne(occ) && !model.IsChild(occ) {
		if seat, ok := s.graph.SeatOf(model.PlusOneID(occ)); ok {
			if dep, err := s.graph.Clear(seat.ID, now); err == nil && dep != "" {
				cleared = append(cleared, dep)
			}
		}
	}
	s.recount()
	s.plan.UpdatedAt = now
	return cleared, nil
}

// Swap exchanges the occupants of two seats atomically, including the
// empty/non-empty case. Swapping never passes through a state where both
// seats are empty or both hold the same occupant.
func (s *Session) Swap(seatA, seatB string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.graph.Swap(seatA, seatB, s.Now()); err != nil {
		return err
	}
	s.plan.UpdatedAt = s.Now()
	return nil
}

// DeleteSeat removes a single seat outright, distinct from a surface
// resize: the owning surface's capacity bookkeeping is left untouched.
// Any occupant is displaced (returned, not dropped).
func (s *Session) DeleteSeat(seatID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seat, ok := s.graph.Remove(seatID)
	if !ok {
		return "", ErrSeatNotFound
	}
	s.recount()
	s.plan.UpdatedAt = s.Now()
	return seat.OccupantID, nil
}
