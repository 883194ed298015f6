package seating

import (
	"fmt"

	"github.com/lhoska/venue-seating-planner/internal/model"
)

// TableSpec carries the fields needed to create a table.
type TableSpec struct {
	Name      string
	Shape     string
	Size      float64
	Capacity  int
	Position  model.Position
	Rotation  float64
	HeadSeats int
	SeatSides string
}

// TablePatch carries a partial table update; nil fields stay untouched.
type TablePatch struct {
	Name      *string
	Shape     *string
	Size      *float64
	Capacity  *int
	Position  *model.Position
	Rotation  *float64
	HeadSeats *int
	SeatSides *string
}

// ChairRowSpec carries the fields needed to create a chair row.
type ChairRowSpec struct {
	Name        string
	ChairCount  int
	Orientation string
	Position    model.Position
	Rotation    float64
	Spacing     float64
}

// ChairRowPatch carries a partial chair row update; nil fields stay untouched.
type ChairRowPatch struct {
	Name        *string
	ChairCount  *int
	Orientation *string
	Position    *model.Position
	Rotation    *float64
	Spacing     *float64
}

func validShape(shape string) bool {
	switch shape {
	case model.ShapeRound, model.ShapeRectangular, model.ShapeOval, model.ShapeCustom:
		return true
	}
	return false
}

func validOrientation(o string) bool {
	return o == model.OrientationHorizontal || o == model.OrientationVertical
}

// CreateTable adds a table to the plan and creates exactly spec.Capacity
// seats numbered 1..capacity.
func (s *Session) CreateTable(spec TableSpec) (model.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if spec.Capacity <= 0 {
		return model.Table{}, fmt.Errorf("%w: capacity must be positive", ErrInvalidSurface)
	}
	if !validShape(spec.Shape) {
		return model.Table{}, fmt.Errorf("%w: unknown shape %q", ErrInvalidSurface, spec.Shape)
	}
	now := s.Now()
	t := &model.Table{
		ID:        model.MintID("table"),
		PlanID:    s.plan.ID,
		Name:      spec.Name,
		Shape:     spec.Shape,
		Size:      spec.Size,
		Capacity:  spec.Capacity,
		Position:  spec.Position,
		Rotation:  spec.Rotation,
		HeadSeats: spec.HeadSeats,
		SeatSides: spec.SeatSides,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.tables = append(s.tables, t)
	for i := 1; i <= t.Capacity; i++ {
		s.graph.Add(model.NewSeat(t.ID, i, now))
	}
	s.recount()
	s.plan.UpdatedAt = now
	return *t, nil
}

// CreateChairRow adds a chair row and its chairCount seats to the plan.
func (s *Session) CreateChairRow(spec ChairRowSpec) (model.ChairRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if spec.ChairCount <= 0 {
		return model.ChairRow{}, fmt.Errorf("%w: chair count must be positive", ErrInvalidSurface)
	}
	if !validOrientation(spec.Orientation) {
		return model.ChairRow{}, fmt.Errorf("%w: unknown orientation %q", ErrInvalidSurface, spec.Orientation)
	}
	now := s.Now()
	r := &model.ChairRow{
		ID:          model.MintID("row"),
		PlanID:      s.plan.ID,
		Name:        spec.Name,
		ChairCount:  spec.ChairCount,
		Orientation: spec.Orientation,
		Position:    spec.Position,
		Rotation:    spec.Rotation,
		Spacing:     spec.Spacing,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.rows = append(s.rows, r)
	for i := 1; i <= r.ChairCount; i++ {
		s.graph.Add(model.NewSeat(r.ID, i, now))
	}
	s.recount()
	s.plan.UpdatedAt = now
	return *r, nil
}

// UpdateTable patches table attributes. When the capacity changes the seat
// set is reconciled: growing appends empty seats, shrinking removes the
// highest positions and returns the displaced occupants.
func (s *Session) UpdateTable(id string, patch TablePatch) (model.Table, []string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var t *model.Table
	for _, cand := range s.tables {
		if cand.ID == id {
			t = cand
			break
		}
	}
	if t == nil {
		return model.Table{}, nil, ErrSurfaceNotFound
	}
	if patch.Capacity != nil && *patch.Capacity <= 0 {
		return model.Table{}, nil, fmt.Errorf("%w: capacity must be positive", ErrInvalidSurface)
	}
	if patch.Shape != nil && !validShape(*patch.Shape) {
		return model.Table{}, nil, fmt.Errorf("%w: unknown shape %q", ErrInvalidSurface, *patch.Shape)
	}
	now := s.Now()
	if patch.Name != nil {
		t.Name = *patch.Name
	}
	if patch.Shape != nil {
		t.Shape = *patch.Shape
	}
	if patch.Size != nil {
		t.Size = *patch.Size
	}
	if patch.Position != nil {
		t.Position = *patch.Position
	}
	if patch.Rotation != nil {
		t.Rotation = *patch.Rotation
	}
	if patch.HeadSeats != nil {
		t.HeadSeats = *patch.HeadSeats
	}
	if patch.SeatSides != nil {
		t.SeatSides = *patch.SeatSides
	}
	var displaced []string
	if patch.Capacity != nil && *patch.Capacity != t.Capacity {
		displaced = s.reconcileSeats(t.ID, t.Capacity, *patch.Capacity)
		t.Capacity = *patch.Capacity
	}
	t.UpdatedAt = now
	s.recount()
	s.plan.UpdatedAt = now
	return *t, displaced, nil
}

// UpdateChairRow patches chair row attributes, reconciling seats on a
// chair count change the same way UpdateTable does.
func (s *Session) UpdateChairRow(id string, patch ChairRowPatch) (model.ChairRow, []string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var r *model.ChairRow
	for _, cand := range s.rows {
		if cand.ID == id {
			r = cand
			break
		}
	}
	if r == nil {
		return model.ChairRow{}, nil, ErrSurfaceNotFound
	}
	if patch.ChairCount != nil && *patch.ChairCount <= 0 {
		return model.ChairRow{}, nil, fmt.Errorf("%w: chair count must be positive", ErrInvalidSurface)
	}
	if patch.Orientation != nil && !validOrientation(*patch.Orientation) {
		return model.ChairRow{}, nil, fmt.Errorf("%w: unknown orientation %q", ErrInvalidSurface, *patch.Orientation)
	}
	now := s.Now()
	if patch.Name != nil {
		r.Name = *patch.Name
	}
	if patch.Orientation != nil {
		r.Orientation = *patch.Orientation
	}
	if patch.Position != nil {
		r.Position = *patch.Position
	}
	if patch.Rotation != nil {
		r.Rotation = *patch.Rotation
	}
	if patch.Spacing != nil {
		r.Spacing = *patch.Spacing
	}
	var displaced []string
	if patch.ChairCount != nil && *patch.ChairCount != r.ChairCount {
		displaced = s.reconcileSeats(r.ID, r.ChairCount, *patch.ChairCount)
		r.ChairCount = *patch.ChairCount
	}
	r.UpdatedAt = now
	s.recount()
	s.plan.UpdatedAt = now
	return *r, displaced, nil
}

// reconcileSeats adjusts a surface's seat set after a capacity change.
// Positions 1..min(old,new) and their occupants are untouched; growing
// appends empty seats old+1..new, shrinking removes new+1..old and returns
// the occupants those seats held, in position order. Displaced occupants
// become unseated, never deleted. Callers must hold s.mu.
func (s *Session) reconcileSeats(surfaceID string, oldCap, newCap int) []string {
	now := s.Now()
	var displaced []string
	for pos := oldCap + 1; pos <= newCap; pos++ {
		s.graph.Add(model.NewSeat(surfaceID, pos, now))
	}
	for pos := newCap + 1; pos <= oldCap; pos++ {
		if seat, ok := s.graph.Remove(model.SeatID(surfaceID, pos)); ok && seat.Occupied() {
			displaced = append(displaced, seat.OccupantID)
		}
	}
	return displaced
}

// DeleteSurface removes a table or chair row together with all of its
// seats and returns the displaced occupants in position order.
func (s *Session) DeleteSurface(id string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	found := false
	for i, t := range s.tables {
		if t.ID == id {
			s.tables = append(s.tables[:i], s.tables[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		for i, r := range s.rows {
			if r.ID == id {
				s.rows = append(s.rows[:i], s.rows[i+1:]...)
				found = true
				break
			}
		}
	}
	if !found {
		return nil, ErrSurfaceNotFound
	}
	var displaced []string
	for _, seat := range s.graph.RemoveSurface(id) {
		if seat.Occupied() {
			displaced = append(displaced, seat.OccupantID)
		}
	}
	s.recount()
	s.plan.UpdatedAt = s.Now()
	return displaced, nil
}

// MoveSurface changes only the position (and optionally rotation) of a
// surface. Seat occupancy is untouched.
func (s *Session) MoveSurface(id string, pos model.Position, rotation *float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.Now()
	for _, t := range s.tables {
		if t.ID == id {
			t.Position = pos
			if rotation != nil {
				t.Rotation = *rotation
			}
			t.UpdatedAt = now
			s.plan.UpdatedAt = now
			return nil
		}
	}
	for _, r := range s.rows {
		if r.ID == id {
			r.Position = pos
			if rotation != nil {
				r.Rotation = *rotation
			}
			r.UpdatedAt = now
			s.plan.UpdatedAt = now
			return nil
		}
	}
	return ErrSurfaceNotFound
}
