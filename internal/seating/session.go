package seating

import (
	"math"
	"sync"
	"time"

	"github.com/lhoska/venue-seating-planner/internal/model"
)

// Session is the editing handle for one selected seating plan. It owns the
// plan header, the surface list, the seat graph and the constraint store,
// and serializes every operation with a mutex: one plan, one writer at a
// time. Mutations apply optimistically in memory; flushing the resulting
// document to the repository is the SessionManager's job, and a failed
// flush leaves the staged state in place for a retry.
type Session struct {
	mu sync.Mutex

	// Now supplies timestamps for mutations. Tests may replace it before
	// issuing operations; it defaults to time.Now.
	Now func() time.Time

	plan        model.SeatingPlan
	tables      []*model.Table
	rows        []*model.ChairRow
	graph       *SeatGraph
	constraints *ConstraintStore
}

// NewSession builds a session from a loaded plan document and the plan's
// stored constraints.
func NewSession(doc *model.PlanDocument, constraints []model.Constraint) *Session {
	s := &Session{Now: time.Now, constraints: newConstraintStore(constraints)}
	s.replaceFromDocument(doc)
	return s
}

// PlanID returns the id of the plan this session edits.
func (s *Session) PlanID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plan.ID
}

// Plan returns a copy of the plan header with up-to-date seat counters.
func (s *Session) Plan() model.SeatingPlan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plan
}

// Document snapshots the session into the persisted plan shape: the header
// plus full surface and seat arrays, table seats and chair seats split the
// way the repository stores them.
func (s *Session) Document() *model.PlanDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.document()
}

func (s *Session) document() *model.PlanDocument {
	doc := &model.PlanDocument{SeatingPlan: s.plan}
	for _, t := range s.tables {
		doc.Tables = append(doc.Tables, *t)
		doc.Seats = append(doc.Seats, s.graph.SurfaceSeats(t.ID)...)
	}
	for _, r := range s.rows {
		doc.ChairRows = append(doc.ChairRows, *r)
		doc.ChairSeats = append(doc.ChairSeats, s.graph.SurfaceSeats(r.ID)...)
	}
	return doc
}

// ApplyRemote replaces the local plan state with a remotely produced
// snapshot. Reconciliation is last-writer-wins at whole-document
// granularity: the incoming surfaces and seats replace the local ones
// wholesale, so a local mutation in flight can be overwritten. That
// weakness is accepted and documented rather than hidden.
func (s *Session) ApplyRemote(doc *model.PlanDocument) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceFromDocument(doc)
}

func (s *Session) replaceFromDocument(doc *model.PlanDocument) {
	s.plan = doc.SeatingPlan
	s.tables = s.tables[:0]
	for i := range doc.Tables {
		t := doc.Tables[i]
		s.tables = append(s.tables, &t)
	}
	s.rows = s.rows[:0]
	for i := range doc.ChairRows {
		r := doc.ChairRows[i]
		s.rows = append(s.rows, &r)
	}
	s.graph = NewSeatGraph(doc.AllSeats())
	s.recount()
}

// UpdateMeta patches plan header fields that do not touch seats.
func (s *Session) UpdateMeta(name, description, venueLayout *string, isPublished *bool) model.SeatingPlan {
	s.mu.Lock()
	defer s.mu.Unlock()
	if name != nil {
		s.plan.Name = *name
	}
	if description != nil {
		s.plan.Description = *description
	}
	if venueLayout != nil {
		s.plan.VenueLayout = *venueLayout
	}
	if isPublished != nil {
		s.plan.IsPublished = *isPublished
	}
	s.plan.UpdatedAt = s.Now()
	return s.plan
}

// surface resolves a surface id to either a table or a chair row.
// Callers must hold s.mu.
func (s *Session) surface(id string) (model.Surface, bool) {
	for _, t := range s.tables {
		if t.ID == id {
			return t, true
		}
	}
	for _, r := range s.rows {
		if r.ID == id {
			return r, true
		}
	}
	return nil, false
}

// recount refreshes the plan's aggregate counters. Callers must hold s.mu.
func (s *Session) recount() {
	total := s.graph.Len()
	assigned := s.graph.AssignedCount()
	available := 0
	for _, t := range s.tables {
		available += len(s.graph.OpenSeats(t.ID))
	}
	for _, r := range s.rows {
		available += len(s.graph.OpenSeats(r.ID))
	}
	s.plan.TotalSeats = total
	s.plan.AssignedSeats = assigned
	s.plan.AvailableSeats = available
}

// Seat returns a copy of one seat.
func (s *Session) Seat(seatID string) (model.Seat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seat, ok := s.graph.Seat(seatID)
	if !ok {
		return model.Seat{}, ErrSeatNotFound
	}
	return seat, nil
}

// SeatOf returns the seat currently held by an occupant.
func (s *Session) SeatOf(occupantID string) (model.Seat, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.graph.SeatOf(occupantID)
}

// Tables returns copies of the plan's tables in creation order.
func (s *Session) Tables() []model.Table {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Table, 0, len(s.tables))
	for _, t := range s.tables {
		out = append(out, *t)
	}
	return out
}

// ChairRows returns copies of the plan's chair rows in creation order.
func (s *Session) ChairRows() []model.ChairRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.ChairRow, 0, len(s.rows))
	for _, r := range s.rows {
		out = append(out, *r)
	}
	return out
}

// SurfaceSeats returns a surface's seats ordered by position.
func (s *Session) SurfaceSeats(surfaceID string) ([]model.Seat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.surface(surfaceID); !ok {
		return nil, ErrSurfaceNotFound
	}
	return s.graph.SurfaceSeats(surfaceID), nil
}

// SurfaceOccupancy returns the occupancy of one surface as a whole
// percentage, rounded half up.
func (s *Session) SurfaceOccupancy(surfaceID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.surface(surfaceID); !ok {
		return 0, ErrSurfaceNotFound
	}
	seats := s.graph.SurfaceSeats(surfaceID)
	if len(seats) == 0 {
		return 0, nil
	}
	occupied := 0
	for _, seat := range seats {
		if seat.Occupied() {
			occupied++
		}
	}
	return int(math.Round(float64(occupied) / float64(len(seats)) * 100)), nil
}

// UnassignedOccupants filters the roster down to the occupant ids that do
// not currently hold a seat, preserving roster order.
func (s *Session) UnassignedOccupants(parties []model.Party) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, p := range parties {
		for _, m := range p.Members {
			if !s.graph.IsSeated(m) {
				out = append(out, m)
			}
		}
	}
	return out
}

// Stats summarizes the plan for dashboards.
func (s *Session) Stats() model.SeatingStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := model.SeatingStats{
		TotalTables:    len(s.tables),
		TotalChairRows: len(s.rows),
		TotalSeats:     s.plan.TotalSeats,
		AssignedSeats:  s.plan.AssignedSeats,
		AvailableSeats: s.plan.AvailableSeats,
	}
	if st.TotalSeats > 0 {
		st.OccupancyRate = int(math.Round(float64(st.AssignedSeats) / float64(st.TotalSeats) * 100))
	}
	for _, r := range s.constraints.Validate(s.graph) {
		if r.Satisfied {
			st.SatisfiedConstraints++
		} else {
			st.ViolatedConstraints++
		}
	}
	return st
}

// AddConstraint stages a constraint in the session's store.
func (s *Session) AddConstraint(c model.Constraint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.constraints.Add(c)
}

// RemoveConstraint removes a constraint from the session's store.
func (s *Session) RemoveConstraint(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.constraints.Remove(id)
}

// ActiveConstraints lists the plan's active constraints.
func (s *Session) ActiveConstraints() []model.Constraint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.constraints.ListActive()
}

// ValidateConstraints evaluates every active constraint against the
// current assignment.
func (s *Session) ValidateConstraints() []ConstraintResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.constraints.Validate(s.graph)
}
