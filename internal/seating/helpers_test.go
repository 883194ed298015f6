package seating

import (
	"time"

	"github.com/lhoska/venue-seating-planner/internal/model"
)

var testTime = time.Date(2026, 5, 16, 12, 0, 0, 0, time.UTC)

// testTable describes one table for buildSession.
type testTable struct {
	id       string
	capacity int
}

// buildSession constructs a session over fixed table ids so tests can
// address seats deterministically via model.SeatID.
func buildSession(tables []testTable, constraints []model.Constraint) *Session {
	doc := &model.PlanDocument{SeatingPlan: model.SeatingPlan{
		ID:        "plan_test",
		EventID:   "event_test",
		Name:      "Reception",
		CreatedAt: testTime,
		UpdatedAt: testTime,
	}}
	for _, tt := range tables {
		doc.Tables = append(doc.Tables, model.Table{
			ID:        tt.id,
			PlanID:    "plan_test",
			Name:      tt.id,
			Shape:     model.ShapeRound,
			Capacity:  tt.capacity,
			CreatedAt: testTime,
			UpdatedAt: testTime,
		})
		for p := 1; p <= tt.capacity; p++ {
			doc.Seats = append(doc.Seats, model.NewSeat(tt.id, p, testTime))
		}
	}
	sess := NewSession(doc, constraints)
	sess.Now = func() time.Time { return testTime }
	return sess
}

func mustTogether(id string, members ...string) model.Constraint {
	return model.Constraint{
		ID: id, PlanID: "plan_test", Type: model.MustSitTogether,
		MemberIDs: members, IsActive: true, CreatedAt: testTime,
	}
}

func mustApart(id string, members ...string) model.Constraint {
	return model.Constraint{
		ID: id, PlanID: "plan_test", Type: model.MustNotSitTogether,
		MemberIDs: members, IsActive: true, CreatedAt: testTime,
	}
}

func singles(ids ...string) []model.Party {
	out := make([]model.Party, 0, len(ids))
	for _, id := range ids {
		out = append(out, model.Party{GuestID: id, Members: []string{id}})
	}
	return out
}
