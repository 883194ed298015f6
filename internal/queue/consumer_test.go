package queue

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lhoska/venue-seating-planner/internal/model"
	"github.com/lhoska/venue-seating-planner/internal/seating"
)

var feedTestTime = time.Date(2026, 5, 16, 12, 0, 0, 0, time.UTC)

// memStore is the minimal plan store the session manager needs in tests.
type memStore struct {
	docs map[string]*model.PlanDocument
}

func (s *memStore) GetPlan(_ context.Context, planID string) (*model.PlanDocument, error) {
	return s.docs[planID], nil
}

func (s *memStore) ReplacePlan(_ context.Context, doc *model.PlanDocument) error {
	s.docs[doc.ID] = doc
	return nil
}

func (s *memStore) ConstraintsByPlan(_ context.Context, _ string) ([]model.Constraint, error) {
	return nil, nil
}

func feedPlanDoc(occupant string) *model.PlanDocument {
	doc := &model.PlanDocument{SeatingPlan: model.SeatingPlan{
		ID: "plan_1", EventID: "event_1", Name: "Reception",
		CreatedAt: feedTestTime, UpdatedAt: feedTestTime,
	}}
	doc.Tables = append(doc.Tables, model.Table{
		ID: "table_a", PlanID: "plan_1", Name: "Table A",
		Shape: model.ShapeRound, Capacity: 2,
	})
	doc.Seats = append(doc.Seats,
		model.NewSeat("table_a", 1, feedTestTime),
		model.NewSeat("table_a", 2, feedTestTime))
	if occupant != "" {
		doc.Seats[0].OccupantID = occupant
	}
	doc.Recount(feedTestTime)
	return doc
}

func snapshotBody(t *testing.T, origin string, doc *model.PlanDocument) []byte {
	t.Helper()
	body, err := json.Marshal(PlanUpdatedEvent{
		PlanID:    doc.ID,
		EventID:   doc.EventID,
		ActorID:   "user_2",
		Origin:    origin,
		UpdatedAt: doc.UpdatedAt,
		Plan:      doc,
	})
	require.NoError(t, err)
	return body
}

func TestHandleMessageAppliesPeerSnapshot(t *testing.T) {
	store := &memStore{docs: map[string]*model.PlanDocument{"plan_1": feedPlanDoc("")}}
	mgr := seating.NewSessionManager(store, nil, nil)
	_, err := mgr.SelectPlan(context.Background(), "user_1", "plan_1")
	require.NoError(t, err)

	// a snapshot flushed by another instance must reach this instance's
	// open session, not just whichever consumer the broker picked
	body := snapshotBody(t, "instance_b", feedPlanDoc("guest_9"))
	require.NoError(t, handleMessage(body, mgr, "instance_a"))

	sess, err := mgr.Session("plan_1")
	require.NoError(t, err)
	seat, ok := sess.SeatOf("guest_9")
	require.True(t, ok)
	assert.Equal(t, model.SeatID("table_a", 1), seat.ID)
}

func TestHandleMessageSkipsOwnSnapshots(t *testing.T) {
	store := &memStore{docs: map[string]*model.PlanDocument{"plan_1": feedPlanDoc("")}}
	mgr := seating.NewSessionManager(store, nil, nil)
	_, err := mgr.SelectPlan(context.Background(), "user_1", "plan_1")
	require.NoError(t, err)

	body := snapshotBody(t, "instance_a", feedPlanDoc("guest_9"))
	require.NoError(t, handleMessage(body, mgr, "instance_a"))

	sess, err := mgr.Session("plan_1")
	require.NoError(t, err)
	_, ok := sess.SeatOf("guest_9")
	assert.False(t, ok, "own snapshot must not be re-applied")
}

func TestHandleMessageRejectsBadPayloads(t *testing.T) {
	store := &memStore{docs: map[string]*model.PlanDocument{}}
	mgr := seating.NewSessionManager(store, nil, nil)

	assert.Error(t, handleMessage([]byte("not json"), mgr, "instance_a"))

	empty, err := json.Marshal(PlanUpdatedEvent{PlanID: "plan_1", Origin: "instance_b"})
	require.NoError(t, err)
	assert.Error(t, handleMessage(empty, mgr, "instance_a"))
}
