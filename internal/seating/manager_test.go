package seating

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lhoska/venue-seating-planner/internal/model"
)

// fakeStore is an in-memory PlanStore for manager tests.
type fakeStore struct {
	docs        map[string]*model.PlanDocument
	constraints map[string][]model.Constraint
	replaceErr  error
	replaced    int
}

func newFakeStore(docs ...*model.PlanDocument) *fakeStore {
	s := &fakeStore{
		docs:        make(map[string]*model.PlanDocument),
		constraints: make(map[string][]model.Constraint),
	}
	for _, d := range docs {
		s.docs[d.ID] = d
	}
	return s
}

func (s *fakeStore) GetPlan(_ context.Context, planID string) (*model.PlanDocument, error) {
	doc, ok := s.docs[planID]
	if !ok {
		return nil, errors.New("plan not found")
	}
	return doc, nil
}

func (s *fakeStore) ReplacePlan(_ context.Context, doc *model.PlanDocument) error {
	if s.replaceErr != nil {
		return s.replaceErr
	}
	s.docs[doc.ID] = doc
	s.replaced++
	return nil
}

func (s *fakeStore) ConstraintsByPlan(_ context.Context, planID string) ([]model.Constraint, error) {
	return s.constraints[planID], nil
}

type fakeFeed struct {
	published []string
}

func (f *fakeFeed) PublishPlanUpdated(_ context.Context, doc *model.PlanDocument, _ string) error {
	f.published = append(f.published, doc.ID)
	return nil
}

func planDoc(id string) *model.PlanDocument {
	doc := &model.PlanDocument{SeatingPlan: model.SeatingPlan{
		ID: id, EventID: "event_test", Name: "Reception",
		CreatedAt: testTime, UpdatedAt: testTime,
	}}
	doc.Tables = append(doc.Tables, model.Table{
		ID: "table_a", PlanID: id, Name: "Table A",
		Shape: model.ShapeRound, Capacity: 2,
	})
	doc.Seats = append(doc.Seats,
		model.NewSeat("table_a", 1, testTime),
		model.NewSeat("table_a", 2, testTime))
	return doc
}

func TestSessionManagerSelectPlan(t *testing.T) {
	store := newFakeStore(planDoc("plan_1"))
	mgr := NewSessionManager(store, nil, nil)

	sess, err := mgr.SelectPlan(context.Background(), "user_1", "plan_1")
	require.NoError(t, err)
	assert.Equal(t, "plan_1", sess.PlanID())

	// selecting again returns the same open session
	again, err := mgr.SelectPlan(context.Background(), "user_2", "plan_1")
	require.NoError(t, err)
	assert.Same(t, sess, again)

	_, err = mgr.SelectPlan(context.Background(), "user_1", "plan_nope")
	assert.Error(t, err)
}

func TestSessionManagerRequiresSelection(t *testing.T) {
	mgr := NewSessionManager(newFakeStore(planDoc("plan_1")), nil, nil)

	_, err := mgr.Session("plan_1")
	assert.ErrorIs(t, err, ErrPlanNotSelected)

	_, err = mgr.SelectPlan(context.Background(), "user_1", "plan_1")
	require.NoError(t, err)
	_, err = mgr.Session("plan_1")
	assert.NoError(t, err)

	mgr.Close("plan_1")
	_, err = mgr.Session("plan_1")
	assert.ErrorIs(t, err, ErrPlanNotSelected)
}

func TestSessionManagerFlush(t *testing.T) {
	store := newFakeStore(planDoc("plan_1"))
	feed := &fakeFeed{}
	mgr := NewSessionManager(store, nil, feed)

	sess, err := mgr.SelectPlan(context.Background(), "user_1", "plan_1")
	require.NoError(t, err)
	sess.Now = func() time.Time { return testTime }
	require.NoError(t, sess.Assign("guest_1", model.SeatID("table_a", 1)))

	require.NoError(t, mgr.Flush(context.Background(), sess, "user_1"))
	assert.Equal(t, 1, store.replaced)
	assert.Equal(t, []string{"plan_1"}, feed.published)
	assert.Equal(t, "guest_1", store.docs["plan_1"].Seats[0].OccupantID)
}

func TestSessionManagerFlushFailureKeepsState(t *testing.T) {
	store := newFakeStore(planDoc("plan_1"))
	mgr := NewSessionManager(store, nil, nil)

	sess, err := mgr.SelectPlan(context.Background(), "user_1", "plan_1")
	require.NoError(t, err)
	require.NoError(t, sess.Assign("guest_1", model.SeatID("table_a", 1)))

	store.replaceErr = errors.New("connection reset")
	err = mgr.Flush(context.Background(), sess, "user_1")
	assert.ErrorIs(t, err, ErrPersistence)

	// the staged assignment survives so the flush can be retried
	_, seated := sess.SeatOf("guest_1")
	assert.True(t, seated)
	store.replaceErr = nil
	assert.NoError(t, mgr.Flush(context.Background(), sess, "user_1"))
}

func TestSessionManagerApplyRemote(t *testing.T) {
	store := newFakeStore(planDoc("plan_1"))
	mgr := NewSessionManager(store, nil, nil)

	sess, err := mgr.SelectPlan(context.Background(), "user_1", "plan_1")
	require.NoError(t, err)
	require.NoError(t, sess.Assign("guest_1", model.SeatID("table_a", 1)))

	// a remote snapshot replaces local state wholesale
	remote := planDoc("plan_1")
	remote.Seats[1].OccupantID = "guest_2"
	mgr.ApplyRemote(remote)

	_, seated := sess.SeatOf("guest_1")
	assert.False(t, seated)
	seat, ok := sess.SeatOf("guest_2")
	require.True(t, ok)
	assert.Equal(t, model.SeatID("table_a", 2), seat.ID)

	// snapshots for plans without an open session are ignored
	mgr.ApplyRemote(planDoc("plan_other"))
}
