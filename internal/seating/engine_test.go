package seating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lhoska/venue-seating-planner/internal/model"
)

func TestSessionAssignUnassign(t *testing.T) {
	sess := buildSession([]testTable{{"table_a", 4}}, nil)
	seatID := model.SeatID("table_a", 1)

	require.NoError(t, sess.Assign("guest_1", seatID))
	plan := sess.Plan()
	assert.Equal(t, 4, plan.TotalSeats)
	assert.Equal(t, 1, plan.AssignedSeats)
	assert.Equal(t, 3, plan.AvailableSeats)

	cleared, err := sess.Unassign(seatID)
	require.NoError(t, err)
	assert.Equal(t, []string{"guest_1"}, cleared)
	plan = sess.Plan()
	assert.Equal(t, 0, plan.AssignedSeats)
	assert.Equal(t, 4, plan.AvailableSeats)
}

func TestSessionAssignValidation(t *testing.T) {
	sess := buildSession([]testTable{{"table_a", 2}}, nil)

	err := sess.Assign("", model.SeatID("table_a", 1))
	assert.ErrorIs(t, err, ErrInvalidOccupant)

	err = sess.Assign("guest_1", "seat_nope_1")
	assert.ErrorIs(t, err, ErrSeatNotFound)
}

func TestUnassignPrimaryClearsPlusOne(t *testing.T) {
	sess := buildSession([]testTable{{"table_a", 4}}, nil)
	primarySeat := model.SeatID("table_a", 1)
	require.NoError(t, sess.Assign("guest_1", primarySeat))
	require.NoError(t, sess.Assign(model.PlusOneID("guest_1"), model.SeatID("table_a", 2)))
	require.NoError(t, sess.Assign(model.ChildID("guest_1", 0), model.SeatID("table_a", 3)))

	cleared, err := sess.Unassign(primarySeat)
	require.NoError(t, err)
	assert.Equal(t, []string{"guest_1", model.PlusOneID("guest_1")}, cleared)

	// children keep their seat when the primary leaves
	_, seated := sess.SeatOf(model.ChildID("guest_1", 0))
	assert.True(t, seated)
	_, seated = sess.SeatOf(model.PlusOneID("guest_1"))
	assert.False(t, seated)
}

func TestUnassignPlusOneLeavesPrimary(t *testing.T) {
	sess := buildSession([]testTable{{"table_a", 4}}, nil)
	require.NoError(t, sess.Assign("guest_1", model.SeatID("table_a", 1)))
	plusSeat := model.SeatID("table_a", 2)
	require.NoError(t, sess.Assign(model.PlusOneID("guest_1"), plusSeat))

	cleared, err := sess.Unassign(plusSeat)
	require.NoError(t, err)
	assert.Equal(t, []string{model.PlusOneID("guest_1")}, cleared)
	_, seated := sess.SeatOf("guest_1")
	assert.True(t, seated)
}

func TestSessionSwap(t *testing.T) {
	sess := buildSession([]testTable{{"table_a", 2}, {"table_b", 2}}, nil)
	seatA := model.SeatID("table_a", 1)
	seatB := model.SeatID("table_b", 1)
	require.NoError(t, sess.Assign("guest_1", seatA))

	require.NoError(t, sess.Swap(seatA, seatB))
	moved, ok := sess.SeatOf("guest_1")
	require.True(t, ok)
	assert.Equal(t, seatB, moved.ID)

	// counters unchanged by a swap
	plan := sess.Plan()
	assert.Equal(t, 1, plan.AssignedSeats)
}

func TestSessionDeleteSeat(t *testing.T) {
	sess := buildSession([]testTable{{"table_a", 3}}, nil)
	seatID := model.SeatID("table_a", 2)
	require.NoError(t, sess.Assign("guest_1", seatID))

	displaced, err := sess.DeleteSeat(seatID)
	require.NoError(t, err)
	assert.Equal(t, "guest_1", displaced)

	plan := sess.Plan()
	assert.Equal(t, 2, plan.TotalSeats)
	_, err = sess.Seat(seatID)
	assert.ErrorIs(t, err, ErrSeatNotFound)

	_, err = sess.DeleteSeat(seatID)
	assert.ErrorIs(t, err, ErrSeatNotFound)
}

func TestSurfaceOccupancyRounding(t *testing.T) {
	sess := buildSession([]testTable{{"table_a", 3}}, nil)
	require.NoError(t, sess.Assign("guest_1", model.SeatID("table_a", 1)))

	pct, err := sess.SurfaceOccupancy("table_a")
	require.NoError(t, err)
	assert.Equal(t, 33, pct)

	require.NoError(t, sess.Assign("guest_2", model.SeatID("table_a", 2)))
	pct, _ = sess.SurfaceOccupancy("table_a")
	assert.Equal(t, 67, pct)

	_, err = sess.SurfaceOccupancy("table_nope")
	assert.ErrorIs(t, err, ErrSurfaceNotFound)
}

func TestUnassignedOccupants(t *testing.T) {
	sess := buildSession([]testTable{{"table_a", 4}}, nil)
	parties := []model.Party{
		model.ExpandParty(model.RosterEntry{GuestID: "guest_1", PlusOneEnabled: true}),
		model.ExpandParty(model.RosterEntry{GuestID: "guest_2"}),
	}
	require.NoError(t, sess.Assign("guest_1", model.SeatID("table_a", 1)))

	unassigned := sess.UnassignedOccupants(parties)
	assert.Equal(t, []string{model.PlusOneID("guest_1"), "guest_2"}, unassigned)
}

func TestDocumentRoundTrip(t *testing.T) {
	sess := buildSession([]testTable{{"table_a", 2}}, nil)
	require.NoError(t, sess.Assign("guest_1", model.SeatID("table_a", 2)))

	doc := sess.Document()
	require.Len(t, doc.Tables, 1)
	require.Len(t, doc.Seats, 2)
	assert.Equal(t, "guest_1", doc.Seats[1].OccupantID)

	restored := NewSession(doc, nil)
	seat, ok := restored.SeatOf("guest_1")
	require.True(t, ok)
	assert.Equal(t, model.SeatID("table_a", 2), seat.ID)
	assert.Equal(t, doc.AssignedSeats, restored.Plan().AssignedSeats)
}
