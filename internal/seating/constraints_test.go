package seating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lhoska/venue-seating-planner/internal/model"
)

func TestConstraintStoreAdd(t *testing.T) {
	cs := newConstraintStore(nil)

	err := cs.Add(model.Constraint{ID: "constraint_1", Type: "friends", MemberIDs: []string{"a", "b"}})
	assert.ErrorIs(t, err, ErrInvalidConstraint)

	err = cs.Add(mustTogether("constraint_1", "a"))
	assert.ErrorIs(t, err, ErrInvalidConstraint)

	require.NoError(t, cs.Add(mustTogether("constraint_1", "a", "b")))
	assert.Len(t, cs.ListActive(), 1)

	// same id replaces
	require.NoError(t, cs.Add(mustApart("constraint_1", "a", "b")))
	list := cs.ListActive()
	require.Len(t, list, 1)
	assert.Equal(t, model.MustNotSitTogether, list[0].Type)
}

func TestConstraintStoreRemove(t *testing.T) {
	cs := newConstraintStore([]model.Constraint{mustTogether("constraint_1", "a", "b")})
	require.NoError(t, cs.Remove("constraint_1"))
	assert.ErrorIs(t, cs.Remove("constraint_1"), ErrConstraintNotFound)
}

func TestValidateMustSitTogether(t *testing.T) {
	sess := buildSession([]testTable{{"table_a", 4}, {"table_b", 4}},
		[]model.Constraint{mustTogether("constraint_1", "guest_1", "guest_2")})

	// nobody seated: satisfied vacuously
	results := sess.ValidateConstraints()
	require.Len(t, results, 1)
	assert.True(t, results[0].Satisfied)

	// one member seated: still satisfied
	require.NoError(t, sess.Assign("guest_1", model.SeatID("table_a", 1)))
	assert.True(t, sess.ValidateConstraints()[0].Satisfied)

	// split across surfaces: violated
	require.NoError(t, sess.Assign("guest_2", model.SeatID("table_b", 1)))
	res := sess.ValidateConstraints()[0]
	assert.False(t, res.Satisfied)

	// reunited: satisfied again without touching the constraint
	_, err := sess.Unassign(model.SeatID("table_b", 1))
	require.NoError(t, err)
	require.NoError(t, sess.Assign("guest_2", model.SeatID("table_a", 2)))
	assert.True(t, sess.ValidateConstraints()[0].Satisfied)
}

func TestValidateMustNotSitTogether(t *testing.T) {
	sess := buildSession([]testTable{{"table_a", 4}, {"table_b", 4}},
		[]model.Constraint{mustApart("constraint_1", "guest_1", "guest_2", "guest_3")})

	require.NoError(t, sess.Assign("guest_1", model.SeatID("table_a", 1)))
	require.NoError(t, sess.Assign("guest_2", model.SeatID("table_b", 1)))
	assert.True(t, sess.ValidateConstraints()[0].Satisfied)

	require.NoError(t, sess.Assign("guest_3", model.SeatID("table_a", 2)))
	res := sess.ValidateConstraints()[0]
	assert.False(t, res.Satisfied)
	assert.Equal(t, "guest_1", res.ConflictA)
	assert.Equal(t, "guest_3", res.ConflictB)
	assert.Equal(t, "table_a", res.SurfaceID)
}

func TestValidateSkipsInactive(t *testing.T) {
	inactive := mustApart("constraint_1", "guest_1", "guest_2")
	inactive.IsActive = false
	sess := buildSession([]testTable{{"table_a", 4}}, []model.Constraint{inactive})

	require.NoError(t, sess.Assign("guest_1", model.SeatID("table_a", 1)))
	require.NoError(t, sess.Assign("guest_2", model.SeatID("table_a", 2)))

	assert.Empty(t, sess.ValidateConstraints())
	assert.Empty(t, sess.ActiveConstraints())
}

func TestConstraintsSurviveReseating(t *testing.T) {
	sess := buildSession([]testTable{{"table_a", 4}},
		[]model.Constraint{mustTogether("constraint_1", "guest_1", "guest_2")})

	require.NoError(t, sess.Assign("guest_1", model.SeatID("table_a", 1)))
	_, err := sess.Unassign(model.SeatID("table_a", 1))
	require.NoError(t, err)
	require.NoError(t, sess.Assign("guest_1", model.SeatID("table_a", 3)))

	// deleting seats does not touch constraints either
	_, err = sess.DeleteSeat(model.SeatID("table_a", 4))
	require.NoError(t, err)
	assert.Len(t, sess.ActiveConstraints(), 1)
}
