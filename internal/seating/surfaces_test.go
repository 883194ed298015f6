package seating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lhoska/venue-seating-planner/internal/model"
)

func TestCreateTable(t *testing.T) {
	sess := buildSession(nil, nil)
	table, err := sess.CreateTable(TableSpec{
		Name:     "Head Table",
		Shape:    model.ShapeRectangular,
		Capacity: 6,
		Position: model.Position{X: 10, Y: 20},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, table.ID)

	seats, err := sess.SurfaceSeats(table.ID)
	require.NoError(t, err)
	require.Len(t, seats, 6)
	for i, seat := range seats {
		assert.Equal(t, i+1, seat.Position)
		assert.Equal(t, model.SeatID(table.ID, i+1), seat.ID)
	}
	assert.Equal(t, 6, sess.Plan().TotalSeats)
}

func TestCreateTableValidation(t *testing.T) {
	sess := buildSession(nil, nil)

	_, err := sess.CreateTable(TableSpec{Name: "Bad", Shape: model.ShapeRound, Capacity: 0})
	assert.ErrorIs(t, err, ErrInvalidSurface)

	_, err = sess.CreateTable(TableSpec{Name: "Bad", Shape: "triangle", Capacity: 4})
	assert.ErrorIs(t, err, ErrInvalidSurface)
}

func TestCreateChairRow(t *testing.T) {
	sess := buildSession(nil, nil)
	row, err := sess.CreateChairRow(ChairRowSpec{
		Name:        "Ceremony Row 1",
		ChairCount:  8,
		Orientation: model.OrientationHorizontal,
		Spacing:     0.5,
	})
	require.NoError(t, err)

	seats, err := sess.SurfaceSeats(row.ID)
	require.NoError(t, err)
	assert.Len(t, seats, 8)

	_, err = sess.CreateChairRow(ChairRowSpec{Name: "Bad", ChairCount: 4, Orientation: "diagonal"})
	assert.ErrorIs(t, err, ErrInvalidSurface)
}

func TestUpdateTableGrow(t *testing.T) {
	sess := buildSession([]testTable{{"table_a", 4}}, nil)
	require.NoError(t, sess.Assign("guest_1", model.SeatID("table_a", 3)))

	capacity := 6
	table, displaced, err := sess.UpdateTable("table_a", TablePatch{Capacity: &capacity})
	require.NoError(t, err)
	assert.Empty(t, displaced)
	assert.Equal(t, 6, table.Capacity)

	// existing occupant untouched, new seats appended empty
	seat, ok := sess.SeatOf("guest_1")
	require.True(t, ok)
	assert.Equal(t, model.SeatID("table_a", 3), seat.ID)
	seats, _ := sess.SurfaceSeats("table_a")
	assert.Len(t, seats, 6)
}

func TestUpdateTableShrinkDisplaces(t *testing.T) {
	sess := buildSession([]testTable{{"table_a", 6}}, nil)
	require.NoError(t, sess.Assign("guest_1", model.SeatID("table_a", 2)))
	require.NoError(t, sess.Assign("guest_2", model.SeatID("table_a", 5)))
	require.NoError(t, sess.Assign("guest_3", model.SeatID("table_a", 6)))

	capacity := 4
	_, displaced, err := sess.UpdateTable("table_a", TablePatch{Capacity: &capacity})
	require.NoError(t, err)
	assert.Equal(t, []string{"guest_2", "guest_3"}, displaced)

	// the survivor stays put; displaced occupants are unseated, not deleted
	_, ok := sess.SeatOf("guest_1")
	assert.True(t, ok)
	_, ok = sess.SeatOf("guest_2")
	assert.False(t, ok)
	assert.Equal(t, 4, sess.Plan().TotalSeats)
}

func TestUpdateChairRowResize(t *testing.T) {
	sess := buildSession(nil, nil)
	row, err := sess.CreateChairRow(ChairRowSpec{
		Name: "Row", ChairCount: 4, Orientation: model.OrientationVertical,
	})
	require.NoError(t, err)
	require.NoError(t, sess.Assign("guest_1", model.SeatID(row.ID, 4)))

	count := 2
	_, displaced, err := sess.UpdateChairRow(row.ID, ChairRowPatch{ChairCount: &count})
	require.NoError(t, err)
	assert.Equal(t, []string{"guest_1"}, displaced)

	_, _, err = sess.UpdateChairRow("row_nope", ChairRowPatch{ChairCount: &count})
	assert.ErrorIs(t, err, ErrSurfaceNotFound)
}

func TestDeleteSurface(t *testing.T) {
	sess := buildSession([]testTable{{"table_a", 4}, {"table_b", 4}}, nil)
	require.NoError(t, sess.Assign("guest_1", model.SeatID("table_a", 1)))
	require.NoError(t, sess.Assign("guest_2", model.SeatID("table_a", 3)))
	require.NoError(t, sess.Assign("guest_3", model.SeatID("table_b", 1)))

	displaced, err := sess.DeleteSurface("table_a")
	require.NoError(t, err)
	assert.Equal(t, []string{"guest_1", "guest_2"}, displaced)

	plan := sess.Plan()
	assert.Equal(t, 4, plan.TotalSeats)
	assert.Equal(t, 1, plan.AssignedSeats)
	_, err = sess.SurfaceSeats("table_a")
	assert.ErrorIs(t, err, ErrSurfaceNotFound)

	_, err = sess.DeleteSurface("table_a")
	assert.ErrorIs(t, err, ErrSurfaceNotFound)
}

func TestMoveSurface(t *testing.T) {
	sess := buildSession([]testTable{{"table_a", 2}}, nil)
	require.NoError(t, sess.Assign("guest_1", model.SeatID("table_a", 1)))

	rotation := 45.0
	require.NoError(t, sess.MoveSurface("table_a", model.Position{X: 5, Y: 7}, &rotation))

	tables := sess.Tables()
	require.Len(t, tables, 1)
	assert.Equal(t, model.Position{X: 5, Y: 7}, tables[0].Position)
	assert.Equal(t, 45.0, tables[0].Rotation)

	// occupancy untouched by a move
	_, ok := sess.SeatOf("guest_1")
	assert.True(t, ok)

	err := sess.MoveSurface("table_nope", model.Position{}, nil)
	assert.ErrorIs(t, err, ErrSurfaceNotFound)
}
