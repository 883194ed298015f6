package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOccupantIDDerivation(t *testing.T) {
	assert.Equal(t, "guest_42_plusone", PlusOneID("guest_42"))
	assert.Equal(t, "guest_42_child_0", ChildID("guest_42", 0))

	assert.True(t, IsPlusOne("guest_42_plusone"))
	assert.False(t, IsPlusOne("guest_42"))
	assert.True(t, IsChild("guest_42_child_1"))
	assert.False(t, IsChild("guest_42_plusone"))

	assert.Equal(t, "guest_42", PrimaryOf("guest_42_plusone"))
	assert.Equal(t, "guest_42", PrimaryOf("guest_42_child_3"))
	assert.Equal(t, "guest_42", PrimaryOf("guest_42"))
}

func TestExpandParty(t *testing.T) {
	t.Run("full party", func(t *testing.T) {
		p := ExpandParty(RosterEntry{GuestID: "guest_1", PlusOneEnabled: true, ChildCount: 2})
		assert.Equal(t, []string{
			"guest_1",
			"guest_1_plusone",
			"guest_1_child_0",
			"guest_1_child_1",
		}, p.Members)
	})

	t.Run("single guest", func(t *testing.T) {
		p := ExpandParty(RosterEntry{GuestID: "guest_1"})
		assert.Equal(t, []string{"guest_1"}, p.Members)
	})
}

func TestExpandRoster(t *testing.T) {
	parties := ExpandRoster([]RosterEntry{
		{GuestID: "guest_1", PlusOneEnabled: true},
		{GuestID: "guest_2"},
	})
	require.Len(t, parties, 2)
	assert.Equal(t, "guest_1", parties[0].GuestID)
	assert.Len(t, parties[0].Members, 2)
	assert.Len(t, parties[1].Members, 1)
}

func TestMintID(t *testing.T) {
	id := MintID("plan")
	assert.True(t, strings.HasPrefix(id, "plan_"))

	parts := strings.SplitN(id, "_", 3)
	require.Len(t, parts, 3)
	assert.Len(t, parts[2], 9)
}

func TestSeatIDDeterministic(t *testing.T) {
	assert.Equal(t, "seat_table_1_7", SeatID("table_1", 7))
}
