package model

import (
	"fmt"
	"strings"
)

// The guest list is owned by another subsystem; the planner only consumes
// a roster of parties. A party is one primary guest plus the dependents
// that travel with them. Every member of a party is independently seatable
// and is addressed by a derived occupant id:
//
//	primary   <guestID>
//	plus-one  <guestID>_plusone
//	child     <guestID>_child_<n>      (n is zero-based)

const (
	plusOneSuffix  = "_plusone"
	childSeparator = "_child_"
)

// RosterEntry is one row supplied by the roster provider.
//
// Fields:
//  GuestID        – primary guest identifier.
//  Name           – display name of the primary guest.
//  PlusOneEnabled – whether the guest brings a plus-one.
//  PlusOneName    – display name of the plus-one, if known.
//  ChildCount     – number of children travelling with the guest.
type RosterEntry struct {
	GuestID        string `json:"guestId"`
	Name           string `json:"name"`
	PlusOneEnabled bool   `json:"plusOneEnabled"`
	PlusOneName    string `json:"plusOneName,omitempty"`
	ChildCount     int    `json:"childCount"`
}

// Party groups the seatable identities derived from one roster entry.
type Party struct {
	GuestID string   `json:"guestId"`
	Members []string `json:"members"` // primary first, then plus-one, then children
}

// PlusOneID derives the plus-one occupant id for a primary guest.
func PlusOneID(guestID string) string { return guestID + plusOneSuffix }

// ChildID derives the n-th child occupant id for a primary guest.
func ChildID(guestID string, n int) string {
	return fmt.Sprintf("%s%s%d", guestID, childSeparator, n)
}

// IsPlusOne reports whether the occupant id addresses a plus-one.
func IsPlusOne(occupantID string) bool {
	return strings.HasSuffix(occupantID, plusOneSuffix)
}

// IsChild reports whether the occupant id addresses a child.
func IsChild(occupantID string) bool {
	return strings.Contains(occupantID, childSeparator)
}

// PrimaryOf resolves any occupant id back to its primary guest id.
func PrimaryOf(occupantID string) string {
	if IsPlusOne(occupantID) {
		return strings.TrimSuffix(occupantID, plusOneSuffix)
	}
	if i := strings.Index(occupantID, childSeparator); i >= 0 {
		return occupantID[:i]
	}
	return occupantID
}

// ExpandParty derives the full member list for a roster entry, primary
// guest first, then the plus-one, then the children in index order.
func ExpandParty(e RosterEntry) Party {
	members := []string{e.GuestID}
	if e.PlusOneEnabled {
		members = append(members, PlusOneID(e.GuestID))
	}
	for i := 0; i < e.ChildCount; i++ {
		members = append(members, ChildID(e.GuestID, i))
	}
	return Party{GuestID: e.GuestID, Members: members}
}

// ExpandRoster converts roster rows into parties, preserving order.
func ExpandRoster(entries []RosterEntry) []Party {
	parties := make([]Party, 0, len(entries))
	for _, e := range entries {
		parties = append(parties, ExpandParty(e))
	}
	return parties
}
