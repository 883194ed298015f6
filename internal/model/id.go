package model

import (
	"fmt"
	"math/rand"
	"time"
)

const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// MintID creates a new identifier of the form <kind>_<unixmillis>_<rand>.
// The timestamp keeps ids roughly sortable by creation time; the random
// tail avoids collisions when several objects are minted in one millisecond.
// Seat ids are never minted this way; see SeatID.
func MintID(kind string) string {
	tail := make([]byte, 9)
	for i := range tail {
		tail[i] = idAlphabet[rand.Intn(len(idAlphabet))]
	}
	return fmt.Sprintf("%s_%d_%s", kind, time.Now().UnixMilli(), tail)
}
