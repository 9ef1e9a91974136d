package notification

import (
	"crypto/rand"
	"encoding/hex"
)

// idBytes is the number of random bytes per id. 16 bytes keeps collision
// probability negligible even under heavily concurrent senders.
const idBytes = 16

// NewID generates a collision-resistant notification id using crypto/rand.
func NewID() string {
	buf := make([]byte, idBytes)
	// crypto/rand.Read is documented to never fail; it crashes the program
	// on the pathological platforms where randomness is unavailable.
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
