package zakah

import "github.com/google/uuid"

// NewID returns a fresh record identifier. UUIDv7 keeps a leading time
// component with a random suffix, so ids sort roughly by creation time
// and collisions are negligible rather than impossible.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails if the random source does; fall back to v4.
		return uuid.NewString()
	}
	return id.String()
}
