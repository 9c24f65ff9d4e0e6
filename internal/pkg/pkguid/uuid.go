package pkguid

import "github.com/google/uuid"

// UUID generates RFC 9562 UUID strings.
//
// The zero value produces time-ordered v7 IDs, which sort well in logs.
// Secrets such as CSRF tokens should come from NewRandomUUID instead, since
// a v7 value leaks its creation time.
type UUID struct {
	random bool
}

// NewUUID returns a generator of time-ordered v7 UUIDs.
func NewUUID() *UUID {
	return &UUID{}
}

// NewRandomUUID returns a generator of random v4 UUIDs.
func NewRandomUUID() *UUID {
	return &UUID{random: true}
}

// Generate returns a new UUID string.
func (u *UUID) Generate() string {
	if u.random {
		return uuid.NewString()
	}
	return uuid.Must(uuid.NewV7()).String()
}
