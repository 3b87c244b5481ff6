package id

import "github.com/google/uuid"

// Generator creates opaque identifiers.
type Generator interface {
	New() string
}

// UUID produces random (v4) UUID strings, used to tag outgoing API requests.
type UUID struct{}

func (UUID) New() string {
	return uuid.NewString()
}
