// Package uuid issues time-ordered identifiers for batch runs. It wraps
// github.com/google/uuid and always produces version 7 UUIDs, so run
// identifiers sort by the time the run started.
package uuid

import (
	"github.com/google/uuid"
)

// UUID represents a UUID, aliased from github.com/google/uuid.UUID
type UUID = uuid.UUID

// New returns a new UUIDv7. If the random source fails it falls back to a
// version 4 UUID so a run is never left without an identifier.
func New() UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}

// NewRunID returns a fresh run identifier in its canonical string form.
func NewRunID() string {
	return New().String()
}
