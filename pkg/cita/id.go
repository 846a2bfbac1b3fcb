package cita

import "github.com/google/uuid"

type IDGenerator interface {
	NewID() string
}

// UUIDGenerator issues random version 4 UUIDs. Uniqueness is probabilistic and never checked.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}
