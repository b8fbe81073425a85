// Package utils holds small helpers shared by the services.
package utils

import "github.com/google/uuid"

// SessionIDGenerator labels unlocked vault sessions so that the log lines
// of one session can be grouped. IDs are time-ordered UUIDv7 strings.
type SessionIDGenerator struct {
	newV7 func() (uuid.UUID, error)
}

func NewSessionIDGenerator() *SessionIDGenerator {
	return &SessionIDGenerator{newV7: uuid.NewV7}
}

// Generate returns a new session ID. If the clock-based generator fails it
// falls back to a random UUIDv4.
func (g *SessionIDGenerator) Generate() string {
	id, err := g.newV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
