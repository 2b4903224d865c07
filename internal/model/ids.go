package model

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator produces entity identities.
type IDGenerator interface {
	NewID() string
}

// UUIDv7Generator generates time-sortable UUIDv7 identities.
//
// UUIDv7 embeds a millisecond timestamp plus random bits, so identities are
// unique across process runs and never reused after a delete.
type UUIDv7Generator struct{}

// NewID returns a hyphenated UUIDv7 string.
// Panics if the random source fails.
func (UUIDv7Generator) NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// SequenceGenerator returns predictable identities for tests and golden
// output: "<prefix>-1", "<prefix>-2", ...
//
// Safe for concurrent use.
type SequenceGenerator struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSequenceGenerator creates a generator whose first ID is "<prefix>-1".
func NewSequenceGenerator(prefix string) *SequenceGenerator {
	return &SequenceGenerator{prefix: prefix}
}

// NewID returns the next identity in the sequence.
func (g *SequenceGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%d", g.prefix, g.n)
}
