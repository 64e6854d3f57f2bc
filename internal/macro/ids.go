package macro

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator produces macro instance ids. Implementations must never return
// the same id twice for the lifetime of a host document.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator issues random UUID-based instance ids.
type UUIDGenerator struct{}

// NewID returns a fresh "macro-<uuid>" id.
func (UUIDGenerator) NewID() string {
	return "macro-" + uuid.New().String()
}

// CounterGenerator issues sequential ids, which keeps imports deterministic in tests.
type CounterGenerator struct {
	Prefix string
	n      atomic.Uint64
}

// NewID returns the next id in the sequence.
func (g *CounterGenerator) NewID() string {
	prefix := g.Prefix
	if prefix == "" {
		prefix = "macro"
	}
	return fmt.Sprintf("%s-%d", prefix, g.n.Add(1))
}
