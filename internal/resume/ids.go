package resume

import (
	"strconv"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator hands out entry ids. Implementations must never return the same id twice.
type IDGenerator interface {
	Next() string
}

// UUIDGenerator produces random UUIDv4 ids.
type UUIDGenerator struct{}

// Next returns a new UUID string.
func (UUIDGenerator) Next() string {
	return uuid.NewString()
}

// SequenceGenerator produces "<prefix><n>" ids with a monotonically increasing n.
// It is safe for concurrent use and is mostly useful in tests.
type SequenceGenerator struct {
	Prefix string

	mu   sync.Mutex
	next int
}

// NewSequenceGenerator returns a generator whose first id is prefix+"1".
func NewSequenceGenerator(prefix string) *SequenceGenerator {
	return &SequenceGenerator{Prefix: prefix}
}

// Next returns the next id in the sequence.
func (g *SequenceGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return g.Prefix + strconv.Itoa(g.next)
}
