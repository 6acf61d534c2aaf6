package engine

import (
	"strconv"
	"sync/atomic"
)

// IDGenerator generates sequential command IDs ("C1", "C2", ...).
// Uniqueness is guaranteed by the atomic counter; no timestamp needed.
type IDGenerator struct {
	prefix  string
	counter atomic.Uint64
}

// NewIDGenerator creates a new ID generator
func NewIDGenerator(prefix string) *IDGenerator {
	return &IDGenerator{prefix: prefix}
}

// Next generates the next unique ID
func (g *IDGenerator) Next() string {
	return g.prefix + strconv.FormatUint(g.counter.Add(1), 10)
}

// Count returns how many IDs have been handed out
func (g *IDGenerator) Count() uint64 {
	return g.counter.Load()
}
