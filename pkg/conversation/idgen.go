package conversation

import (
	"strconv"
	"sync/atomic"
)

// IDGenerator hands out prefix-tagged conversation ids from a monotonically
// incrementing counter. Ids only need to be unique within a process
// lifetime; there is no reset.
type IDGenerator struct {
	prefix  string
	counter atomic.Int64
}

func NewIDGenerator(prefix string) *IDGenerator {
	return &IDGenerator{prefix: prefix}
}

func (g *IDGenerator) Next() string {
	return g.prefix + strconv.FormatInt(g.counter.Add(1), 10)
}
