package service

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"
)

const orderIDSuffixRange = 1000

// OrderIDGenerator issues ORD-<millis>-<0..999> identifiers.
//
// Within one millisecond it hands out distinct random suffixes; once all 1000
// are taken the millis component moves ahead by one. The millis part therefore
// never goes backwards and never repeats a suffix inside this process.
type OrderIDGenerator struct {
	mu         sync.Mutex
	now        func() time.Time
	intn       func(int) int
	lastMillis int64
	used       map[int]struct{}
}

// NewOrderIDGenerator creates a generator using the wall clock and math/rand.
func NewOrderIDGenerator() *OrderIDGenerator {
	return newOrderIDGenerator(time.Now, rand.IntN)
}

func newOrderIDGenerator(now func() time.Time, intn func(int) int) *OrderIDGenerator {
	return &OrderIDGenerator{now: now, intn: intn, used: make(map[int]struct{})}
}

// Next returns a new identifier for the current time.
func (g *OrderIDGenerator) Next() string {
	return g.NextAt(g.now())
}

// NextAt returns a new identifier whose millis part is t, unless an earlier
// identifier already moved the counter past t.
func (g *OrderIDGenerator) NextAt(t time.Time) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if ms := t.UnixMilli(); ms > g.lastMillis {
		g.lastMillis = ms
		clear(g.used)
	}
	if len(g.used) >= orderIDSuffixRange {
		g.lastMillis++
		clear(g.used)
	}

	n := g.intn(orderIDSuffixRange)
	for {
		if _, taken := g.used[n]; !taken {
			break
		}
		n = (n + 1) % orderIDSuffixRange
	}
	g.used[n] = struct{}{}
	return fmt.Sprintf("ORD-%d-%d", g.lastMillis, n)
}
