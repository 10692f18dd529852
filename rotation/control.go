/*
control.go - Rotation control surface

PURPOSE:
  An explicit cache over ledger stats with manual invalidation and
  synchronous subscriber notification. This is the process-wide
  "rotation-reset" broadcast of the original system reframed as an owned
  observer object instead of global ambient state: anything holding a
  cached calendar view subscribes and recomputes when the ledger is
  cleared.

CONCURRENCY:
  Safe for concurrent use. Subscribers are invoked synchronously under no
  lock, so a subscriber may call back into the control.
*/
package rotation

import (
	"context"
	"sync"
)

// Control owns cached ledger stats and the reset broadcast.
type Control struct {
	ledger *Ledger

	mu     sync.Mutex
	cached *Stats
	subs   map[int]func()
	nextID int
}

// NewControl wraps a ledger in a control surface.
func NewControl(ledger *Ledger) *Control {
	return &Control{ledger: ledger, subs: make(map[int]func())}
}

// Stats returns ledger stats, serving a cached copy when one is valid.
func (c *Control) Stats(ctx context.Context) Stats {
	c.mu.Lock()
	if c.cached != nil {
		stats := *c.cached
		c.mu.Unlock()
		return stats
	}
	c.mu.Unlock()

	stats := c.ledger.LedgerStats(ctx)

	c.mu.Lock()
	c.cached = &stats
	c.mu.Unlock()
	return stats
}

// Invalidate drops the cached stats and notifies every subscriber
// synchronously.
func (c *Control) Invalidate() {
	c.mu.Lock()
	c.cached = nil
	subs := make([]func(), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

// Reset clears the ledger, forgetting all history, then invalidates. The
// next generation recomputes everything from the rotation epoch.
func (c *Control) Reset(ctx context.Context) error {
	if err := c.ledger.Clear(ctx); err != nil {
		return err
	}
	c.Invalidate()
	return nil
}

// Subscribe registers a callback fired on every invalidation. The returned
// function unsubscribes.
func (c *Control) Subscribe(fn func()) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}
