package watch

import (
	"context"
	"sort"
	"sync"
)

// RunFunc performs one scan over paths.
type RunFunc func(ctx context.Context, paths []string)

// Coalescer runs at most one scan at a time. Triggers that arrive while a
// scan is running are folded into a single follow-up run covering the union
// of their paths.
type Coalescer struct {
	run RunFunc

	mu      sync.Mutex
	running bool
	pending map[string]struct{}
	wg      sync.WaitGroup
}

// NewCoalescer returns a Coalescer that calls run.
func NewCoalescer(run RunFunc) *Coalescer {
	return &Coalescer{run: run, pending: make(map[string]struct{})}
}

// Trigger requests a scan of paths. It never blocks on a running scan.
func (c *Coalescer) Trigger(ctx context.Context, paths []string) {
	c.mu.Lock()
	for _, p := range paths {
		c.pending[p] = struct{}{}
	}
	if c.running {
		c.mu.Unlock()
		return
	}
	c.running = true
	batch := c.takeLocked()
	c.wg.Add(1)
	c.mu.Unlock()

	go c.loop(ctx, batch)
}

// Wait blocks until no scan is running.
func (c *Coalescer) Wait() {
	c.wg.Wait()
}

func (c *Coalescer) loop(ctx context.Context, batch []string) {
	defer c.wg.Done()
	for {
		if ctx.Err() == nil {
			c.run(ctx, batch)
		}

		c.mu.Lock()
		if len(c.pending) == 0 || ctx.Err() != nil {
			c.pending = make(map[string]struct{})
			c.running = false
			c.mu.Unlock()
			return
		}
		batch = c.takeLocked()
		c.mu.Unlock()
	}
}

func (c *Coalescer) takeLocked() []string {
	out := make([]string, 0, len(c.pending))
	for p := range c.pending {
		out = append(out, p)
	}
	sort.Strings(out)
	c.pending = make(map[string]struct{})
	return out
}
