package notify

import (
	"context"
	"sync"
)

type collectorKey struct{}

// Collector records the messages a single call produced.
type Collector struct {
	mu       sync.Mutex
	messages []string
}

// WithCollector attaches a fresh collector to ctx. Collectors nest: a message
// is recorded by every collector found on the context chain.
func WithCollector(ctx context.Context) (context.Context, *Collector) {
	c := &Collector{}
	parents, _ := ctx.Value(collectorKey{}).([]*Collector)
	chain := make([]*Collector, 0, len(parents)+1)
	chain = append(chain, parents...)
	chain = append(chain, c)
	return context.WithValue(ctx, collectorKey{}, chain), c
}

// Messages returns a copy of the recorded messages, oldest first.
func (c *Collector) Messages() []string {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.messages))
	copy(out, c.messages)
	return out
}

func (c *Collector) record(message string) {
	c.mu.Lock()
	c.messages = append(c.messages, message)
	c.mu.Unlock()
}

func recordAll(ctx context.Context, message string) {
	chain, _ := ctx.Value(collectorKey{}).([]*Collector)
	for _, c := range chain {
		c.record(message)
	}
}
