package notify

import (
	"context"

	"github.com/Apurer/rocketshoes-cart/internal/domains/cart/ports"
)

var _ ports.Notifier = (*Dispatcher)(nil)

// Dispatcher fans each message out to the context collectors and every sink.
type Dispatcher struct {
	sinks []ports.Notifier
}

// NewDispatcher ignores nil sinks.
func NewDispatcher(sinks ...ports.Notifier) *Dispatcher {
	d := &Dispatcher{}
	for _, sink := range sinks {
		if sink != nil {
			d.sinks = append(d.sinks, sink)
		}
	}
	return d
}

func (d *Dispatcher) Error(ctx context.Context, message string) {
	recordAll(ctx, message)
	for _, sink := range d.sinks {
		sink.Error(ctx, message)
	}
}
