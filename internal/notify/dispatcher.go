package notify

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Dispatcher decouples notification delivery from the transition that emits
// the event: transitions commit first, then hand the event here. Delivery is
// best-effort; a failed or dropped notification never affects the committed
// transition.
type Dispatcher struct {
	notifier Notifier
	events   chan Event
	logger   zerolog.Logger
	timeout  time.Duration

	mu     sync.Mutex
	closed bool
	done   chan struct{}
}

// NewDispatcher starts a dispatcher with a single delivery worker and a
// buffered queue of the given size.
func NewDispatcher(notifier Notifier, queueSize int, logger zerolog.Logger) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 64
	}

	d := &Dispatcher{
		notifier: notifier,
		events:   make(chan Event, queueSize),
		logger:   logger.With().Str("component", "notify-dispatcher").Logger(),
		timeout:  10 * time.Second,
		done:     make(chan struct{}),
	}

	go d.run()

	return d
}

// Emit queues an event for delivery. When the queue is full, or the
// dispatcher is already closed, the event is dropped with a warning rather
// than blocking the caller.
func (d *Dispatcher) Emit(event Event) {
	if event.Recipient == "" || event.Template == "" {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		d.logger.Warn().
			Str("order_id", event.OrderID).
			Str("template", event.Template).
			Msg("dispatcher closed, event dropped")
		return
	}

	select {
	case d.events <- event:
	default:
		d.logger.Warn().
			Str("order_id", event.OrderID).
			Str("template", event.Template).
			Msg("notification queue full, event dropped")
	}
}

// Close stops the worker after draining queued events.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.events)
	d.mu.Unlock()

	<-d.done
}

func (d *Dispatcher) run() {
	defer close(d.done)

	for event := range d.events {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		err := d.notifier.Notify(ctx, event.Recipient, event.Template, map[string]string{
			"orderId":     event.OrderID,
			"orderNumber": event.OrderNumber,
			"status":      string(event.Status),
		})
		cancel()

		if err != nil {
			d.logger.Error().
				Err(err).
				Str("order_id", event.OrderID).
				Str("template", event.Template).
				Msg("notification delivery failed")
			continue
		}

		d.logger.Debug().
			Str("order_id", event.OrderID).
			Str("template", event.Template).
			Msg("notification delivered")
	}
}
