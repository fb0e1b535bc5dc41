package audit

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/metrics"
)

type Event struct {
	UserID   *int64
	Role     string
	Action   string
	Entity   string
	EntityID *int64
	Metadata any
}

// Actor identifies who triggered an audited action.
type Actor struct {
	UserID int64
	Role   string
}

// Event builds an event attributed to a. A zero Actor leaves the user empty.
func (a Actor) Event(action, entity string, entityID int64, metadata any) Event {
	ev := Event{
		Role:     a.Role,
		Action:   action,
		Entity:   entity,
		EntityID: &entityID,
		Metadata: metadata,
	}
	if a.UserID != 0 {
		uid := a.UserID
		ev.UserID = &uid
	}
	return ev
}

type Dispatcher struct {
	logger *Logger
	log    *zap.Logger
	queue  chan Event

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(logger *Logger, buffer int, log *zap.Logger) *Dispatcher {
	if buffer <= 0 {
		buffer = 100
	}
	if log == nil {
		log = zap.NewNop()
	}
	d := &Dispatcher{
		logger: logger,
		log:    log,
		queue:  make(chan Event, buffer),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		if err := d.logger.Log(context.Background(), ev); err != nil {
			d.log.Error("audit write failed",
				zap.String("action", ev.Action),
				zap.String("entity", ev.Entity),
				zap.Error(err),
			)
		}
	}
}

// Dispatch queues ev without blocking. When the queue is full the event is
// dropped; auditing never fails a request. A nil Dispatcher discards events.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}

	select {
	case d.queue <- ev:
	default:
		metrics.AuditEventsDroppedTotal.Inc()
		d.log.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}

// Close stops accepting events and waits for the queue to drain or ctx to end.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
