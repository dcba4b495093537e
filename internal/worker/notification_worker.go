package worker

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-intake/internal/events"
)

// ErrQueueFull is returned by Enqueue when the worker cannot accept more events.
var ErrQueueFull = errors.New("notification queue full")

// Notifier delivers a single event.
type Notifier interface {
	Notify(ctx context.Context, event events.Event) error
}

// NotificationWorker moves notification delivery off the request path. The
// dispatcher hands events to Enqueue, and a single goroutine delivers them.
type NotificationWorker struct {
	notifier Notifier
	logger   *zap.Logger
	queue    chan events.Event
	wg       sync.WaitGroup
}

// NewNotificationWorker creates a worker with room for queueSize pending events.
func NewNotificationWorker(notifier Notifier, logger *zap.Logger, queueSize int) *NotificationWorker {
	if queueSize <= 0 {
		queueSize = 1
	}
	return &NotificationWorker{
		notifier: notifier,
		logger:   logger,
		queue:    make(chan events.Event, queueSize),
	}
}

// Start subscribes the worker to ticket events and begins delivery. Delivery
// stops when ctx is cancelled, after the queued events are drained.
func (w *NotificationWorker) Start(ctx context.Context, dispatcher events.Dispatcher) {
	dispatcher.Subscribe(events.EventTicketCreated, w.Enqueue)
	w.wg.Add(1)
	go w.run(ctx)
}

// Enqueue queues event without blocking the publisher.
func (w *NotificationWorker) Enqueue(_ context.Context, event events.Event) error {
	select {
	case w.queue <- event:
		return nil
	default:
		w.logger.Warn("dropping notification", zap.Int64("ticket_id", event.TicketID), zap.String("event_type", string(event.Type)))
		return ErrQueueFull
	}
}

// Wait blocks until the delivery goroutine has exited.
func (w *NotificationWorker) Wait() {
	w.wg.Wait()
}

func (w *NotificationWorker) run(ctx context.Context) {
	defer w.wg.Done()
	for {
		select {
		case event := <-w.queue:
			w.deliver(ctx, event)
		case <-ctx.Done():
			w.drain()
			return
		}
	}
}

func (w *NotificationWorker) drain() {
	for {
		select {
		case event := <-w.queue:
			w.deliver(context.Background(), event)
		default:
			return
		}
	}
}

func (w *NotificationWorker) deliver(ctx context.Context, event events.Event) {
	if err := w.notifier.Notify(ctx, event); err != nil {
		w.logger.Error("notification failed", zap.Int64("ticket_id", event.TicketID), zap.Error(err))
	}
}
