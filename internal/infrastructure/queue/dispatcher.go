// Package queue implements the asynchronous welcome-notification dispatcher.
package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/backoffice/user-admin-api/internal/api/metrics"
	"github.com/backoffice/user-admin-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// SentChecker abstracts the notification dedup store (Redis).
type SentChecker interface {
	IsSent(ctx context.Context, userID string) (bool, error)
	MarkSent(ctx context.Context, userID string) error
}

// Dispatcher routes welcome notifications to a fixed set of workers using
// consistent hashing on the user id, so redeliveries for the same user are
// handled in order. Delivery is at-least-once; the dedup store suppresses
// double sends. Failures are logged and counted, never surfaced to the
// caller that created the user.
type Dispatcher struct {
	workers  []chan ports.UserCreatedEvent
	notifier ports.Notifier
	sent     SentChecker
	log      zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, notifier ports.Notifier, sent SentChecker, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan ports.UserCreatedEvent, numWorkers),
		notifier: notifier,
		sent:     sent,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.UserCreatedEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands an event to the worker responsible for its user id.
// Non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(event ports.UserCreatedEvent) {
	d.workers[d.shardIndex(event.User.ID)] <- event
}

func (d *Dispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32()) % len(d.workers)
}

// runWorker delivers events one at a time. The plaintext password inside the
// event must never reach a log line.
func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.UserCreatedEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			d.deliver(ctx, id, event)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, workerID int, event ports.UserCreatedEvent) {
	userID := event.User.ID

	isSent, err := d.sent.IsSent(ctx, userID)
	if err != nil {
		d.log.Warn().Err(err).Str("user_id", userID).Msg("dedup check failed, delivering anyway")
	} else if isSent {
		metrics.NotificationsDedupTotal.WithLabelValues("hit").Inc()
		d.log.Debug().Str("user_id", userID).Msg("duplicate welcome notification skipped")
		return
	}
	metrics.NotificationsDedupTotal.WithLabelValues("miss").Inc()

	if err := d.notifier.NotifyUserCreated(ctx, event); err != nil {
		metrics.NotificationsFailedTotal.Inc()
		d.log.Error().Err(err).
			Str("user_id", userID).
			Int("worker_id", workerID).
			Msg("welcome notification failed")
		return
	}

	if err := d.sent.MarkSent(ctx, userID); err != nil {
		d.log.Warn().Err(err).Str("user_id", userID).Msg("failed to set dedup key")
	}

	metrics.NotificationsSentTotal.Inc()
	d.log.Info().Str("user_id", userID).Msg("welcome notification sent")
}
