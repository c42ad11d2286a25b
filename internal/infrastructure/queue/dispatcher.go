package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/devlance/marketplace-api/internal/api/metrics"
	"github.com/devlance/marketplace-api/internal/core/domain"
	"github.com/devlance/marketplace-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes lifecycle notifications to a fixed set of workers using
// consistent hashing on the recipient id, guaranteeing per-recipient delivery
// ordering. Notification delivery is best-effort: when a channel is full or a
// write fails, the notification is dropped and counted, never retried, and
// never fails the operation that emitted it.
type Dispatcher struct {
	workers []chan domain.Notification
	service ports.NotificationService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.NotificationService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.Notification, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.Notification, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Notify sends a notification to the worker responsible for its recipient.
// Non-blocking: a full channel drops the notification.
func (d *Dispatcher) Notify(n domain.Notification) {
	if n.RecipientID == "" {
		return
	}
	idx := d.shardIndex(n.RecipientID)
	select {
	case d.workers[idx] <- n:
		metrics.NotificationsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.NotificationsDroppedTotal.Inc()
		d.log.Warn().Str("recipient_id", n.RecipientID).Msg("notification queue full, dropping")
	}
}

// shardIndex maps a recipient id deterministically to a worker index.
func (d *Dispatcher) shardIndex(recipientID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(recipientID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.Notification) {
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			metrics.NotificationsQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
			if err := d.service.Record(ctx, n); err != nil {
				metrics.NotificationsDroppedTotal.Inc()
				d.log.Error().Err(err).
					Str("recipient_id", n.RecipientID).
					Int("worker_id", id).
					Msg("notification persistence failed")
			}
		}
	}
}
