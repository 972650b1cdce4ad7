package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/staffdesk/admin-api/internal/api/metrics"
	"github.com/staffdesk/admin-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Sink is the delivery target for notifications, one call per message.
type Sink interface {
	Deliver(n ports.Notification)
}

// Dispatcher fans mutation notifications out to a fixed set of workers,
// sharding on the notification subject so deliveries for the same record
// stay ordered. It satisfies ports.Notifier: Notify never blocks the
// mutation path, a full shard drops the message instead.
type Dispatcher struct {
	workers []chan ports.Notification
	sink    Sink
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sink Sink, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.Notification, numWorkers),
		sink:    sink,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.Notification, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Notify enqueues a notification on the shard owning its subject.
func (d *Dispatcher) Notify(n ports.Notification) {
	idx := d.shardIndex(n.Subject)
	select {
	case d.workers[idx] <- n:
		metrics.NotificationsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		d.log.Warn().Str("subject", n.Subject).Msg("notification dropped, worker queue full")
		metrics.NotificationsDroppedTotal.Inc()
	}
}

// shardIndex maps a subject deterministically to a worker index.
func (d *Dispatcher) shardIndex(subject string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(subject))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.Notification) {
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			d.sink.Deliver(n)
			metrics.NotificationsDeliveredTotal.WithLabelValues(n.Variant).Inc()
			metrics.NotificationsQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
		}
	}
}
