package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/roamstead/camper-rentals/internal/api/metrics"
	"github.com/roamstead/camper-rentals/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Receiver consumes session-change events in order. Implemented by the
// resolver registry.
type Receiver interface {
	Apply(ctx context.Context, ev ports.SessionEvent)
}

// Dispatcher routes identity-provider session events to a fixed set of
// workers using consistent hashing on the subject id, guaranteeing that
// events for one identity are applied in arrival order. Ordered delivery is
// what lets the resolver's affinity guard reason about "latest" sessions.
type Dispatcher struct {
	workers  []chan ports.SessionEvent
	receiver Receiver
	log      zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, receiver Receiver, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan ports.SessionEvent, numWorkers),
		receiver: receiver,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.SessionEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends an event to the worker responsible for its subject.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(event ports.SessionEvent) {
	i := d.shardIndex(event.SubjectID)
	d.workers[i] <- event
	metrics.SessionEventsQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
}

// EnqueueBatch enqueues multiple events preserving per-subject ordering.
func (d *Dispatcher) EnqueueBatch(events []ports.SessionEvent) {
	for _, e := range events {
		d.Enqueue(e)
	}
}

// shardIndex maps a subject id deterministically to a worker index.
func (d *Dispatcher) shardIndex(subjectID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(subjectID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.SessionEvent) {
	worker := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			d.receiver.Apply(ctx, event)
			metrics.SessionEventsQueueDepth.WithLabelValues(worker).Set(float64(len(ch)))
		}
	}
}
