package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/artkulinaria/staffing-backoffice/internal/api/metrics"
	"github.com/artkulinaria/staffing-backoffice/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes inbound channel updates to a fixed set of workers
// using consistent hashing on the chat id, so updates from one chat are
// processed in arrival order while the webhook endpoint stays fast.
type Dispatcher struct {
	workers []chan ports.ChannelUpdate
	service ports.LinkService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.LinkService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.ChannelUpdate, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.ChannelUpdate, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands an update to the worker responsible for its chat and
// reports acceptance. The call never blocks: when the worker's buffer is
// full the update is refused so the webhook can answer with a retryable
// status instead of stalling the request.
func (d *Dispatcher) Enqueue(upd ports.ChannelUpdate) bool {
	i := d.shardIndex(upd.ChatID)
	select {
	case d.workers[i] <- upd:
		metrics.WebhookQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
		return true
	default:
		d.log.Warn().Int64("update_id", upd.UpdateID).Int("worker_id", i).Msg("worker queue full, update refused")
		return false
	}
}

// shardIndex maps a chat id deterministically to a worker index.
func (d *Dispatcher) shardIndex(chatID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(chatID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.ChannelUpdate) {
	for {
		select {
		case <-ctx.Done():
			return
		case upd, ok := <-ch:
			if !ok {
				return
			}
			metrics.WebhookQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
			if err := d.service.HandleUpdate(ctx, upd); err != nil {
				d.log.Error().Err(err).
					Int64("update_id", upd.UpdateID).
					Int("worker_id", id).
					Msg("channel update processing failed")
			}
		}
	}
}
