package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jules-hotel/hotel-management/internal/core/ports"
	"github.com/jules-hotel/hotel-management/internal/metrics"
)

const (
	defaultWorkers = 2
	channelBuffer  = 64
	sendTimeout    = 30 * time.Second
)

// ErrQueueFull is returned by Enqueue when the target worker has no free slot.
var ErrQueueFull = errors.New("mail queue full")

// Dispatcher delivers mail on a fixed set of workers, sharded by recipient so
// messages to one address are sent in order.
type Dispatcher struct {
	workers []chan ports.Mail
	mailer  ports.Mailer
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, mailer ports.Mailer, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.Mail, numWorkers),
		mailer:  mailer,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.Mail, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled;
// Wait blocks until they have.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue hands mail to the worker responsible for its recipient without
// blocking the caller.
func (d *Dispatcher) Enqueue(mail ports.Mail) error {
	idx := d.shardIndex(mail.To)
	select {
	case d.workers[idx] <- mail:
		metrics.MailQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
		return nil
	default:
		return ErrQueueFull
	}
}

// shardIndex maps a recipient deterministically to a worker index.
func (d *Dispatcher) shardIndex(recipient string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(recipient))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.Mail) {
	defer d.wg.Done()
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case mail := <-ch:
			metrics.MailQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))
			d.deliver(ctx, id, mail)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, id int, mail ports.Mail) {
	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	start := time.Now()
	err := d.mailer.Send(sendCtx, mail)
	result := "sent"
	if err != nil {
		result = "error"
		d.log.Error().Err(err).
			Str("subject", mail.Subject).
			Int("worker_id", id).
			Msg("mail delivery failed")
	}
	metrics.MailDeliveryDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
}
