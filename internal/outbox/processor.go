package outbox

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pkordes/article-catalog/internal/domain"
	"github.com/pkordes/article-catalog/internal/repo"
)

const (
	// DefaultPollInterval is the delay between polling cycles.
	DefaultPollInterval = 5 * time.Second
	// DefaultBatchSize is the number of messages claimed per cycle.
	DefaultBatchSize = 50

	lockName = "outbox-processor"
)

// Locker coordinates processors running in several replicas.
// Acquire returns false when another instance holds the lock. Extend resets
// the TTL of a lock this instance holds and fails once it has been lost.
type Locker interface {
	Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error)
	Extend(ctx context.Context, name string, ttl time.Duration) error
	Release(ctx context.Context, name string) error
}

// ProcessorConfig holds configuration for the processor.
type ProcessorConfig struct {
	Outbox       repo.OutboxRepo
	Registry     *Registry
	Lock         Locker // optional
	Metrics      *Metrics
	Logger       *slog.Logger
	PollInterval time.Duration // default DefaultPollInterval
	BatchSize    int           // default DefaultBatchSize
	Retention    time.Duration // processed rows older than this are purged; 0 disables
	Now          func() time.Time
}

// Processor drains unprocessed outbox messages on a fixed interval.
// Batches run sequentially. A handler error leaves its message for the next
// cycle without affecting the rest of the batch; undecodable messages are
// marked processed so they are never retried.
type Processor struct {
	outbox    repo.OutboxRepo
	registry  *Registry
	lock      Locker
	metrics   *Metrics
	logger    *slog.Logger
	interval  time.Duration
	batchSize int
	retention time.Duration
	now       func() time.Time
}

// BatchResult counts the outcomes of one ProcessBatch call.
type BatchResult struct {
	Processed int
	Skipped   int
	Failed    int
}

func (r BatchResult) total() int { return r.Processed + r.Skipped + r.Failed }

// NewProcessor creates a processor.
func NewProcessor(cfg ProcessorConfig) *Processor {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	interval := cfg.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	now := cfg.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	registry := cfg.Registry
	if registry == nil {
		registry = NewRegistry()
	}
	return &Processor{
		outbox:    cfg.Outbox,
		registry:  registry,
		lock:      cfg.Lock,
		metrics:   cfg.Metrics,
		logger:    logger.With("component", "outbox_processor"),
		interval:  interval,
		batchSize: batchSize,
		retention: cfg.Retention,
		now:       now,
	}
}

// Run processes a batch immediately and then once per interval until ctx is
// cancelled. It returns nil on cancellation; a batch in flight finishes its
// current message first.
func (p *Processor) Run(ctx context.Context) error {
	p.logger.Info("outbox processor starting", "poll_interval", p.interval, "batch_size", p.batchSize)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		p.cycle(ctx)

		select {
		case <-ctx.Done():
			p.logger.Info("outbox processor stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// cycle runs one batch under the optional lock, then applies retention.
// The lock TTL is refreshed before every message, so a long batch keeps it.
func (p *Processor) cycle(ctx context.Context) {
	var keepAlive func(context.Context) error
	if p.lock != nil {
		ttl := 2 * p.interval
		acquired, err := p.lock.Acquire(ctx, lockName, ttl)
		if err != nil {
			p.logger.Warn("failed to acquire outbox lock", "error", err)
			return
		}
		if !acquired {
			p.logger.Debug("outbox lock held by another instance, skipping cycle")
			return
		}
		defer func() {
			// The cycle context may already be cancelled; release regardless.
			if err := p.lock.Release(context.WithoutCancel(ctx), lockName); err != nil {
				p.logger.Warn("failed to release outbox lock", "error", err)
			}
		}()
		keepAlive = func(ctx context.Context) error {
			return p.lock.Extend(ctx, lockName, ttl)
		}
	}

	if _, err := p.processBatch(ctx, keepAlive); err != nil && !errors.Is(err, context.Canceled) {
		p.logger.Error("outbox batch failed", "error", err)
	}
	if err := p.Purge(ctx); err != nil && !errors.Is(err, context.Canceled) {
		p.logger.Error("outbox purge failed", "error", err)
	}
}

// ProcessBatch claims up to BatchSize unprocessed messages, oldest first, and
// delivers each to its handlers. Only a failure to load the batch is returned;
// per-message failures are logged and counted in the result.
func (p *Processor) ProcessBatch(ctx context.Context) (BatchResult, error) {
	return p.processBatch(ctx, nil)
}

// processBatch stops early, leaving the rest for a later cycle, when
// keepAlive reports that the lock was lost.
func (p *Processor) processBatch(ctx context.Context, keepAlive func(context.Context) error) (BatchResult, error) {
	var res BatchResult
	start := time.Now()
	defer func() { p.metrics.ObserveBatch(time.Since(start).Seconds()) }()

	msgs, err := p.outbox.ListUnprocessed(ctx, p.batchSize)
	if err != nil {
		return res, fmt.Errorf("outbox.Processor.ProcessBatch: %w", err)
	}
	if len(msgs) == 0 {
		return res, nil
	}
	p.logger.Info("processing outbox batch", "count", len(msgs))

	for _, m := range msgs {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		if keepAlive != nil {
			if err := keepAlive(ctx); err != nil {
				p.logger.Warn("outbox lock lost, stopping batch", "error", err, "remaining", len(msgs)-res.total())
				return res, nil
			}
		}
		switch p.processMessage(ctx, m) {
		case OutcomeProcessed:
			res.Processed++
		case OutcomeSkipped:
			res.Skipped++
		default:
			res.Failed++
		}
	}
	return res, nil
}

func (p *Processor) processMessage(ctx context.Context, m domain.OutboxMessage) string {
	log := p.logger.With("message_id", m.ID, "event_type", m.EventType)

	event, err := Decode(m)
	if err != nil {
		log.Warn("skipping undecodable outbox message", "error", err)
		if err := p.outbox.MarkProcessed(ctx, m.ID, p.now()); err != nil {
			log.Error("failed to mark outbox message processed", "error", err)
			p.metrics.IncMessage(m.EventType, OutcomeFailed)
			return OutcomeFailed
		}
		p.metrics.IncMessage(m.EventType, OutcomeSkipped)
		return OutcomeSkipped
	}

	if err := p.dispatch(ctx, event); err != nil {
		log.Error("outbox handler failed; message left for retry", "error", err)
		p.metrics.IncMessage(m.EventType, OutcomeFailed)
		return OutcomeFailed
	}

	if err := p.outbox.MarkProcessed(ctx, m.ID, p.now()); err != nil {
		log.Error("failed to mark outbox message processed", "error", err)
		p.metrics.IncMessage(m.EventType, OutcomeFailed)
		return OutcomeFailed
	}
	p.metrics.IncMessage(m.EventType, OutcomeProcessed)
	return OutcomeProcessed
}

// dispatch runs the handlers and converts a panic into an error so one bad
// message cannot stop the loop.
func (p *Processor) dispatch(ctx context.Context, e domain.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return p.registry.Dispatch(ctx, e)
}

// Purge deletes processed messages older than the retention window.
// It is a no-op when retention is zero.
func (p *Processor) Purge(ctx context.Context) error {
	if p.retention <= 0 {
		return nil
	}
	n, err := p.outbox.PurgeProcessed(ctx, p.now().Add(-p.retention))
	if err != nil {
		return fmt.Errorf("outbox.Processor.Purge: %w", err)
	}
	if n > 0 {
		p.logger.Info("purged processed outbox messages", "count", n)
	}
	p.metrics.AddPurged(n)
	return nil
}
