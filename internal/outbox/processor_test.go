package outbox_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/article-catalog/internal/domain"
	"github.com/pkordes/article-catalog/internal/outbox"
	"github.com/pkordes/article-catalog/internal/repo/memory"
)

// ---- helpers ---------------------------------------------------------------

func deleted(tagNames ...string) domain.ArticleDeleted {
	return domain.ArticleDeleted{ArticleID: uuid.New(), TagNames: tagNames, OccurredAt: time.Now().UTC()}
}

// enqueue writes events to store with strictly increasing CreatedAt so the
// processing order is deterministic.
func enqueue(t *testing.T, store *memory.Store, events ...domain.Event) []domain.OutboxMessage {
	t.Helper()
	base := time.Now().UTC().Add(-time.Hour)
	msgs := make([]domain.OutboxMessage, len(events))
	for i, e := range events {
		m, err := outbox.Encode(e)
		require.NoError(t, err)
		m.CreatedAt = base.Add(time.Duration(i) * time.Second)
		msgs[i] = m
	}
	require.NoError(t, store.Outbox().Append(context.Background(), msgs...))
	return msgs
}

func processedIDs(store *memory.Store) map[uuid.UUID]bool {
	out := map[uuid.UUID]bool{}
	for _, m := range store.Messages() {
		out[m.ID] = m.IsProcessed
	}
	return out
}

// ---- ProcessBatch ----------------------------------------------------------

func TestProcessor_ProcessBatch_DeliversAndMarks(t *testing.T) {
	store := memory.New()
	reg := outbox.NewRegistry()
	var got []domain.ArticleDeleted
	outbox.Subscribe(reg, "collect", func(_ context.Context, e domain.ArticleDeleted) error {
		got = append(got, e)
		return nil
	})
	msgs := enqueue(t, store, deleted("a"), deleted("b"))
	p := outbox.NewProcessor(outbox.ProcessorConfig{Outbox: store.Outbox(), Registry: reg})

	res, err := p.ProcessBatch(context.Background())

	require.NoError(t, err)
	assert.Equal(t, outbox.BatchResult{Processed: 2}, res)
	require.Len(t, got, 2)
	assert.Equal(t, []string{"a"}, got[0].TagNames, "oldest first")
	state := processedIDs(store)
	assert.True(t, state[msgs[0].ID])
	assert.True(t, state[msgs[1].ID])
	for _, m := range store.Messages() {
		assert.NotNil(t, m.ProcessedAt)
	}
}

func TestProcessor_ProcessBatch_PartialFailureIsolated(t *testing.T) {
	store := memory.New()
	reg := outbox.NewRegistry()
	outbox.Subscribe(reg, "flaky", func(_ context.Context, e domain.ArticleDeleted) error {
		if len(e.TagNames) > 0 && e.TagNames[0] == "bad" {
			return errors.New("store unreachable")
		}
		return nil
	})
	msgs := enqueue(t, store, deleted("ok1"), deleted("bad"), deleted("ok2"))
	p := outbox.NewProcessor(outbox.ProcessorConfig{Outbox: store.Outbox(), Registry: reg})

	res, err := p.ProcessBatch(context.Background())

	require.NoError(t, err)
	assert.Equal(t, outbox.BatchResult{Processed: 2, Failed: 1}, res)
	state := processedIDs(store)
	assert.True(t, state[msgs[0].ID])
	assert.False(t, state[msgs[1].ID], "failed message must stay unprocessed")
	assert.True(t, state[msgs[2].ID], "later messages in the batch still run")

	// The failed message is retried on the next cycle.
	pending, err := store.Outbox().ListUnprocessed(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, msgs[1].ID, pending[0].ID)
}

func TestProcessor_ProcessBatch_HandlerPanicIsFailure(t *testing.T) {
	store := memory.New()
	reg := outbox.NewRegistry()
	outbox.Subscribe(reg, "panics", func(context.Context, domain.ArticleDeleted) error {
		panic("boom")
	})
	msgs := enqueue(t, store, deleted("x"))
	p := outbox.NewProcessor(outbox.ProcessorConfig{Outbox: store.Outbox(), Registry: reg})

	res, err := p.ProcessBatch(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, res.Failed)
	assert.False(t, processedIDs(store)[msgs[0].ID])
}

func TestProcessor_ProcessBatch_UnknownTypeMarkedProcessed(t *testing.T) {
	store := memory.New()
	unknown := domain.NewOutboxMessage("article.archived", []byte(`{}`), time.Now())
	malformed := domain.NewOutboxMessage("article.created", []byte(`{`), time.Now())
	require.NoError(t, store.Outbox().Append(context.Background(), unknown, malformed))
	p := outbox.NewProcessor(outbox.ProcessorConfig{Outbox: store.Outbox(), Registry: outbox.NewRegistry()})

	res, err := p.ProcessBatch(context.Background())

	require.NoError(t, err)
	assert.Equal(t, outbox.BatchResult{Skipped: 2}, res)
	state := processedIDs(store)
	assert.True(t, state[unknown.ID])
	assert.True(t, state[malformed.ID])
}

func TestProcessor_ProcessBatch_AllHandlersMustSucceed(t *testing.T) {
	store := memory.New()
	reg := outbox.NewRegistry()
	calls := 0
	outbox.Subscribe(reg, "first", func(context.Context, domain.ArticleDeleted) error { calls++; return nil })
	outbox.Subscribe(reg, "second", func(context.Context, domain.ArticleDeleted) error { return errors.New("nope") })
	msgs := enqueue(t, store, deleted("x"))
	p := outbox.NewProcessor(outbox.ProcessorConfig{Outbox: store.Outbox(), Registry: reg})

	_, err := p.ProcessBatch(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.False(t, processedIDs(store)[msgs[0].ID])
}

func TestProcessor_ProcessBatch_RespectsBatchSize(t *testing.T) {
	store := memory.New()
	enqueue(t, store, deleted("1"), deleted("2"), deleted("3"))
	p := outbox.NewProcessor(outbox.ProcessorConfig{Outbox: store.Outbox(), BatchSize: 2})

	res, err := p.ProcessBatch(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, res.Processed)
	pending, err := store.Outbox().ListUnprocessed(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

// ---- Purge -----------------------------------------------------------------

func TestProcessor_Purge(t *testing.T) {
	store := memory.New()
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	msgs := enqueue(t, store, deleted("old"), deleted("new"))
	require.NoError(t, store.Outbox().MarkProcessed(context.Background(), msgs[0].ID, now.Add(-10*24*time.Hour)))
	require.NoError(t, store.Outbox().MarkProcessed(context.Background(), msgs[1].ID, now.Add(-time.Hour)))
	reg := prometheus.NewRegistry()
	metrics := outbox.NewMetrics(reg)
	p := outbox.NewProcessor(outbox.ProcessorConfig{
		Outbox:    store.Outbox(),
		Metrics:   metrics,
		Retention: 7 * 24 * time.Hour,
		Now:       func() time.Time { return now },
	})

	require.NoError(t, p.Purge(context.Background()))

	left := store.Messages()
	require.Len(t, left, 1)
	assert.Equal(t, msgs[1].ID, left[0].ID)
	assert.Equal(t, 1.0, promtest.ToFloat64(metrics.Purged))
}

func TestProcessor_Purge_DisabledWithZeroRetention(t *testing.T) {
	store := memory.New()
	msgs := enqueue(t, store, deleted("old"))
	require.NoError(t, store.Outbox().MarkProcessed(context.Background(), msgs[0].ID, time.Now().Add(-365*24*time.Hour)))
	p := outbox.NewProcessor(outbox.ProcessorConfig{Outbox: store.Outbox()})

	require.NoError(t, p.Purge(context.Background()))

	assert.Len(t, store.Messages(), 1)
}

// ---- Metrics ---------------------------------------------------------------

func TestProcessor_Metrics(t *testing.T) {
	store := memory.New()
	reg := outbox.NewRegistry()
	outbox.Subscribe(reg, "flaky", func(_ context.Context, e domain.ArticleDeleted) error {
		if e.TagNames[0] == "bad" {
			return errors.New("fail")
		}
		return nil
	})
	enqueue(t, store, deleted("ok"), deleted("bad"))
	require.NoError(t, store.Outbox().Append(context.Background(),
		domain.NewOutboxMessage("article.archived", []byte(`{}`), time.Now())))
	promReg := prometheus.NewRegistry()
	metrics := outbox.NewMetrics(promReg)
	p := outbox.NewProcessor(outbox.ProcessorConfig{Outbox: store.Outbox(), Registry: reg, Metrics: metrics})

	_, err := p.ProcessBatch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1.0, promtest.ToFloat64(metrics.Messages.WithLabelValues("article.deleted", outbox.OutcomeProcessed)))
	assert.Equal(t, 1.0, promtest.ToFloat64(metrics.Messages.WithLabelValues("article.deleted", outbox.OutcomeFailed)))
	assert.Equal(t, 1.0, promtest.ToFloat64(metrics.Messages.WithLabelValues("article.archived", outbox.OutcomeSkipped)))
	assert.Equal(t, 1, promtest.CollectAndCount(metrics.BatchDuration))
}

// ---- Run / lock ------------------------------------------------------------

type fakeLocker struct {
	mu        sync.Mutex
	acquire   bool
	err       error
	extendErr error
	acquired  int
	extended  int
	released  int
}

func (l *fakeLocker) Acquire(context.Context, string, time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.acquire && l.err == nil {
		l.acquired++
	}
	return l.acquire, l.err
}

func (l *fakeLocker) Extend(context.Context, string, time.Duration) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.extended++
	return l.extendErr
}

func (l *fakeLocker) Release(context.Context, string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.released++
	return nil
}

var _ outbox.Locker = (*fakeLocker)(nil)

func TestProcessor_Run_ProcessesUntilCancelled(t *testing.T) {
	store := memory.New()
	done := make(chan struct{}, 1)
	reg := outbox.NewRegistry()
	outbox.Subscribe(reg, "signal", func(context.Context, domain.ArticleDeleted) error {
		done <- struct{}{}
		return nil
	})
	enqueue(t, store, deleted("x"))
	lock := &fakeLocker{acquire: true}
	p := outbox.NewProcessor(outbox.ProcessorConfig{
		Outbox: store.Outbox(), Registry: reg, Lock: lock, PollInterval: 10 * time.Millisecond,
	})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(ctx) }()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handler was not invoked")
	}
	cancel()

	select {
	case err := <-errCh:
		assert.NoError(t, err, "cancellation is a clean exit")
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	lock.mu.Lock()
	defer lock.mu.Unlock()
	assert.GreaterOrEqual(t, lock.acquired, 1)
	assert.Equal(t, lock.acquired, lock.released)
}

func TestProcessor_Run_SkipsCycleWhenLockHeld(t *testing.T) {
	store := memory.New()
	msgs := enqueue(t, store, deleted("x"))
	p := outbox.NewProcessor(outbox.ProcessorConfig{
		Outbox: store.Outbox(), Lock: &fakeLocker{acquire: false}, PollInterval: 5 * time.Millisecond,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	require.NoError(t, p.Run(ctx))

	assert.False(t, processedIDs(store)[msgs[0].ID])
}

func TestProcessor_Run_ExtendsLockBeforeEachMessage(t *testing.T) {
	store := memory.New()
	done := make(chan struct{}, 3)
	reg := outbox.NewRegistry()
	outbox.Subscribe(reg, "signal", func(context.Context, domain.ArticleDeleted) error {
		done <- struct{}{}
		return nil
	})
	enqueue(t, store, deleted("a"), deleted("b"), deleted("c"))
	lock := &fakeLocker{acquire: true}
	p := outbox.NewProcessor(outbox.ProcessorConfig{
		Outbox: store.Outbox(), Registry: reg, Lock: lock, PollInterval: time.Hour,
	})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(ctx) }()

	for i := 0; i < 3; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("handler was not invoked for every message")
		}
	}
	cancel()
	require.NoError(t, <-errCh)

	lock.mu.Lock()
	defer lock.mu.Unlock()
	assert.Equal(t, 3, lock.extended)
	assert.Equal(t, 1, lock.released)
}

func TestProcessor_Run_StopsBatchWhenLockLost(t *testing.T) {
	store := memory.New()
	calls := 0
	reg := outbox.NewRegistry()
	outbox.Subscribe(reg, "count", func(context.Context, domain.ArticleDeleted) error {
		calls++
		return nil
	})
	msgs := enqueue(t, store, deleted("a"), deleted("b"))
	lock := &fakeLocker{acquire: true, extendErr: errors.New("lock not held")}
	p := outbox.NewProcessor(outbox.ProcessorConfig{
		Outbox: store.Outbox(), Registry: reg, Lock: lock, PollInterval: 5 * time.Millisecond,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	require.NoError(t, p.Run(ctx))

	assert.Zero(t, calls, "no message is delivered once the lock is gone")
	state := processedIDs(store)
	assert.False(t, state[msgs[0].ID])
	assert.False(t, state[msgs[1].ID])
	lock.mu.Lock()
	defer lock.mu.Unlock()
	assert.GreaterOrEqual(t, lock.extended, 1)
	assert.Equal(t, lock.acquired, lock.released)
}
