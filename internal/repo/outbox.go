package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/article-catalog/internal/domain"
)

// OutboxRepo defines the persistence operations for the outbox_messages table.
type OutboxRepo interface {
	// Append inserts messages. Call it on the same transaction as the
	// aggregate write that produced them.
	Append(ctx context.Context, msgs ...domain.OutboxMessage) error

	// ListUnprocessed returns up to limit unprocessed messages, oldest first.
	ListUnprocessed(ctx context.Context, limit int) ([]domain.OutboxMessage, error)

	// MarkProcessed sets is_processed and processed_at on one message.
	// Returns domain.ErrNotFound if the message does not exist.
	MarkProcessed(ctx context.Context, id uuid.UUID, at time.Time) error

	// PurgeProcessed deletes processed messages whose processed_at is before
	// the cutoff and returns how many were removed.
	PurgeProcessed(ctx context.Context, before time.Time) (int64, error)
}

// pgOutboxRepo is the Postgres implementation of OutboxRepo.
type pgOutboxRepo struct {
	db db
}

// NewOutboxRepo constructs an OutboxRepo backed by the provided db connection.
func NewOutboxRepo(db db) OutboxRepo {
	return &pgOutboxRepo{db: db}
}

func (r *pgOutboxRepo) Append(ctx context.Context, msgs ...domain.OutboxMessage) error {
	const q = `
		INSERT INTO outbox_messages (id, event_type, event_data, occurred_on, created_at, processed_at, is_processed)
		VALUES (@id, @event_type, @event_data, @occurred_on, @created_at, @processed_at, @is_processed)`

	for _, m := range msgs {
		args := pgx.NamedArgs{
			"id":           m.ID,
			"event_type":   m.EventType,
			"event_data":   string(m.EventData), // jsonb accepts text
			"occurred_on":  m.OccurredOn,
			"created_at":   m.CreatedAt,
			"processed_at": m.ProcessedAt,
			"is_processed": m.IsProcessed,
		}
		if _, err := r.db.Exec(ctx, q, args); err != nil {
			return fmt.Errorf("repo.OutboxRepo.Append: %s: %w", m.EventType, err)
		}
	}
	return nil
}

func (r *pgOutboxRepo) ListUnprocessed(ctx context.Context, limit int) ([]domain.OutboxMessage, error) {
	const q = `
		SELECT id, event_type, event_data, occurred_on, created_at, processed_at, is_processed
		FROM outbox_messages
		WHERE is_processed = false
		ORDER BY created_at
		LIMIT @limit`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": limit})
	if err != nil {
		return nil, fmt.Errorf("repo.OutboxRepo.ListUnprocessed: %w", err)
	}
	defer rows.Close()

	msgs := []domain.OutboxMessage{}
	for rows.Next() {
		m, err := scanOutboxMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.OutboxRepo.ListUnprocessed: scan: %w", err)
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.OutboxRepo.ListUnprocessed: rows: %w", err)
	}
	return msgs, nil
}

func (r *pgOutboxRepo) MarkProcessed(ctx context.Context, id uuid.UUID, at time.Time) error {
	const q = `
		UPDATE outbox_messages
		SET is_processed = true,
		    processed_at = @processed_at
		WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "processed_at": at})
	if err != nil {
		return fmt.Errorf("repo.OutboxRepo.MarkProcessed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.OutboxRepo.MarkProcessed: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgOutboxRepo) PurgeProcessed(ctx context.Context, before time.Time) (int64, error) {
	const q = `
		DELETE FROM outbox_messages
		WHERE is_processed = true
		  AND processed_at < @before`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"before": before})
	if err != nil {
		return 0, fmt.Errorf("repo.OutboxRepo.PurgeProcessed: %w", err)
	}
	return tag.RowsAffected(), nil
}

// scanOutboxMessage maps a single database row into a domain.OutboxMessage.
func scanOutboxMessage(s scanner) (domain.OutboxMessage, error) {
	var (
		m           domain.OutboxMessage
		id          pgtype.UUID
		processedAt pgtype.Timestamptz
	)
	err := s.Scan(&id, &m.EventType, &m.EventData, &m.OccurredOn, &m.CreatedAt, &processedAt, &m.IsProcessed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.OutboxMessage{}, domain.ErrNotFound
		}
		return domain.OutboxMessage{}, err
	}
	m.ID = uuid.UUID(id.Bytes)
	if processedAt.Valid {
		ts := processedAt.Time
		m.ProcessedAt = &ts
	}
	return m, nil
}
