package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store groups the repositories that share one connection or transaction.
type Store interface {
	Articles() ArticleRepo
	Sections() SectionRepo
	Tags() TagRepo
	Outbox() OutboxRepo
}

// Tx is a Store whose writes become visible together on Commit.
// Rollback after a successful Commit is a no-op, so it is safe to defer.
type Tx interface {
	Store
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// UnitOfWork reads outside of a transaction through its Store methods and
// opens transactions with Begin.
type UnitOfWork interface {
	Store
	Begin(ctx context.Context) (Tx, error)
}

// WithinTx runs fn in a transaction and commits when fn returns nil.
// Any error from fn or Commit rolls the transaction back.
func WithinTx(ctx context.Context, uow UnitOfWork, fn func(tx Tx) error) error {
	tx, err := uow.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// pgStore builds repositories over any db: the pool or an open pgx.Tx.
type pgStore struct {
	db db
}

func (s pgStore) Articles() ArticleRepo { return NewArticleRepo(s.db) }
func (s pgStore) Sections() SectionRepo { return NewSectionRepo(s.db) }
func (s pgStore) Tags() TagRepo         { return NewTagRepo(s.db) }
func (s pgStore) Outbox() OutboxRepo    { return NewOutboxRepo(s.db) }

// PgUnitOfWork is the Postgres UnitOfWork backed by a connection pool.
type PgUnitOfWork struct {
	pgStore
	pool *pgxpool.Pool
}

// NewUnitOfWork wraps pool. Reads through the returned value use the pool
// directly; Begin opens a pgx transaction.
func NewUnitOfWork(pool *pgxpool.Pool) *PgUnitOfWork {
	return &PgUnitOfWork{pgStore: pgStore{db: pool}, pool: pool}
}

func (u *PgUnitOfWork) Begin(ctx context.Context) (Tx, error) {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.UnitOfWork.Begin: %w", err)
	}
	return NewTx(tx), nil
}

// pgTx adapts a pgx.Tx to Tx.
type pgTx struct {
	pgStore
	tx pgx.Tx
}

// NewTx wraps an already open pgx transaction. Integration tests use it to
// run repositories inside a transaction they roll back themselves.
func NewTx(tx pgx.Tx) Tx {
	return &pgTx{pgStore: pgStore{db: tx}, tx: tx}
}

func (t *pgTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.Tx.Commit: %w", err)
	}
	return nil
}

func (t *pgTx) Rollback(ctx context.Context) error {
	err := t.tx.Rollback(ctx)
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("repo.Tx.Rollback: %w", err)
	}
	return nil
}

var (
	_ UnitOfWork = (*PgUnitOfWork)(nil)
	_ Tx         = (*pgTx)(nil)
)
