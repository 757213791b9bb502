// Package memory is an in-process implementation of the repo interfaces.
// It enforces the constraints the services rely on (unique normalized tag
// names, unique section tag set keys, tag foreign keys) and gives
// transactions snapshot/restore semantics. One transaction runs at a time.
// Writes outside a transaction wait for the open one to finish; reads
// outside a transaction see its uncommitted writes. There is no isolation
// beyond that.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/article-catalog/internal/domain"
	"github.com/pkordes/article-catalog/internal/repo"
)

type state struct {
	tags     map[uuid.UUID]domain.Tag
	articles map[uuid.UUID]*domain.Article
	sections map[uuid.UUID]*domain.Section
	outbox   []domain.OutboxMessage
}

func newState() state {
	return state{
		tags:     map[uuid.UUID]domain.Tag{},
		articles: map[uuid.UUID]*domain.Article{},
		sections: map[uuid.UUID]*domain.Section{},
	}
}

func (s state) clone() state {
	c := newState()
	for k, v := range s.tags {
		c.tags[k] = v
	}
	for k, v := range s.articles {
		c.articles[k] = copyArticle(v)
	}
	for k, v := range s.sections {
		c.sections[k] = copySection(v)
	}
	c.outbox = append([]domain.OutboxMessage(nil), s.outbox...)
	return c
}

// Store implements repo.UnitOfWork in memory.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	data state
}

// New returns an empty Store.
func New() *Store {
	return &Store{data: newState()}
}

func (s *Store) Articles() repo.ArticleRepo { return articleRepo{s: s} }
func (s *Store) Sections() repo.SectionRepo { return sectionRepo{s: s} }
func (s *Store) Tags() repo.TagRepo         { return tagRepo{s: s} }
func (s *Store) Outbox() repo.OutboxRepo    { return outboxRepo{s: s} }

// lockWrite takes the data lock for a write. Writes made outside a
// transaction first wait for any open transaction to finish, so a rollback
// never discards them.
func (s *Store) lockWrite(inTx bool) func() {
	if !inTx {
		s.txMu.Lock()
	}
	s.mu.Lock()
	return func() {
		s.mu.Unlock()
		if !inTx {
			s.txMu.Unlock()
		}
	}
}

// Begin blocks until no other transaction is open, then snapshots the data.
func (s *Store) Begin(ctx context.Context) (repo.Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("memory.Store.Begin: %w", err)
	}
	s.txMu.Lock()
	s.mu.RLock()
	snap := s.data.clone()
	s.mu.RUnlock()
	return &tx{Store: s, snapshot: snap}, nil
}

type tx struct {
	*Store
	snapshot state
	done     bool
}

func (t *tx) Articles() repo.ArticleRepo { return articleRepo{s: t.Store, inTx: true} }
func (t *tx) Sections() repo.SectionRepo { return sectionRepo{s: t.Store, inTx: true} }
func (t *tx) Tags() repo.TagRepo         { return tagRepo{s: t.Store, inTx: true} }
func (t *tx) Outbox() repo.OutboxRepo    { return outboxRepo{s: t.Store, inTx: true} }

func (t *tx) Commit(context.Context) error {
	if t.done {
		return fmt.Errorf("memory.Tx.Commit: transaction already closed")
	}
	t.done = true
	t.txMu.Unlock()
	return nil
}

func (t *tx) Rollback(context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.mu.Lock()
	t.data = t.snapshot
	t.mu.Unlock()
	t.txMu.Unlock()
	return nil
}

// ---- tags ------------------------------------------------------------------

type tagRepo struct {
	s    *Store
	inTx bool
}

func (r tagRepo) GetByNormalizedName(_ context.Context, normalized string) (domain.Tag, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, t := range r.s.data.tags {
		if t.NormalizedName == normalized {
			return t, nil
		}
	}
	return domain.Tag{}, fmt.Errorf("memory.TagRepo.GetByNormalizedName: %w", domain.ErrNotFound)
}

func (r tagRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]domain.Tag, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []domain.Tag{}
	for _, id := range ids {
		if t, ok := r.s.data.tags[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r tagRepo) Insert(_ context.Context, tag domain.Tag) (domain.Tag, error) {
	defer r.s.lockWrite(r.inTx)()
	for _, t := range r.s.data.tags {
		if t.NormalizedName == tag.NormalizedName {
			return domain.Tag{}, fmt.Errorf("memory.TagRepo.Insert: %q: %w", tag.NormalizedName, domain.ErrConflict)
		}
	}
	if tag.CreatedAt.IsZero() {
		tag.CreatedAt = time.Now().UTC()
	}
	r.s.data.tags[tag.ID] = tag
	return tag, nil
}

func (r tagRepo) List(_ context.Context, prefix string) ([]domain.Tag, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	prefix = domain.NormalizeTagName(prefix)
	out := []domain.Tag{}
	for _, t := range r.s.data.tags {
		if strings.HasPrefix(t.NormalizedName, prefix) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NormalizedName < out[j].NormalizedName })
	return out, nil
}

// ---- articles --------------------------------------------------------------

type articleRepo struct {
	s    *Store
	inTx bool
}

func (r articleRepo) Create(_ context.Context, a *domain.Article) error {
	defer r.s.lockWrite(r.inTx)()
	if _, ok := r.s.data.articles[a.ID]; ok {
		return fmt.Errorf("memory.ArticleRepo.Create: %s: %w", a.ID, domain.ErrConflict)
	}
	if err := r.checkTags(a); err != nil {
		return fmt.Errorf("memory.ArticleRepo.Create: %w", err)
	}
	r.s.data.articles[a.ID] = copyArticle(a)
	return nil
}

func (r articleRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Article, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.data.articles[id]
	if !ok {
		return nil, fmt.Errorf("memory.ArticleRepo.GetByID: %w", domain.ErrNotFound)
	}
	return r.hydrate(a), nil
}

func (r articleRepo) Update(_ context.Context, a *domain.Article) error {
	defer r.s.lockWrite(r.inTx)()
	if _, ok := r.s.data.articles[a.ID]; !ok {
		return fmt.Errorf("memory.ArticleRepo.Update: %w", domain.ErrNotFound)
	}
	if err := r.checkTags(a); err != nil {
		return fmt.Errorf("memory.ArticleRepo.Update: %w", err)
	}
	r.s.data.articles[a.ID] = copyArticle(a)
	return nil
}

func (r articleRepo) Delete(_ context.Context, id uuid.UUID) error {
	defer r.s.lockWrite(r.inTx)()
	if _, ok := r.s.data.articles[id]; !ok {
		return fmt.Errorf("memory.ArticleRepo.Delete: %w", domain.ErrNotFound)
	}
	delete(r.s.data.articles, id)
	return nil
}

func (r articleRepo) ListByTagSetKey(_ context.Context, key domain.TagSetKey) ([]*domain.Article, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []*domain.Article{}
	for _, a := range r.s.data.articles {
		if a.TagSetKey.Equal(key) {
			out = append(out, r.hydrate(a))
		}
	}
	return out, nil
}

func (r articleRepo) CountByTagSetKey(_ context.Context, key domain.TagSetKey) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, a := range r.s.data.articles {
		if a.TagSetKey.Equal(key) {
			n++
		}
	}
	return n, nil
}

// checkTags enforces the article_tags foreign key and primary key.
func (r articleRepo) checkTags(a *domain.Article) error {
	seen := make(map[uuid.UUID]struct{}, len(a.Tags))
	for _, at := range a.Tags {
		if _, ok := r.s.data.tags[at.TagID]; !ok {
			return fmt.Errorf("unknown tag %s", at.TagID)
		}
		if _, dup := seen[at.TagID]; dup {
			return fmt.Errorf("tag %s linked twice: %w", at.TagID, domain.ErrConflict)
		}
		seen[at.TagID] = struct{}{}
	}
	return nil
}

// hydrate returns a copy with tag names filled in and tags in position order.
func (r articleRepo) hydrate(a *domain.Article) *domain.Article {
	c := copyArticle(a)
	for i := range c.Tags {
		c.Tags[i].Name = r.s.data.tags[c.Tags[i].TagID].Name
	}
	sort.SliceStable(c.Tags, func(i, j int) bool { return c.Tags[i].Position < c.Tags[j].Position })
	return c
}

// ---- sections --------------------------------------------------------------

type sectionRepo struct {
	s    *Store
	inTx bool
}

func (r sectionRepo) Create(_ context.Context, sec *domain.Section) (bool, error) {
	defer r.s.lockWrite(r.inTx)()
	for _, existing := range r.s.data.sections {
		if existing.MatchesTagSet(sec.TagSetKey) {
			return false, nil
		}
	}
	for _, st := range sec.Tags {
		if _, ok := r.s.data.tags[st.TagID]; !ok {
			return false, fmt.Errorf("memory.SectionRepo.Create: unknown tag %s", st.TagID)
		}
	}
	r.s.data.sections[sec.ID] = copySection(sec)
	return true, nil
}

func (r sectionRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Section, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sec, ok := r.s.data.sections[id]
	if !ok {
		return nil, fmt.Errorf("memory.SectionRepo.GetByID: %w", domain.ErrNotFound)
	}
	return r.hydrate(sec), nil
}

func (r sectionRepo) GetByTagSetKey(_ context.Context, key domain.TagSetKey) (*domain.Section, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, sec := range r.s.data.sections {
		if sec.MatchesTagSet(key) {
			return r.hydrate(sec), nil
		}
	}
	return nil, fmt.Errorf("memory.SectionRepo.GetByTagSetKey: %w", domain.ErrNotFound)
}

func (r sectionRepo) List(_ context.Context) ([]*domain.Section, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*domain.Section, 0, len(r.s.data.sections))
	for _, sec := range r.s.data.sections {
		out = append(out, r.hydrate(sec))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TagSetKey.String() < out[j].TagSetKey.String() })
	return out, nil
}

func (r sectionRepo) Delete(_ context.Context, id uuid.UUID) error {
	defer r.s.lockWrite(r.inTx)()
	if _, ok := r.s.data.sections[id]; !ok {
		return fmt.Errorf("memory.SectionRepo.Delete: %w", domain.ErrNotFound)
	}
	delete(r.s.data.sections, id)
	return nil
}

func (r sectionRepo) hydrate(sec *domain.Section) *domain.Section {
	c := copySection(sec)
	for i := range c.Tags {
		c.Tags[i].Name = r.s.data.tags[c.Tags[i].TagID].Name
	}
	return c
}

// ---- outbox ----------------------------------------------------------------

type outboxRepo struct {
	s    *Store
	inTx bool
}

func (r outboxRepo) Append(_ context.Context, msgs ...domain.OutboxMessage) error {
	defer r.s.lockWrite(r.inTx)()
	r.s.data.outbox = append(r.s.data.outbox, msgs...)
	return nil
}

func (r outboxRepo) ListUnprocessed(_ context.Context, limit int) ([]domain.OutboxMessage, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []domain.OutboxMessage{}
	for _, m := range r.s.data.outbox {
		if !m.IsProcessed {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r outboxRepo) MarkProcessed(_ context.Context, id uuid.UUID, at time.Time) error {
	defer r.s.lockWrite(r.inTx)()
	for i := range r.s.data.outbox {
		if r.s.data.outbox[i].ID == id {
			r.s.data.outbox[i].MarkProcessed(at)
			return nil
		}
	}
	return fmt.Errorf("memory.OutboxRepo.MarkProcessed: %w", domain.ErrNotFound)
}

func (r outboxRepo) PurgeProcessed(_ context.Context, before time.Time) (int64, error) {
	defer r.s.lockWrite(r.inTx)()
	kept := r.s.data.outbox[:0:0]
	var n int64
	for _, m := range r.s.data.outbox {
		if m.IsProcessed && m.ProcessedAt != nil && m.ProcessedAt.Before(before) {
			n++
			continue
		}
		kept = append(kept, m)
	}
	r.s.data.outbox = kept
	return n, nil
}

// Messages returns every stored outbox message in insertion order.
func (s *Store) Messages() []domain.OutboxMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.OutboxMessage(nil), s.data.outbox...)
}

// ---- copies ----------------------------------------------------------------

// copyArticle copies the persisted fields. Pending events are not persisted.
func copyArticle(a *domain.Article) *domain.Article {
	c := &domain.Article{
		ID:        a.ID,
		Title:     a.Title,
		TagSetKey: a.TagSetKey,
		CreatedAt: a.CreatedAt,
		Tags:      append([]domain.ArticleTag{}, a.Tags...),
	}
	if a.UpdatedAt != nil {
		ts := *a.UpdatedAt
		c.UpdatedAt = &ts
	}
	return c
}

func copySection(s *domain.Section) *domain.Section {
	c := *s
	c.Tags = append([]domain.SectionTag{}, s.Tags...)
	return &c
}

var (
	_ repo.UnitOfWork = (*Store)(nil)
	_ repo.Tx         = (*tx)(nil)
)
