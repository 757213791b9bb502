// Package events holds the reactive handlers that keep Sections in step with
// article tag sets. They are registered on an outbox.Registry and run by the
// outbox processor, each delivery in its own transaction.
package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pkordes/article-catalog/internal/domain"
	"github.com/pkordes/article-catalog/internal/outbox"
	"github.com/pkordes/article-catalog/internal/repo"
)

// SectionMaintainer creates a Section the first time a tag combination is
// used and removes it once no article carries that combination.
// Every handler tolerates redelivery: creation checks for an existing
// section and removal re-counts live articles.
type SectionMaintainer struct {
	uow    repo.UnitOfWork
	logger *slog.Logger
}

// NewSectionMaintainer constructs a SectionMaintainer.
func NewSectionMaintainer(uow repo.UnitOfWork, logger *slog.Logger) *SectionMaintainer {
	if logger == nil {
		logger = slog.Default()
	}
	return &SectionMaintainer{uow: uow, logger: logger.With("component", "section_maintainer")}
}

// Register subscribes the handlers to reg.
func (m *SectionMaintainer) Register(reg *outbox.Registry) {
	outbox.Subscribe(reg, "sections.on_article_created", m.OnArticleCreated)
	outbox.Subscribe(reg, "sections.on_article_tags_changed", m.OnArticleTagsChanged)
	outbox.Subscribe(reg, "sections.on_article_deleted", m.OnArticleDeleted)
}

// OnArticleCreated ensures a section exists for the new article's tag set.
func (m *SectionMaintainer) OnArticleCreated(ctx context.Context, e domain.ArticleCreated) error {
	if err := m.ensureSection(ctx, e.TagNames); err != nil {
		return fmt.Errorf("events.OnArticleCreated: %w", err)
	}
	return nil
}

// OnArticleTagsChanged ensures a section for the new tag set and retires the
// previous tag set's section when nothing references it any more.
func (m *SectionMaintainer) OnArticleTagsChanged(ctx context.Context, e domain.ArticleTagsChanged) error {
	if err := m.ensureSection(ctx, e.NewTagNames); err != nil {
		return fmt.Errorf("events.OnArticleTagsChanged: %w", err)
	}
	if e.PreviousTagNames == nil {
		return nil
	}
	if domain.NewTagSetKey(e.PreviousTagNames).Equal(domain.NewTagSetKey(e.NewTagNames)) {
		return nil
	}
	if err := m.pruneSection(ctx, e.PreviousTagNames); err != nil {
		return fmt.Errorf("events.OnArticleTagsChanged: %w", err)
	}
	return nil
}

// OnArticleDeleted removes the section of the deleted article's tag set if
// no article still has that tag set.
func (m *SectionMaintainer) OnArticleDeleted(ctx context.Context, e domain.ArticleDeleted) error {
	if err := m.pruneSection(ctx, e.TagNames); err != nil {
		return fmt.Errorf("events.OnArticleDeleted: %w", err)
	}
	return nil
}

func (m *SectionMaintainer) ensureSection(ctx context.Context, tagNames []string) error {
	key := domain.NewTagSetKey(tagNames)

	return repo.WithinTx(ctx, m.uow, func(tx repo.Tx) error {
		_, err := tx.Sections().GetByTagSetKey(ctx, key)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		tags := make([]domain.Tag, 0, len(tagNames))
		for _, name := range tagNames {
			tag, err := tx.Tags().GetByNormalizedName(ctx, domain.NormalizeTagName(name))
			if errors.Is(err, domain.ErrNotFound) {
				m.logger.Warn("tag not found while creating section", "tag", name)
				continue
			}
			if err != nil {
				return err
			}
			tags = append(tags, tag)
		}
		if len(tags) == 0 {
			return nil
		}

		section := domain.NewSection(tags)
		created, err := tx.Sections().Create(ctx, section)
		if err != nil {
			return err
		}
		if created {
			m.logger.Info("section created", "section_id", section.ID, "tag_set_key", section.TagSetKey.String())
		}
		return nil
	})
}

func (m *SectionMaintainer) pruneSection(ctx context.Context, tagNames []string) error {
	key := domain.NewTagSetKey(tagNames)

	return repo.WithinTx(ctx, m.uow, func(tx repo.Tx) error {
		section, err := tx.Sections().GetByTagSetKey(ctx, key)
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		n, err := tx.Articles().CountByTagSetKey(ctx, key)
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}

		if err := tx.Sections().Delete(ctx, section.ID); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		m.logger.Info("section removed", "section_id", section.ID, "tag_set_key", key.String())
		return nil
	})
}
