// Package service contains the use cases of the article catalog.
// Services validate inputs, drive the aggregates and write aggregate state
// together with its outbox messages in one transaction. No SQL lives here.
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/article-catalog/internal/domain"
	"github.com/pkordes/article-catalog/internal/outbox"
	"github.com/pkordes/article-catalog/internal/repo"
)

// TagResolver maps tag names to stored tags, creating missing ones.
type TagResolver interface {
	GetOrCreateMany(ctx context.Context, names []string) ([]domain.Tag, error)
}

// ArticleService implements the article use cases.
type ArticleService struct {
	uow  repo.UnitOfWork
	tags TagResolver
}

// NewArticleService constructs an ArticleService.
func NewArticleService(uow repo.UnitOfWork, tags TagResolver) *ArticleService {
	return &ArticleService{uow: uow, tags: tags}
}

// Create validates the input, resolves the tags, and stores the new article
// with its ArticleCreated event.
// Returns domain.ErrValidation if title or tag names violate the rules.
func (s *ArticleService) Create(ctx context.Context, title string, tagNames []string) (ArticleView, error) {
	article, err := domain.NewArticle(title, tagNames)
	if err != nil {
		return ArticleView{}, fmt.Errorf("service.ArticleService.Create: %w", err)
	}

	tags, err := s.tags.GetOrCreateMany(ctx, tagNames)
	if err != nil {
		return ArticleView{}, fmt.Errorf("service.ArticleService.Create: %w", err)
	}
	if err := article.SetTags(tagIDs(tags), tags, true); err != nil {
		return ArticleView{}, fmt.Errorf("service.ArticleService.Create: %w", err)
	}

	err = repo.WithinTx(ctx, s.uow, func(tx repo.Tx) error {
		if err := tx.Articles().Create(ctx, article); err != nil {
			return err
		}
		return outbox.Write(ctx, tx.Outbox(), article.Events())
	})
	if err != nil {
		return ArticleView{}, fmt.Errorf("service.ArticleService.Create: %w", err)
	}
	article.ClearEvents()

	return toArticleView(article), nil
}

// Update replaces the title and the full tag list of an article and records
// ArticleTagsChanged.
// Returns domain.ErrNotFound if the article does not exist and
// domain.ErrValidation if the input violates the rules.
func (s *ArticleService) Update(ctx context.Context, id uuid.UUID, title string, tagNames []string) (ArticleView, error) {
	if err := domain.ValidateTitle(title); err != nil {
		return ArticleView{}, fmt.Errorf("service.ArticleService.Update: %w", err)
	}
	if err := domain.ValidateTagNames(tagNames); err != nil {
		return ArticleView{}, fmt.Errorf("service.ArticleService.Update: %w", err)
	}

	tags, err := s.tags.GetOrCreateMany(ctx, tagNames)
	if err != nil {
		return ArticleView{}, fmt.Errorf("service.ArticleService.Update: %w", err)
	}

	var article *domain.Article
	err = repo.WithinTx(ctx, s.uow, func(tx repo.Tx) error {
		var err error
		article, err = tx.Articles().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := article.UpdateTitle(title); err != nil {
			return err
		}
		if err := article.SetTags(tagIDs(tags), tags, false); err != nil {
			return err
		}
		if err := tx.Articles().Update(ctx, article); err != nil {
			return err
		}
		return outbox.Write(ctx, tx.Outbox(), article.Events())
	})
	if err != nil {
		return ArticleView{}, fmt.Errorf("service.ArticleService.Update: %w", err)
	}
	article.ClearEvents()

	return toArticleView(article), nil
}

// Delete removes an article and records ArticleDeleted with the tag names
// it had.
// Returns domain.ErrNotFound if the article does not exist.
func (s *ArticleService) Delete(ctx context.Context, id uuid.UUID) error {
	err := repo.WithinTx(ctx, s.uow, func(tx repo.Tx) error {
		article, err := tx.Articles().GetByID(ctx, id)
		if err != nil {
			return err
		}
		tags, err := tx.Tags().GetByIDs(ctx, article.TagIDs())
		if err != nil {
			return err
		}
		article.MarkAsDeleted(article.GetTagNames(tags))
		if err := tx.Articles().Delete(ctx, id); err != nil {
			return err
		}
		return outbox.Write(ctx, tx.Outbox(), article.Events())
	})
	if err != nil {
		return fmt.Errorf("service.ArticleService.Delete: %w", err)
	}
	return nil
}

// Get returns a single article.
// Returns domain.ErrNotFound if the article does not exist.
func (s *ArticleService) Get(ctx context.Context, id uuid.UUID) (ArticleView, error) {
	article, err := s.uow.Articles().GetByID(ctx, id)
	if err != nil {
		return ArticleView{}, fmt.Errorf("service.ArticleService.Get: %w", err)
	}
	return toArticleView(article), nil
}

func tagIDs(tags []domain.Tag) []uuid.UUID {
	ids := make([]uuid.UUID, len(tags))
	for i, t := range tags {
		ids[i] = t.ID
	}
	return ids
}
