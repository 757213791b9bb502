package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/pkordes/article-catalog/internal/domain"
	"github.com/pkordes/article-catalog/internal/repo"
)

const (
	defaultTagRetries = 3
	defaultTagBackoff = 20 * time.Millisecond
)

// TagService resolves tag names to Tag entities, creating missing tags on
// first use. Identity is the normalized name; the display name of the first
// creator is kept.
type TagService struct {
	tags    repo.TagRepo
	retries uint64
	backoff time.Duration
}

// NewTagService constructs a TagService backed by the provided TagRepo.
func NewTagService(tags repo.TagRepo) *TagService {
	return &TagService{tags: tags, retries: defaultTagRetries, backoff: defaultTagBackoff}
}

// GetOrCreate returns the tag whose normalized name matches name, creating it
// if absent. Two callers racing on the same new name both get the single row
// that wins the unique constraint: the loser sees domain.ErrConflict from
// Insert and retries the lookup.
func (s *TagService) GetOrCreate(ctx context.Context, name string) (domain.Tag, error) {
	normalized := domain.NormalizeTagName(name)

	var result domain.Tag
	backoff := retry.WithMaxRetries(s.retries, retry.NewConstant(s.backoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		existing, err := s.tags.GetByNormalizedName(ctx, normalized)
		if err == nil {
			result = existing
			return nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		fresh, err := domain.NewTag(name)
		if err != nil {
			return err
		}
		created, err := s.tags.Insert(ctx, fresh)
		if errors.Is(err, domain.ErrConflict) {
			return retry.RetryableError(err)
		}
		if err != nil {
			return err
		}
		result = created
		return nil
	})
	if err != nil {
		return domain.Tag{}, fmt.Errorf("service.TagService.GetOrCreate: %w", err)
	}
	return result, nil
}

// GetOrCreateMany resolves every name, preserving input order.
func (s *TagService) GetOrCreateMany(ctx context.Context, names []string) ([]domain.Tag, error) {
	tags := make([]domain.Tag, 0, len(names))
	for _, name := range names {
		tag, err := s.GetOrCreate(ctx, name)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// List returns tags whose normalized name starts with prefix.
// Always returns a non-nil slice.
func (s *TagService) List(ctx context.Context, prefix string) ([]domain.Tag, error) {
	tags, err := s.tags.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("service.TagService.List: %w", err)
	}
	if tags == nil {
		tags = []domain.Tag{}
	}
	return tags, nil
}
