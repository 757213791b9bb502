package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/pkordes/article-catalog/internal/repo"
)

// SectionService implements the read-side section use cases.
// Sections themselves are written only by the outbox handlers.
type SectionService struct {
	store repo.Store
}

// NewSectionService constructs a SectionService.
func NewSectionService(store repo.Store) *SectionService {
	return &SectionService{store: store}
}

// GetSections returns every section with its live article count, ordered by
// count descending. Equal counts keep the repository's order.
func (s *SectionService) GetSections(ctx context.Context) ([]SectionView, error) {
	sections, err := s.store.Sections().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.SectionService.GetSections: %w", err)
	}

	views := make([]SectionView, 0, len(sections))
	for _, sec := range sections {
		n, err := s.store.Articles().CountByTagSetKey(ctx, sec.TagSetKey)
		if err != nil {
			return nil, fmt.Errorf("service.SectionService.GetSections: %w", err)
		}
		views = append(views, toSectionView(sec, n))
	}

	sort.SliceStable(views, func(i, j int) bool { return views[i].ArticlesCount > views[j].ArticlesCount })
	return views, nil
}

// GetSectionArticles returns the articles whose tag set matches the
// section's, most recently created or updated first.
// Returns domain.ErrNotFound if the section does not exist.
func (s *SectionService) GetSectionArticles(ctx context.Context, sectionID uuid.UUID) ([]ArticleView, error) {
	section, err := s.store.Sections().GetByID(ctx, sectionID)
	if err != nil {
		return nil, fmt.Errorf("service.SectionService.GetSectionArticles: %w", err)
	}

	articles, err := s.store.Articles().ListByTagSetKey(ctx, section.TagSetKey)
	if err != nil {
		return nil, fmt.Errorf("service.SectionService.GetSectionArticles: %w", err)
	}

	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].SortDate().After(articles[j].SortDate())
	})

	views := make([]ArticleView, len(articles))
	for i, a := range articles {
		views[i] = toArticleView(a)
	}
	return views, nil
}
