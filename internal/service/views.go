package service

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/article-catalog/internal/domain"
)

// ArticleView is the read model returned for an article.
// Tags holds display names in position order.
type ArticleView struct {
	ID        uuid.UUID
	Title     string
	CreatedAt time.Time
	UpdatedAt *time.Time
	Tags      []string
}

// SectionView is the read model returned for a section.
// Tags holds display names sorted lexicographically.
type SectionView struct {
	ID            uuid.UUID
	Title         string
	TagCount      int
	ArticlesCount int
	Tags          []string
}

func toArticleView(a *domain.Article) ArticleView {
	ordered := append([]domain.ArticleTag(nil), a.Tags...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Position < ordered[j].Position })
	names := make([]string, 0, len(ordered))
	for _, at := range ordered {
		names = append(names, at.Name)
	}
	return ArticleView{
		ID:        a.ID,
		Title:     a.Title,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
		Tags:      names,
	}
}

func toSectionView(s *domain.Section, articles int) SectionView {
	return SectionView{
		ID:            s.ID,
		Title:         s.Title,
		TagCount:      s.TagCount,
		ArticlesCount: articles,
		Tags:          s.TagNames(),
	}
}
