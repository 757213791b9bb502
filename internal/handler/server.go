// Package handler implements the HTTP handlers for the article catalog API.
// All handlers are methods on Server, which implements gen.StrictServerInterface.
// Methods are split into resource files (article.go, section.go, tag.go) but
// all share the same Server struct.
package handler

import (
	"context"

	"github.com/google/uuid"

	"github.com/pkordes/article-catalog/internal/domain"
	"github.com/pkordes/article-catalog/internal/service"
)

// ArticleServicer defines the article operations the handlers depend on.
type ArticleServicer interface {
	Create(ctx context.Context, title string, tagNames []string) (service.ArticleView, error)
	Get(ctx context.Context, id uuid.UUID) (service.ArticleView, error)
	Update(ctx context.Context, id uuid.UUID, title string, tagNames []string) (service.ArticleView, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SectionServicer defines the section read operations the handlers depend on.
type SectionServicer interface {
	GetSections(ctx context.Context) ([]service.SectionView, error)
	GetSectionArticles(ctx context.Context, sectionID uuid.UUID) ([]service.ArticleView, error)
}

// TagServicer defines the tag read operations the handlers depend on.
type TagServicer interface {
	List(ctx context.Context, prefix string) ([]domain.Tag, error)
}

// Server implements gen.StrictServerInterface for all API endpoints.
// Wire it in main.go via gen.NewStrictHandlerWithOptions.
type Server struct {
	articles ArticleServicer
	sections SectionServicer
	tags     TagServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(articles ArticleServicer, sections SectionServicer, tags TagServicer) *Server {
	return &Server{articles: articles, sections: sections, tags: tags}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil, nil)
}
