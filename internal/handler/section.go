package handler

import (
	"context"
	"errors"

	"github.com/pkordes/article-catalog/internal/domain"
	"github.com/pkordes/article-catalog/internal/handler/gen"
	"github.com/pkordes/article-catalog/internal/service"
)

// ListSections handles GET /api/sections.
// Sections are ordered by article count, largest first.
func (s *Server) ListSections(ctx context.Context, _ gen.ListSectionsRequestObject) (gen.ListSectionsResponseObject, error) {
	sections, err := s.sections.GetSections(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]gen.Section, len(sections))
	for i, sec := range sections {
		resp[i] = sectionToResponse(sec)
	}
	return gen.ListSections200JSONResponse(resp), nil
}

// ListSectionArticles handles GET /api/sections/{sectionId}/articles.
func (s *Server) ListSectionArticles(ctx context.Context, req gen.ListSectionArticlesRequestObject) (gen.ListSectionArticlesResponseObject, error) {
	articles, err := s.sections.GetSectionArticles(ctx, req.SectionId)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return gen.ListSectionArticles404JSONResponse(notFoundBody("section not found")), nil
		}
		return nil, err
	}

	resp := make([]gen.Article, len(articles))
	for i, a := range articles {
		resp[i] = articleToResponse(a)
	}
	return gen.ListSectionArticles200JSONResponse(resp), nil
}

func sectionToResponse(sec service.SectionView) gen.Section {
	tags := sec.Tags
	if tags == nil {
		tags = []string{}
	}
	return gen.Section{
		Id:            sec.ID,
		Title:         sec.Title,
		TagCount:      sec.TagCount,
		ArticlesCount: sec.ArticlesCount,
		Tags:          tags,
	}
}
