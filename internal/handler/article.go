package handler

import (
	"context"
	"errors"

	"github.com/pkordes/article-catalog/internal/domain"
	"github.com/pkordes/article-catalog/internal/handler/gen"
	"github.com/pkordes/article-catalog/internal/service"
)

// CreateArticle handles POST /api/articles.
func (s *Server) CreateArticle(ctx context.Context, req gen.CreateArticleRequestObject) (gen.CreateArticleResponseObject, error) {
	if req.Body == nil {
		return gen.CreateArticle400JSONResponse(requestBody("request body is required")), nil
	}

	created, err := s.articles.Create(ctx, req.Body.Title, tagsFromRequest(req.Body))
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return gen.CreateArticle400JSONResponse(validationBody(err)), nil
		}
		return nil, err
	}

	return gen.CreateArticle201JSONResponse(articleToResponse(created)), nil
}

// GetArticle handles GET /api/articles/{id}.
func (s *Server) GetArticle(ctx context.Context, req gen.GetArticleRequestObject) (gen.GetArticleResponseObject, error) {
	article, err := s.articles.Get(ctx, req.Id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return gen.GetArticle404JSONResponse(notFoundBody("article not found")), nil
		}
		return nil, err
	}

	return gen.GetArticle200JSONResponse(articleToResponse(article)), nil
}

// UpdateArticle handles PUT /api/articles/{id}.
// The request replaces both the title and the full tag list.
func (s *Server) UpdateArticle(ctx context.Context, req gen.UpdateArticleRequestObject) (gen.UpdateArticleResponseObject, error) {
	if req.Body == nil {
		return gen.UpdateArticle400JSONResponse(requestBody("request body is required")), nil
	}

	updated, err := s.articles.Update(ctx, req.Id, req.Body.Title, tagsFromRequest(req.Body))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return gen.UpdateArticle404JSONResponse(notFoundBody("article not found")), nil
		}
		if errors.Is(err, domain.ErrValidation) {
			return gen.UpdateArticle400JSONResponse(validationBody(err)), nil
		}
		return nil, err
	}

	return gen.UpdateArticle200JSONResponse(articleToResponse(updated)), nil
}

// DeleteArticle handles DELETE /api/articles/{id}.
func (s *Server) DeleteArticle(ctx context.Context, req gen.DeleteArticleRequestObject) (gen.DeleteArticleResponseObject, error) {
	err := s.articles.Delete(ctx, req.Id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return gen.DeleteArticle404JSONResponse(notFoundBody("article not found")), nil
		}
		return nil, err
	}

	return gen.DeleteArticle204Response{}, nil
}

// --- mapping helpers --------------------------------------------------------

func tagsFromRequest(body *gen.ArticleRequest) []string {
	if body.Tags == nil {
		return nil
	}
	return *body.Tags
}

// articleToResponse converts a service.ArticleView into the generated gen.Article type.
// Tags is always a JSON array, never null.
func articleToResponse(a service.ArticleView) gen.Article {
	tags := a.Tags
	if tags == nil {
		tags = []string{}
	}
	return gen.Article{
		Id:        a.ID,
		Title:     a.Title,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
		Tags:      tags,
	}
}
