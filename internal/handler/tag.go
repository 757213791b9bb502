package handler

import (
	"context"

	"github.com/pkordes/article-catalog/internal/domain"
	"github.com/pkordes/article-catalog/internal/handler/gen"
)

// ListTags handles GET /api/tags.
// The optional ?q= query parameter filters tags by name prefix.
func (s *Server) ListTags(ctx context.Context, req gen.ListTagsRequestObject) (gen.ListTagsResponseObject, error) {
	tags, err := s.tags.List(ctx, derefString(req.Params.Q))
	if err != nil {
		return nil, err
	}

	resp := make([]gen.Tag, len(tags))
	for i, t := range tags {
		resp[i] = tagToResponse(t)
	}
	return gen.ListTags200JSONResponse(resp), nil
}

// tagToResponse converts a domain.Tag to the generated API response type.
func tagToResponse(t domain.Tag) gen.Tag {
	return gen.Tag{Id: t.ID, Name: t.Name}
}

func derefString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
