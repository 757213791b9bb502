package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/article-catalog/internal/domain"
	"github.com/pkordes/article-catalog/internal/handler"
	"github.com/pkordes/article-catalog/internal/handler/gen"
	"github.com/pkordes/article-catalog/internal/service"
)

// mockArticleServicer is a test double for handler.ArticleServicer.
// Set only the method fields your test needs.
type mockArticleServicer struct {
	create func(ctx context.Context, title string, tags []string) (service.ArticleView, error)
	get    func(ctx context.Context, id uuid.UUID) (service.ArticleView, error)
	update func(ctx context.Context, id uuid.UUID, title string, tags []string) (service.ArticleView, error)
	delete func(ctx context.Context, id uuid.UUID) error
}

func (m *mockArticleServicer) Create(ctx context.Context, title string, tags []string) (service.ArticleView, error) {
	return m.create(ctx, title, tags)
}
func (m *mockArticleServicer) Get(ctx context.Context, id uuid.UUID) (service.ArticleView, error) {
	return m.get(ctx, id)
}
func (m *mockArticleServicer) Update(ctx context.Context, id uuid.UUID, title string, tags []string) (service.ArticleView, error) {
	return m.update(ctx, id, title, tags)
}
func (m *mockArticleServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

// compile-time check: mockArticleServicer must satisfy handler.ArticleServicer.
var _ handler.ArticleServicer = (*mockArticleServicer)(nil)

// ---- helpers ---------------------------------------------------------------

// newArticleHandler wires a Server with the given mock into the chi router
// the same way main.go does.
func newArticleHandler(svc handler.ArticleServicer) http.Handler {
	return handler.NewHTTPHandler(handler.NewServer(svc, nil, nil), nil)
}

func articleFixture() service.ArticleView {
	return service.ArticleView{
		ID:        uuid.New(),
		Title:     "Go generics in practice",
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Tags:      []string{"Go", "Generics"},
	}
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) gen.ErrorResponse {
	t.Helper()
	var resp gen.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

// ---- POST /api/articles ----------------------------------------------------

func TestCreateArticle_201(t *testing.T) {
	fixture := articleFixture()
	var gotTitle string
	var gotTags []string
	svc := &mockArticleServicer{
		create: func(_ context.Context, title string, tags []string) (service.ArticleView, error) {
			gotTitle, gotTags = title, tags
			return fixture, nil
		},
	}

	body := jsonBody(t, map[string]any{"title": fixture.Title, "tags": fixture.Tags})
	req := httptest.NewRequest(http.MethodPost, "/api/articles", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newArticleHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, fixture.Title, gotTitle)
	assert.Equal(t, fixture.Tags, gotTags)

	var resp gen.Article
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, fixture.ID, resp.Id)
	assert.Equal(t, []string{"Go", "Generics"}, resp.Tags)
	assert.Nil(t, resp.UpdatedAt)
}

func TestCreateArticle_201_NoTagsRendersEmptyArray(t *testing.T) {
	svc := &mockArticleServicer{
		create: func(_ context.Context, title string, tags []string) (service.ArticleView, error) {
			assert.Nil(t, tags)
			return service.ArticleView{ID: uuid.New(), Title: title, CreatedAt: time.Now().UTC()}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/articles", jsonBody(t, map[string]any{"title": "untagged"}))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newArticleHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"tags":[]`)
}

func TestCreateArticle_400_ValidationError(t *testing.T) {
	svc := &mockArticleServicer{
		create: func(_ context.Context, _ string, _ []string) (service.ArticleView, error) {
			return service.ArticleView{}, fmt.Errorf("service.ArticleService.Create: %w", &domain.ValidationError{Message: "Title is required"})
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/articles", jsonBody(t, map[string]any{"title": ""}))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newArticleHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "validation_error", resp.Error.Code)
	assert.Equal(t, "Title is required", resp.Error.Message)
}

func TestCreateArticle_400_NestedValidationMessage(t *testing.T) {
	svc := &mockArticleServicer{
		create: func(_ context.Context, _ string, _ []string) (service.ArticleView, error) {
			inner := fmt.Errorf("service.TagService.GetOrCreate: %w",
				&domain.ValidationError{Message: "Tag name too long (maximum 256 characters)"})
			return service.ArticleView{}, fmt.Errorf("service.ArticleService.Create: %w", inner)
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/articles", jsonBody(t, map[string]any{"title": "x", "tags": []string{"y"}}))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newArticleHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Tag name too long (maximum 256 characters)", decodeError(t, rec).Error.Message)
}

func TestCreateArticle_400_BareValidationSentinel(t *testing.T) {
	svc := &mockArticleServicer{
		create: func(_ context.Context, _ string, _ []string) (service.ArticleView, error) {
			return service.ArticleView{}, fmt.Errorf("service.ArticleService.Create: %w", domain.ErrValidation)
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/articles", jsonBody(t, map[string]any{"title": "x"}))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newArticleHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid request", decodeError(t, rec).Error.Message)
}

func TestCreateArticle_400_MalformedJSON(t *testing.T) {
	svc := &mockArticleServicer{
		create: func(_ context.Context, _ string, _ []string) (service.ArticleView, error) {
			t.Fatal("service must not be called for a malformed body")
			return service.ArticleView{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/articles", bytes.NewBufferString(`{"title":`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newArticleHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_error", decodeError(t, rec).Error.Code)
}

func TestCreateArticle_500_HidesInternalError(t *testing.T) {
	svc := &mockArticleServicer{
		create: func(_ context.Context, _ string, _ []string) (service.ArticleView, error) {
			return service.ArticleView{}, errors.New("connection refused")
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/articles", jsonBody(t, map[string]any{"title": "x"}))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newArticleHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "internal_error", resp.Error.Code)
	assert.NotContains(t, resp.Error.Message, "connection refused")
}

// ---- GET /api/articles/{id} ------------------------------------------------

func TestGetArticle_200(t *testing.T) {
	fixture := articleFixture()
	svc := &mockArticleServicer{
		get: func(_ context.Context, id uuid.UUID) (service.ArticleView, error) {
			assert.Equal(t, fixture.ID, id)
			return fixture, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/articles/"+fixture.ID.String(), nil)
	rec := httptest.NewRecorder()

	newArticleHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp gen.Article
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, fixture.Title, resp.Title)
}

func TestGetArticle_404(t *testing.T) {
	svc := &mockArticleServicer{
		get: func(_ context.Context, _ uuid.UUID) (service.ArticleView, error) {
			return service.ArticleView{}, fmt.Errorf("service.ArticleService.Get: %w", domain.ErrNotFound)
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/articles/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()

	newArticleHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeError(t, rec).Error.Code)
}

func TestGetArticle_400_InvalidUUID(t *testing.T) {
	svc := &mockArticleServicer{}

	req := httptest.NewRequest(http.MethodGet, "/api/articles/not-a-uuid", nil)
	rec := httptest.NewRecorder()

	newArticleHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid id", decodeError(t, rec).Error.Message)
}

// ---- PUT /api/articles/{id} ------------------------------------------------

func TestUpdateArticle_200(t *testing.T) {
	fixture := articleFixture()
	updatedAt := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	fixture.UpdatedAt = &updatedAt
	svc := &mockArticleServicer{
		update: func(_ context.Context, id uuid.UUID, title string, tags []string) (service.ArticleView, error) {
			assert.Equal(t, fixture.ID, id)
			assert.Equal(t, "renamed", title)
			assert.Equal(t, []string{"Rust"}, tags)
			return fixture, nil
		},
	}

	body := jsonBody(t, map[string]any{"title": "renamed", "tags": []string{"Rust"}})
	req := httptest.NewRequest(http.MethodPut, "/api/articles/"+fixture.ID.String(), body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newArticleHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp gen.Article
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotNil(t, resp.UpdatedAt)
	assert.True(t, updatedAt.Equal(*resp.UpdatedAt))
}

func TestUpdateArticle_404(t *testing.T) {
	svc := &mockArticleServicer{
		update: func(_ context.Context, _ uuid.UUID, _ string, _ []string) (service.ArticleView, error) {
			return service.ArticleView{}, fmt.Errorf("service.ArticleService.Update: %w", domain.ErrNotFound)
		},
	}

	req := httptest.NewRequest(http.MethodPut, "/api/articles/"+uuid.NewString(), jsonBody(t, map[string]any{"title": "x"}))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newArticleHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateArticle_400_ValidationError(t *testing.T) {
	svc := &mockArticleServicer{
		update: func(_ context.Context, _ uuid.UUID, _ string, _ []string) (service.ArticleView, error) {
			return service.ArticleView{}, fmt.Errorf("service.ArticleService.Update: %w", &domain.ValidationError{Message: "Duplicate tags are not allowed"})
		},
	}

	body := jsonBody(t, map[string]any{"title": "x", "tags": []string{"go", "GO"}})
	req := httptest.NewRequest(http.MethodPut, "/api/articles/"+uuid.NewString(), body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newArticleHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Duplicate tags are not allowed", decodeError(t, rec).Error.Message)
}

// ---- DELETE /api/articles/{id} ---------------------------------------------

func TestDeleteArticle_204(t *testing.T) {
	id := uuid.New()
	svc := &mockArticleServicer{
		delete: func(_ context.Context, got uuid.UUID) error {
			assert.Equal(t, id, got)
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/articles/"+id.String(), nil)
	rec := httptest.NewRecorder()

	newArticleHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestDeleteArticle_404(t *testing.T) {
	svc := &mockArticleServicer{
		delete: func(_ context.Context, _ uuid.UUID) error {
			return fmt.Errorf("service.ArticleService.Delete: %w", domain.ErrNotFound)
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/articles/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()

	newArticleHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
