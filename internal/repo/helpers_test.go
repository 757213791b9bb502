package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/article-catalog/internal/domain"
	"github.com/pkordes/article-catalog/internal/repo"
	"github.com/pkordes/article-catalog/testutil"
)

// newTestStore opens a single transaction and returns a Store backed by it,
// so tests can build tags, articles and sections together. The transaction
// is rolled back when the test finishes.
func newTestStore(t *testing.T) repo.Store {
	t.Helper()
	return repo.NewTx(testutil.NewTx(t))
}

// mustTag inserts a tag with the given name.
func mustTag(t *testing.T, store repo.Store, name string) domain.Tag {
	t.Helper()
	tag, err := domain.NewTag(name)
	require.NoError(t, err)
	got, err := store.Tags().Insert(context.Background(), tag)
	require.NoError(t, err, "insert tag %q", name)
	return got
}

// mustArticle creates an article tagged with the given tags.
func mustArticle(t *testing.T, store repo.Store, title string, tags ...domain.Tag) *domain.Article {
	t.Helper()
	names := make([]string, len(tags))
	ids := make([]uuid.UUID, len(tags))
	for i, tg := range tags {
		names[i] = tg.Name
		ids[i] = tg.ID
	}
	a, err := domain.NewArticle(title, names)
	require.NoError(t, err)
	require.NoError(t, a.SetTags(ids, tags, true))
	require.NoError(t, store.Articles().Create(context.Background(), a))
	return a
}
