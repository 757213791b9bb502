package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/article-catalog/internal/domain"
)

// ArticleRepo defines the persistence operations for Articles and the
// article_tags join table. Returned articles are fully hydrated: Tags carries
// the tag names in position order.
type ArticleRepo interface {
	// Create inserts the article row and its tag links.
	Create(ctx context.Context, article *domain.Article) error

	// GetByID retrieves a single article by its UUID primary key.
	// Returns domain.ErrNotFound if no article with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Article, error)

	// Update overwrites title, tag set key and updated_at, and replaces the
	// tag links. Returns domain.ErrNotFound if the article does not exist.
	Update(ctx context.Context, article *domain.Article) error

	// Delete removes an article by ID. Tag links go with it via ON DELETE CASCADE.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByTagSetKey returns every article whose tag set matches key.
	ListByTagSetKey(ctx context.Context, key domain.TagSetKey) ([]*domain.Article, error)

	// CountByTagSetKey returns how many articles currently have the tag set key.
	CountByTagSetKey(ctx context.Context, key domain.TagSetKey) (int, error)
}

// pgArticleRepo is the Postgres implementation of ArticleRepo.
type pgArticleRepo struct {
	db db
}

// NewArticleRepo constructs an ArticleRepo backed by the provided db connection.
// In production pass *pgxpool.Pool or a pgx.Tx; in tests pass a rolled-back pgx.Tx.
func NewArticleRepo(db db) ArticleRepo {
	return &pgArticleRepo{db: db}
}

func (r *pgArticleRepo) Create(ctx context.Context, article *domain.Article) error {
	const q = `
		INSERT INTO articles (id, title, tag_set_key, created_at, updated_at)
		VALUES (@id, @title, @tag_set_key, @created_at, @updated_at)`

	args := pgx.NamedArgs{
		"id":          article.ID,
		"title":       article.Title,
		"tag_set_key": article.TagSetKey.String(),
		"created_at":  article.CreatedAt,
		"updated_at":  article.UpdatedAt, // nil becomes NULL
	}

	if _, err := r.db.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("repo.ArticleRepo.Create: %w", err)
	}
	if err := r.insertTags(ctx, article); err != nil {
		return fmt.Errorf("repo.ArticleRepo.Create: %w", err)
	}
	return nil
}

func (r *pgArticleRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
	const q = `
		SELECT id, title, tag_set_key, created_at, updated_at
		FROM articles
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	article, err := scanArticle(row)
	if err != nil {
		return nil, fmt.Errorf("repo.ArticleRepo.GetByID: %w", err)
	}
	if err := r.hydrateTags(ctx, []*domain.Article{article}); err != nil {
		return nil, fmt.Errorf("repo.ArticleRepo.GetByID: %w", err)
	}
	return article, nil
}

func (r *pgArticleRepo) Update(ctx context.Context, article *domain.Article) error {
	const q = `
		UPDATE articles
		SET title       = @title,
		    tag_set_key = @tag_set_key,
		    updated_at  = @updated_at
		WHERE id = @id`

	args := pgx.NamedArgs{
		"id":          article.ID,
		"title":       article.Title,
		"tag_set_key": article.TagSetKey.String(),
		"updated_at":  article.UpdatedAt,
	}

	tag, err := r.db.Exec(ctx, q, args)
	if err != nil {
		return fmt.Errorf("repo.ArticleRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ArticleRepo.Update: %w", domain.ErrNotFound)
	}

	const clear = `DELETE FROM article_tags WHERE article_id = @id`
	if _, err := r.db.Exec(ctx, clear, pgx.NamedArgs{"id": article.ID}); err != nil {
		return fmt.Errorf("repo.ArticleRepo.Update: clear tags: %w", err)
	}
	if err := r.insertTags(ctx, article); err != nil {
		return fmt.Errorf("repo.ArticleRepo.Update: %w", err)
	}
	return nil
}

func (r *pgArticleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM articles WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.ArticleRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ArticleRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgArticleRepo) ListByTagSetKey(ctx context.Context, key domain.TagSetKey) ([]*domain.Article, error) {
	const q = `
		SELECT id, title, tag_set_key, created_at, updated_at
		FROM articles
		WHERE tag_set_key = @tag_set_key`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"tag_set_key": key.String()})
	if err != nil {
		return nil, fmt.Errorf("repo.ArticleRepo.ListByTagSetKey: %w", err)
	}
	defer rows.Close()

	articles := []*domain.Article{}
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ArticleRepo.ListByTagSetKey: scan: %w", err)
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ArticleRepo.ListByTagSetKey: rows: %w", err)
	}
	rows.Close()

	if err := r.hydrateTags(ctx, articles); err != nil {
		return nil, fmt.Errorf("repo.ArticleRepo.ListByTagSetKey: %w", err)
	}
	return articles, nil
}

func (r *pgArticleRepo) CountByTagSetKey(ctx context.Context, key domain.TagSetKey) (int, error) {
	const q = `SELECT count(*) FROM articles WHERE tag_set_key = @tag_set_key`

	var n int
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"tag_set_key": key.String()}).Scan(&n); err != nil {
		return 0, fmt.Errorf("repo.ArticleRepo.CountByTagSetKey: %w", err)
	}
	return n, nil
}

func (r *pgArticleRepo) insertTags(ctx context.Context, article *domain.Article) error {
	const q = `
		INSERT INTO article_tags (article_id, tag_id, position)
		VALUES (@article_id, @tag_id, @position)`

	for _, at := range article.Tags {
		args := pgx.NamedArgs{"article_id": article.ID, "tag_id": at.TagID, "position": at.Position}
		if _, err := r.db.Exec(ctx, q, args); err != nil {
			return fmt.Errorf("insert tag %s: %w", at.TagID, err)
		}
	}
	return nil
}

// hydrateTags loads the tag links of every article in one query.
func (r *pgArticleRepo) hydrateTags(ctx context.Context, articles []*domain.Article) error {
	if len(articles) == 0 {
		return nil
	}
	byID := make(map[uuid.UUID]*domain.Article, len(articles))
	ids := make([]uuid.UUID, len(articles))
	for i, a := range articles {
		byID[a.ID] = a
		ids[i] = a.ID
		a.Tags = []domain.ArticleTag{}
	}

	const q = `
		SELECT at.article_id, at.tag_id, t.name, at.position
		FROM article_tags at
		JOIN tags t ON t.id = at.tag_id
		WHERE at.article_id = ANY(@ids::uuid[])
		ORDER BY at.article_id, at.position`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"ids": uuidStrings(ids)})
	if err != nil {
		return fmt.Errorf("hydrate tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			articleID, tagID pgtype.UUID
			at               domain.ArticleTag
		)
		if err := rows.Scan(&articleID, &tagID, &at.Name, &at.Position); err != nil {
			return fmt.Errorf("hydrate tags: scan: %w", err)
		}
		at.TagID = uuid.UUID(tagID.Bytes)
		if a, ok := byID[uuid.UUID(articleID.Bytes)]; ok {
			a.Tags = append(a.Tags, at)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("hydrate tags: rows: %w", err)
	}
	return nil
}

// scanArticle maps a single database row into a domain.Article without tags.
func scanArticle(s scanner) (*domain.Article, error) {
	var (
		a         domain.Article
		id        pgtype.UUID
		key       string
		updatedAt pgtype.Timestamptz
	)

	err := s.Scan(&id, &a.Title, &key, &a.CreatedAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	a.ID = uuid.UUID(id.Bytes)
	a.TagSetKey = domain.ParseTagSetKey(key)
	if updatedAt.Valid {
		ts := updatedAt.Time
		a.UpdatedAt = &ts
	}
	return &a, nil
}
