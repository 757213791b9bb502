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

// TagRepo defines the persistence operations for Tags.
type TagRepo interface {
	// GetByNormalizedName looks up a tag by its case-folded name.
	// Returns domain.ErrNotFound if no tag has that name.
	GetByNormalizedName(ctx context.Context, normalized string) (domain.Tag, error)

	// GetByIDs returns the tags with the given ids. Unknown ids are ignored,
	// so the result may be shorter than the input.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Tag, error)

	// Insert stores a new tag. Returns domain.ErrConflict if another tag with
	// the same normalized name already exists.
	Insert(ctx context.Context, tag domain.Tag) (domain.Tag, error)

	// List returns all tags whose normalized name starts with prefix, ordered
	// by normalized name. If prefix is empty, all tags are returned.
	List(ctx context.Context, prefix string) ([]domain.Tag, error)
}

// pgTagRepo is the Postgres implementation of TagRepo.
type pgTagRepo struct {
	db db
}

// NewTagRepo constructs a TagRepo backed by the provided db connection.
func NewTagRepo(db db) TagRepo {
	return &pgTagRepo{db: db}
}

func (r *pgTagRepo) GetByNormalizedName(ctx context.Context, normalized string) (domain.Tag, error) {
	const q = `
		SELECT id, name, normalized_name, created_at
		FROM tags
		WHERE normalized_name = @normalized_name`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"normalized_name": normalized})
	result, err := scanTag(row)
	if err != nil {
		return domain.Tag{}, fmt.Errorf("repo.TagRepo.GetByNormalizedName: %w", err)
	}
	return result, nil
}

func (r *pgTagRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Tag, error) {
	if len(ids) == 0 {
		return []domain.Tag{}, nil
	}
	const q = `
		SELECT id, name, normalized_name, created_at
		FROM tags
		WHERE id = ANY(@ids::uuid[])`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"ids": uuidStrings(ids)})
	if err != nil {
		return nil, fmt.Errorf("repo.TagRepo.GetByIDs: %w", err)
	}
	tags, err := collectTags(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.TagRepo.GetByIDs: %w", err)
	}
	return tags, nil
}

// Insert relies on ON CONFLICT DO NOTHING: when the normalized name is taken
// RETURNING yields no row, which is reported as domain.ErrConflict so the
// caller can re-read the winner.
func (r *pgTagRepo) Insert(ctx context.Context, tag domain.Tag) (domain.Tag, error) {
	const q = `
		INSERT INTO tags (id, name, normalized_name, created_at)
		VALUES (@id, @name, @normalized_name, @created_at)
		ON CONFLICT (normalized_name) DO NOTHING
		RETURNING id, name, normalized_name, created_at`

	args := pgx.NamedArgs{
		"id":              tag.ID,
		"name":            tag.Name,
		"normalized_name": tag.NormalizedName,
		"created_at":      tag.CreatedAt,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTag(row)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Tag{}, fmt.Errorf("repo.TagRepo.Insert: %q: %w", tag.NormalizedName, domain.ErrConflict)
	}
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Tag{}, fmt.Errorf("repo.TagRepo.Insert: %w", domain.ErrConflict)
		}
		return domain.Tag{}, fmt.Errorf("repo.TagRepo.Insert: %w", err)
	}
	return result, nil
}

func (r *pgTagRepo) List(ctx context.Context, prefix string) ([]domain.Tag, error) {
	const q = `
		SELECT id, name, normalized_name, created_at
		FROM tags
		WHERE starts_with(normalized_name, @prefix)
		ORDER BY normalized_name`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"prefix": domain.NormalizeTagName(prefix)})
	if err != nil {
		return nil, fmt.Errorf("repo.TagRepo.List: %w", err)
	}
	tags, err := collectTags(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.TagRepo.List: %w", err)
	}
	return tags, nil
}

func collectTags(rows pgx.Rows) ([]domain.Tag, error) {
	defer rows.Close()

	tags := []domain.Tag{}
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return tags, nil
}

// scanTag maps a single database row into a domain.Tag.
func scanTag(s scanner) (domain.Tag, error) {
	var (
		t  domain.Tag
		id pgtype.UUID
	)
	err := s.Scan(&id, &t.Name, &t.NormalizedName, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Tag{}, domain.ErrNotFound
		}
		return domain.Tag{}, err
	}
	t.ID = uuid.UUID(id.Bytes)
	return t, nil
}
