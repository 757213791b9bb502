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

// SectionRepo defines the persistence operations for Sections and the
// section_tags join table.
type SectionRepo interface {
	// Create inserts the section unless one with the same tag set key exists.
	// created is false when the key was already taken; that is not an error.
	Create(ctx context.Context, section *domain.Section) (created bool, err error)

	// GetByID retrieves a section by primary key.
	// Returns domain.ErrNotFound if no section with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Section, error)

	// GetByTagSetKey retrieves the section for a tag set.
	// Returns domain.ErrNotFound if no section has that key.
	GetByTagSetKey(ctx context.Context, key domain.TagSetKey) (*domain.Section, error)

	// List returns every section in a stable order (tag_set_key).
	List(ctx context.Context) ([]*domain.Section, error)

	// Delete removes a section by ID. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgSectionRepo is the Postgres implementation of SectionRepo.
type pgSectionRepo struct {
	db db
}

// NewSectionRepo constructs a SectionRepo backed by the provided db connection.
func NewSectionRepo(db db) SectionRepo {
	return &pgSectionRepo{db: db}
}

// Create uses ON CONFLICT DO NOTHING on tag_set_key so that two handlers
// racing on the same tag set leave exactly one section behind.
func (r *pgSectionRepo) Create(ctx context.Context, section *domain.Section) (bool, error) {
	const q = `
		INSERT INTO sections (id, tag_set_key, tag_count, title)
		VALUES (@id, @tag_set_key, @tag_count, @title)
		ON CONFLICT (tag_set_key) DO NOTHING`

	args := pgx.NamedArgs{
		"id":          section.ID,
		"tag_set_key": section.TagSetKey.String(),
		"tag_count":   section.TagCount,
		"title":       section.Title,
	}

	tag, err := r.db.Exec(ctx, q, args)
	if err != nil {
		return false, fmt.Errorf("repo.SectionRepo.Create: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	const link = `
		INSERT INTO section_tags (section_id, tag_id)
		VALUES (@section_id, @tag_id)
		ON CONFLICT (section_id, tag_id) DO NOTHING`

	for _, st := range section.Tags {
		if _, err := r.db.Exec(ctx, link, pgx.NamedArgs{"section_id": section.ID, "tag_id": st.TagID}); err != nil {
			return false, fmt.Errorf("repo.SectionRepo.Create: link tag %s: %w", st.TagID, err)
		}
	}
	return true, nil
}

func (r *pgSectionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Section, error) {
	const q = `
		SELECT id, tag_set_key, tag_count, title
		FROM sections
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	s, err := scanSection(row)
	if err != nil {
		return nil, fmt.Errorf("repo.SectionRepo.GetByID: %w", err)
	}
	if err := r.hydrateTags(ctx, []*domain.Section{s}); err != nil {
		return nil, fmt.Errorf("repo.SectionRepo.GetByID: %w", err)
	}
	return s, nil
}

func (r *pgSectionRepo) GetByTagSetKey(ctx context.Context, key domain.TagSetKey) (*domain.Section, error) {
	const q = `
		SELECT id, tag_set_key, tag_count, title
		FROM sections
		WHERE tag_set_key = @tag_set_key`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"tag_set_key": key.String()})
	s, err := scanSection(row)
	if err != nil {
		return nil, fmt.Errorf("repo.SectionRepo.GetByTagSetKey: %w", err)
	}
	if err := r.hydrateTags(ctx, []*domain.Section{s}); err != nil {
		return nil, fmt.Errorf("repo.SectionRepo.GetByTagSetKey: %w", err)
	}
	return s, nil
}

func (r *pgSectionRepo) List(ctx context.Context) ([]*domain.Section, error) {
	const q = `
		SELECT id, tag_set_key, tag_count, title
		FROM sections
		ORDER BY tag_set_key`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.SectionRepo.List: %w", err)
	}
	defer rows.Close()

	sections := []*domain.Section{}
	for rows.Next() {
		s, err := scanSection(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.SectionRepo.List: scan: %w", err)
		}
		sections = append(sections, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.SectionRepo.List: rows: %w", err)
	}
	rows.Close()

	if err := r.hydrateTags(ctx, sections); err != nil {
		return nil, fmt.Errorf("repo.SectionRepo.List: %w", err)
	}
	return sections, nil
}

func (r *pgSectionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM sections WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.SectionRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.SectionRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgSectionRepo) hydrateTags(ctx context.Context, sections []*domain.Section) error {
	if len(sections) == 0 {
		return nil
	}
	byID := make(map[uuid.UUID]*domain.Section, len(sections))
	ids := make([]uuid.UUID, len(sections))
	for i, s := range sections {
		byID[s.ID] = s
		ids[i] = s.ID
		s.Tags = []domain.SectionTag{}
	}

	const q = `
		SELECT st.section_id, st.tag_id, t.name
		FROM section_tags st
		JOIN tags t ON t.id = st.tag_id
		WHERE st.section_id = ANY(@ids::uuid[])
		ORDER BY t.normalized_name`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"ids": uuidStrings(ids)})
	if err != nil {
		return fmt.Errorf("hydrate tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			sectionID, tagID pgtype.UUID
			st               domain.SectionTag
		)
		if err := rows.Scan(&sectionID, &tagID, &st.Name); err != nil {
			return fmt.Errorf("hydrate tags: scan: %w", err)
		}
		st.TagID = uuid.UUID(tagID.Bytes)
		if s, ok := byID[uuid.UUID(sectionID.Bytes)]; ok {
			s.Tags = append(s.Tags, st)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("hydrate tags: rows: %w", err)
	}
	return nil
}

// scanSection maps a single database row into a domain.Section without tags.
func scanSection(s scanner) (*domain.Section, error) {
	var (
		sec domain.Section
		id  pgtype.UUID
		key string
	)
	err := s.Scan(&id, &key, &sec.TagCount, &sec.Title)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	sec.ID = uuid.UUID(id.Bytes)
	sec.TagSetKey = domain.ParseTagSetKey(key)
	return &sec, nil
}
