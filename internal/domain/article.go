package domain

import (
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	// MaxTitleLength is the longest title accepted, in characters, after trimming.
	MaxTitleLength = 256
	// MaxTagsPerArticle caps the number of tags a single article may carry.
	MaxTagsPerArticle = 256
)

// ArticleTag links an article to a tag at a given position in its tag list.
// Name is hydrated from the tags table by repos and by SetTags; it is not
// part of the link's identity.
type ArticleTag struct {
	TagID    uuid.UUID
	Name     string
	Position int
}

// Article is the aggregate root for catalog entries.
//
// Mutating methods append domain events to an in-memory queue. The queue is
// drained by the owning use case (Events, then ClearEvents) after the events
// have been written to the outbox in the same transaction as the article.
type Article struct {
	ID        uuid.UUID
	Title     string
	TagSetKey TagSetKey
	CreatedAt time.Time
	UpdatedAt *time.Time // nil until the article is first modified
	Tags      []ArticleTag

	events []Event
}

// NewArticle validates title and tag names and returns a new article with a
// fresh ID, a trimmed title and no tags. Tags are attached with SetTags.
func NewArticle(title string, tagNames []string) (*Article, error) {
	if err := ValidateTitle(title); err != nil {
		return nil, err
	}
	if err := ValidateTagNames(tagNames); err != nil {
		return nil, err
	}
	return &Article{
		ID:        uuid.New(),
		Title:     strings.TrimSpace(title),
		TagSetKey: NewTagSetKey(nil),
		CreatedAt: time.Now().UTC(),
	}, nil
}

// SetTags replaces the full tag list. Entries follow the order of tagIDs and
// record the input index as Position; ids missing from resolved are skipped.
// Exactly one event is appended: ArticleCreated when isNewArticle is true,
// ArticleTagsChanged otherwise.
func (a *Article) SetTags(tagIDs []uuid.UUID, resolved []Tag, isNewArticle bool) error {
	if len(tagIDs) > MaxTagsPerArticle {
		return validationError("Too many tags (maximum 256 tags)")
	}

	previous := a.currentTagNames()

	byID := make(map[uuid.UUID]Tag, len(resolved))
	for _, t := range resolved {
		byID[t.ID] = t
	}

	a.Tags = make([]ArticleTag, 0, len(tagIDs))
	names := make([]string, 0, len(tagIDs))
	for i, id := range tagIDs {
		t, ok := byID[id]
		if !ok {
			continue
		}
		a.Tags = append(a.Tags, ArticleTag{TagID: id, Name: t.Name, Position: i})
		names = append(names, t.Name)
	}
	a.TagSetKey = NewTagSetKey(names)

	now := time.Now().UTC()
	if isNewArticle {
		a.record(ArticleCreated{
			ArticleID:  a.ID,
			Title:      a.Title,
			TagNames:   names,
			CreatedAt:  a.CreatedAt,
			OccurredAt: now,
		})
		return nil
	}
	a.record(ArticleTagsChanged{
		ArticleID:        a.ID,
		NewTagNames:      names,
		PreviousTagNames: previous,
		UpdatedAt:        now,
		OccurredAt:       now,
	})
	return nil
}

// UpdateTitle applies the same validation as NewArticle and marks the
// article as updated.
func (a *Article) UpdateTitle(title string) error {
	if err := ValidateTitle(title); err != nil {
		return err
	}
	a.Title = strings.TrimSpace(title)
	a.MarkAsUpdated()
	return nil
}

// MarkAsUpdated stamps UpdatedAt with the current time.
func (a *Article) MarkAsUpdated() {
	now := time.Now().UTC()
	a.UpdatedAt = &now
}

// MarkAsDeleted records ArticleDeleted. Removing the row is the caller's job.
func (a *Article) MarkAsDeleted(tagNames []string) {
	a.record(ArticleDeleted{
		ArticleID:  a.ID,
		TagNames:   append([]string(nil), tagNames...),
		OccurredAt: time.Now().UTC(),
	})
}

// GetTagNames resolves the article's tag ids against tags and returns the
// names in Position order. Ids with no match are dropped.
func (a *Article) GetTagNames(tags []Tag) []string {
	byID := make(map[uuid.UUID]string, len(tags))
	for _, t := range tags {
		byID[t.ID] = t.Name
	}
	ordered := a.sortedTags()
	names := make([]string, 0, len(ordered))
	for _, at := range ordered {
		if name, ok := byID[at.TagID]; ok && name != "" {
			names = append(names, name)
		}
	}
	return names
}

// TagIDs returns the linked tag ids in Position order.
func (a *Article) TagIDs() []uuid.UUID {
	ordered := a.sortedTags()
	ids := make([]uuid.UUID, len(ordered))
	for i, at := range ordered {
		ids[i] = at.TagID
	}
	return ids
}

// SortDate is the timestamp used to order articles: UpdatedAt when set,
// CreatedAt otherwise.
func (a *Article) SortDate() time.Time {
	if a.UpdatedAt != nil {
		return *a.UpdatedAt
	}
	return a.CreatedAt
}

// Events returns a copy of the pending domain events.
func (a *Article) Events() []Event {
	return append([]Event(nil), a.events...)
}

// ClearEvents drops pending events once they are durably queued.
func (a *Article) ClearEvents() {
	a.events = nil
}

func (a *Article) record(e Event) {
	a.events = append(a.events, e)
}

func (a *Article) sortedTags() []ArticleTag {
	ordered := append([]ArticleTag(nil), a.Tags...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Position < ordered[j].Position })
	return ordered
}

// currentTagNames returns the hydrated names of the current tag list.
func (a *Article) currentTagNames() []string {
	ordered := a.sortedTags()
	names := make([]string, 0, len(ordered))
	for _, at := range ordered {
		if at.Name != "" {
			names = append(names, at.Name)
		}
	}
	return names
}

// ValidateTitle applies the title rules used by NewArticle and UpdateTitle.
func ValidateTitle(title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return validationError("Title is required")
	}
	if utf8.RuneCountInString(trimmed) > MaxTitleLength {
		return validationError("Title too long (maximum 256 characters)")
	}
	return nil
}

// ValidateTagNames checks count, emptiness and case-insensitive duplicates.
func ValidateTagNames(names []string) error {
	if len(names) > MaxTagsPerArticle {
		return validationError("Too many tags (maximum 256 tags)")
	}
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if err := validateTagName(n); err != nil {
			return err
		}
		key := NormalizeTagName(n)
		if _, dup := seen[key]; dup {
			return validationError("Duplicate tags are not allowed")
		}
		seen[key] = struct{}{}
	}
	return nil
}
