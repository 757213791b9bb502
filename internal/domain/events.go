package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventKind is the stable tag recorded in the outbox for each event type.
// Changing a value breaks decoding of rows already written.
type EventKind string

const (
	KindArticleCreated     EventKind = "article.created"
	KindArticleTagsChanged EventKind = "article.tags_changed"
	KindArticleDeleted     EventKind = "article.deleted"
)

// Event is an immutable fact about an aggregate mutation.
// The set of implementations is closed: only the types in this file
// satisfy it.
type Event interface {
	Kind() EventKind
	OccurredOn() time.Time
	event()
}

// ArticleCreated is recorded the first time an article gets its tags.
type ArticleCreated struct {
	ArticleID  uuid.UUID `json:"articleId"`
	Title      string    `json:"title"`
	TagNames   []string  `json:"tagNames"`
	CreatedAt  time.Time `json:"createdAt"`
	OccurredAt time.Time `json:"occurredOn"`
}

func (ArticleCreated) Kind() EventKind         { return KindArticleCreated }
func (e ArticleCreated) OccurredOn() time.Time { return e.OccurredAt }
func (ArticleCreated) event()                  {}

// ArticleTagsChanged is recorded whenever an existing article's tag list is
// replaced. PreviousTagNames lets handlers retire the old tag set's section.
type ArticleTagsChanged struct {
	ArticleID        uuid.UUID `json:"articleId"`
	NewTagNames      []string  `json:"newTagNames"`
	PreviousTagNames []string  `json:"previousTagNames,omitempty"`
	UpdatedAt        time.Time `json:"updatedAt"`
	OccurredAt       time.Time `json:"occurredOn"`
}

func (ArticleTagsChanged) Kind() EventKind         { return KindArticleTagsChanged }
func (e ArticleTagsChanged) OccurredOn() time.Time { return e.OccurredAt }
func (ArticleTagsChanged) event()                  {}

// ArticleDeleted carries the tag names the article had when it was removed.
type ArticleDeleted struct {
	ArticleID  uuid.UUID `json:"articleId"`
	TagNames   []string  `json:"tagNames"`
	OccurredAt time.Time `json:"occurredOn"`
}

func (ArticleDeleted) Kind() EventKind         { return KindArticleDeleted }
func (e ArticleDeleted) OccurredOn() time.Time { return e.OccurredAt }
func (ArticleDeleted) event()                  {}
