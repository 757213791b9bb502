package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxTagNameLength is the longest tag name accepted, in characters.
const MaxTagNameLength = 256

// Tag represents a label that can be applied to articles.
// Tags are global and created on first use of a name.
// Identity for lookups is NormalizedName, which always equals
// NormalizeTagName(Name). Name preserves the casing of the first creator.
type Tag struct {
	ID             uuid.UUID
	Name           string
	NormalizedName string
	CreatedAt      time.Time
}

// NormalizeTagName folds a display name into its lookup form.
func NormalizeTagName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NewTag validates name and returns a Tag with a fresh ID.
func NewTag(name string) (Tag, error) {
	t := Tag{ID: uuid.New(), CreatedAt: time.Now().UTC()}
	if err := t.Rename(name); err != nil {
		return Tag{}, err
	}
	return t, nil
}

// Rename replaces the display name and keeps NormalizedName in step with it.
func (t *Tag) Rename(name string) error {
	if err := validateTagName(name); err != nil {
		return err
	}
	t.Name = strings.TrimSpace(name)
	t.NormalizedName = NormalizeTagName(name)
	return nil
}

func validateTagName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return validationError("Tag name cannot be empty")
	}
	if utf8.RuneCountInString(trimmed) > MaxTagNameLength {
		return validationError("Tag name too long (maximum 256 characters)")
	}
	return nil
}
