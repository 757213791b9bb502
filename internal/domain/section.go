package domain

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxSectionTitleLength bounds the generated section title, in characters.
const MaxSectionTitleLength = 1024

// SectionTag links a section to one of the tags in its tag set.
// Name is hydrated by repos for display.
type SectionTag struct {
	TagID uuid.UUID
	Name  string
}

// Section groups every article whose tag set matches TagSetKey.
// Sections are created and removed by event handlers and never mutated in
// between. Membership is computed by comparing keys, not stored.
type Section struct {
	ID        uuid.UUID
	TagSetKey TagSetKey
	TagCount  int
	Title     string
	Tags      []SectionTag
}

// NewSection derives a section from a tag set. Empty input yields a valid
// section with an empty key and title.
func NewSection(tags []Tag) *Section {
	names := make([]string, len(tags))
	sectionTags := make([]SectionTag, len(tags))
	for i, t := range tags {
		names[i] = t.Name
		sectionTags[i] = SectionTag{TagID: t.ID, Name: t.Name}
	}
	return &Section{
		ID:        uuid.New(),
		TagSetKey: NewTagSetKey(names),
		TagCount:  len(tags),
		Title:     sectionTitle(names),
		Tags:      sectionTags,
	}
}

// MatchesTagSet reports whether key identifies this section's tag set.
func (s *Section) MatchesTagSet(key TagSetKey) bool {
	return s.TagSetKey.Equal(key)
}

// TagNames returns the section's tag names sorted lexicographically.
func (s *Section) TagNames() []string {
	names := make([]string, len(s.Tags))
	for i, t := range s.Tags {
		names[i] = t.Name
	}
	sort.Strings(names)
	return names
}

// sectionTitle joins the sorted names with ", " and keeps at most
// MaxSectionTitleLength characters.
func sectionTitle(names []string) string {
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)
	title := strings.Join(sorted, ", ")
	if utf8.RuneCountInString(title) <= MaxSectionTitleLength {
		return title
	}
	cut, count := 0, 0
	for count < MaxSectionTitleLength {
		_, size := utf8.DecodeRuneInString(title[cut:])
		cut += size
		count++
	}
	return title[:cut]
}
