package domain

import (
	"sort"
	"strings"
)

// tagSetKeySeparator joins normalized names inside a TagSetKey.
const tagSetKeySeparator = "|"

// TagSetKey is the canonical identity of a set of tag names.
// Two collections produce the same key iff they hold the same names modulo
// case, surrounding whitespace, and order.
type TagSetKey struct {
	value string
}

// NewTagSetKey builds the key: trim, lowercase, ordinal sort, join with "|".
// Empty input yields the empty key.
func NewTagSetKey(names []string) TagSetKey {
	normalized := make([]string, len(names))
	for i, n := range names {
		normalized[i] = NormalizeTagName(n)
	}
	sort.Strings(normalized)
	return TagSetKey{value: strings.Join(normalized, tagSetKeySeparator)}
}

// ParseTagSetKey wraps an already canonical value read back from storage.
func ParseTagSetKey(value string) TagSetKey {
	return TagSetKey{value: value}
}

// String returns the persisted form of the key.
func (k TagSetKey) String() string { return k.value }

// IsEmpty reports whether the key was built from no tags.
func (k TagSetKey) IsEmpty() bool { return k.value == "" }

// Equal reports structural equality.
func (k TagSetKey) Equal(other TagSetKey) bool { return k.value == other.value }
