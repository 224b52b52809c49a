package domain

import "strings"

// TopicPath identifies a deck's position in the deck tree, for example the tag
// "#flashcards/science/physics" becomes ["#flashcards", "science", "physics"].
// The empty path addresses the root of the tree.
type TopicPath []string

// ParseTopicPath splits a slash-delimited tag into a TopicPath.
// Empty segments are dropped.
func ParseTopicPath(tag string) TopicPath {
	var path TopicPath
	for _, part := range strings.Split(strings.TrimSpace(tag), "/") {
		if part = strings.TrimSpace(part); part != "" {
			path = append(path, part)
		}
	}
	return path
}

// IsEmpty reports whether the path addresses the root.
func (p TopicPath) IsEmpty() bool {
	return len(p) == 0
}

// String joins the path back into tag form.
func (p TopicPath) String() string {
	return strings.Join(p, "/")
}

// Equal reports whether two paths name the same deck.
func (p TopicPath) Equal(other TopicPath) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}
