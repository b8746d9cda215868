package event

import "strings"

// Topic is a hierarchical event type, dot-separated from most general
// to most specific ("region.navigated.to").
type Topic string

// Wildcard matches any suffix when it terminates a pattern.
const Wildcard = "*"

// String returns the topic as a string.
func (t Topic) String() string { return string(t) }

// IsPattern reports whether the topic ends in a wildcard segment.
func (t Topic) IsPattern() bool {
	return t == Wildcard || strings.HasSuffix(string(t), "."+Wildcard)
}

// Match reports whether topic t matches the given pattern. A pattern
// without a wildcard matches only itself; a trailing ".*" matches
// every topic under the prefix; the bare "*" matches everything.
func (t Topic) Match(pattern Topic) bool {
	if pattern == Wildcard {
		return true
	}
	if !pattern.IsPattern() {
		return t == pattern
	}
	prefix := strings.TrimSuffix(string(pattern), Wildcard)
	return strings.HasPrefix(string(t), prefix)
}
