package navigation

import (
	"github.com/tidwall/sjson"
)

// Direction describes the semantic direction of a navigation
// transition. It is written into the parameter bag under DirectionKey
// before every navigated notification so lifecycle hooks can react to
// forward pushes, back steps, and forward steps differently.
type Direction string

const (
	// DirectionNew marks a transition to newly created content
	// (ReplaceAll, Push, PushBackwards).
	DirectionNew Direction = "new"

	// DirectionBack marks a step back through existing history.
	DirectionBack Direction = "back"

	// DirectionForward marks a step forward through existing history.
	DirectionForward Direction = "forward"
)

// DirectionKey is the well-known parameter key holding the navigation
// direction for the in-flight transition.
const DirectionKey = "navigation.direction"

// Parameters is an ordered key/value bag passed through a navigation
// operation. Insertion order is preserved; setting an existing key
// updates its value in place without changing its position.
//
// Parameters is not safe for concurrent use, matching the engine's
// single-threaded call model.
type Parameters struct {
	keys   []string
	values map[string]any
}

// NewParameters creates an empty parameter bag.
func NewParameters() *Parameters {
	return &Parameters{
		values: make(map[string]any),
	}
}

// Set stores a value under key. A new key is appended to the insertion
// order; an existing key keeps its position.
func (p *Parameters) Set(key string, value any) *Parameters {
	if _, exists := p.values[key]; !exists {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
	return p
}

// Get returns the value stored under key.
func (p *Parameters) Get(key string) (any, bool) {
	if p == nil {
		return nil, false
	}
	v, ok := p.values[key]
	return v, ok
}

// String returns the value under key as a string. Non-string values
// and missing keys return "".
func (p *Parameters) String(key string) string {
	v, ok := p.Get(key)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Has reports whether key is present.
func (p *Parameters) Has(key string) bool {
	_, ok := p.Get(key)
	return ok
}

// Keys returns the keys in insertion order. The returned slice is a
// copy and safe to modify.
func (p *Parameters) Keys() []string {
	if p == nil {
		return nil
	}
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Len returns the number of keys.
func (p *Parameters) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// Direction returns the navigation direction carried by the bag, or ""
// if none has been written yet.
func (p *Parameters) Direction() Direction {
	return Direction(p.String(DirectionKey))
}

// setDirection tags the bag with the direction of the in-flight
// transition. Called by the engine before each notification pass.
func (p *Parameters) setDirection(d Direction) {
	p.Set(DirectionKey, string(d))
}

// JSON renders the bag as a JSON object whose member order follows the
// insertion order. Values that cannot be represented are skipped.
func (p *Parameters) JSON() string {
	doc := "{}"
	if p == nil {
		return doc
	}
	for _, key := range p.keys {
		updated, err := sjson.Set(doc, escapeJSONPath(key), p.values[key])
		if err != nil {
			continue
		}
		doc = updated
	}
	return doc
}

// escapeJSONPath escapes sjson path separators so a key like
// "navigation.direction" becomes a single JSON member rather than a
// nested object.
func escapeJSONPath(key string) string {
	out := make([]byte, 0, len(key))
	for i := 0; i < len(key); i++ {
		switch key[i] {
		case '.', '*', '?', '|', '#', '@', '\\':
			out = append(out, '\\')
		}
		out = append(out, key[i])
	}
	return string(out)
}
