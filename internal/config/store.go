// Package config provides the live configuration tree driving every playable
// template, plus YAML-based loading of per-game default documents.
//
// The Store is the single source of truth for layout, texts, colors, assets
// and gameplay tunables. It is mutated in place by editor patches and read
// synchronously by every component on every operation; readers never cache
// values across suspension points.
package config

import (
	"strconv"
	"strings"
	"sync"
)

// Store holds a deeply nested, versionless key-value document.
// An explicitly owned Store is injected into every component that needs
// configuration; there is no ambient global.
type Store struct {
	mu  sync.RWMutex
	doc map[string]any
}

// NewStore creates a store around the given document. A nil document yields
// an empty store.
func NewStore(doc map[string]any) *Store {
	if doc == nil {
		doc = make(map[string]any)
	}
	return &Store{doc: doc}
}

// MergePatch merges a partial document into the tree under the given section.
// Object values merge key-wise recursively; scalar and array values replace.
// Later patches win over earlier ones per field. An empty section merges at
// the root.
func (s *Store) MergePatch(section string, patch map[string]any) {
	if len(patch) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	target := s.doc
	if section != "" {
		sub, ok := s.doc[section].(map[string]any)
		if !ok {
			sub = make(map[string]any)
			s.doc[section] = sub
		}
		target = sub
	}
	mergeInto(target, patch)
}

// mergeInto merges src into dst recursively.
func mergeInto(dst, src map[string]any) {
	for k, v := range src {
		if srcMap, ok := v.(map[string]any); ok {
			if dstMap, ok := dst[k].(map[string]any); ok {
				mergeInto(dstMap, srcMap)
				continue
			}
			// Replace non-map with a copy of the patch map
			fresh := make(map[string]any, len(srcMap))
			mergeInto(fresh, srcMap)
			dst[k] = fresh
			continue
		}
		dst[k] = v
	}
}

// Delete removes a key under the given section.
func (s *Store) Delete(section string, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if section == "" {
		delete(s.doc, key)
		return
	}
	if sub, ok := s.doc[section].(map[string]any); ok {
		delete(sub, key)
	}
}

// ClearSection replaces an entire section with an empty map.
func (s *Store) ClearSection(section string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc[section] = make(map[string]any)
}

// lookup walks the document along the given path.
func (s *Store) lookup(path ...string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var cur any = s.doc
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Has reports whether a value exists at the given path.
func (s *Store) Has(path ...string) bool {
	_, ok := s.lookup(path...)
	return ok
}

// Str returns the string at path, or fallback if missing or not a string.
func (s *Store) Str(fallback string, path ...string) string {
	v, ok := s.lookup(path...)
	if !ok {
		return fallback
	}
	if str, ok := v.(string); ok {
		return str
	}
	return fallback
}

// Num returns the number at path, or fallback. YAML and JSON decode numbers
// to a mix of int, int64, uint64 and float64; all are accepted.
func (s *Store) Num(fallback float64, path ...string) float64 {
	v, ok := s.lookup(path...)
	if !ok {
		return fallback
	}
	if f, ok := toFloat(v); ok {
		return f
	}
	return fallback
}

// Int returns the number at path truncated to int, or fallback.
func (s *Store) Int(fallback int, path ...string) int {
	v, ok := s.lookup(path...)
	if !ok {
		return fallback
	}
	if f, ok := toFloat(v); ok {
		return int(f)
	}
	return fallback
}

// Bool returns the bool at path, or fallback. String forms "true"/"false"
// are tolerated since hand-edited documents use them.
func (s *Store) Bool(fallback bool, path ...string) bool {
	v, ok := s.lookup(path...)
	if !ok {
		return fallback
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		if parsed, err := strconv.ParseBool(strings.TrimSpace(b)); err == nil {
			return parsed
		}
	}
	return fallback
}

// Frac returns the number at path clamped to [0, 1], or fallback.
// Layout values are fractions of canvas dimensions unless explicitly pixels.
func (s *Store) Frac(fallback float64, path ...string) float64 {
	f := s.Num(fallback, path...)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// Strs returns the string list at path, or nil. Non-string entries are
// skipped.
func (s *Store) Strs(path ...string) []string {
	v, ok := s.lookup(path...)
	if !ok {
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if str, ok := item.(string); ok {
			out = append(out, str)
		}
	}
	return out
}

// Sub returns a deep copy of the map at path, or nil. Callers get a copy so
// held results cannot observe later mutation; re-read for current values.
func (s *Store) Sub(path ...string) map[string]any {
	v, ok := s.lookup(path...)
	if !ok {
		return nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return deepCopy(m)
}

// Keys returns the sorted-insertion keys of the map at path, or nil.
func (s *Store) Keys(path ...string) []string {
	v, ok := s.lookup(path...)
	if !ok {
		return nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

// Snapshot returns a deep copy of the whole document, used by tests and the
// editor bridge's state report.
func (s *Store) Snapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return deepCopy(s.doc)
}

func deepCopy(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		switch val := v.(type) {
		case map[string]any:
			out[k] = deepCopy(val)
		case []any:
			list := make([]any, len(val))
			copy(list, val)
			out[k] = list
		default:
			out[k] = v
		}
	}
	return out
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}
