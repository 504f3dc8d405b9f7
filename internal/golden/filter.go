package golden

import (
	"path/filepath"
	"strings"

	"goldrun/internal/domain"
)

// FilterByTitle keeps the ids whose source title matches pattern, in their original order.
// Supports wildcards like "*unbound*"; a pattern without wildcards matches as a substring.
// Cases whose source cannot be read never match.
func (s *Store) FilterByTitle(ids []int, pattern string) []int {
	if pattern == "" {
		return ids
	}

	var filtered []int
	for _, id := range ids {
		tc, err := s.Resolve(id, domain.KindSource, true)
		if err != nil || tc.Title == "" {
			continue
		}
		if MatchTitle(tc.Title, pattern) {
			filtered = append(filtered, id)
		}
	}
	return filtered
}

// MatchTitle reports whether title matches a wildcard or substring pattern.
func MatchTitle(title, pattern string) bool {
	if matched, err := filepath.Match(pattern, title); err == nil && matched {
		return true
	}

	if !strings.ContainsAny(pattern, "*?") {
		return strings.Contains(title, pattern)
	}

	// filepath.Match did not match; fall back to finding every literal part in order
	rest := title
	hasPart := false
	for _, part := range strings.Split(pattern, "*") {
		if part == "" {
			continue
		}
		if strings.Contains(part, "?") {
			return false
		}
		i := strings.Index(rest, part)
		if i < 0 {
			return false
		}
		rest = rest[i+len(part):]
		hasPart = true
	}
	return hasPart
}
