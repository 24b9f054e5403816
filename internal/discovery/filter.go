package discovery

import (
	"path/filepath"
	"strings"
)

// Filter filters file paths by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByPatterns keeps the paths whose file name matches any of the patterns.
// No patterns means nothing matches.
func (f *Filter) FilterByPatterns(paths []string, patterns []string) []string {
	var filtered []string
	for _, path := range paths {
		for _, pattern := range patterns {
			if f.MatchName(filepath.Base(path), pattern) {
				filtered = append(filtered, path)
				break
			}
		}
	}
	return filtered
}

// MatchName reports whether a file name matches a wildcard pattern.
// Supports patterns like "*.png" or "*screen*"; a pattern without wildcards
// matches any name containing it.
func (f *Filter) MatchName(name, pattern string) bool {
	if pattern == "" {
		return false
	}

	// Try to match using filepath.Match (supports * and ? wildcards)
	if matched, err := filepath.Match(pattern, name); err == nil && matched {
		return true
	}

	// If pattern contains wildcards but filepath.Match didn't match,
	// every non-empty part between the wildcards must appear in order
	if strings.Contains(pattern, "*") {
		rest := name
		matchedPart := false
		for _, part := range strings.Split(pattern, "*") {
			if part == "" {
				continue
			}
			idx := strings.Index(rest, part)
			if idx < 0 {
				return false
			}
			rest = rest[idx+len(part):]
			matchedPart = true
		}
		return matchedPart
	}

	// If no wildcards, do a simple contains check
	if !strings.Contains(pattern, "?") {
		return strings.Contains(name, pattern)
	}
	return false
}
