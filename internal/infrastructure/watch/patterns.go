package watch

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// PatternFilter decides which changed paths are worth a revalidation,
// using the same doublestar globs the config uses for discovery.
type PatternFilter struct {
	root    string
	include []string
	exclude []string
}

// NewPatternFilter creates a filter for paths under root.
func NewPatternFilter(root string, include, exclude []string) *PatternFilter {
	return &PatternFilter{root: root, include: include, exclude: exclude}
}

// Matches reports whether the path passes the filter. Paths outside root
// never match. Exclude globs win over include globs.
func (f *PatternFilter) Matches(path string) bool {
	rel, ok := f.relative(path)
	if !ok {
		return false
	}

	for _, pattern := range f.exclude {
		if matched, err := doublestar.Match(pattern, rel); err == nil && matched {
			return false
		}
	}

	if len(f.include) == 0 {
		return true
	}
	for _, pattern := range f.include {
		if matched, err := doublestar.Match(pattern, rel); err == nil && matched {
			return true
		}
	}
	return false
}

// ExcludesDir reports whether a directory subtree can be skipped entirely,
// that is, an exclude glob like ".git/**" covers everything below it.
func (f *PatternFilter) ExcludesDir(path string) bool {
	rel, ok := f.relative(path)
	if !ok {
		return false
	}

	for _, pattern := range f.exclude {
		if matched, err := doublestar.Match(pattern, rel+"/x"); err == nil && matched {
			return true
		}
	}
	return false
}

func (f *PatternFilter) relative(path string) (string, bool) {
	rel, err := filepath.Rel(f.root, path)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if rel == "." || strings.HasPrefix(rel, "../") || rel == ".." {
		return "", false
	}
	return rel, true
}
