// Package application wires the domain packages into the operations the CLI
// exposes: init, organize, undo, requirements, validate, and status.
package application

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/gjalla/gjalla/pkg/domain/config"
)

// DiscoverFiles walks the project and returns every file matched by the
// config's include globs and not matched by its exclude globs. A configured
// backup directory is always excluded so organized backups are never
// rediscovered. Paths are absolute, in walk order.
func DiscoverFiles(root string, cfg *config.Config) ([]string, error) {
	exclude := cfg.Exclude
	if cfg.BackupDir != "" {
		dir := strings.TrimSuffix(filepath.ToSlash(filepath.Clean(cfg.BackupDir)), "/")
		exclude = append(append([]string(nil), exclude...), dir+"/**")
	}

	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}

		if d.IsDir() {
			if matchAny(exclude, rel) {
				return filepath.SkipDir
			}
			return nil
		}

		if matchAny(exclude, rel) {
			return nil
		}
		if matchAny(cfg.Include, rel) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover files in %s: %w", root, err)
	}
	return files, nil
}

// matchAny reports whether rel matches at least one doublestar glob. A glob
// like ".gjalla/**" also excludes the directory itself.
func matchAny(globs []string, rel string) bool {
	for _, g := range globs {
		if ok, err := doublestar.Match(g, rel); err == nil && ok {
			return true
		}
		// "dir/**" should also match "dir" so WalkDir can skip it early.
		if ok, err := doublestar.Match(g, rel+"/x"); err == nil && ok {
			return true
		}
	}
	return false
}
