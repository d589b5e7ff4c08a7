package application

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/gjalla/gjalla/pkg/domain"
	"github.com/gjalla/gjalla/pkg/domain/requirements"
)

// kiroGlob selects the structured requirement files, relative to the
// project root.
const kiroGlob = ".kiro/**/*.md"

// RequirementsService extracts and aggregates requirement statements from
// project documentation.
type RequirementsService struct {
	repo  domain.WorkspaceRepository
	audit domain.AuditLogger
}

func NewRequirementsService(repo domain.WorkspaceRepository, audit domain.AuditLogger) *RequirementsService {
	return &RequirementsService{repo: repo, audit: audit}
}

// Aggregate scans all discovered markdown files for requirement statements
// and deduplicates them.
func (s *RequirementsService) Aggregate() (*requirements.Aggregate, error) {
	cfg, err := s.repo.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	root := s.repo.Root()
	files, err := DiscoverFiles(root, cfg)
	if err != nil {
		return nil, err
	}

	var extracted []requirements.Extracted
	for _, path := range files {
		content, err := os.ReadFile(path) // #nosec G304 -- paths come from project discovery
		if err != nil {
			continue
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		extracted = append(extracted, requirements.Extract(string(content), filepath.ToSlash(rel))...)
	}

	return requirements.NewAggregate(extracted), nil
}

// WriteAggregate runs an aggregate scan and writes the result as the living
// requirements document. It returns the aggregate and the path written,
// relative to the root.
func (s *RequirementsService) WriteAggregate() (*requirements.Aggregate, string, error) {
	agg, err := s.Aggregate()
	if err != nil {
		return nil, "", err
	}

	if err := s.writeDocument(agg.Render()); err != nil {
		return nil, "", err
	}

	if err := s.audit.Log("requirements.aggregate", "cli", map[string]interface{}{
		"total":              len(agg.Requirements),
		"duplicates_removed": agg.DuplicatesRemoved,
		"source_files":       len(agg.SourceFiles),
	}); err != nil {
		return nil, "", fmt.Errorf("write audit log: %w", err)
	}
	return agg, ScaffoldPath, nil
}

// SyncStructured parses the .kiro requirement files and regenerates the
// living requirements document from them.
func (s *RequirementsService) SyncStructured() ([]requirements.StructuredRequirement, string, error) {
	root := s.repo.Root()

	matches, err := doublestar.Glob(os.DirFS(root), kiroGlob)
	if err != nil {
		return nil, "", fmt.Errorf("scan .kiro files: %w", err)
	}
	sort.Strings(matches)

	var reqs []requirements.StructuredRequirement
	for _, rel := range matches {
		content, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel))) // #nosec G304
		if err != nil {
			continue
		}
		reqs = append(reqs, requirements.ParseStructured(string(content), rel)...)
	}

	if len(reqs) == 0 {
		return nil, "", ErrNoStructuredFiles
	}

	if err := s.writeDocument(requirements.RenderStructured(reqs, time.Now())); err != nil {
		return nil, "", err
	}

	if err := s.audit.Log("requirements.sync", "cli", map[string]interface{}{
		"total": len(reqs),
		"files": len(matches),
	}); err != nil {
		return nil, "", fmt.Errorf("write audit log: %w", err)
	}
	return reqs, ScaffoldPath, nil
}

// List summarizes the existing requirements document without rescanning.
func (s *RequirementsService) List() (*requirements.Summary, error) {
	path := filepath.Join(s.repo.Root(), filepath.FromSlash(ScaffoldPath))
	content, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s", ErrNoRequirementsDoc, ScaffoldPath)
		}
		return nil, fmt.Errorf("read %s: %w", ScaffoldPath, err)
	}
	return requirements.ParseSummary(string(content)), nil
}

func (s *RequirementsService) writeDocument(content string) error {
	path := filepath.Join(s.repo.Root(), filepath.FromSlash(ScaffoldPath))
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(ScaffoldPath), err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("write %s: %w", ScaffoldPath, err)
	}
	return nil
}
