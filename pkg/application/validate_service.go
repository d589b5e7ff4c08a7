package application

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gjalla/gjalla/pkg/domain"
	"github.com/gjalla/gjalla/pkg/domain/document"
)

// ValidateService lints requirements documents for structural problems:
// missing user stories, missing or free-form acceptance criteria, summary
// checklist drift, and unfilled placeholders.
type ValidateService struct {
	repo domain.WorkspaceRepository
}

func NewValidateService(repo domain.WorkspaceRepository) *ValidateService {
	return &ValidateService{repo: repo}
}

// FileReport is the lint outcome for one document.
type FileReport struct {
	Path       string               `json:"path"`
	Violations []document.Violation `json:"violations"`
}

// ValidationReport collects the lint outcome across the project.
type ValidationReport struct {
	Files           []FileReport `json:"files"`
	DocumentsLinted int          `json:"documents_linted"`
	TotalViolations int          `json:"total_violations"`
}

// ValidateAll lints every discovered markdown file that is shaped like a
// requirements document, that is, one with a Requirements section.
func (s *ValidateService) ValidateAll() (*ValidationReport, error) {
	cfg, err := s.repo.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	root := s.repo.Root()
	files, err := DiscoverFiles(root, cfg)
	if err != nil {
		return nil, err
	}

	// The living requirements document is excluded from discovery but is
	// still a lint target.
	scaffold := filepath.Join(root, filepath.FromSlash(ScaffoldPath))
	if _, err := os.Stat(scaffold); err == nil {
		files = append(files, scaffold)
	}

	report := &ValidationReport{}
	for _, path := range files {
		fr, err := s.ValidateFile(path)
		if err != nil || fr == nil {
			continue
		}
		report.Files = append(report.Files, *fr)
		report.DocumentsLinted++
		report.TotalViolations += len(fr.Violations)
	}
	return report, nil
}

// ValidateFile lints a single document. Files without a Requirements
// section are not requirements documents and yield nil.
func (s *ValidateService) ValidateFile(path string) (*FileReport, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- paths come from project discovery
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	rel, err := filepath.Rel(s.repo.Root(), path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)

	doc := document.Parse(rel, string(content))
	if doc.Section("Requirements") == nil {
		return nil, nil
	}
	return &FileReport{Path: rel, Violations: doc.Lint()}, nil
}
