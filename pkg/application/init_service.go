package application

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gjalla/gjalla/pkg/domain"
	"github.com/gjalla/gjalla/pkg/domain/config"
	"github.com/gjalla/gjalla/pkg/domain/template"
)

// ScaffoldPath is where init writes the requirements document skeleton,
// relative to the project root.
const ScaffoldPath = "specs/requirements.md"

// InitService sets up the .gjalla workspace and the documentation skeleton.
type InitService struct {
	repo  domain.WorkspaceRepository
	audit domain.AuditLogger
}

func NewInitService(repo domain.WorkspaceRepository, audit domain.AuditLogger) *InitService {
	return &InitService{repo: repo, audit: audit}
}

// InitResult reports what init created.
type InitResult struct {
	CreatedDirs  []string
	ScaffoldPath string
}

// Initialize creates .gjalla/, writes the default config, builds the
// template directory structure, and scaffolds the requirements document.
// It refuses to run twice unless force is set.
func (s *InitService) Initialize(projectName string, force bool) (*InitResult, error) {
	if s.repo.IsInitialized() && !force {
		return nil, ErrAlreadyInitialized
	}

	if err := s.repo.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize workspace: %w", err)
	}
	if err := s.repo.SaveConfig(config.Default()); err != nil {
		return nil, fmt.Errorf("write default config: %w", err)
	}

	result := &InitResult{ScaffoldPath: ScaffoldPath}

	root := s.repo.Root()
	tmpl := template.Default()
	for _, rel := range tmpl.Directories() {
		full := filepath.Join(root, filepath.FromSlash(rel))
		if _, err := os.Stat(full); err == nil {
			continue
		}
		if err := os.MkdirAll(full, 0750); err != nil {
			return nil, fmt.Errorf("create %s: %w", rel, err)
		}
		result.CreatedDirs = append(result.CreatedDirs, rel)
	}

	scaffoldFull := filepath.Join(root, filepath.FromSlash(ScaffoldPath))
	if _, err := os.Stat(scaffoldFull); os.IsNotExist(err) || force {
		content := template.Scaffold(projectName)
		if err := os.WriteFile(scaffoldFull, []byte(content), 0600); err != nil {
			return nil, fmt.Errorf("write scaffold: %w", err)
		}
	}

	if err := s.audit.Log("workspace.init", "cli", map[string]interface{}{
		"project": projectName,
		"force":   force,
	}); err != nil {
		return nil, fmt.Errorf("write audit log: %w", err)
	}
	return result, nil
}
