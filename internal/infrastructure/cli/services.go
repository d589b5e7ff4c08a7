package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gjalla/gjalla/pkg/application"
	"github.com/gjalla/gjalla/pkg/storage"
)

// Services bundles the repository and the service layer for one project
// directory.
type Services struct {
	Dir   string
	Repo  *storage.FilesystemRepository
	Audit *application.AuditService
}

// loadServices resolves the optional directory argument (default: the
// current directory) and wires the service layer for it.
func loadServices(args []string) (*Services, error) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, NewCLIError(fmt.Sprintf("cannot access %s", dir), "Check that the directory exists", err)
	}
	if !info.IsDir() {
		return nil, NewCLIError(fmt.Sprintf("%s is not a directory", dir), "Point gjalla at a project directory", nil)
	}

	repo := storage.NewFilesystemRepository(abs)

	// The config may pin a custom backup location.
	if cfg, err := repo.LoadConfig(); err == nil && cfg.BackupDir != "" {
		if err := repo.SetBackupDir(cfg.BackupDir); err != nil {
			return nil, err
		}
	}

	return &Services{
		Dir:   abs,
		Repo:  repo,
		Audit: application.NewAuditService(repo),
	}, nil
}
