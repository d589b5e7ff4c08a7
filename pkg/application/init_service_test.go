package application_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gjalla/gjalla/pkg/application"
	"github.com/gjalla/gjalla/pkg/storage"
)

func newTestServices(t *testing.T) (string, *storage.FilesystemRepository, *application.AuditService) {
	t.Helper()
	root := t.TempDir()
	repo := storage.NewFilesystemRepository(root)
	return root, repo, application.NewAuditService(repo)
}

func TestInitializeCreatesWorkspace(t *testing.T) {
	root, repo, audit := newTestServices(t)
	svc := application.NewInitService(repo, audit)

	result, err := svc.Initialize("Billing", false)
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	if !repo.IsInitialized() {
		t.Error("workspace should be initialized")
	}
	if _, err := os.Stat(filepath.Join(root, ".gjalla", "config.yaml")); err != nil {
		t.Errorf("config.yaml missing: %v", err)
	}
	for _, dir := range []string{"specs", "specs/features", "specs/fixes", "specs/reference"} {
		if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(dir))); err != nil {
			t.Errorf("missing directory %s: %v", dir, err)
		}
	}
	if len(result.CreatedDirs) != 4 {
		t.Errorf("CreatedDirs = %v", result.CreatedDirs)
	}

	scaffold, err := os.ReadFile(filepath.Join(root, "specs", "requirements.md"))
	if err != nil {
		t.Fatalf("scaffold missing: %v", err)
	}
	if !strings.Contains(string(scaffold), "# Billing Requirements Document") {
		t.Error("scaffold should carry the project name")
	}
	if !strings.Contains(string(scaffold), "## Acceptance Criteria Summary") {
		t.Error("scaffold should include the summary checklist")
	}

	events, err := repo.LoadEvents()
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 || events[0].Action != "workspace.init" {
		t.Errorf("events = %+v", events)
	}
}

func TestInitializeRefusesSecondRun(t *testing.T) {
	_, repo, audit := newTestServices(t)
	svc := application.NewInitService(repo, audit)

	if _, err := svc.Initialize("One", false); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Initialize("Two", false); err == nil {
		t.Error("second init without force should fail")
	}
	if _, err := svc.Initialize("Two", true); err != nil {
		t.Errorf("forced init should succeed: %v", err)
	}
}

func TestInitializeForceRewritesScaffold(t *testing.T) {
	root, repo, audit := newTestServices(t)
	svc := application.NewInitService(repo, audit)

	if _, err := svc.Initialize("First", false); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(root, "specs", "requirements.md")
	if err := os.WriteFile(path, []byte("# edited\n"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Initialize("Second", true); err != nil {
		t.Fatal(err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "# Second Requirements Document") {
		t.Error("force should rewrite the scaffold")
	}
}
