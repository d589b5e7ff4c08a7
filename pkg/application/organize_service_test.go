package application_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gjalla/gjalla/pkg/application"
	"github.com/gjalla/gjalla/pkg/domain/session"
)

func seedProject(t *testing.T, root string) {
	t.Helper()
	files := map[string]string{
		"feature-login.md": "# Login\n\nAs a user, I want to log in, so that my data is safe.\n",
		"bugfix-crash.md":  "# Crash fix\n\nThe reported issue was resolved.\n",
		"user-guide.md":    "# Guide\n\nDocumentation overview for operators.\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(root, name), []byte(content), 0600); err != nil {
			t.Fatal(err)
		}
	}
}

func TestOrganizeDryRunTouchesNothing(t *testing.T) {
	root, repo, audit := newTestServices(t)
	seedProject(t, root)

	svc := application.NewOrganizeService(repo, audit)
	result, err := svc.Organize(context.Background(), application.OrganizeOptions{DryRun: true})
	if err != nil {
		t.Fatalf("Organize: %v", err)
	}

	if !result.DryRun || result.Session != nil {
		t.Error("dry run must not record a session")
	}
	if len(result.Plan.Moves) != 3 {
		t.Errorf("moves = %+v", result.Plan.Moves)
	}
	if len(result.Plan.CreateDirs) != 4 {
		t.Errorf("create dirs = %v", result.Plan.CreateDirs)
	}

	// Files stay where they were.
	if _, err := os.Stat(filepath.Join(root, "feature-login.md")); err != nil {
		t.Errorf("dry run moved a file: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "specs")); !os.IsNotExist(err) {
		t.Error("dry run created directories")
	}
}

func TestOrganizeMovesAndRecordsSession(t *testing.T) {
	root, repo, audit := newTestServices(t)
	seedProject(t, root)

	svc := application.NewOrganizeService(repo, audit)
	result, err := svc.Organize(context.Background(), application.OrganizeOptions{})
	if err != nil {
		t.Fatalf("Organize: %v", err)
	}

	wantMoves := map[string]string{
		"feature-login.md": "specs/features/feature-login.md",
		"bugfix-crash.md":  "specs/fixes/bugfix-crash.md",
		"user-guide.md":    "specs/reference/user-guide.md",
	}
	for src, dst := range wantMoves {
		if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(dst))); err != nil {
			t.Errorf("expected %s at %s: %v", src, dst, err)
		}
		if _, err := os.Stat(filepath.Join(root, src)); !os.IsNotExist(err) {
			t.Errorf("%s should have been moved away", src)
		}
	}

	if result.Session == nil {
		t.Fatal("expected a recorded session")
	}
	if result.Session.Status != session.StatusApplied {
		t.Errorf("session status = %q", result.Session.Status)
	}
	if got := len(result.Session.Moves()); got != 3 {
		t.Errorf("session moves = %d", got)
	}

	// Each moved file was backed up first.
	for src := range wantMoves {
		backup := filepath.Join(root, ".gjalla", "backups", result.Session.ID, src)
		if _, err := os.Stat(backup); err != nil {
			t.Errorf("missing backup for %s: %v", src, err)
		}
	}

	events, err := repo.LoadEvents()
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 || events[0].Action != "organize.apply" {
		t.Errorf("events = %+v", events)
	}
}

func TestOrganizeIsIdempotent(t *testing.T) {
	root, repo, audit := newTestServices(t)
	seedProject(t, root)

	svc := application.NewOrganizeService(repo, audit)
	if _, err := svc.Organize(context.Background(), application.OrganizeOptions{}); err != nil {
		t.Fatal(err)
	}

	second, err := svc.Organize(context.Background(), application.OrganizeOptions{})
	if err != nil {
		t.Fatalf("second organize: %v", err)
	}
	if len(second.Plan.Moves) != 0 {
		t.Errorf("second run should move nothing, got %+v", second.Plan.Moves)
	}
	if len(second.Plan.Skipped) != 3 {
		t.Errorf("skipped = %v", second.Plan.Skipped)
	}
}

func TestOrganizePreservesExistingTargetFile(t *testing.T) {
	root, repo, audit := newTestServices(t)

	organized := filepath.Join(root, "specs", "features", "feature-login.md")
	if err := os.MkdirAll(filepath.Dir(organized), 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(organized, []byte("# Original\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "feature-login.md"), []byte("# Newcomer\n"), 0600); err != nil {
		t.Fatal(err)
	}

	svc := application.NewOrganizeService(repo, audit)
	if _, err := svc.Organize(context.Background(), application.OrganizeOptions{}); err != nil {
		t.Fatalf("Organize: %v", err)
	}

	content, err := os.ReadFile(organized)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "# Original\n" {
		t.Errorf("pre-existing file was overwritten; now contains: %s", content)
	}

	moved, err := os.ReadFile(filepath.Join(root, "specs", "features", "feature-login-1.md"))
	if err != nil {
		t.Fatalf("newcomer not moved to a suffixed name: %v", err)
	}
	if string(moved) != "# Newcomer\n" {
		t.Errorf("suffixed file contains: %s", moved)
	}
}

func TestUndoRestoresMovedFiles(t *testing.T) {
	root, repo, audit := newTestServices(t)
	seedProject(t, root)

	orgSvc := application.NewOrganizeService(repo, audit)
	result, err := orgSvc.Organize(context.Background(), application.OrganizeOptions{})
	if err != nil {
		t.Fatal(err)
	}

	undoSvc := application.NewUndoService(repo, audit)

	// Dry run reports the moves without applying them.
	preview, err := undoSvc.Undo("", true)
	if err != nil {
		t.Fatalf("dry-run undo: %v", err)
	}
	if len(preview.Restored) != 3 {
		t.Errorf("preview restored = %d", len(preview.Restored))
	}
	if _, err := os.Stat(filepath.Join(root, "feature-login.md")); !os.IsNotExist(err) {
		t.Error("dry-run undo moved files")
	}

	undone, err := undoSvc.Undo(result.Session.ID, false)
	if err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if undone.Session.Status != session.StatusUndone {
		t.Errorf("session status = %q", undone.Session.Status)
	}
	for _, name := range []string{"feature-login.md", "bugfix-crash.md", "user-guide.md"} {
		if _, err := os.Stat(filepath.Join(root, name)); err != nil {
			t.Errorf("%s not restored: %v", name, err)
		}
	}

	// The session on disk reflects the transition, so a second undo fails.
	if _, err := undoSvc.Undo(result.Session.ID, false); err == nil {
		t.Error("undoing twice should fail")
	}
}

func TestUndoResolvesLatestSession(t *testing.T) {
	root, repo, audit := newTestServices(t)
	seedProject(t, root)

	orgSvc := application.NewOrganizeService(repo, audit)
	result, err := orgSvc.Organize(context.Background(), application.OrganizeOptions{})
	if err != nil {
		t.Fatal(err)
	}

	undoSvc := application.NewUndoService(repo, audit)
	resolved, err := undoSvc.Resolve("")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if resolved.ID != result.Session.ID {
		t.Errorf("resolved %s, want %s", resolved.ID, result.Session.ID)
	}
}
