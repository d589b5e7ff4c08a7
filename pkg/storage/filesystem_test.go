package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gjalla/gjalla/pkg/domain/config"
	"github.com/gjalla/gjalla/pkg/domain/session"
	"github.com/gjalla/gjalla/pkg/storage"
)

func TestInitializeAndIsInitialized(t *testing.T) {
	root := t.TempDir()
	repo := storage.NewFilesystemRepository(root)

	if repo.IsInitialized() {
		t.Fatal("fresh directory should not be initialized")
	}
	if err := repo.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if !repo.IsInitialized() {
		t.Fatal("IsInitialized should be true after Initialize")
	}

	for _, dir := range []string{"sessions", "backups"} {
		if _, err := os.Stat(filepath.Join(root, ".gjalla", dir)); err != nil {
			t.Errorf("expected %s to exist: %v", dir, err)
		}
	}
}

func TestResolvePathRejectsTraversal(t *testing.T) {
	repo := storage.NewFilesystemRepository(t.TempDir())

	for _, name := range []string{"../escape.yaml", "../../etc/passwd", ""} {
		if _, err := repo.ResolvePath(name); err == nil {
			t.Errorf("ResolvePath(%q) should fail", name)
		}
	}

	// Nested paths under the dot directory are fine.
	if _, err := repo.ResolvePath(filepath.Join("backups", "abc", "docs", "a.md")); err != nil {
		t.Errorf("nested path rejected: %v", err)
	}
}

func TestConfigRoundTrip(t *testing.T) {
	repo := storage.NewFilesystemRepository(t.TempDir())
	if err := repo.Initialize(); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.LowConfidence = 0.7
	if err := repo.SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	loaded, err := repo.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.LowConfidence != 0.7 {
		t.Errorf("LowConfidence = %v", loaded.LowConfidence)
	}
}

func TestLoadConfigDefaultsWhenMissing(t *testing.T) {
	repo := storage.NewFilesystemRepository(t.TempDir())

	cfg, err := repo.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.LowConfidence != 0.5 {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestSessionRoundTripAndList(t *testing.T) {
	repo := storage.NewFilesystemRepository(t.TempDir())
	if err := repo.Initialize(); err != nil {
		t.Fatal(err)
	}

	first := session.New("organize", ".")
	first.Record(session.FileOp{Type: session.OpMove, Source: "a.md", Target: "specs/features/a.md"})
	second := session.New("organize", ".")

	for _, s := range []*session.Session{first, second} {
		if err := repo.SaveSession(s); err != nil {
			t.Fatalf("SaveSession: %v", err)
		}
	}

	loaded, err := repo.LoadSession(first.ID)
	if err != nil {
		t.Fatalf("LoadSession: %v", err)
	}
	if len(loaded.Ops) != 1 || loaded.Ops[0].Source != "a.md" {
		t.Errorf("ops = %+v", loaded.Ops)
	}

	all, err := repo.ListSessions()
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("ListSessions returned %d sessions", len(all))
	}
}

func TestSaveSessionRejectsInvalid(t *testing.T) {
	repo := storage.NewFilesystemRepository(t.TempDir())
	if err := repo.Initialize(); err != nil {
		t.Fatal(err)
	}

	bad := &session.Session{}
	if err := repo.SaveSession(bad); err == nil {
		t.Error("expected validation error")
	}
}

func TestBackupAndRestore(t *testing.T) {
	root := t.TempDir()
	repo := storage.NewFilesystemRepository(root)
	if err := repo.Initialize(); err != nil {
		t.Fatal(err)
	}

	rel := filepath.Join("docs", "plan.md")
	original := []byte("# Plan\n")
	if err := os.MkdirAll(filepath.Join(root, "docs"), 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, rel), original, 0600); err != nil {
		t.Fatal(err)
	}

	if err := repo.BackupFile("sess-1", rel); err != nil {
		t.Fatalf("BackupFile: %v", err)
	}

	// Clobber the original, then restore it.
	if err := os.WriteFile(filepath.Join(root, rel), []byte("ruined"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := repo.RestoreFile("sess-1", rel); err != nil {
		t.Fatalf("RestoreFile: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(root, rel))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(original) {
		t.Errorf("restored content = %q", got)
	}
}

func TestBackupDirOverride(t *testing.T) {
	root := t.TempDir()
	repo := storage.NewFilesystemRepository(root)

	if err := repo.SetBackupDir("../outside"); err == nil {
		t.Error("backup dir outside the project should be rejected")
	}
	if err := repo.SetBackupDir("/abs"); err == nil {
		t.Error("absolute backup dir should be rejected")
	}
	if err := repo.SetBackupDir(".backups"); err != nil {
		t.Fatalf("SetBackupDir: %v", err)
	}

	if err := os.WriteFile(filepath.Join(root, "plan.md"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := repo.BackupFile("sess-2", "plan.md"); err != nil {
		t.Fatalf("BackupFile: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, ".backups", "sess-2", "plan.md")); err != nil {
		t.Errorf("backup not in override dir: %v", err)
	}
}
