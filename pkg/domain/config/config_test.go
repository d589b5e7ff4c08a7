package config_test

import (
	"strings"
	"testing"

	"github.com/gjalla/gjalla/pkg/domain/config"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	if len(cfg.Include) == 0 || cfg.Include[0] != "**/*.md" {
		t.Errorf("Include = %v", cfg.Include)
	}
	if cfg.LowConfidence != 0.5 {
		t.Errorf("LowConfidence = %v", cfg.LowConfidence)
	}
	found := false
	for _, e := range cfg.Exclude {
		if e == ".gjalla/**" {
			found = true
		}
	}
	if !found {
		t.Errorf("default exclude should skip the tool's own directory: %v", cfg.Exclude)
	}
}

func TestParseRoundTrip(t *testing.T) {
	cfg := config.Default()
	cfg.Categories = map[string]config.CategoryPattern{
		"testing": {Filename: `(?i)test`, Keywords: []string{"qa", "test plan"}},
	}
	data, err := cfg.Marshal()
	if err != nil {
		t.Fatal(err)
	}

	parsed, err := config.Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if parsed.Categories["testing"].Filename != `(?i)test` {
		t.Errorf("Categories = %v", parsed.Categories)
	}
}

func TestParseDefaultsApply(t *testing.T) {
	parsed, err := config.Parse([]byte("backup_dir: .backups\n"))
	if err != nil {
		t.Fatal(err)
	}
	if parsed.BackupDir != ".backups" {
		t.Errorf("BackupDir = %q", parsed.BackupDir)
	}
	// Unset keys keep their defaults.
	if parsed.LowConfidence != 0.5 || len(parsed.Include) == 0 {
		t.Errorf("defaults not applied: %+v", parsed)
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := config.Parse([]byte("bogus_key: true\n"))
	if err == nil || !strings.Contains(err.Error(), "invalid config") {
		t.Errorf("expected schema rejection, got %v", err)
	}
}

func TestParseRejectsBadPattern(t *testing.T) {
	data := []byte("categories:\n  broken:\n    filename: \"([\"\n")
	if _, err := config.Parse(data); err == nil {
		t.Error("expected error for invalid regexp")
	}
}

func TestParseRejectsBadThreshold(t *testing.T) {
	if _, err := config.Parse([]byte("low_confidence: 7\n")); err == nil {
		t.Error("expected schema rejection for out-of-range threshold")
	}
}
