package organize_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gjalla/gjalla/pkg/domain/organize"
	"github.com/gjalla/gjalla/pkg/domain/template"
)

func TestValidateStructure(t *testing.T) {
	root := t.TempDir()
	tmpl := template.Default()

	// Empty project: nothing compliant.
	report, err := organize.ValidateStructure(root, tmpl)
	if err != nil {
		t.Fatalf("ValidateStructure failed: %v", err)
	}
	if report.ComplianceScore != 0.0 {
		t.Errorf("empty dir score = %.2f, want 0", report.ComplianceScore)
	}
	if len(report.MissingDirs) != 4 {
		t.Errorf("missing = %v, want 4 entries", report.MissingDirs)
	}

	// Partial compliance.
	if err := os.MkdirAll(filepath.Join(root, "specs", "features"), 0o700); err != nil {
		t.Fatal(err)
	}
	report, err = organize.ValidateStructure(root, tmpl)
	if err != nil {
		t.Fatal(err)
	}
	if report.ComplianceScore <= 0.0 || report.ComplianceScore >= 1.0 {
		t.Errorf("partial score = %.2f, want between 0 and 1", report.ComplianceScore)
	}
	if len(report.ExistingDirs) != 2 || len(report.MissingDirs) != 2 {
		t.Errorf("existing = %v, missing = %v", report.ExistingDirs, report.MissingDirs)
	}

	// Full compliance.
	for _, d := range []string{"specs/fixes", "specs/reference"} {
		if err := os.MkdirAll(filepath.Join(root, filepath.FromSlash(d)), 0o700); err != nil {
			t.Fatal(err)
		}
	}
	report, err = organize.ValidateStructure(root, tmpl)
	if err != nil {
		t.Fatal(err)
	}
	if report.ComplianceScore != 1.0 {
		t.Errorf("full score = %.2f, want 1.0", report.ComplianceScore)
	}

	// Unexpected directories are reported; hidden ones are not.
	for _, d := range []string{"docs", "old_stuff", ".git"} {
		if err := os.Mkdir(filepath.Join(root, d), 0o700); err != nil {
			t.Fatal(err)
		}
	}
	report, err = organize.ValidateStructure(root, tmpl)
	if err != nil {
		t.Fatal(err)
	}
	if len(report.UnexpectedDirs) != 2 {
		t.Errorf("unexpected = %v, want [docs old_stuff]", report.UnexpectedDirs)
	}
}

func TestValidateStructureMissingRoot(t *testing.T) {
	_, err := organize.ValidateStructure(filepath.Join(t.TempDir(), "nope"), template.Default())
	var verr *organize.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestComplianceScore(t *testing.T) {
	tests := []struct {
		expected, found int
		want            float64
	}{
		{10, 7, 0.7},
		{5, 5, 1.0},
		{0, 0, 1.0},
		{4, 0, 0.0},
	}
	for _, tt := range tests {
		if got := organize.ComplianceScore(tt.expected, tt.found); got != tt.want {
			t.Errorf("ComplianceScore(%d, %d) = %.2f, want %.2f", tt.expected, tt.found, got, tt.want)
		}
	}
}
