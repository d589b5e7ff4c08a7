// Package organize computes directory compliance and file move plans for
// the organize command.
package organize

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gjalla/gjalla/pkg/domain/template"
)

// StructureReport describes how a project tree compares to a template.
type StructureReport struct {
	ComplianceScore float64
	ExpectedDirs    []string
	ExistingDirs    []string
	MissingDirs     []string
	UnexpectedDirs  []string
}

// ValidationError reports a structure validation that could not run at all.
type ValidationError struct {
	Dir string
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("cannot validate structure of %s: %v", e.Dir, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ValidateStructure compares the directories under root with the template's
// expected tree.
func ValidateStructure(root string, tmpl *template.OrgTemplate) (*StructureReport, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, &ValidationError{Dir: root, Err: err}
	}
	if !info.IsDir() {
		return nil, &ValidationError{Dir: root, Err: fmt.Errorf("not a directory")}
	}

	report := &StructureReport{ExpectedDirs: tmpl.Directories()}

	for _, rel := range report.ExpectedDirs {
		full := filepath.Join(root, filepath.FromSlash(rel))
		if fi, err := os.Stat(full); err == nil && fi.IsDir() {
			report.ExistingDirs = append(report.ExistingDirs, rel)
		} else {
			report.MissingDirs = append(report.MissingDirs, rel)
		}
	}

	report.UnexpectedDirs = unexpectedDirs(root, report.ExpectedDirs)
	report.ComplianceScore = ComplianceScore(len(report.ExpectedDirs), len(report.ExistingDirs))
	return report, nil
}

// ComplianceScore is found/expected, with an empty expectation counting as
// fully compliant.
func ComplianceScore(expected, found int) float64 {
	if expected == 0 {
		return 1.0
	}
	return float64(found) / float64(expected)
}

// unexpectedDirs lists top-level directories that the template does not
// mention. Hidden directories are the tool's own business (.git, .gjalla,
// .kiro) and are never reported.
func unexpectedDirs(root string, expected []string) []string {
	expectedTop := make(map[string]bool)
	for _, rel := range expected {
		top := strings.SplitN(filepath.ToSlash(rel), "/", 2)[0]
		expectedTop[top] = true
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil
	}

	var unexpected []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if !expectedTop[name] {
			unexpected = append(unexpected, name)
		}
	}
	sort.Strings(unexpected)
	return unexpected
}
