package organize

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gjalla/gjalla/pkg/domain/classify"
	"github.com/gjalla/gjalla/pkg/domain/template"
)

// Move is a single planned file relocation.
type Move struct {
	Source   string `json:"source"`
	Target   string `json:"target"`
	Category string `json:"category"`
}

// Plan is everything organize intends to do, computed before anything is
// touched so that dry runs and previews are exact.
type Plan struct {
	CreateDirs []string `json:"create_dirs"`
	Moves      []Move   `json:"moves"`
	Skipped    []string `json:"skipped,omitempty"`
}

// Empty reports whether the plan would change nothing.
func (p *Plan) Empty() bool {
	return len(p.CreateDirs) == 0 && len(p.Moves) == 0
}

// BuildPlan turns classification results into a move plan. Paths are
// relative to root. Files already inside their category directory are
// skipped. Target name collisions get a numeric suffix, deterministically by
// source order.
func BuildPlan(root string, tmpl *template.OrgTemplate, report *StructureReport, files []classify.ClassifiedFile) (*Plan, error) {
	plan := &Plan{CreateDirs: append([]string(nil), report.MissingDirs...)}

	sorted := append([]classify.ClassifiedFile(nil), files...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	taken := make(map[string]bool)
	for _, cf := range sorted {
		targetDir, ok := tmpl.Placement[cf.Category]
		if !ok {
			return nil, fmt.Errorf("no placement rule for category %q", cf.Category)
		}

		rel, err := filepath.Rel(root, cf.Path)
		if err != nil {
			rel = cf.Path
		}
		rel = filepath.ToSlash(rel)

		if strings.HasPrefix(rel, targetDir+"/") {
			plan.Skipped = append(plan.Skipped, rel)
			continue
		}

		target := targetDir + "/" + filepath.Base(rel)
		target = dedupeTarget(root, target, taken)
		taken[target] = true

		plan.Moves = append(plan.Moves, Move{Source: rel, Target: target, Category: cf.Category})
	}

	return plan, nil
}

// dedupeTarget appends -1, -2, ... before the extension until the name is
// free both in the plan and on disk. Files already at a target were never
// backed up, so they must not be overwritten.
func dedupeTarget(root, target string, taken map[string]bool) string {
	if targetFree(root, target, taken) {
		return target
	}
	ext := filepath.Ext(target)
	stem := strings.TrimSuffix(target, ext)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s-%d%s", stem, i, ext)
		if targetFree(root, candidate, taken) {
			return candidate
		}
	}
}

func targetFree(root, rel string, taken map[string]bool) bool {
	if taken[rel] {
		return false
	}
	_, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
	return os.IsNotExist(err)
}
