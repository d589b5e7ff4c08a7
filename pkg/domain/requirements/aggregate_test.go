package requirements_test

import (
	"strings"
	"testing"

	"github.com/gjalla/gjalla/pkg/domain/requirements"
)

func TestNewAggregate(t *testing.T) {
	reqs := []requirements.Extracted{
		{Text: "WHEN user logs in THEN system SHALL authenticate", SourceFile: "a.md", Line: 1, Type: requirements.TypeEARS, Confidence: 0.9},
		{Text: "WHEN user logs in THEN system SHALL authenticate", SourceFile: "b.md", Line: 4, Type: requirements.TypeEARS, Confidence: 0.9},
		{Text: "The system must validate input", SourceFile: "b.md", Line: 9, Type: requirements.TypeGeneral, Confidence: 0.7},
	}

	agg := requirements.NewAggregate(reqs)

	if agg.TotalExtracted != 3 {
		t.Errorf("TotalExtracted = %d", agg.TotalExtracted)
	}
	if agg.DuplicatesRemoved != 1 {
		t.Errorf("DuplicatesRemoved = %d", agg.DuplicatesRemoved)
	}
	if len(agg.Requirements) != 2 {
		t.Errorf("Requirements = %d", len(agg.Requirements))
	}
	// Sources are those of the kept requirements, sorted.
	if len(agg.SourceFiles) != 2 || agg.SourceFiles[0] != "a.md" || agg.SourceFiles[1] != "b.md" {
		t.Errorf("SourceFiles = %v", agg.SourceFiles)
	}
}

func TestAggregateRender(t *testing.T) {
	reqs := []requirements.Extracted{
		{Text: "WHEN user logs in THEN system SHALL authenticate", SourceFile: "test1.md", Line: 1, Type: requirements.TypeEARS, Confidence: 0.9},
		{Text: "As a user, I want exports, so that I can share data.", SourceFile: "test2.md", Line: 7, Type: requirements.TypeUserStory, Confidence: 0.8},
		{Text: "The system must validate input", SourceFile: "test3.md", Line: 2, Type: requirements.TypeGeneral, Confidence: 0.7},
	}

	out := requirements.NewAggregate(reqs).Render()

	for _, want := range []string{
		"# Requirements Aggregate",
		"**Total Requirements:** 3",
		"## EARS Format Requirements",
		"## User Stories",
		"## General Requirements",
		"**Source:** test1.md:1",
		"**Confidence:** 0.90",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered aggregate missing %q", want)
		}
	}
}

func TestParseSummaryAggregate(t *testing.T) {
	reqs := []requirements.Extracted{
		{Text: "WHEN a user logs in THEN the system SHALL authenticate", SourceFile: "a.md", Line: 3, Type: requirements.TypeEARS, Confidence: 0.9},
		{Text: "The system must validate input", SourceFile: "b.md", Line: 8, Type: requirements.TypeGeneral, Confidence: 0.7},
	}
	content := requirements.NewAggregate(reqs).Render()

	summary := requirements.ParseSummary(content)
	if summary.Total != 2 {
		t.Errorf("Total = %d", summary.Total)
	}
	if len(summary.Entries) != 2 {
		t.Fatalf("Entries = %d", len(summary.Entries))
	}
	if summary.Entries[0].Source != "a.md:3" {
		t.Errorf("first source = %q", summary.Entries[0].Source)
	}
}

func TestParseSummaryStructured(t *testing.T) {
	content := `# Requirements

**Total Requirements:** 2

## REQ-AUTH-001: User Login

stuff

## REQ-API-001: Rate Limiting

more stuff
`
	summary := requirements.ParseSummary(content)
	if summary.Total != 2 || len(summary.Entries) != 2 {
		t.Fatalf("summary = %+v", summary)
	}
	if summary.Entries[0].ID != "REQ-AUTH-001" || summary.Entries[1].Title != "Rate Limiting" {
		t.Errorf("entries = %+v", summary.Entries)
	}
}
