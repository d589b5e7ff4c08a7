package requirements

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Aggregate is the result of a requirements scan across a project.
type Aggregate struct {
	Requirements      []Extracted `json:"requirements"`
	TotalExtracted    int         `json:"total_extracted"`
	DuplicatesRemoved int         `json:"duplicates_removed"`
	SourceFiles       []string    `json:"source_files"`
	GeneratedAt       time.Time   `json:"generated_at"`
}

// NewAggregate deduplicates the extracted requirements and records scan
// statistics.
func NewAggregate(reqs []Extracted) *Aggregate {
	unique, removed := Deduplicate(reqs)

	sources := make(map[string]bool)
	for _, r := range unique {
		sources[r.SourceFile] = true
	}
	files := make([]string, 0, len(sources))
	for f := range sources {
		files = append(files, f)
	}
	sort.Strings(files)

	return &Aggregate{
		Requirements:      unique,
		TotalExtracted:    len(reqs),
		DuplicatesRemoved: removed,
		SourceFiles:       files,
		GeneratedAt:       time.Now(),
	}
}

// ByType returns the requirements of one phrasing type, in scan order.
func (a *Aggregate) ByType(t Type) []Extracted {
	var out []Extracted
	for _, r := range a.Requirements {
		if r.Type == t {
			out = append(out, r)
		}
	}
	return out
}

// Render writes the aggregate as markdown.
func (a *Aggregate) Render() string {
	var b strings.Builder

	b.WriteString("# Requirements Aggregate\n\n")
	b.WriteString("This document contains all requirements extracted from the project documentation,\n")
	b.WriteString("formatted in EARS (Easy Approach to Requirements Syntax) format.\n\n")
	fmt.Fprintf(&b, "**Generated:** %s\n", a.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "**Total Requirements:** %d\n\n", len(a.Requirements))

	groups := []struct {
		heading string
		reqs    []Extracted
	}{
		{"EARS Format Requirements", a.ByType(TypeEARS)},
		{"User Stories", a.ByType(TypeUserStory)},
		{"General Requirements", a.ByType(TypeGeneral)},
	}

	for _, g := range groups {
		if len(g.reqs) == 0 {
			continue
		}
		fmt.Fprintf(&b, "## %s\n\n", g.heading)
		for i, req := range g.reqs {
			fmt.Fprintf(&b, "### Requirement %d\n\n", i+1)
			fmt.Fprintf(&b, "**Text:** %s\n", req.Text)
			fmt.Fprintf(&b, "**Source:** %s:%d\n", req.SourceFile, req.Line)
			fmt.Fprintf(&b, "**Confidence:** %.2f\n\n", req.Confidence)
		}
	}

	return b.String()
}

// RenderStructured writes kiro-sourced requirements as the living
// requirements document.
func RenderStructured(reqs []StructuredRequirement, generatedAt time.Time) string {
	var b strings.Builder

	b.WriteString("# Requirements\n\n")
	b.WriteString("Living requirements document in EARS format, generated from the\n")
	b.WriteString("structured .kiro requirement files.\n\n")
	fmt.Fprintf(&b, "**Generated:** %s\n", generatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "**Total Requirements:** %d\n\n", len(reqs))

	for _, req := range reqs {
		fmt.Fprintf(&b, "## %s: %s\n\n", req.ID, req.Title)
		if req.Statement != "" {
			fmt.Fprintf(&b, "%s\n\n", req.Statement)
		}
		if len(req.Criteria) > 0 {
			b.WriteString("**Acceptance Criteria:**\n")
			for _, c := range req.Criteria {
				fmt.Fprintf(&b, "- %s\n", c)
			}
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "_Source: %s:%d_\n\n", req.SourceFile, req.Line)
	}

	return b.String()
}
