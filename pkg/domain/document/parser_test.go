package document_test

import (
	"testing"

	"github.com/gjalla/gjalla/pkg/domain/document"
)

const sampleDoc = `# Invoicing Requirements Document

## Introduction

The invoicing module issues and tracks customer invoices.

## Requirements

### Requirement 1: Invoice Creation

**User Story:** As a billing clerk, I want to create invoices from orders, so that customers are charged correctly.

#### Acceptance Criteria

1. WHEN an order is finalized THEN the system SHALL generate a draft invoice
2. IF the order total is zero THEN the system SHALL skip invoice creation

### Requirement 2: Overdue Notices

**User Story:** As an account manager, I want overdue notices sent automatically, so that payment delays shrink.

#### Acceptance Criteria

1. WHEN an invoice is 30 days past due THEN the system SHALL email a notice

## Acceptance Criteria Summary

- [x] All requirements have user stories
- [x] All requirements have acceptance criteria
- [ ] All criteria use controlled forms
- [ ] Non-functional requirements reviewed
`

func TestParse(t *testing.T) {
	doc := document.Parse("requirements.md", sampleDoc)

	if doc.Title != "Invoicing Requirements Document" {
		t.Errorf("Title = %q", doc.Title)
	}

	if len(doc.Requirements) != 2 {
		t.Fatalf("expected 2 requirements, got %d", len(doc.Requirements))
	}

	first := doc.Requirements[0]
	if first.Title != "Invoice Creation" {
		t.Errorf("first requirement title = %q", first.Title)
	}
	if first.Story == nil {
		t.Fatal("first requirement has no user story")
	}
	if first.Story.Role != "billing clerk" {
		t.Errorf("story role = %q", first.Story.Role)
	}
	if first.Story.Benefit != "customers are charged correctly" {
		t.Errorf("story benefit = %q", first.Story.Benefit)
	}
	if len(first.Criteria) != 2 {
		t.Fatalf("expected 2 criteria, got %d", len(first.Criteria))
	}
	if first.Criteria[0].Form != document.FormWhenThen {
		t.Errorf("criterion 1 form = %q", first.Criteria[0].Form)
	}
	if first.Criteria[1].Form != document.FormIfThen {
		t.Errorf("criterion 2 form = %q", first.Criteria[1].Form)
	}

	second := doc.Requirements[1]
	if len(second.Criteria) != 1 {
		t.Errorf("expected 1 criterion on second requirement, got %d", len(second.Criteria))
	}

	if len(doc.Checklist) != 4 {
		t.Fatalf("expected 4 checklist items, got %d", len(doc.Checklist))
	}
	if !doc.Checklist[0].Checked {
		t.Error("first checklist item should be checked")
	}
	if doc.Checklist[2].Checked {
		t.Error("third checklist item should be unchecked")
	}

	if doc.Section("Introduction") == nil {
		t.Error("Introduction section missing")
	}
	if doc.Section("Nonexistent") != nil {
		t.Error("Section() should return nil for unknown names")
	}
}

func TestParseLineNumbers(t *testing.T) {
	doc := document.Parse("requirements.md", sampleDoc)

	// The first criterion sits on line 15 of the sample.
	if got := doc.Requirements[0].Criteria[0].Line; got != 15 {
		t.Errorf("first criterion line = %d, want 15", got)
	}
}

func TestParseEmptyDocument(t *testing.T) {
	doc := document.Parse("empty.md", "")
	if len(doc.Requirements) != 0 || len(doc.Sections) != 0 || len(doc.Checklist) != 0 {
		t.Error("empty input should produce an empty document")
	}
}

func TestParseStoryWithoutLabel(t *testing.T) {
	src := `# Doc

## Requirements

### Requirement 1: Search

As a visitor, I want full-text search, so that I can find articles quickly.

#### Acceptance Criteria

1. WHEN a query is entered THEN the system SHALL return ranked results
`
	doc := document.Parse("doc.md", src)
	if len(doc.Requirements) != 1 {
		t.Fatalf("expected 1 requirement, got %d", len(doc.Requirements))
	}
	story := doc.Requirements[0].Story
	if story == nil {
		t.Fatal("unlabeled user story not detected")
	}
	if story.Role != "visitor" {
		t.Errorf("role = %q", story.Role)
	}
}
