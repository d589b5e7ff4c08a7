package document

import (
	"fmt"
	"regexp"
	"strings"
)

// Lint rule identifiers.
const (
	RuleUserStory     = "user-story-present"
	RuleHasCriteria   = "acceptance-criteria-present"
	RuleCriterionForm = "criterion-controlled-form"
	RuleChecklist     = "summary-checklist"
	RulePlaceholders  = "placeholders-remain"
)

// summaryChecklistSize is the required number of completion markers in the
// Acceptance Criteria Summary section.
const summaryChecklistSize = 4

// Violation is a single lint finding.
type Violation struct {
	Rule    string `json:"rule"`
	Line    int    `json:"line"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%d: [%s] %s", v.Line, v.Rule, v.Message)
}

var placeholderPattern = regexp.MustCompile(`\[[^\]\[]+\]`)

// Lint checks the document's structural properties:
//
//   - every requirement has a user story
//   - every requirement has at least one acceptance criterion
//   - every criterion matches one of the controlled sentence forms
//   - the summary section exists and holds exactly four checklist items
//   - no unfilled [bracketed] placeholders remain
func (d *Document) Lint() []Violation {
	var violations []Violation

	for _, req := range d.Requirements {
		if req.Story == nil {
			violations = append(violations, Violation{
				Rule:    RuleUserStory,
				Line:    req.Line,
				Message: fmt.Sprintf("requirement %q has no user story", req.Title),
			})
		}
		if len(req.Criteria) == 0 {
			violations = append(violations, Violation{
				Rule:    RuleHasCriteria,
				Line:    req.Line,
				Message: fmt.Sprintf("requirement %q has no acceptance criteria", req.Title),
			})
		}
		for _, c := range req.Criteria {
			if c.Form == FormInvalid {
				violations = append(violations, Violation{
					Rule:    RuleCriterionForm,
					Line:    c.Line,
					Message: fmt.Sprintf("criterion does not follow a controlled form: %q", c.Text),
				})
			}
		}
	}

	if s := d.Section(SummarySection); s != nil {
		if len(d.Checklist) != summaryChecklistSize {
			violations = append(violations, Violation{
				Rule:    RuleChecklist,
				Line:    s.Line,
				Message: fmt.Sprintf("summary must contain exactly %d checklist items, found %d", summaryChecklistSize, len(d.Checklist)),
			})
		}
	} else {
		violations = append(violations, Violation{
			Rule:    RuleChecklist,
			Line:    1,
			Message: fmt.Sprintf("document has no %q section", SummarySection),
		})
	}

	violations = append(violations, d.lintPlaceholders()...)
	return violations
}

// lintPlaceholders flags [bracketed] template text that was never filled in.
// Checklist syntax ("[ ]", "[x]") and markdown links ("[text](url)") are not
// placeholders.
func (d *Document) lintPlaceholders() []Violation {
	var violations []Violation
	for _, sec := range d.Sections {
		for i, line := range sec.Lines {
			for _, loc := range placeholderPattern.FindAllStringIndex(line, -1) {
				match := line[loc[0]:loc[1]]
				inner := strings.TrimSpace(match[1 : len(match)-1])
				if inner == "" || inner == "x" || inner == "X" {
					continue
				}
				if loc[1] < len(line) && line[loc[1]] == '(' {
					continue
				}
				violations = append(violations, Violation{
					Rule:    RulePlaceholders,
					Line:    sec.Line + i + 1,
					Message: fmt.Sprintf("unfilled placeholder %s in section %q", match, sec.Name),
				})
			}
		}
	}
	return violations
}
