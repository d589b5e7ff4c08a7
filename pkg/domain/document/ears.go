package document

import (
	"regexp"
	"strings"
)

// The controlled sentence forms. Order matters: the AND variant must be
// tested before the plain WHEN/THEN form, which it also matches.
var criterionForms = []struct {
	form    CriterionForm
	pattern *regexp.Regexp
}{
	{FormWhenAndThen, regexp.MustCompile(`(?i)^WHEN\s+.+\s+AND\s+.+\s+THEN\s+.+\s+SHALL\s+.+$`)},
	{FormWhenThen, regexp.MustCompile(`(?i)^WHEN\s+.+\s+THEN\s+.+\s+SHALL\s+.+$`)},
	{FormIfThen, regexp.MustCompile(`(?i)^IF\s+.+\s+THEN\s+.+\s+SHALL\s+.+$`)},
	{FormWhile, regexp.MustCompile(`(?i)^WHILE\s+.+\s+THE\s+.+\s+SHALL\s+.+$`)},
}

var (
	listMarker = regexp.MustCompile(`^(?:\d+\.|[-*+])\s+`)
	boldMarker = regexp.MustCompile(`\*\*`)
)

// NormalizeCriterion strips list numbering and bold markers so that
// "1. **WHEN** x **THEN** y **SHALL** z" classifies the same as its plain
// form.
func NormalizeCriterion(text string) string {
	text = strings.TrimSpace(text)
	text = listMarker.ReplaceAllString(text, "")
	text = boldMarker.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// ClassifyCriterion reports which controlled form the statement follows, or
// FormInvalid when it follows none.
func ClassifyCriterion(text string) CriterionForm {
	normalized := NormalizeCriterion(text)
	for _, f := range criterionForms {
		if f.pattern.MatchString(normalized) {
			return f.form
		}
	}
	return FormInvalid
}

// NewCriterion builds an AcceptanceCriterion with its form classified.
func NewCriterion(text string, line int) AcceptanceCriterion {
	return AcceptanceCriterion{
		Text: NormalizeCriterion(text),
		Line: line,
		Form: ClassifyCriterion(text),
	}
}
