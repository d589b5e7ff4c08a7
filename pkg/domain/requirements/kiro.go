package requirements

import (
	"regexp"
	"strings"
)

// StructuredRequirement is a requirement parsed from a .kiro directory file:
// a REQ-* heading, an EARS statement, and its acceptance criteria bullets.
type StructuredRequirement struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Statement  string   `json:"statement"`
	Criteria   []string `json:"criteria"`
	SourceFile string   `json:"source_file"`
	Line       int      `json:"line"`
}

var (
	reqHeadingPattern  = regexp.MustCompile(`^#{2,4}\s+(REQ-[A-Z0-9]+-\d+)\s*:\s*(.+?)\s*$`)
	criteriaLabel      = regexp.MustCompile(`(?i)^\*\*Acceptance Criteria:?\*\*:?\s*$`)
	bulletPattern      = regexp.MustCompile(`^[-*+]\s+(.+?)\s*$`)
	boldMarkerPattern  = regexp.MustCompile(`\*\*`)
	earsStatementCheck = regexp.MustCompile(`(?i)\bWHEN\b.*\bTHEN\b.*\bSHALL\b`)
)

// ParseStructured reads REQ-* entries from a structured requirements file.
func ParseStructured(content, sourceFile string) []StructuredRequirement {
	var reqs []StructuredRequirement
	var current *StructuredRequirement
	inCriteria := false

	flush := func() {
		if current != nil {
			reqs = append(reqs, *current)
			current = nil
		}
	}

	for i, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)

		if m := reqHeadingPattern.FindStringSubmatch(line); m != nil {
			flush()
			inCriteria = false
			current = &StructuredRequirement{
				ID:         m[1],
				Title:      m[2],
				SourceFile: sourceFile,
				Line:       i + 1,
			}
			continue
		}
		if current == nil || line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			// Some other heading ends the requirement block.
			flush()
			inCriteria = false
			continue
		}

		if criteriaLabel.MatchString(line) {
			inCriteria = true
			continue
		}
		if inCriteria {
			if m := bulletPattern.FindStringSubmatch(line); m != nil {
				current.Criteria = append(current.Criteria, m[1])
				continue
			}
			inCriteria = false
		}

		if current.Statement == "" {
			plain := boldMarkerPattern.ReplaceAllString(line, "")
			if earsStatementCheck.MatchString(plain) {
				current.Statement = plain
			}
		}
	}
	flush()
	return reqs
}
