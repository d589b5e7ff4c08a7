package requirements

import (
	"regexp"
	"strconv"
	"strings"
)

// Summary is a lightweight view of an existing requirements.md, used by the
// list command to avoid a fresh scan.
type Summary struct {
	Total   int
	Entries []SummaryEntry
	// ByType counts entries per phrasing group (ears, story, general) or,
	// for kiro-generated documents, "structured".
	ByType map[string]int
}

// SummaryEntry is one requirement row in the summary.
type SummaryEntry struct {
	ID     string
	Title  string
	Text   string
	Source string
}

var (
	totalPattern      = regexp.MustCompile(`^\*\*Total Requirements:\*\*\s+(\d+)\s*$`)
	structuredHeading = regexp.MustCompile(`^##\s+(REQ-[A-Z0-9]+-\d+)\s*:\s*(.+?)\s*$`)
	textLinePattern   = regexp.MustCompile(`^\*\*Text:\*\*\s+(.+?)\s*$`)
	sourceLinePattern = regexp.MustCompile(`^\*\*Source:\*\*\s+(.+?)\s*$`)
)

// groupHeadings maps the aggregate's section headings to type names.
var groupHeadings = map[string]string{
	"EARS Format Requirements": string(TypeEARS),
	"User Stories":             string(TypeUserStory),
	"General Requirements":     string(TypeGeneral),
}

// ParseSummary reads the requirement entries out of a previously generated
// requirements.md, whether it came from a kiro scan or an aggregate scan.
func ParseSummary(content string) *Summary {
	s := &Summary{ByType: make(map[string]int)}
	var pending *SummaryEntry

	group := ""
	flush := func() {
		if pending != nil {
			s.Entries = append(s.Entries, *pending)
			if group != "" {
				s.ByType[group]++
			}
			pending = nil
		}
	}

	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)

		if m := totalPattern.FindStringSubmatch(line); m != nil {
			s.Total, _ = strconv.Atoi(m[1])
			continue
		}
		if m := structuredHeading.FindStringSubmatch(line); m != nil {
			flush()
			s.Entries = append(s.Entries, SummaryEntry{ID: m[1], Title: m[2]})
			s.ByType["structured"]++
			continue
		}
		if heading, ok := strings.CutPrefix(line, "## "); ok {
			if t, known := groupHeadings[strings.TrimSpace(heading)]; known {
				flush()
				group = t
			}
			continue
		}
		if m := textLinePattern.FindStringSubmatch(line); m != nil {
			flush()
			pending = &SummaryEntry{Text: m[1]}
			continue
		}
		if m := sourceLinePattern.FindStringSubmatch(line); m != nil && pending != nil {
			pending.Source = m[1]
			continue
		}
	}
	flush()

	if s.Total == 0 {
		s.Total = len(s.Entries)
	}
	return s
}
