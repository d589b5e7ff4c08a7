package document

import (
	"regexp"
	"strings"
)

var (
	headingPattern     = regexp.MustCompile(`^(#{1,6})\s+(.+?)\s*$`)
	userStoryPattern   = regexp.MustCompile(`(?i)As\s+an?\s+(.+?),?\s+I\s+want\s+(.+?),?\s+so\s+that\s+(.+?)\s*\.?\s*$`)
	storyLabelPattern  = regexp.MustCompile(`(?i)^\*\*User Story:?\*\*:?\s*`)
	checklistPattern   = regexp.MustCompile(`^[-*]\s+\[([ xX])\]\s+(.+?)\s*$`)
	requirementHeading = regexp.MustCompile(`(?i)^Requirement\s+\d+\s*:?\s*(.*)$`)
)

// SummarySection is the section holding the completion checklist.
const SummarySection = "Acceptance Criteria Summary"

// RequirementsSection is the section whose subsections are requirements.
const RequirementsSection = "Requirements"

// Parse reads a requirements document from markdown source. Parsing is
// line-oriented: every requirement and criterion keeps the line number it
// came from.
func Parse(path, content string) *Document {
	doc := &Document{Path: path}

	var section *Section
	var req *Requirement
	inCriteria := false

	flushReq := func() {
		if req != nil {
			doc.Requirements = append(doc.Requirements, *req)
			req = nil
		}
	}

	for i, raw := range strings.Split(content, "\n") {
		line := strings.TrimRight(raw, " \t")
		lineNum := i + 1

		if m := headingPattern.FindStringSubmatch(line); m != nil {
			level := len(m[1])
			name := m[2]

			switch {
			case level == 1 && doc.Title == "":
				doc.Title = name
			case level == 2:
				flushReq()
				inCriteria = false
				doc.Sections = append(doc.Sections, Section{Name: name, Level: level, Line: lineNum})
				section = &doc.Sections[len(doc.Sections)-1]
			case level == 3 && section != nil && section.Name == RequirementsSection:
				flushReq()
				inCriteria = false
				title := name
				if m := requirementHeading.FindStringSubmatch(name); m != nil && m[1] != "" {
					title = m[1]
				}
				req = &Requirement{Title: title, Line: lineNum}
			case level == 4 && req != nil && strings.EqualFold(name, "Acceptance Criteria"):
				inCriteria = true
			}
			if level != 2 && section != nil {
				// Keep section lines contiguous so lint can report
				// absolute line numbers.
				section.Lines = append(section.Lines, line)
			}
			continue
		}

		trimmed := strings.TrimSpace(line)
		if section != nil {
			section.Lines = append(section.Lines, line)
		}
		if trimmed == "" {
			continue
		}

		// Summary checklist items
		if section != nil && section.Name == SummarySection {
			if m := checklistPattern.FindStringSubmatch(trimmed); m != nil {
				doc.Checklist = append(doc.Checklist, ChecklistItem{
					Label:   m[2],
					Checked: m[1] != " ",
					Line:    lineNum,
				})
			}
			continue
		}

		if req == nil {
			continue
		}

		// User story line, with or without the bold label
		if storyLabelPattern.MatchString(trimmed) || (req.Story == nil && userStoryPattern.MatchString(trimmed)) {
			text := storyLabelPattern.ReplaceAllString(trimmed, "")
			story := &UserStory{Text: text, Line: lineNum}
			if m := userStoryPattern.FindStringSubmatch(text); m != nil {
				story.Role = strings.TrimSpace(m[1])
				story.Feature = strings.TrimSpace(m[2])
				story.Benefit = strings.TrimSpace(m[3])
			}
			req.Story = story
			continue
		}

		// Criteria are numbered or bulleted lines inside the criteria block.
		if inCriteria && listMarker.MatchString(trimmed) {
			req.Criteria = append(req.Criteria, NewCriterion(trimmed, lineNum))
		}
	}
	flushReq()

	return doc
}
