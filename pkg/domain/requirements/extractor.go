// Package requirements discovers requirement statements in project
// documentation and aggregates them into a living requirements document.
package requirements

import (
	"regexp"
	"strings"
	"time"
)

// Type classifies how a requirement was phrased.
type Type string

const (
	TypeEARS      Type = "ears"
	TypeUserStory Type = "user_story"
	TypeGeneral   Type = "general"
)

// Extraction confidences per phrasing. EARS statements are near-certain
// requirements; "should" prose is much weaker.
const (
	confidenceEARS      = 0.9
	confidenceUserStory = 0.8
	confidenceGeneral   = 0.7
)

// contextLimit bounds the stored context line.
const contextLimit = 100

// Extracted is one requirement statement found in a source file.
type Extracted struct {
	Text        string    `json:"text"`
	SourceFile  string    `json:"source_file"`
	Line        int       `json:"line"`
	Type        Type      `json:"type"`
	Confidence  float64   `json:"confidence"`
	Context     string    `json:"context"`
	ExtractedAt time.Time `json:"extracted_at"`
}

var earsPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)WHEN\s+(.+?)\s+THEN\s+(.+?)\s+SHALL\s+(.+?)(?:\.|$)`),
	regexp.MustCompile(`(?is)IF\s+(.+?)\s+THEN\s+(.+?)\s+SHALL\s+(.+?)(?:\.|$)`),
	regexp.MustCompile(`(?is)GIVEN\s+(.+?)\s+WHEN\s+(.+?)\s+THEN\s+(.+?)(?:\.|$)`),
}

var userStoryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)As\s+a\s+(.+?),?\s+I\s+want\s+(.+?),?\s+so\s+that\s+(.+?)(?:\.|$)`),
	regexp.MustCompile(`(?is)As\s+an?\s+(.+?),?\s+I\s+need\s+(.+?)\s+to\s+(.+?)(?:\.|$)`),
}

var generalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:system|application|feature|component|user)\s+(?:must|shall|should|will)\s+(.+?)(?:\.|$)`),
	regexp.MustCompile(`(?i)(?:must|shall|should|will)\s+(?:be able to|support|provide|allow|enable)\s+(.+?)(?:\.|$)`),
	regexp.MustCompile(`(?i)(?:it|this)\s+(?:must|shall|should|will)\s+(.+?)(?:\.|$)`),
}

// Extract scans markdown content line by line. Each line yields at most one
// requirement; EARS phrasing wins over user stories, which win over general
// shall/must prose.
func Extract(content, sourceFile string) []Extracted {
	var found []Extracted
	now := time.Now()

	for i, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		reqType, confidence, ok := classifyLine(line)
		if !ok {
			continue
		}
		found = append(found, Extracted{
			Text:        line,
			SourceFile:  sourceFile,
			Line:        i + 1,
			Type:        reqType,
			Confidence:  confidence,
			Context:     truncate(line, contextLimit),
			ExtractedAt: now,
		})
	}
	return found
}

func classifyLine(line string) (Type, float64, bool) {
	for _, p := range earsPatterns {
		if p.MatchString(line) {
			return TypeEARS, confidenceEARS, true
		}
	}
	for _, p := range userStoryPatterns {
		if p.MatchString(line) {
			return TypeUserStory, confidenceUserStory, true
		}
	}
	for _, p := range generalPatterns {
		if p.MatchString(line) {
			return TypeGeneral, confidenceGeneral, true
		}
	}
	return "", 0, false
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}
