// Package classify assigns documentation files to categories based on
// filename, content, and directory signals.
package classify

import (
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

// Signal weights. Filename wins ties: authors name files after what they are.
const (
	weightFilename  = 0.5
	weightContent   = 0.3
	weightDirectory = 0.2
)

// fallbackThreshold is the combined confidence below which a file falls back
// to the fallback category.
const fallbackThreshold = 0.2

// lowConfidenceThreshold marks classifications worth human review.
const lowConfidenceThreshold = 0.5

// previewLimit bounds the stored content preview.
const previewLimit = 200

// contentScanLimit bounds how much of a file the keyword scan reads.
const contentScanLimit = 64 * 1024

// Pattern describes one category's signals.
type Pattern struct {
	// FilenamePattern matches the base name of the file.
	FilenamePattern *regexp.Regexp
	// Keywords score content and directory names.
	Keywords []string
}

// ClassifiedFile is the outcome for a single file.
type ClassifiedFile struct {
	Path       string
	Category   string
	Confidence float64
	Reasons    []string
	Preview    string
}

// Classifier scores files against a category pattern set.
type Classifier struct {
	patterns map[string]Pattern
	fallback string
}

// DefaultPatterns cover the built-in categories.
func DefaultPatterns() map[string]Pattern {
	return map[string]Pattern{
		"features": {
			FilenamePattern: regexp.MustCompile(`(?i)(feature|spec|story|epic)`),
			Keywords:        []string{"user story", "acceptance criteria", "feature", "shall", "requirement"},
		},
		"fixes": {
			FilenamePattern: regexp.MustCompile(`(?i)(fix|bug|issue|patch|defect|hotfix)`),
			Keywords:        []string{"bug", "fix", "issue", "defect", "patch", "resolved", "resolution", "problem"},
		},
		"reference": {
			FilenamePattern: regexp.MustCompile(`(?i)(reference|guide|manual|doc|readme|architecture|api)`),
			Keywords:        []string{"guide", "documentation", "reference", "architecture", "overview", "manual", "instructions"},
		},
	}
}

// New creates a classifier. With a nil pattern set the default categories are
// used. The fallback category receives files no signal claims; it is
// "reference" when present, otherwise the lexicographically first category.
func New(patterns map[string]Pattern) *Classifier {
	if len(patterns) == 0 {
		patterns = DefaultPatterns()
	}
	fallback := "reference"
	if _, ok := patterns[fallback]; !ok {
		names := make([]string, 0, len(patterns))
		for name := range patterns {
			names = append(names, name)
		}
		sort.Strings(names)
		fallback = names[0]
	}
	return &Classifier{patterns: patterns, fallback: fallback}
}

// Fallback returns the category used when no signal is strong enough.
func (c *Classifier) Fallback() string {
	return c.fallback
}

// ClassifyFiles classifies every path and collects result statistics.
func (c *Classifier) ClassifyFiles(paths []string) *Result {
	start := time.Now()
	result := &Result{
		Distribution: make(map[string]int),
	}
	for _, path := range paths {
		cf := c.ClassifyFile(path)
		result.Files = append(result.Files, cf)
		result.Distribution[cf.Category]++
		if cf.Confidence < lowConfidenceThreshold {
			result.LowConfidence = append(result.LowConfidence, cf)
		}
	}
	result.TotalFiles = len(result.Files)
	result.Elapsed = time.Since(start)
	return result
}

// ClassifyFile scores a single file. Unreadable content degrades to
// filename and directory signals rather than failing.
func (c *Classifier) ClassifyFile(path string) ClassifiedFile {
	var scores []score
	scores = append(scores, c.scoreFilename(filepath.Base(path))...)
	scores = append(scores, c.scoreDirectory(filepath.Dir(path))...)

	preview := ""
	if content, err := readHead(path, contentScanLimit); err == nil {
		scores = append(scores, c.scoreContent(content)...)
		preview = content
		if len(preview) > previewLimit {
			preview = preview[:previewLimit]
		}
	}

	category, confidence, reasons := c.combine(scores)
	return ClassifiedFile{
		Path:       path,
		Category:   category,
		Confidence: confidence,
		Reasons:    reasons,
		Preview:    preview,
	}
}

type score struct {
	category   string
	confidence float64
	reason     string
}

func (c *Classifier) scoreFilename(base string) []score {
	var scores []score
	for category, p := range c.patterns {
		if p.FilenamePattern != nil && p.FilenamePattern.MatchString(base) {
			scores = append(scores, score{category, weightFilename, "filename matches " + category + " pattern"})
		}
	}
	return scores
}

func (c *Classifier) scoreDirectory(dir string) []score {
	var scores []score
	parts := strings.Split(filepath.ToSlash(dir), "/")
	for category := range c.patterns {
		for _, part := range parts {
			if strings.EqualFold(part, category) {
				scores = append(scores, score{category, weightDirectory, "parent directory named " + part})
				break
			}
		}
	}
	return scores
}

func (c *Classifier) scoreContent(content string) []score {
	lower := strings.ToLower(content)
	var scores []score
	for category, p := range c.patterns {
		hits := 0
		for _, kw := range p.Keywords {
			if strings.Contains(lower, kw) {
				hits++
			}
		}
		if hits == 0 {
			continue
		}
		// Three keyword hits earn the full content weight.
		conf := weightContent * float64(hits) / 3.0
		if conf > weightContent {
			conf = weightContent
		}
		scores = append(scores, score{category, conf, "content keywords for " + category})
	}
	return scores
}

// combine sums per-category confidence, picks the best category, and falls
// back when nothing is convincing. Deterministic: ties break alphabetically.
func (c *Classifier) combine(scores []score) (string, float64, []string) {
	totals := make(map[string]float64)
	reasons := make(map[string][]string)
	for _, s := range scores {
		totals[s.category] += s.confidence
		reasons[s.category] = append(reasons[s.category], s.reason)
	}

	best := ""
	bestScore := 0.0
	categories := make([]string, 0, len(totals))
	for cat := range totals {
		categories = append(categories, cat)
	}
	sort.Strings(categories)
	for _, cat := range categories {
		if totals[cat] > bestScore {
			best = cat
			bestScore = totals[cat]
		}
	}

	if best == "" || bestScore < fallbackThreshold {
		conf := bestScore
		if conf == 0 {
			conf = 0.05
		}
		return c.fallback, conf, []string{"no strong signal, fallback to " + c.fallback}
	}
	if bestScore > 1.0 {
		bestScore = 1.0
	}
	return best, bestScore, reasons[best]
}

func readHead(path string, limit int) (string, error) {
	f, err := os.Open(path) // #nosec G304 -- paths come from project discovery
	if err != nil {
		return "", err
	}
	defer f.Close()

	buf := make([]byte, limit)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return "", err
	}
	return string(buf[:n]), nil
}
