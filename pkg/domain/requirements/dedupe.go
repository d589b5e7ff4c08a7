package requirements

import (
	"regexp"
	"strings"
)

// similarityThreshold is the Jaccard word-set overlap above which two
// statements count as the same requirement.
const similarityThreshold = 0.8

var (
	whitespacePattern = regexp.MustCompile(`\s+`)
	punctuationRunes  = regexp.MustCompile(`[^\w\s]`)
)

// Deduplicate removes exact and near duplicates. The first occurrence wins,
// so source order determines which file a requirement is attributed to.
func Deduplicate(reqs []Extracted) (unique []Extracted, removed int) {
	seen := make(map[string]bool)

	for _, req := range reqs {
		normalized := normalize(req.Text)
		if seen[normalized] {
			removed++
			continue
		}

		similar := false
		for _, kept := range unique {
			if Similar(req.Text, kept.Text, similarityThreshold) {
				similar = true
				break
			}
		}
		if similar {
			removed++
			continue
		}

		unique = append(unique, req)
		seen[normalized] = true
	}
	return unique, removed
}

// Similar reports whether two statements overlap at or above the threshold
// by Jaccard similarity over normalized word sets.
func Similar(a, b string, threshold float64) bool {
	wordsA := wordSet(normalize(a))
	wordsB := wordSet(normalize(b))
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return false
	}

	intersection := 0
	for w := range wordsA {
		if wordsB[w] {
			intersection++
		}
	}
	union := len(wordsA) + len(wordsB) - intersection
	if union == 0 {
		return false
	}
	return float64(intersection)/float64(union) >= threshold
}

func normalize(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	text = whitespacePattern.ReplaceAllString(text, " ")
	return punctuationRunes.ReplaceAllString(text, "")
}

func wordSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(text) {
		set[w] = true
	}
	return set
}
