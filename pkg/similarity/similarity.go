// Package similarity scores how close two generation prompts are, blending
// character-level similarity with keyword overlap. Scores are in [0, 1].
package similarity

import (
	"strings"
	"unicode"
)

// ExactMatchThreshold marks a combined score high enough to treat as "the
// user already generated this".
const ExactMatchThreshold = 0.95

// shortPromptLen is the trimmed length at or below which the blend leans
// almost entirely on exact/containment matching.
const shortPromptLen = 3

// TextScore compares two strings case-insensitively: 1.0 on exact match, 0.8
// when one contains the other, otherwise 1 minus the normalized Levenshtein
// distance (floored at 0).
func TextScore(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}

	na := strings.ToLower(strings.TrimSpace(a))
	nb := strings.ToLower(strings.TrimSpace(b))

	if na == nb {
		return 1.0
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return 0.8
	}

	distance := levenshtein(na, nb)
	maxLen := len([]rune(na))
	if l := len([]rune(nb)); l > maxLen {
		maxLen = l
	}

	score := 1 - float64(distance)/float64(maxLen)
	if score < 0 {
		return 0
	}
	return score
}

// KeywordScore is the jaccard index over lowercased word sets. Punctuation is
// stripped; no stop words, no minimum token length.
func KeywordScore(a, b string) float64 {
	ka := keywords(a)
	kb := keywords(b)

	if len(ka) == 0 || len(kb) == 0 {
		return 0
	}

	intersection := 0
	for word := range ka {
		if _, ok := kb[word]; ok {
			intersection++
		}
	}
	union := len(ka) + len(kb) - intersection

	return float64(intersection) / float64(union)
}

// Combined blends the two scores. Short prompts lean on exact matching
// (0.9/0.1); longer prompts weight keywords in (0.7/0.3).
func Combined(prompt, candidate string) float64 {
	text := TextScore(prompt, candidate)
	keyword := KeywordScore(prompt, candidate)

	if len([]rune(strings.TrimSpace(prompt))) <= shortPromptLen {
		return text*0.9 + keyword*0.1
	}
	return text*0.7 + keyword*0.3
}

func keywords(text string) map[string]struct{} {
	var sb strings.Builder
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
			sb.WriteRune(r)
		}
	}

	set := make(map[string]struct{})
	for _, word := range strings.Fields(sb.String()) {
		set[word] = struct{}{}
	}
	return set
}

func levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)

	for i := 0; i <= len(ra); i++ {
		prev[i] = i
	}

	for j := 1; j <= len(rb); j++ {
		curr[0] = j
		for i := 1; i <= len(ra); i++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[i] = min3(curr[i-1]+1, prev[i]+1, prev[i-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(ra)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
