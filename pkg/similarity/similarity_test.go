package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextScore(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{name: "exact match", a: "A red car", b: "A red car", want: 1.0},
		{name: "case insensitive exact", a: "A Red Car", b: "a red car", want: 1.0},
		{name: "containment", a: "red car", b: "a big red car on a road", want: 0.8},
		{name: "empty left", a: "", b: "a red car", want: 0},
		{name: "empty right", a: "a red car", b: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, TextScore(tt.a, tt.b), 1e-9)
		})
	}
}

func TestTextScoreEditDistance(t *testing.T) {
	// "kitten" vs "sitting": distance 3, max length 7
	got := TextScore("kitten", "sitting")
	assert.InDelta(t, 1-3.0/7.0, got, 1e-9)

	// Completely different strings of equal length floor at 0
	assert.Equal(t, 0.0, TextScore("cat", "dog"))
}

func TestKeywordScore(t *testing.T) {
	// {a, red, sports, car} vs {a, red, car}: 3 shared, 4 in union
	assert.InDelta(t, 0.75, KeywordScore("a red sports car", "a red car"), 1e-9)

	// Punctuation is stripped before tokenizing
	assert.InDelta(t, 1.0, KeywordScore("red, car!", "red car"), 1e-9)

	assert.Equal(t, 0.0, KeywordScore("cat", "dog"))
	assert.Equal(t, 0.0, KeywordScore("", "dog"))
}

func TestCombined(t *testing.T) {
	// Identical prompts score a full 1.0
	assert.InDelta(t, 1.0, Combined("A red car", "A red car"), 1e-9)

	// Unrelated short prompts stay below the search threshold
	assert.Less(t, Combined("cat", "dog"), 0.3)

	// Related but not identical prompts land strictly between
	got := Combined("a red sports car", "a red car")
	assert.Greater(t, got, 0.3)
	assert.Less(t, got, 1.0)
}

func TestCombinedShortPromptWeighting(t *testing.T) {
	// At three characters the 0.9/0.1 blend applies; an exact match still
	// reaches 1.0 either way.
	assert.InDelta(t, 1.0, Combined("cat", "cat"), 1e-9)

	// "car" is contained in "carpet": text 0.8, keywords disjoint.
	got := Combined("car", "carpet")
	assert.InDelta(t, 0.8*0.9, got, 1e-9)
}
