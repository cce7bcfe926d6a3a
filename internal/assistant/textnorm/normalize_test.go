package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "lowercases and strips punctuation",
			input:    "When is the Appraisal DEADLINE?!",
			expected: "when is the appraisal deadline",
		},
		{
			name:     "collapses repeated whitespace",
			input:    "  hello    world \t again ",
			expected: "hello world again",
		},
		{
			name:     "keeps digits",
			input:    "due on 2026-09-15",
			expected: "due on 2026 09 15",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "only punctuation",
			input:    "?!...",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	once := Normalize("How do I submit my Self-Assessment??")
	assert.Equal(t, once, Normalize(once))
}

func TestKeywords(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "drops stop words and short tokens",
			input:    "When is the appraisal deadline?",
			expected: []string{"appraisal", "deadline"},
		},
		{
			name:     "drops tokens of length two or less",
			input:    "how do i submit my form",
			expected: []string{"submit", "form"},
		},
		{
			name:     "empty input yields no keywords",
			input:    "",
			expected: []string{},
		},
		{
			name:     "all stop words yields no keywords",
			input:    "what is this about",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Keywords(tt.input))
		})
	}
}

func TestStem(t *testing.T) {
	assert.Equal(t, "deadlin", Stem("deadline"))
	assert.Equal(t, "deadlin", Stem("deadlines"))
	assert.Equal(t, "apprais", Stem("appraisal"))
	assert.Equal(t, "apprais", Stem("appraisals"))
	assert.Equal(t, "submit", Stem("submitting"))
}

func TestStemSet(t *testing.T) {
	set := StemSet("Submitting my appraisals before the deadline")

	assert.Len(t, set, 3)
	assert.Contains(t, set, "submit")
	assert.Contains(t, set, "apprais")
	assert.Contains(t, set, "deadlin")
}
