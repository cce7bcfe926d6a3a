package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected float64
	}{
		{
			name:     "identical texts score 1",
			a:        "when is the appraisal deadline",
			b:        "when is the appraisal deadline",
			expected: 1.0,
		},
		{
			name:     "morphological variants score 1 after stemming",
			a:        "submit my appraisals",
			b:        "submitting my appraisal",
			expected: 1.0,
		},
		{
			name:     "disjoint texts score 0",
			a:        "reset my password",
			b:        "appraisal deadline",
			expected: 0.0,
		},
		{
			name:     "partial overlap",
			a:        "appraisal deadline",
			b:        "appraisal scoring method",
			expected: 0.25,
		},
		{
			name:     "both empty is defined as zero",
			a:        "",
			b:        "",
			expected: 0.0,
		},
		{
			name:     "one side empty scores zero",
			a:        "appraisal deadline",
			b:        "",
			expected: 0.0,
		},
		{
			name:     "stop words only counts as empty",
			a:        "what is this",
			b:        "what is this",
			expected: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Score(tt.a, tt.b), 1e-9)
		})
	}
}

func TestScore_Symmetric(t *testing.T) {
	a := "how is my performance score calculated"
	b := "explain the appraisal scoring method"
	assert.Equal(t, Score(a, b), Score(b, a))
}

func TestScore_Bounded(t *testing.T) {
	pairs := [][2]string{
		{"appraisal deadline", "deadline for my appraisal submission"},
		{"hello", "goodbye"},
		{"reset password", "reset password please"},
	}
	for _, p := range pairs {
		s := Score(p[0], p[1])
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 1.0)
	}
}
