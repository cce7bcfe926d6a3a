package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appraisal-workers/internal/common/logger"
)

func TestClassifier_Classify(t *testing.T) {
	classifier := NewClassifier(DefaultCatalog(), nil, logger.NewNoOpLogger())

	tests := []struct {
		name           string
		utterance      string
		expectedIntent string
		minConfidence  float64
	}{
		{
			name:           "exact greeting",
			utterance:      "hello",
			expectedIntent: "greeting",
			minConfidence:  1.0,
		},
		{
			name:           "deadline question",
			utterance:      "When is the appraisal deadline?",
			expectedIntent: "appraisal_deadline",
			minConfidence:  1.0,
		},
		{
			name:           "submit question with extra words",
			utterance:      "please tell me how do i submit my appraisal",
			expectedIntent: "submit_appraisal",
			minConfidence:  0.5,
		},
		{
			name:           "password reset",
			utterance:      "I forgot my password",
			expectedIntent: "account_access",
			minConfidence:  1.0,
		},
		{
			name:           "supervisor review",
			utterance:      "how do i review my team appraisals",
			expectedIntent: "supervisor_review",
			minConfidence:  1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := classifier.Classify(tt.utterance)

			assert.Equal(t, tt.expectedIntent, result.Intent)
			assert.GreaterOrEqual(t, result.Confidence, tt.minConfidence)
			assert.NotNil(t, result.Entities)
		})
	}
}

func TestClassifier_Classify_Unknown(t *testing.T) {
	classifier := NewClassifier(DefaultCatalog(), nil, logger.NewNoOpLogger())

	tests := []struct {
		name      string
		utterance string
	}{
		{name: "nonsense", utterance: "xyzzy frobnicate quux"},
		{name: "empty", utterance: ""},
		{name: "punctuation only", utterance: "???!!!"},
		{name: "stop words only", utterance: "what is this about"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := classifier.Classify(tt.utterance)

			assert.Equal(t, UnknownIntent, result.Intent)
			assert.Equal(t, 0.0, result.Confidence)
		})
	}
}

func TestClassifier_Classify_TieKeepsEarlierEntry(t *testing.T) {
	catalog := Catalog{
		{Name: "first", Examples: []string{"alpha beta"}},
		{Name: "second", Examples: []string{"alpha beta"}},
	}
	classifier := NewClassifier(catalog, nil, logger.NewNoOpLogger())

	result := classifier.Classify("alpha beta")

	assert.Equal(t, "first", result.Intent)
	assert.Equal(t, 1.0, result.Confidence)
}

type panickingExtractor struct{}

func (panickingExtractor) Extract(string) map[string]string {
	panic("extractor blew up")
}

func TestClassifier_Classify_ExtractorPanicIsContained(t *testing.T) {
	classifier := NewClassifier(DefaultCatalog(), panickingExtractor{}, logger.NewNoOpLogger())

	result := classifier.Classify("hello")

	assert.Equal(t, "greeting", result.Intent)
	assert.Equal(t, 1.0, result.Confidence)
	assert.Empty(t, result.Entities)
	assert.NotNil(t, result.Entities)
}

func TestRegexExtractor_Extract(t *testing.T) {
	extractor := NewRegexExtractor()

	tests := []struct {
		name     string
		input    string
		expected map[string]string
	}{
		{
			name:  "iso date and person",
			input: "My review with John Smith is on 2026-09-15",
			expected: map[string]string{
				"date":   "2026-09-15",
				"person": "John Smith",
			},
		},
		{
			name:  "relative date",
			input: "is the deadline next week",
			expected: map[string]string{
				"date": "next week",
			},
		},
		{
			name:  "organization",
			input: "contact the HR service desk",
			expected: map[string]string{
				"organization": "HR",
			},
		},
		{
			name:  "bare number",
			input: "my score was 85",
			expected: map[string]string{
				"number": "85",
			},
		},
		{
			name:     "nothing to extract",
			input:    "how does scoring work",
			expected: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entities := extractor.Extract(tt.input)
			require.NotNil(t, entities)
			assert.Equal(t, tt.expected, entities)
		})
	}
}

func TestDefaultCatalog_ShapeIsUsable(t *testing.T) {
	catalog := DefaultCatalog()

	require.NotEmpty(t, catalog)
	seen := map[string]bool{}
	for _, entry := range catalog {
		assert.NotEmpty(t, entry.Name)
		assert.NotEmpty(t, entry.Examples)
		assert.False(t, seen[entry.Name], "duplicate intent %s", entry.Name)
		assert.NotEqual(t, UnknownIntent, entry.Name)
		seen[entry.Name] = true
	}
}
