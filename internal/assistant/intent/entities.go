package intent

import (
	"regexp"
	"strings"
)

// EntityExtractor pulls named entities out of a raw utterance. Implementations
// must be safe for concurrent use; extraction failures are contained by the
// classifier and never abort classification.
type EntityExtractor interface {
	Extract(utterance string) map[string]string
}

var (
	datePattern = regexp.MustCompile(`(?i)\b(\d{4}-\d{2}-\d{2}|\d{1,2}[/-]\d{1,2}[/-]\d{2,4}|` +
		`(january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{1,2}(st|nd|rd|th)?(,?\s+\d{4})?|` +
		`today|tomorrow|yesterday|next\s+(week|month|quarter|year))\b`)

	// Two consecutive capitalized words. Operates on the raw utterance
	// because normalization lowercases everything.
	personPattern = regexp.MustCompile(`\b([A-Z][a-z]+\s+[A-Z][a-z]+)\b`)

	organizationPattern = regexp.MustCompile(`\b([A-Z][A-Za-z]*\s+(Department|Team|Division|Inc|Ltd|Corp)|HR)\b`)

	numberPattern = regexp.MustCompile(`\b\d+(\.\d+)?\b`)
)

// RegexExtractor is the default extractor. It recognizes date, person,
// organization and number spans with precompiled patterns; the first match
// per entity type wins.
type RegexExtractor struct{}

func NewRegexExtractor() *RegexExtractor {
	return &RegexExtractor{}
}

func (e *RegexExtractor) Extract(utterance string) map[string]string {
	entities := make(map[string]string)

	if m := datePattern.FindString(utterance); m != "" {
		entities["date"] = m
	}
	if m := organizationPattern.FindString(utterance); m != "" {
		entities["organization"] = m
	}
	if m := personPattern.FindString(utterance); m != "" {
		// A capitalized pair already claimed as an organization is not
		// also a person.
		if m != entities["organization"] {
			entities["person"] = m
		}
	}
	if m := numberPattern.FindString(utterance); m != "" {
		// Digits belonging to an already captured date are not a
		// separate number entity.
		if date, ok := entities["date"]; !ok || !strings.Contains(date, m) {
			entities["number"] = m
		}
	}

	return entities
}
