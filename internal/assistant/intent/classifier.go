// Package intent classifies user utterances against a fixed example-based
// catalog and extracts lightweight entities.
package intent

import (
	"appraisal-workers/internal/assistant/similarity"
	"appraisal-workers/internal/common/logger"
)

// Classification is the result of classifying one utterance.
type Classification struct {
	Intent     string            `json:"intent"`
	Confidence float64           `json:"confidence"`
	Entities   map[string]string `json:"entities"`
}

// Classifier scores an utterance against every catalog example and picks the
// best intent. Deterministic: equal scores resolve to the earlier catalog
// entry.
type Classifier struct {
	catalog   Catalog
	extractor EntityExtractor
	logger    logger.Logger
}

func NewClassifier(catalog Catalog, extractor EntityExtractor, log logger.Logger) *Classifier {
	if extractor == nil {
		extractor = NewRegexExtractor()
	}
	return &Classifier{
		catalog:   catalog,
		extractor: extractor,
		logger:    log,
	}
}

// Classify returns the best-scoring intent for the utterance, or
// UnknownIntent with confidence 0 when nothing in the catalog scores above
// zero. Confidence is the winning example's similarity score.
func (c *Classifier) Classify(utterance string) Classification {
	best := Classification{
		Intent:     UnknownIntent,
		Confidence: 0,
		Entities:   map[string]string{},
	}

	for _, entry := range c.catalog {
		for _, example := range entry.Examples {
			score := similarity.Score(utterance, example)
			if score > best.Confidence {
				best.Intent = entry.Name
				best.Confidence = score
			}
		}
	}

	best.Entities = c.extract(utterance)

	c.logger.Debug("utterance classified", map[string]interface{}{
		"intent":     best.Intent,
		"confidence": best.Confidence,
		"entities":   len(best.Entities),
	})

	return best
}

// extract shields classification from a panicking extractor. A failed
// extraction yields an empty entity map, never an error.
func (c *Classifier) extract(utterance string) (entities map[string]string) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Warn("entity extraction panicked", map[string]interface{}{
				"panic": r,
			})
			entities = map[string]string{}
		}
	}()

	entities = c.extractor.Extract(utterance)
	if entities == nil {
		entities = map[string]string{}
	}
	return entities
}
