// Package retrieve matches query variants against the role-visible FAQ
// corpus and ranks the candidates.
package retrieve

import (
	"context"
	"sort"

	"appraisal-workers/internal/assistant/similarity"
	"appraisal-workers/internal/common/logger"
	"appraisal-workers/internal/common/metrics"
	"appraisal-workers/internal/models"
)

// Corpus supplies the active FAQs visible to a role. The repository layer
// implements this against Postgres with a Redis cache in front.
type Corpus interface {
	ListActiveFAQs(ctx context.Context, role string) ([]models.FaqRecord, error)
}

// ScoredCandidate is one FAQ with its best similarity across the query
// variants.
type ScoredCandidate struct {
	FAQ        models.FaqRecord `json:"faq"`
	Similarity float64          `json:"similarity"`
}

// Outcome holds the ranked retrieval result. BestMatch is nil when nothing
// cleared the relevance floor; a candidate never appears in both fields.
type Outcome struct {
	BestMatch    *ScoredCandidate  `json:"bestMatch,omitempty"`
	Alternatives []ScoredCandidate `json:"alternatives,omitempty"`
}

// Retriever scores FAQ candidates for a set of query variants.
type Retriever struct {
	corpus          Corpus
	floor           float64
	maxAlternatives int
	logger          logger.Logger
}

func NewRetriever(corpus Corpus, floor float64, maxAlternatives int, log logger.Logger) *Retriever {
	return &Retriever{
		corpus:          corpus,
		floor:           floor,
		maxAlternatives: maxAlternatives,
		logger:          log,
	}
}

// Retrieve loads the FAQs visible to role and keeps every candidate whose
// best variant similarity is strictly above the relevance floor, ranked
// descending. Ties keep corpus order. A corpus failure degrades to an empty
// outcome rather than an error; the caller answers from intent alone.
//
// The intent parameter reserves corpus partitioning by intent and does not
// affect filtering today.
func (r *Retriever) Retrieve(ctx context.Context, variants []string, role, intent string) Outcome {
	faqs, err := r.corpus.ListActiveFAQs(ctx, role)
	if err != nil {
		metrics.AssistantCorpusErrors.Inc()
		r.logger.Warn("FAQ corpus unavailable, degrading to empty retrieval", map[string]interface{}{
			"role":  role,
			"error": err.Error(),
		})
		return Outcome{}
	}

	candidates := make([]ScoredCandidate, 0, len(faqs))
	for _, faq := range faqs {
		best := 0.0
		for _, variant := range variants {
			if score := similarity.Score(variant, faq.Question); score > best {
				best = score
			}
		}
		if best > r.floor {
			candidates = append(candidates, ScoredCandidate{FAQ: faq, Similarity: best})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Similarity > candidates[j].Similarity
	})

	metrics.AssistantRetrievalCandidates.WithLabelValues(role).Observe(float64(len(candidates)))

	if len(candidates) == 0 {
		return Outcome{}
	}

	outcome := Outcome{BestMatch: &candidates[0]}
	rest := candidates[1:]
	if len(rest) > r.maxAlternatives {
		rest = rest[:r.maxAlternatives]
	}
	if len(rest) > 0 {
		outcome.Alternatives = rest
	}
	return outcome
}
