package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"appraisal-workers/internal/common/errors"
	"appraisal-workers/internal/common/logger"
	"appraisal-workers/internal/models"
)

// InteractionStore writes answered questions to Elasticsearch and serves the
// interaction search used by HR reporting.
type InteractionStore struct {
	es     *elasticsearch.Client
	index  string
	logger logger.Logger
}

func NewInteractionStore(es *elasticsearch.Client, index string, log logger.Logger) *InteractionStore {
	return &InteractionStore{
		es:     es,
		index:  index,
		logger: log,
	}
}

// Record indexes one interaction under its own ID.
func (s *InteractionStore) Record(ctx context.Context, rec models.InteractionRecord) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return errors.NewInteractionLogFailedError(fmt.Errorf("marshal interaction: %w", err))
	}

	res, err := s.es.Index(
		s.index,
		bytes.NewReader(body),
		s.es.Index.WithDocumentID(rec.ID),
		s.es.Index.WithContext(ctx),
	)
	if err != nil {
		return errors.NewInteractionLogFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return errors.NewInteractionLogFailedError(fmt.Errorf("index returned %s", res.Status()))
	}

	return nil
}

// InteractionFilter narrows an interaction search. Zero values mean no
// constraint on that dimension.
type InteractionFilter struct {
	Role   string `json:"role,omitempty"`
	Intent string `json:"intent,omitempty"`
	Source string `json:"source,omitempty"`
	From   string `json:"from,omitempty"` // RFC3339 lower bound on timestamp
	To     string `json:"to,omitempty"`   // RFC3339 upper bound on timestamp
	Size   int    `json:"size,omitempty"`
}

// SearchResult is one page of matching interactions.
type SearchResult struct {
	Interactions []models.InteractionRecord `json:"interactions"`
	TotalHits    int64                      `json:"totalHits"`
}

// Search runs a filtered bool query over the interaction index, newest
// first.
func (s *InteractionStore) Search(ctx context.Context, filter InteractionFilter) (*SearchResult, error) {
	size := filter.Size
	if size < 1 {
		size = 20
	}
	if size > 100 {
		size = 100
	}

	body, err := json.Marshal(buildInteractionQuery(filter))
	if err != nil {
		return nil, fmt.Errorf("marshal search query: %w", err)
	}

	req := esapi.SearchRequest{
		Index: []string{s.index},
		Body:  bytes.NewReader(body),
		Size:  &size,
	}

	res, err := req.Do(ctx, s.es)
	if err != nil {
		return nil, fmt.Errorf("search interactions: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == 404 {
		return nil, errors.NewIndexNotFoundError(s.index)
	}
	if res.IsError() {
		return nil, errors.NewSearchQueryFailedError("interactions", fmt.Errorf("search returned %s", res.Status()))
	}

	var parsed struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.InteractionRecord `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	result := &SearchResult{TotalHits: parsed.Hits.Total.Value}
	for _, hit := range parsed.Hits.Hits {
		result.Interactions = append(result.Interactions, hit.Source)
	}

	return result, nil
}

func buildInteractionQuery(filter InteractionFilter) map[string]interface{} {
	filterClauses := []interface{}{}

	if filter.Role != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"role": filter.Role},
		})
	}
	if filter.Intent != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"matchedIntent": filter.Intent},
		})
	}
	if filter.Source != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"responseSource": filter.Source},
		})
	}
	if filter.From != "" || filter.To != "" {
		bounds := map[string]interface{}{}
		if filter.From != "" {
			bounds["gte"] = filter.From
		}
		if filter.To != "" {
			bounds["lte"] = filter.To
		}
		filterClauses = append(filterClauses, map[string]interface{}{
			"range": map[string]interface{}{"timestamp": bounds},
		})
	}

	query := map[string]interface{}{"match_all": map[string]interface{}{}}
	if len(filterClauses) > 0 {
		query = map[string]interface{}{
			"bool": map[string]interface{}{
				"filter": filterClauses,
			},
		}
	}

	return map[string]interface{}{
		"query": query,
		"sort": []interface{}{
			map[string]interface{}{"timestamp": map[string]interface{}{"order": "desc"}},
		},
	}
}
