// internal/workers/assistant/search-interactions/models.go
package searchinteractions

import "appraisal-workers/internal/models"

type Input struct {
	Role   string `json:"role,omitempty"`
	Intent string `json:"intent,omitempty"`
	Source string `json:"source,omitempty"`
	From   string `json:"from,omitempty"`
	To     string `json:"to,omitempty"`
	Size   int    `json:"size,omitempty"`
}

type Output struct {
	Interactions []models.InteractionRecord `json:"interactions"`
	TotalHits    int64                      `json:"totalHits"`
	Count        int                        `json:"count"`
}
