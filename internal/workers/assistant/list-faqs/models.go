// internal/workers/assistant/list-faqs/models.go
package listfaqs

type Input struct {
	Role string `json:"role"`
}

type FaqEntry struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type Output struct {
	Faqs  []FaqEntry `json:"faqs"`
	Count int        `json:"count"`
}
