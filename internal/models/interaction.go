package models

import "time"

// InteractionRecord is the log entry written after every assistant exchange.
// It is the only per-request artifact that outlives the request.
type InteractionRecord struct {
	ID             string    `json:"id"`
	Role           string    `json:"role"`
	Question       string    `json:"question"`
	MatchedIntent  string    `json:"matchedIntent"`
	Confidence     float64   `json:"confidence"`
	ResponseSource string    `json:"responseSource"`
	Timestamp      time.Time `json:"timestamp"`
}
