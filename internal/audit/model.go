package audit

import "time"

// Outcome values recorded for each attempted strategy.
const (
	OutcomeSuccess  = "success"
	OutcomeFallback = "fallback"
	OutcomeLocal    = "local"
)

// ProviderCall records one strategy attempt. It never carries user text or results.
type ProviderCall struct {
	ID         string    `json:"id"`
	AnalysisID string    `json:"analysisId"`
	RequestID  string    `json:"requestId,omitempty"`
	Strategy   string    `json:"strategy"`
	Outcome    string    `json:"outcome"`
	Reason     string    `json:"reason,omitempty"`
	StatusCode int       `json:"statusCode,omitempty"`
	PromptHash string    `json:"promptHash,omitempty"`
	DurationMs float64   `json:"durationMs"`
	CreatedAt  time.Time `json:"createdAt"`
}
