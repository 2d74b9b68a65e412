package wellbeing

import "time"

const (
	DefaultMood    = "neutral"
	DefaultSummary = "Analysis complete."
	DefaultLevel   = 5

	MinLevel           = 1
	MaxLevel           = 10
	MaxTags            = 5
	MaxRecommendations = 3
)

// DefaultRecommendations is substituted as a whole when a candidate has no usable list.
var DefaultRecommendations = []string{
	"Take regular breaks",
	"Stay organized",
	"Reach out for support",
}

// Candidate is an untrusted analysis payload, typically decoded from model output.
type Candidate map[string]any

// AnalysisRecord is the canonical analysis result handed to the rendering layer.
type AnalysisRecord struct {
	Mood            string   `json:"mood"`
	StressLevel     int      `json:"stressLevel"`
	WorkloadLevel   int      `json:"workloadLevel"`
	Tags            []string `json:"tags"`
	Recommendations []string `json:"recommendations"`
	Summary         string   `json:"summary"`
}

// Candidate converts the record back into candidate form.
func (r AnalysisRecord) Candidate() Candidate {
	return Candidate{
		"mood":            r.Mood,
		"stressLevel":     r.StressLevel,
		"workloadLevel":   r.WorkloadLevel,
		"tags":            append([]string(nil), r.Tags...),
		"recommendations": append([]string(nil), r.Recommendations...),
		"summary":         r.Summary,
	}
}

// Outcome describes one completed analysis, including how it was produced.
type Outcome struct {
	ID             string         `json:"id"`
	Strategy       Strategy       `json:"strategy"`
	Fallback       bool           `json:"fallback"`
	FallbackReason string         `json:"fallbackReason,omitempty"`
	DurationMs     float64        `json:"durationMs"`
	Record         AnalysisRecord `json:"result"`
	CreatedAt      time.Time      `json:"createdAt"`
}
