package llm

import (
	"context"
	"errors"
	"fmt"
)

// Client abstracts an OpenAI-compatible chat completion provider.
type Client interface {
	Complete(ctx context.Context, messages []Message) (Completion, error)
}

// Message is a single chat message.
type Message struct {
	Role    string
	Content string
}

// Completion is the untrusted text returned by a provider plus bookkeeping.
type Completion struct {
	Content string
	Model   string
	Usage   *Usage
}

// Usage reports token accounting when the provider returns it.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Failure reasons attached to provider errors.
const (
	ReasonTransport     = "transport"
	ReasonTimeout       = "timeout"
	ReasonUnauthorized  = "unauthorized"
	ReasonRateLimited   = "rate_limited"
	ReasonHTTPStatus    = "http_status"
	ReasonEmptyResponse = "empty_response"
	ReasonParse         = "parse"
	ReasonNotConfigured = "not_configured"
)

// ErrNotConfigured is returned when no client is registered for a provider.
var ErrNotConfigured = errors.New("llm provider not configured")

// ProviderError describes why a provider exchange did not yield usable output.
type ProviderError struct {
	Provider   string
	Reason     string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s %s (status %d): %v", e.Provider, e.Reason, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Provider, e.Reason, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// ReasonOf extracts the failure reason from err, defaulting to transport.
func ReasonOf(err error) string {
	if err == nil {
		return ""
	}
	var pe *ProviderError
	if errors.As(err, &pe) && pe.Reason != "" {
		return pe.Reason
	}
	if errors.Is(err, ErrNotConfigured) {
		return ReasonNotConfigured
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ReasonTimeout
	}
	return ReasonTransport
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.StatusCode
	}
	return 0
}
