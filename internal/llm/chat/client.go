package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"wellbeing-backend/internal/llm"
	"wellbeing-backend/internal/shared/telemetry"
)

const (
	OpenAIBaseURL = "https://api.openai.com/v1"
	GroqBaseURL   = "https://api.groq.com/openai/v1"

	defaultTimeout = 60 * time.Second
)

// Options configures one OpenAI-compatible provider.
type Options struct {
	Name        string
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
	HTTPClient  *http.Client
}

// Client implements llm.Client on top of go-openai. Groq exposes the same
// chat completions API, so one client type serves both providers.
type Client struct {
	name        string
	model       string
	temperature float32
	maxTokens   int
	api         *openai.Client
}

// NewClient constructs a client for the given provider options.
func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, fmt.Errorf("%s api key is required", opts.Name)
	}
	if strings.TrimSpace(opts.Model) == "" {
		return nil, fmt.Errorf("%s model is required", opts.Name)
	}

	cfg := openai.DefaultConfig(opts.APIKey)
	if strings.TrimSpace(opts.BaseURL) != "" {
		cfg.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	cfg.HTTPClient = httpClient

	return &Client{
		name:        opts.Name,
		model:       opts.Model,
		temperature: opts.Temperature,
		maxTokens:   opts.MaxTokens,
		api:         openai.NewClientWithConfig(cfg),
	}, nil
}

// Name returns the provider name used in logs and errors.
func (c *Client) Name() string {
	return c.name
}

// Complete performs a single chat completion and returns the first choice's content.
func (c *Client) Complete(ctx context.Context, messages []llm.Message) (llm.Completion, error) {
	reqMessages := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		reqMessages = append(reqMessages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    reqMessages,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return llm.Completion{}, c.classify(err)
	}
	if len(resp.Choices) == 0 {
		return llm.Completion{}, &llm.ProviderError{Provider: c.name, Reason: llm.ReasonEmptyResponse, Err: errors.New("response missing choices")}
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return llm.Completion{}, &llm.ProviderError{Provider: c.name, Reason: llm.ReasonEmptyResponse, Err: errors.New("response empty content")}
	}

	usage := &llm.Usage{
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
	}
	logUsage(c.name, resp.Model, usage)

	model := resp.Model
	if model == "" {
		model = c.model
	}
	return llm.Completion{Content: content, Model: model, Usage: usage}, nil
}

func (c *Client) classify(err error) error {
	pe := &llm.ProviderError{Provider: c.name, Reason: llm.ReasonTransport, Err: err}

	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		pe.StatusCode = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		pe.StatusCode = reqErr.HTTPStatusCode
	}

	switch {
	case pe.StatusCode == http.StatusUnauthorized || pe.StatusCode == http.StatusForbidden:
		pe.Reason = llm.ReasonUnauthorized
	case pe.StatusCode == http.StatusTooManyRequests:
		pe.Reason = llm.ReasonRateLimited
	case pe.StatusCode >= 300:
		pe.Reason = llm.ReasonHTTPStatus
	case isTimeout(err):
		pe.Reason = llm.ReasonTimeout
	case isDecodeError(err):
		pe.Reason = llm.ReasonParse
	}
	return pe
}

func isDecodeError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return strings.Contains(err.Error(), "Client.Timeout")
}

func logUsage(provider, model string, usage *llm.Usage) {
	fields := map[string]any{"provider": provider, "model": model}
	if usage != nil {
		fields["prompt_tokens"] = usage.PromptTokens
		fields["completion_tokens"] = usage.CompletionTokens
		fields["total_tokens"] = usage.TotalTokens
	}
	telemetry.Info("llm.response", fields)
}

var _ llm.Client = (*Client)(nil)
