package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wellbeing-backend/internal/llm"
)

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()
	client, err := NewClient(Options{
		Name:        "groq",
		APIKey:      "test-key",
		BaseURL:     url,
		Model:       "llama-3.3-70b-versatile",
		Temperature: 0.7,
		MaxTokens:   500,
	})
	require.NoError(t, err)
	return client
}

func TestCompleteSendsChatCompletionRequest(t *testing.T) {
	var mu sync.Mutex
	var lastBody map[string]any
	var lastAuth, lastPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		mu.Lock()
		lastBody = payload
		lastAuth = r.Header.Get("Authorization")
		lastPath = r.URL.Path
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model":"llama-3.3-70b-versatile","choices":[{"message":{"role":"assistant","content":"  {\"mood\":\"calm\"}  "}}],"usage":{"prompt_tokens":10,"completion_tokens":5,"total_tokens":15}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	assert.Equal(t, "groq", client.Name())
	messages := llm.BuildMessages("v1", "I feel fine")
	got, err := client.Complete(context.Background(), messages)
	require.NoError(t, err)

	assert.Equal(t, `{"mood":"calm"}`, got.Content)
	assert.Equal(t, "llama-3.3-70b-versatile", got.Model)
	require.NotNil(t, got.Usage)
	assert.Equal(t, 15, got.Usage.TotalTokens)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "/chat/completions", lastPath)
	assert.Equal(t, "Bearer test-key", lastAuth)
	assert.Equal(t, "llama-3.3-70b-versatile", lastBody["model"])
	assert.InDelta(t, 0.7, lastBody["temperature"], 0.0001)
	assert.Equal(t, float64(500), lastBody["max_tokens"])

	msgs, ok := lastBody["messages"].([]any)
	require.True(t, ok, "expected messages array")
	require.Len(t, msgs, 2)
	first := msgs[0].(map[string]any)
	second := msgs[1].(map[string]any)
	assert.Equal(t, "system", first["role"])
	assert.Equal(t, "user", second["role"])
	assert.Contains(t, second["content"], `Student input: "I feel fine"`)
}

func TestCompleteClassifiesFailures(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantReason string
		wantStatus int
	}{
		{
			name:       "unauthorized",
			status:     http.StatusUnauthorized,
			body:       `{"error":{"message":"Invalid API key","type":"invalid_request_error"}}`,
			wantReason: llm.ReasonUnauthorized,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "rate limited",
			status:     http.StatusTooManyRequests,
			body:       `{"error":{"message":"Rate limit exceeded","type":"requests"}}`,
			wantReason: llm.ReasonRateLimited,
			wantStatus: http.StatusTooManyRequests,
		},
		{
			name:       "server error",
			status:     http.StatusInternalServerError,
			body:       `{"error":{"message":"boom","type":"server_error"}}`,
			wantReason: llm.ReasonHTTPStatus,
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "empty choices",
			status:     http.StatusOK,
			body:       `{"choices":[]}`,
			wantReason: llm.ReasonEmptyResponse,
		},
		{
			name:       "blank content",
			status:     http.StatusOK,
			body:       `{"choices":[{"message":{"role":"assistant","content":"   "}}]}`,
			wantReason: llm.ReasonEmptyResponse,
		},
		{
			name:       "garbage body",
			status:     http.StatusOK,
			body:       `<html>not json</html>`,
			wantReason: llm.ReasonParse,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := newTestClient(t, server.URL)
			_, err := client.Complete(context.Background(), llm.BuildMessages("v1", "hello"))
			require.Error(t, err)
			assert.Equal(t, tt.wantReason, llm.ReasonOf(err))
			assert.Equal(t, tt.wantStatus, llm.StatusOf(err))
		})
	}
}

func TestCompleteTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := newTestClient(t, url)
	_, err := client.Complete(context.Background(), llm.BuildMessages("v1", "hello"))
	require.Error(t, err)
	assert.Equal(t, llm.ReasonTransport, llm.ReasonOf(err))
}

func TestNewClientRequiresKeyAndModel(t *testing.T) {
	_, err := NewClient(Options{Name: "openai", Model: "gpt-3.5-turbo"})
	assert.Error(t, err)

	_, err = NewClient(Options{Name: "openai", APIKey: "k"})
	assert.Error(t, err)
}
