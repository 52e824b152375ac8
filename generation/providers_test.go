package generation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const chatCompletionReply = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "test-model",
  "choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "The lantern flickers."}}],
  "usage": {"prompt_tokens": 12, "completion_tokens": 4, "total_tokens": 16}
}`

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func chatCompletionServer(t *testing.T, got *chatRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chatCompletionReply))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLocalModel_Complete(t *testing.T) {
	var got chatRequest
	srv := chatCompletionServer(t, &got)

	m := newLocalModel(Config{BaseURL: srv.URL + "/v1", Model: "local-model", Timeout: 5 * time.Second, Temperature: 0.7, MaxTokens: 500})
	text, err := m.Complete(context.Background(), "be brief", "continue")
	require.NoError(t, err)
	assert.Equal(t, "The lantern flickers.", text)

	assert.Equal(t, "local-model", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "be brief", got.Messages[0].Content)
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Equal(t, "continue", got.Messages[1].Content)
}

func TestOpenAIModel_Complete(t *testing.T) {
	var got chatRequest
	srv := chatCompletionServer(t, &got)

	m, err := newOpenAIModel(Config{APIKey: "sk-test", BaseURL: srv.URL + "/v1/", Model: "gpt-4o-mini", Timeout: 5 * time.Second})
	require.NoError(t, err)
	text, err := m.Complete(context.Background(), "", "continue")
	require.NoError(t, err)
	assert.Equal(t, "The lantern flickers.", text)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
}

func TestOpenAIModel_RequiresKey(t *testing.T) {
	_, err := newOpenAIModel(Config{Model: "gpt-4o-mini"})
	assert.Error(t, err)
}

func TestOllamaModel_Complete(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/x-ndjson")
		_, _ = w.Write([]byte(`{"model":"llama3.1","created_at":"2024-01-01T00:00:00Z","message":{"role":"assistant","content":"Wolves howl."},"done":true}` + "\n"))
	}))
	defer srv.Close()

	m, err := newOllamaModel(Config{BaseURL: srv.URL + "/v1", Model: "llama3.1", Timeout: 5 * time.Second})
	require.NoError(t, err)
	text, err := m.Complete(context.Background(), "sys", "continue")
	require.NoError(t, err)
	assert.Equal(t, "Wolves howl.", text)
	assert.Equal(t, "llama3.1", got.Model)
	require.Len(t, got.Messages, 2)
}

func TestNewModel_UnknownProvider(t *testing.T) {
	_, err := NewModel(context.Background(), Config{Provider: "carrier-pigeon"}, zap.NewNop())
	assert.Error(t, err)
}

func TestNewModel_LocalDefaults(t *testing.T) {
	m, err := NewModel(context.Background(), Config{Provider: ProviderLocal}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "local-model", m.Name())
	assert.NoError(t, m.Close())
}

func TestInstrumentedModel_PassesThrough(t *testing.T) {
	inner := &fakeModel{replies: []string{"ok"}}
	var counted string
	m := InstrumentWithCounter("test", inner, func(text string) (int, bool) {
		counted = text
		return 3, true
	})

	text, err := m.Complete(context.Background(), "sys", "prompt")
	require.NoError(t, err)
	assert.Equal(t, "ok", text)
	assert.Equal(t, "sysprompt", counted)
	assert.Equal(t, "fake", m.Name())
}
