package generation

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/jmorganca/ollama/api"
)

type ollamaModel struct {
	client      *api.Client
	model       string
	temperature float32
	maxTokens   int
}

func newOllamaModel(cfg Config) (*ollamaModel, error) {
	baseURL := strings.TrimSuffix(strings.TrimSuffix(cfg.BaseURL, "/"), "/v1")
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("ollama: parse base URL %q: %w", baseURL, err)
	}
	return &ollamaModel{
		client:      api.NewClient(parsed, &http.Client{Timeout: cfg.Timeout}),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}, nil
}

func (o *ollamaModel) Complete(ctx context.Context, system, prompt string) (string, error) {
	var messages []api.Message
	if system != "" {
		messages = append(messages, api.Message{Role: "system", Content: system})
	}
	messages = append(messages, api.Message{Role: "user", Content: prompt})

	stream := false
	req := &api.ChatRequest{
		Model:    o.model,
		Messages: messages,
		Stream:   &stream,
		Options: map[string]interface{}{
			"temperature": o.temperature,
			"num_predict": o.maxTokens,
		},
	}

	var b strings.Builder
	err := o.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		b.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}

func (o *ollamaModel) Name() string { return o.model }

func (o *ollamaModel) Close() error { return nil }
