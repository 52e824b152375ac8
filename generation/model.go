package generation

import (
	"context"
	"errors"
	"time"
)

// ErrGenerationFailed wraps every failure coming out of a provider.
var ErrGenerationFailed = errors.New("text generation failed")

var errEmptyResponse = errors.New("empty response")

// Model is a provider-neutral chat model: one system instruction, one user prompt.
type Model interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
	Name() string
	Close() error
}

// Config selects and tunes a provider.
type Config struct {
	Provider    string
	Model       string
	BaseURL     string
	APIKey      string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
	MaxAttempts int
}

const (
	ProviderGemini = "gemini"
	ProviderLocal  = "local"
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
)

// DefaultModel is the model used for a provider when none is configured.
func DefaultModel(provider string) string {
	switch provider {
	case ProviderLocal:
		return "local-model"
	case ProviderOllama:
		return "llama3.1"
	case ProviderOpenAI:
		return "gpt-4o-mini"
	default:
		return "gemini-2.5-flash"
	}
}

// DefaultBaseURL is the endpoint used for a provider when none is configured.
func DefaultBaseURL(provider string) string {
	switch provider {
	case ProviderLocal:
		return "http://127.0.0.1:1234/v1"
	case ProviderOllama:
		return "http://127.0.0.1:11434"
	default:
		return ""
	}
}
