package generation

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// NewModel builds the instrumented model for the configured provider.
func NewModel(ctx context.Context, cfg Config, logger *zap.Logger) (Model, error) {
	if cfg.Model == "" {
		cfg.Model = DefaultModel(cfg.Provider)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL(cfg.Provider)
	}

	var (
		m   Model
		err error
	)
	switch cfg.Provider {
	case ProviderGemini, "":
		m, err = newGeminiModel(ctx, cfg)
	case ProviderLocal:
		m = newLocalModel(cfg)
	case ProviderOllama:
		m, err = newOllamaModel(cfg)
	case ProviderOpenAI:
		m, err = newOpenAIModel(cfg)
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("generation model ready",
		zap.String("provider", cfg.Provider),
		zap.String("model", cfg.Model),
		zap.String("base_url", cfg.BaseURL),
		zap.Duration("timeout", cfg.Timeout),
	)
	return Instrument(cfg.Provider, m), nil
}
