package generation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"living_pages/prompts"
	"living_pages/story"

	"go.uber.org/zap"
)

// Service implements story.Generator on top of a Model.
type Service struct {
	model       Model
	maxAttempts int
	timeout     time.Duration
	logger      *zap.Logger
}

var _ story.Generator = (*Service)(nil)

func NewService(model Model, cfg Config, logger *zap.Logger) *Service {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	return &Service{
		model:       model,
		maxAttempts: cfg.MaxAttempts,
		timeout:     cfg.Timeout,
		logger:      logger.Named("generation"),
	}
}

func (s *Service) Continuation(ctx context.Context, req story.ContinuationRequest) (string, error) {
	twistSection := ""
	if req.Twist != "" {
		twistSection = fmt.Sprintf(prompts.TwistSection, req.Twist)
	}
	prompt := fmt.Sprintf(prompts.ContinuationPrompt, req.Transcript, req.Action, twistSection, req.PacingHint)
	return s.complete(ctx, "continuation", prompts.StorytellerPrompt, prompt)
}

func (s *Service) Twist(ctx context.Context, transcript, action string) (string, error) {
	text, err := s.complete(ctx, "twist", prompts.TwistWriterPrompt, fmt.Sprintf(prompts.TwistPrompt, transcript, action))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func (s *Service) Interaction(ctx context.Context, transcript string, c story.Character, tag story.InteractionType) (string, error) {
	prompt := fmt.Sprintf(prompts.InteractionPrompt,
		transcript,
		c.Name,
		strings.Join(c.Traits, ", "),
		c.Standing().String(),
		c.Name,
		string(tag),
	)
	text, err := s.complete(ctx, "interaction", prompts.InteractionWriterPrompt, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func (s *Service) CharacterName(ctx context.Context) (string, error) {
	text, err := s.complete(ctx, "character_name", prompts.NameWriterPrompt, prompts.NamePrompt)
	if err != nil {
		return "", err
	}
	return CleanName(text), nil
}

func (s *Service) SuggestedActions(ctx context.Context, transcript string) ([]string, error) {
	text, err := s.complete(ctx, "suggestions", prompts.SuggestionWriterPrompt, fmt.Sprintf(prompts.SuggestionPrompt, transcript))
	if err != nil {
		return nil, err
	}
	actions, err := ParseSuggestions(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}
	return actions, nil
}

func (s *Service) complete(ctx context.Context, kind, system, prompt string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		text, err := s.completeOnce(ctx, system, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err
		s.logger.Warn("generation attempt failed",
			zap.String("kind", kind),
			zap.String("model", s.model.Name()),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", s.maxAttempts),
			zap.Error(err),
		)
		if ctx.Err() != nil {
			break
		}
	}
	return "", fmt.Errorf("%w: %s: %w", ErrGenerationFailed, kind, lastErr)
}

func (s *Service) completeOnce(ctx context.Context, system, prompt string) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	text, err := s.model.Complete(ctx, system, prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", errEmptyResponse
	}
	return text, nil
}
