package story

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrEmptyAction is returned when a turn is requested with a blank action.
var ErrEmptyAction = errors.New("action is empty")

const justNow = "Just now"

// EventKind says what kind of random event, if any, happened in a turn.
type EventKind string

const (
	EventNone        EventKind = "none"
	EventInteraction EventKind = "interaction"
	EventTwist       EventKind = "twist"
)

// TurnResult describes what happened during one turn.
type TurnResult struct {
	Action       string
	Event        EventKind
	Character    string
	Interaction  InteractionType
	Delta        int
	Discovered   string
	Twist        string
	Continuation string
	PacingHint   string
	Segment      string
}

// Engine runs turns against a session using a generation service.
type Engine struct {
	gen    Generator
	rng    Rand
	logger *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand replaces the random source, mostly for tests.
func WithRand(rng Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

func NewEngine(gen Generator, opts ...Option) *Engine {
	e := &Engine{
		gen:    gen,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.Named("engine")
	return e
}

// Advance plays one turn. Generation failures are absorbed: the turn always
// appends the action and some continuation text to the transcript.
func (e *Engine) Advance(ctx context.Context, s *Session, action string) (TurnResult, error) {
	if strings.TrimSpace(action) == "" {
		return TurnResult{}, ErrEmptyAction
	}

	s.choices = append(s.choices, action)
	s.arcProgress++

	res := TurnResult{Action: action, Event: EventNone}
	transcript := s.Transcript()

	if e.rng.Float64() < eventChance {
		if e.rng.Float64() < interactionChance {
			e.interact(ctx, s, transcript, &res)
		} else {
			e.twist(ctx, s, transcript, action, &res)
		}
	}

	res.PacingHint = PacingHint(s.arcProgress)
	continuation, err := e.gen.Continuation(ctx, ContinuationRequest{
		Transcript: transcript,
		Action:     action,
		Twist:      res.Twist,
		PacingHint: res.PacingHint,
	})
	if err != nil || strings.TrimSpace(continuation) == "" {
		e.logger.Warn("continuation failed, using fallback", zap.Error(err), zap.Int("arc_progress", s.arcProgress))
		continuation = FallbackContinue
	}
	res.Continuation = continuation

	res.Segment = formatSegment(action, res.Twist, continuation)
	s.append(res.Segment)
	s.suggestions = nil

	e.logger.Debug("turn complete",
		zap.Int("arc_progress", s.arcProgress),
		zap.String("event", string(res.Event)),
		zap.String("character", res.Character),
		zap.Int("delta", res.Delta),
	)
	return res, nil
}

func (e *Engine) interact(ctx context.Context, s *Session, transcript string, res *TurnResult) {
	mentioned := s.roster.Mentioned(transcript)
	if len(mentioned) == 0 {
		return
	}
	c := mentioned[e.rng.Intn(len(mentioned))]
	tags := InteractionsFor(c.Standing())
	tag := tags[e.rng.Intn(len(tags))]

	res.Event = EventInteraction
	res.Character = c.Name
	res.Interaction = tag

	text, err := e.gen.Interaction(ctx, transcript, *c, tag)
	if err != nil {
		e.logger.Warn("interaction generation failed", zap.Error(err), zap.String("character", c.Name), zap.String("tag", string(tag)))
		text = ""
	}
	res.Twist = strings.TrimSpace(text)

	res.Delta = tag.Delta()
	c.ApplyDelta(res.Delta)
	c.LastInteraction = justNow
}

func (e *Engine) twist(ctx context.Context, s *Session, transcript, action string, res *TurnResult) {
	res.Event = EventTwist
	text, err := e.gen.Twist(ctx, transcript, action)
	if err != nil {
		e.logger.Warn("twist generation failed", zap.Error(err))
		text = ""
	}
	twist := strings.TrimSpace(text)

	if e.rng.Float64() < discoveryChance {
		if name := e.discover(ctx, s); name != "" {
			res.Discovered = name
			twist += fmt.Sprintf("\n\nYou notice %s watching you from a distance...", name)
		}
	}
	res.Twist = strings.TrimSpace(twist)
}

// discover asks for a new character name and adds it to the roster.
// It returns the name, or "" when no new character was added.
func (e *Engine) discover(ctx context.Context, s *Session) string {
	name, err := e.gen.CharacterName(ctx)
	if err != nil {
		e.logger.Warn("character name generation failed", zap.Error(err))
		return ""
	}
	name = strings.Trim(strings.TrimSpace(name), `"'`)
	if name == "" || s.roster.Has(name) {
		return ""
	}
	traits := sampleTraits(e.rng)
	s.roster.Add(name, fmt.Sprintf("A %s figure you've just encountered.", traits[0]), traits)
	e.logger.Info("new character discovered", zap.String("name", name), zap.Strings("traits", traits))
	return name
}

// Suggestions returns the session's suggested actions, generating them
// when the cache is empty.
func (e *Engine) Suggestions(ctx context.Context, s *Session) []string {
	if len(s.suggestions) > 0 {
		return s.Suggestions()
	}
	actions, err := e.gen.SuggestedActions(ctx, s.Transcript())
	if err != nil || len(actions) == 0 {
		e.logger.Warn("suggestion generation failed, using defaults", zap.Error(err))
		actions = DefaultSuggestions
	}
	s.suggestions = append([]string(nil), actions...)
	return s.Suggestions()
}

func formatSegment(action, twist, continuation string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n\n> **%s**", action)
	if twist != "" {
		fmt.Fprintf(&b, "\n\n*%s*\n", twist)
	}
	fmt.Fprintf(&b, "\n%s", continuation)
	return b.String()
}
