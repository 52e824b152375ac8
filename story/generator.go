package story

import "context"

// ContinuationRequest carries everything the storyteller needs for one turn.
type ContinuationRequest struct {
	Transcript string
	Action     string
	Twist      string
	PacingHint string
}

// Generator is the narrative generation service the engine talks to.
// Every call is a single blocking request that returns text or an error.
type Generator interface {
	Continuation(ctx context.Context, req ContinuationRequest) (string, error)
	Twist(ctx context.Context, transcript, action string) (string, error)
	Interaction(ctx context.Context, transcript string, c Character, tag InteractionType) (string, error)
	CharacterName(ctx context.Context) (string, error)
	SuggestedActions(ctx context.Context, transcript string) ([]string, error)
}

// Rand is the random source used for event rolls and sampling.
// *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}
