package generation

import (
	"context"
	"errors"
	"testing"

	"living_pages/prompts"
	"living_pages/story"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type call struct {
	system string
	prompt string
}

// fakeModel replays replies in order and records every call.
type fakeModel struct {
	replies []string
	errs    []error
	calls   []call
}

func (f *fakeModel) Complete(_ context.Context, system, prompt string) (string, error) {
	i := len(f.calls)
	f.calls = append(f.calls, call{system: system, prompt: prompt})
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	if err != nil {
		return "", err
	}
	if i < len(f.replies) {
		return f.replies[i], nil
	}
	return "", nil
}

func (f *fakeModel) Name() string { return "fake" }

func (f *fakeModel) Close() error { return nil }

func newTestService(m Model, attempts int) *Service {
	return NewService(m, Config{MaxAttempts: attempts}, zap.NewNop())
}

func TestService_Continuation(t *testing.T) {
	m := &fakeModel{replies: []string{"The door creaks open.", "More story."}}
	svc := newTestService(m, 1)

	text, err := svc.Continuation(context.Background(), story.ContinuationRequest{
		Transcript: "Once upon a time.",
		Action:     "Open the door",
		Twist:      "A bell rings.",
		PacingHint: story.HintCalm,
	})
	require.NoError(t, err)
	assert.Equal(t, "The door creaks open.", text)

	require.Len(t, m.calls, 1)
	assert.Equal(t, prompts.StorytellerPrompt, m.calls[0].system)
	assert.Contains(t, m.calls[0].prompt, "CURRENT STORY:\nOnce upon a time.")
	assert.Contains(t, m.calls[0].prompt, "PLAYER'S ACTION:\nOpen the door")
	assert.Contains(t, m.calls[0].prompt, "NARRATIVE TWIST (if any):\nA bell rings.")
	assert.Contains(t, m.calls[0].prompt, "NARRATIVE ARC HINT:\n"+story.HintCalm)

	_, err = svc.Continuation(context.Background(), story.ContinuationRequest{Transcript: "x", Action: "y", PacingHint: story.HintClimax})
	require.NoError(t, err)
	assert.NotContains(t, m.calls[1].prompt, "NARRATIVE TWIST")
}

func TestService_Interaction(t *testing.T) {
	m := &fakeModel{replies: []string{"  Jenkins offers you a lantern.  "}}
	svc := newTestService(m, 1)

	c := story.NewCharacter("Old Man Jenkins", "", []string{"wise", "friendly"})
	c.ApplyDelta(4)

	text, err := svc.Interaction(context.Background(), "story", *c, story.Gift)
	require.NoError(t, err)
	assert.Equal(t, "Jenkins offers you a lantern.", text)

	p := m.calls[0].prompt
	assert.Contains(t, p, "Character: Old Man Jenkins")
	assert.Contains(t, p, "Character traits: wise, friendly")
	assert.Contains(t, p, "Relationship: FRIENDLY")
	assert.Contains(t, p, "where Old Man Jenkins gifts the player")
}

func TestService_CharacterName(t *testing.T) {
	m := &fakeModel{replies: []string{"\"Seraphine\"\n"}}
	name, err := newTestService(m, 1).CharacterName(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Seraphine", name)
}

func TestService_SuggestedActions(t *testing.T) {
	m := &fakeModel{replies: []string{`["Ask about the tower", "Buy bread", "Head to the forest"]`, "no list here"}}
	svc := newTestService(m, 1)

	actions, err := svc.SuggestedActions(context.Background(), "story")
	require.NoError(t, err)
	assert.Equal(t, []string{"Ask about the tower", "Buy bread", "Head to the forest"}, actions)

	_, err = svc.SuggestedActions(context.Background(), "story")
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.ErrorIs(t, err, ErrMalformedSuggestions)
}

func TestService_RetriesThenSucceeds(t *testing.T) {
	boom := errors.New("boom")
	m := &fakeModel{errs: []error{boom, nil}, replies: []string{"", "A twist!"}}
	text, err := newTestService(m, 3).Twist(context.Background(), "story", "act")
	require.NoError(t, err)
	assert.Equal(t, "A twist!", text)
	assert.Len(t, m.calls, 2)
}

func TestService_FailsAfterAttempts(t *testing.T) {
	boom := errors.New("boom")
	m := &fakeModel{errs: []error{boom, boom}}
	_, err := newTestService(m, 2).Twist(context.Background(), "story", "act")
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.ErrorIs(t, err, boom)
	assert.Len(t, m.calls, 2)
}

func TestService_EmptyReplyIsFailure(t *testing.T) {
	m := &fakeModel{replies: []string{"   "}}
	_, err := newTestService(m, 1).Continuation(context.Background(), story.ContinuationRequest{})
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.ErrorIs(t, err, errEmptyResponse)
}

func TestService_StopsRetryingOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := &fakeModel{errs: []error{context.Canceled, context.Canceled, context.Canceled}}
	_, err := newTestService(m, 3).Twist(ctx, "story", "act")
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.Len(t, m.calls, 1)
}
