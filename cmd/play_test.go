package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"living_pages/session"
	"living_pages/story"
	"living_pages/story/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type quietRand struct{}

func (quietRand) Float64() float64 { return 0.99 }
func (quietRand) Intn(int) int      { return 0 }

func newPlayFixture(t *testing.T) (*story.Engine, *session.Manager) {
	t.Helper()
	gen := mocks.NewGenerator(t)
	gen.On("Continuation", mock.Anything, mock.Anything).Return("Wind stirs the leaves.", nil).Maybe()
	gen.On("SuggestedActions", mock.Anything, mock.Anything).Return([]string{"Open the gate", "Call out"}, nil).Maybe()

	engine := story.NewEngine(gen, story.WithRand(quietRand{}), story.WithLogger(zap.NewNop()))
	return engine, session.NewManager(session.NewMemoryStore(), zap.NewNop())
}

func TestPlayLoop_NumberedAndCustomActions(t *testing.T) {
	engine, manager := newPlayFixture(t)
	ctx := context.Background()

	var out bytes.Buffer
	id, err := playLoop(ctx, strings.NewReader("1\nLook around\n42\n2\nquit\n"), &out, engine, manager, "")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	s, err := manager.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 4, s.ArcProgress())
	assert.Equal(t, []string{"Open the gate", "Look around", "42", "Look around"}, s.Choices())

	text := out.String()
	assert.Contains(t, text, story.OpeningLine)
	assert.Contains(t, text, "1. Open the gate")
	assert.Contains(t, text, "Wind stirs the leaves.")
	assert.Contains(t, text, "> 42")
}

func TestPlayLoop_RestartAndResume(t *testing.T) {
	engine, manager := newPlayFixture(t)
	ctx := context.Background()

	id, err := playLoop(ctx, strings.NewReader("Walk\nWalk again\n"), &bytes.Buffer{}, engine, manager, "")
	require.NoError(t, err)

	resumed, err := playLoop(ctx, strings.NewReader("restart\n"), &bytes.Buffer{}, engine, manager, id)
	require.NoError(t, err)
	assert.Equal(t, id, resumed)

	s, err := manager.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 0, s.ArcProgress())
	assert.Equal(t, story.OpeningLine, s.Transcript())
}
