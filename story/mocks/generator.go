package mocks

import (
	"context"

	"living_pages/story"

	"github.com/stretchr/testify/mock"
)

// Generator is a mock type for the story.Generator type
type Generator struct {
	mock.Mock
}

var _ story.Generator = (*Generator)(nil)

func NewGenerator(t interface {
	mock.TestingT
	Cleanup(func())
}) *Generator {
	m := &Generator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Generator) Continuation(ctx context.Context, req story.ContinuationRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *Generator) Twist(ctx context.Context, transcript, action string) (string, error) {
	args := m.Called(ctx, transcript, action)
	return args.String(0), args.Error(1)
}

func (m *Generator) Interaction(ctx context.Context, transcript string, c story.Character, tag story.InteractionType) (string, error) {
	args := m.Called(ctx, transcript, c, tag)
	return args.String(0), args.Error(1)
}

func (m *Generator) CharacterName(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *Generator) SuggestedActions(ctx context.Context, transcript string) ([]string, error) {
	args := m.Called(ctx, transcript)
	var out []string
	if v := args.Get(0); v != nil {
		out = v.([]string)
	}
	return out, args.Error(1)
}
