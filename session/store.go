package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"living_pages/story"
)

// ErrNotFound is returned when no session is stored under an ID.
var ErrNotFound = errors.New("session not found")

// Store persists session state by ID.
type Store interface {
	Load(ctx context.Context, id string) (story.State, error)
	Save(ctx context.Context, id string, st story.State) error
	Delete(ctx context.Context, id string) error
	Close() error
}

func encodeState(st story.State) ([]byte, error) {
	data, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("encode session state: %w", err)
	}
	return data, nil
}

func decodeState(data []byte) (story.State, error) {
	var st story.State
	if err := json.Unmarshal(data, &st); err != nil {
		return story.State{}, fmt.Errorf("decode session state: %w", err)
	}
	return st, nil
}
