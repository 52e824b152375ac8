package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"living_pages/story"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestManager_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), zap.NewNop())

	id, s, err := m.Create(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, 3, s.Roster().Len())

	got, err := m.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, s.Transcript(), got.Transcript())

	_, err = m.Get(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManager_GetOrCreate(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), zap.NewNop())

	id, _, err := m.GetOrCreate(ctx, "")
	require.NoError(t, err)

	same, _, err := m.GetOrCreate(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, same)

	other, _, err := m.GetOrCreate(ctx, "stale-cookie")
	require.NoError(t, err)
	assert.NotEqual(t, "stale-cookie", other)
}

func TestManager_Update(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), zap.NewNop())
	id, _, err := m.Create(ctx)
	require.NoError(t, err)

	require.NoError(t, m.Update(ctx, id, func(s *story.Session) error {
		s.Roster().ApplyDelta("Old Man Jenkins", 3)
		return nil
	}))

	boom := errors.New("boom")
	err = m.Update(ctx, id, func(s *story.Session) error {
		s.Roster().ApplyDelta("Old Man Jenkins", -10)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	s, err := m.Get(ctx, id)
	require.NoError(t, err)
	c, _ := s.Roster().Get("Old Man Jenkins")
	assert.Equal(t, 5, c.Affinity())
}

func TestManager_UpdateSerialisesTurns(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), zap.NewNop())
	id, _, err := m.Create(ctx)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, m.Update(ctx, id, func(s *story.Session) error {
				s.Roster().Add("extra", "", nil)
				s.Roster().ApplyDelta("Old Man Jenkins", -1)
				return nil
			}))
		}()
	}
	wg.Wait()

	s, err := m.Get(ctx, id)
	require.NoError(t, err)
	c, _ := s.Roster().Get("Old Man Jenkins")
	assert.Equal(t, -10, c.Affinity())
	assert.Equal(t, 4, s.Roster().Len())
}

func TestManager_Reset(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), zap.NewNop())
	id, _, err := m.Create(ctx)
	require.NoError(t, err)

	require.NoError(t, m.Update(ctx, id, func(s *story.Session) error {
		s.Roster().Add("Elara", "", nil)
		return nil
	}))

	s, err := m.Reset(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Roster().Len())

	stored, err := m.Get(ctx, id)
	require.NoError(t, err)
	assert.False(t, stored.Roster().Has("Elara"))

	require.NoError(t, m.Delete(ctx, id))
	_, err = m.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManager_ReleasesSessionLocks(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		id, _, err := m.Create(ctx)
		require.NoError(t, err)
		for j := 0; j < 5; j++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.NoError(t, m.Update(ctx, id, func(s *story.Session) error { return nil }))
			}()
		}
		_, err = m.Reset(ctx, id)
		require.NoError(t, err)
	}
	wg.Wait()

	assert.Equal(t, 0, m.lockCount())
}
