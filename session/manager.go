package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"living_pages/story"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// StoreConfig selects a Store implementation.
type StoreConfig struct {
	Kind          string // memory, sqlite or redis
	SQLitePath    string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	TTL           time.Duration
}

// OpenStore opens the configured store.
func OpenStore(ctx context.Context, cfg StoreConfig, logger *zap.Logger) (Store, error) {
	switch cfg.Kind {
	case "memory":
		return NewMemoryStore(), nil
	case "sqlite", "":
		return OpenSQLite(cfg.SQLitePath)
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		return NewRedisStore(client, cfg.TTL, logger), nil
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.Kind)
	}
}

// Manager hands out story sessions by ID. Turns on the same session are
// serialised; different sessions proceed independently.
type Manager struct {
	store  Store
	logger *zap.Logger

	mu    sync.Mutex
	locks map[string]*sessionLock
}

// sessionLock is dropped from Manager.locks once no caller holds or waits on it.
type sessionLock struct {
	sync.Mutex
	refs int
}

func NewManager(store Store, logger *zap.Logger) *Manager {
	return &Manager{
		store:  store,
		logger: logger.Named("SessionManager"),
		locks:  make(map[string]*sessionLock),
	}
}

func (m *Manager) lock(id string) func() {
	m.mu.Lock()
	l, ok := m.locks[id]
	if !ok {
		l = &sessionLock{}
		m.locks[id] = l
	}
	l.refs++
	m.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		m.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(m.locks, id)
		}
		m.mu.Unlock()
	}
}

// lockCount reports how many session locks are currently tracked.
func (m *Manager) lockCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.locks)
}

// Create starts a new session and returns its ID.
func (m *Manager) Create(ctx context.Context) (string, *story.Session, error) {
	id := uuid.NewString()
	s := story.NewSession()
	if err := m.store.Save(ctx, id, s.State()); err != nil {
		return "", nil, err
	}
	m.logger.Info("Session created", zap.String("sessionID", id))
	return id, s, nil
}

// Get loads a session. It returns ErrNotFound for unknown IDs.
func (m *Manager) Get(ctx context.Context, id string) (*story.Session, error) {
	st, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return story.Restore(st), nil
}

// GetOrCreate loads the session for id, starting a new one when id is
// empty or unknown. The returned ID may differ from the one passed in.
func (m *Manager) GetOrCreate(ctx context.Context, id string) (string, *story.Session, error) {
	if id != "" {
		s, err := m.Get(ctx, id)
		if err == nil {
			return id, s, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return "", nil, err
		}
	}
	return m.Create(ctx)
}

// Update runs fn against the stored session under the session's lock and
// saves the result. Nothing is saved if fn fails.
func (m *Manager) Update(ctx context.Context, id string, fn func(*story.Session) error) error {
	unlock := m.lock(id)
	defer unlock()

	s, err := m.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := fn(s); err != nil {
		return err
	}
	return m.store.Save(ctx, id, s.State())
}

// Reset discards the session state and starts the story over under the same ID.
func (m *Manager) Reset(ctx context.Context, id string) (*story.Session, error) {
	unlock := m.lock(id)
	defer unlock()

	s := story.NewSession()
	if err := m.store.Save(ctx, id, s.State()); err != nil {
		return nil, err
	}
	m.logger.Info("Session reset", zap.String("sessionID", id))
	return s, nil
}

// Delete forgets a session.
func (m *Manager) Delete(ctx context.Context, id string) error {
	unlock := m.lock(id)
	defer unlock()

	return m.store.Delete(ctx, id)
}
