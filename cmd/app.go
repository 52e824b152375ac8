package cmd

import (
	"context"
	"fmt"

	"living_pages/config"
	"living_pages/generation"
	"living_pages/logger"
	"living_pages/session"
	"living_pages/story"

	"go.uber.org/zap"
)

// app is everything a command needs to play stories.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	engine   *story.Engine
	manager  *session.Manager
	shutdown func()
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.Logger())
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	model, err := generation.NewModel(ctx, cfg.Generation(), log)
	if err != nil {
		return nil, fmt.Errorf("failed to create model: %w", err)
	}
	service := generation.NewService(model, cfg.Generation(), log)

	store, err := session.OpenStore(ctx, session.StoreConfig{
		Kind:          cfg.SessionStore,
		SQLitePath:    cfg.SQLitePath,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
		TTL:           cfg.SessionTTL,
	}, log)
	if err != nil {
		_ = model.Close()
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	return &app{
		cfg:     cfg,
		logger:  log,
		engine:  story.NewEngine(service, story.WithLogger(log)),
		manager: session.NewManager(store, log),
		shutdown: func() {
			if err := store.Close(); err != nil {
				log.Warn("Failed to close session store", zap.Error(err))
			}
			if err := model.Close(); err != nil {
				log.Warn("Failed to close model", zap.Error(err))
			}
			_ = log.Sync()
		},
	}, nil
}
