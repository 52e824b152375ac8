package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"living_pages/story"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redisKeyPrefix = "living_pages:session:"

// RedisStore keeps sessions in Redis with a sliding TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisStore(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
		logger: logger.Named("RedisSessionStore"),
	}
}

func redisKey(id string) string { return redisKeyPrefix + id }

func (r *RedisStore) Load(ctx context.Context, id string) (story.State, error) {
	data, err := r.client.Get(ctx, redisKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return story.State{}, ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to load session from redis", zap.Error(err), zap.String("sessionID", id))
		return story.State{}, fmt.Errorf("failed to load session from redis: %w", err)
	}
	return decodeState(data)
}

func (r *RedisStore) Save(ctx context.Context, id string, st story.State) error {
	data, err := encodeState(st)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, redisKey(id), data, r.ttl).Err(); err != nil {
		r.logger.Error("Failed to save session to redis", zap.Error(err), zap.String("sessionID", id))
		return fmt.Errorf("failed to save session to redis: %w", err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, redisKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session from redis: %w", err)
	}
	return nil
}

func (r *RedisStore) Close() error { return r.client.Close() }
