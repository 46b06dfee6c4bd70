package tracker

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/ferrin/discord-puzzles-bot/internal/games"
)

// StateStore holds the durable latest-known puzzle index per game.
type StateStore interface {
	LatestIndex(ctx context.Context, game games.ID) (int, error)
	SetLatestIndex(ctx context.Context, game games.ID, index int) error
}

// RedisStore keeps the latest indices in Redis. Values have no TTL; the
// latest index only ever moves forward and must survive restarts.
type RedisStore struct{ rdb *redis.Client }

func NewRedisStore(redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisStore{rdb: rdb}, nil
}

func NewRedisStoreWithClient(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) key(game games.ID) string { return "latest:game:" + string(game) }

func (s *RedisStore) LatestIndex(ctx context.Context, game games.ID) (int, error) {
	raw, err := s.rdb.Get(ctx, s.key(game)).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("corrupt latest index for %s: %w", game, err)
	}
	return n, nil
}

func (s *RedisStore) SetLatestIndex(ctx context.Context, game games.ID, index int) error {
	return s.rdb.Set(ctx, s.key(game), strconv.Itoa(index), 0).Err()
}

func (s *RedisStore) Close() error { return s.rdb.Close() }
