package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "cardlink:collection:"

// RedisStore keeps each collection as one JSON document, so a save is a
// single SET and never leaves a partial collection behind.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func redisKey(c Collection) string {
	return redisKeyPrefix + string(c)
}

func (s *RedisStore) LoadAll(ctx context.Context, c Collection, dest any) error {
	if err := checkCollection(c); err != nil {
		return err
	}

	data, err := s.client.Get(ctx, redisKey(c)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading %s: %w", c, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("decoding %s: %w", c, err)
	}
	return nil
}

func (s *RedisStore) SaveAll(ctx context.Context, c Collection, records any) error {
	if err := checkCollection(c); err != nil {
		return err
	}
	if _, err := sliceLen(records); err != nil {
		return err
	}

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", c, err)
	}

	if err := s.client.Set(ctx, redisKey(c), data, 0).Err(); err != nil {
		return fmt.Errorf("saving %s: %w", c, err)
	}
	return nil
}
