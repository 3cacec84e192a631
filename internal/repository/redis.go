package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/connectfour-backend/internal/apperror"
)

const redisKeyPrefix = "data:"

type redisKeyValue struct {
	client *redis.Client
}

func NewRedisRepository(client *redis.Client) KeyValueRepository {
	return &redisKeyValue{
		client: client,
	}
}

func (that *redisKeyValue) Get(ctx context.Context, key string) ([]byte, error) {
	response, err := that.client.Get(ctx, redisKeyPrefix+key).Bytes()

	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", apperror.ErrKeyNotFound, key)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get key %s: %w", key, err)
	}

	return response, nil
}

func (that *redisKeyValue) Put(ctx context.Context, key string, value []byte) error {
	if err := that.client.Set(ctx, redisKeyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}

	return nil
}

func (that *redisKeyValue) Delete(ctx context.Context, key string) error {
	deleted, err := that.client.Del(ctx, redisKeyPrefix+key).Result()
	if err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}

	if deleted == 0 {
		return fmt.Errorf("%w: %s", apperror.ErrKeyNotFound, key)
	}

	return nil
}
