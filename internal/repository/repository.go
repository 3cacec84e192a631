package repository

import (
	"context"
)

// KeyValueRepository stores opaque JSON documents under string keys.
// Get and Delete return apperror.ErrKeyNotFound for a missing key.
type KeyValueRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
