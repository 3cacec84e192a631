package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/rocketscienceinc/connectfour-backend/internal/apperror"
)

type memoryKeyValue struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryRepository() KeyValueRepository {
	return &memoryKeyValue{
		data: make(map[string][]byte),
	}
}

func (that *memoryKeyValue) Get(_ context.Context, key string) ([]byte, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	value, ok := that.data[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrKeyNotFound, key)
	}

	return clone(value), nil
}

func (that *memoryKeyValue) Put(_ context.Context, key string, value []byte) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.data[key] = clone(value)

	return nil
}

func (that *memoryKeyValue) Delete(_ context.Context, key string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.data[key]; !ok {
		return fmt.Errorf("%w: %s", apperror.ErrKeyNotFound, key)
	}

	delete(that.data, key)

	return nil
}

func clone(value []byte) []byte {
	out := make([]byte, len(value))
	copy(out, value)
	return out
}
