package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/connectfour-backend/internal/apperror"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
	"github.com/rocketscienceinc/connectfour-backend/internal/repository"
)

// StoreAdapter reads and writes the key-value repository in process.
type StoreAdapter struct {
	repo repository.KeyValueRepository
	key  string
}

func NewStoreAdapter(repo repository.KeyValueRepository, key string) *StoreAdapter {
	return &StoreAdapter{
		repo: repo,
		key:  key,
	}
}

func (that *StoreAdapter) Save(ctx context.Context, state *entity.GameState) error {
	data, err := Encode(state)
	if err != nil {
		return err
	}

	if err = that.repo.Put(ctx, that.key, data); err != nil {
		return storeError(err)
	}

	return nil
}

func (that *StoreAdapter) Load(ctx context.Context) (*entity.GameState, error) {
	data, err := that.repo.Get(ctx, that.key)
	if err != nil {
		return nil, storeError(err)
	}

	return Decode(data)
}

func (that *StoreAdapter) Delete(ctx context.Context) error {
	if err := that.repo.Delete(ctx, that.key); err != nil {
		return storeError(err)
	}

	return nil
}

func storeError(err error) error {
	if errors.Is(err, apperror.ErrKeyNotFound) {
		return err
	}
	return fmt.Errorf("%w: %w", apperror.ErrPersistenceUnavailable, err)
}
