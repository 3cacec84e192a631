package persistence

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rocketscienceinc/connectfour-backend/internal/apperror"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
)

// LocalAdapter keeps the document in {dir}/{key}.json on the local disk.
type LocalAdapter struct {
	dir string
	key string
}

func NewLocalAdapter(dir, key string) *LocalAdapter {
	return &LocalAdapter{
		dir: dir,
		key: key,
	}
}

func (that *LocalAdapter) path() string {
	return filepath.Join(that.dir, that.key+".json")
}

func (that *LocalAdapter) Save(_ context.Context, state *entity.GameState) error {
	data, err := Encode(state)
	if err != nil {
		return err
	}

	if err = os.MkdirAll(that.dir, 0o755); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrPersistenceUnavailable, err)
	}

	tmp, err := os.CreateTemp(that.dir, that.key+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrPersistenceUnavailable, err)
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: %w", apperror.ErrPersistenceUnavailable, err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrPersistenceUnavailable, err)
	}

	if err = os.Rename(tmp.Name(), that.path()); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrPersistenceUnavailable, err)
	}

	return nil
}

func (that *LocalAdapter) Load(_ context.Context) (*entity.GameState, error) {
	data, err := os.ReadFile(that.path())
	if errors.Is(err, os.ErrNotExist) {
		return nil, apperror.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrPersistenceUnavailable, err)
	}

	return Decode(data)
}

func (that *LocalAdapter) Delete(_ context.Context) error {
	err := os.Remove(that.path())
	if errors.Is(err, os.ErrNotExist) {
		return apperror.ErrKeyNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrPersistenceUnavailable, err)
	}

	return nil
}
