package persistence

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rocketscienceinc/connectfour-backend/internal/config"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
	"github.com/rocketscienceinc/connectfour-backend/internal/repository"
)

var (
	ErrUnknownMode  = errors.New("unknown persistence mode")
	ErrNoRepository = errors.New("store mode requires a repository")
	ErrEmptyDataKey = errors.New("data key is empty")
)

// Adapter saves and loads a game under one fixed key. Load returns
// apperror.ErrKeyNotFound when nothing was saved, apperror.ErrPersistenceFormat
// for a corrupt document and apperror.ErrPersistenceUnavailable when the
// medium cannot be reached.
type Adapter interface {
	Save(ctx context.Context, state *entity.GameState) error
	Load(ctx context.Context) (*entity.GameState, error)
	Delete(ctx context.Context) error
}

// New builds the adapter selected by conf.Mode. repo is only used in store mode.
func New(conf config.Persistence, repo repository.KeyValueRepository) (Adapter, error) {
	if conf.DataKey == "" {
		return nil, ErrEmptyDataKey
	}

	switch conf.Mode {
	case config.ModeRemote:
		client := &http.Client{Timeout: conf.Timeout}
		return NewRemoteAdapter(client, conf.APIURL, conf.APIKey, conf.DataKey), nil
	case config.ModeLocal:
		return NewLocalAdapter(conf.LocalDir, conf.DataKey), nil
	case config.ModeStore:
		if repo == nil {
			return nil, ErrNoRepository
		}
		return NewStoreAdapter(repo, conf.DataKey), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, conf.Mode)
	}
}
