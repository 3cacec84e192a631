package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/connectfour-backend/internal/apperror"
	"github.com/rocketscienceinc/connectfour-backend/internal/config"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
	"github.com/rocketscienceinc/connectfour-backend/internal/events"
	"github.com/rocketscienceinc/connectfour-backend/internal/persistence"
	"github.com/rocketscienceinc/connectfour-backend/internal/repository"
	"github.com/rocketscienceinc/connectfour-backend/internal/repository/storage"
	"github.com/rocketscienceinc/connectfour-backend/internal/usecase"
	"github.com/rocketscienceinc/connectfour-backend/transport/rest"
)

var (
	ErrAddrNotFound   = errors.New("redis address string is empty")
	ErrDSNNotFound    = errors.New("postgres dsn is empty")
	ErrUnknownBackend = errors.New("unknown store backend")
)

// RunApp - runs the key-value server together with the game session API.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	repo, closeRepo, err := NewRepository(ctx, conf)
	if err != nil {
		return err
	}
	defer closeRepo()

	if err = SeedInitialState(ctx, repo, conf.Persistence.DataKey); err != nil {
		return err
	}

	producer := events.NewProducer(logger, conf.Kafka.Brokers, conf.Kafka.Topic)
	defer func() {
		if err = producer.Close(); err != nil {
			log.Error("could not close event producer", "error", err)
		}
	}()

	adapter, err := persistence.New(conf.Persistence, repo)
	if err != nil {
		return fmt.Errorf("could not build persistence adapter: %w", err)
	}

	session := usecase.NewGameSession(logger, adapter, producer)
	server := rest.New(logger, conf.APIKeys, repo, session, conf.HTTP.StaticDir)

	log.Info("Starting HTTP server", "port", conf.HTTP.Port, "backend", conf.Store.Backend)
	if err = server.Start(ctx, conf.HTTP); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}

// NewRepository opens the configured store backend. The returned func
// releases its connections.
func NewRepository(ctx context.Context, conf *config.Config) (repository.KeyValueRepository, func(), error) {
	switch conf.Store.Backend {
	case config.BackendMemory, "":
		return repository.NewMemoryRepository(), func() {}, nil
	case config.BackendRedis:
		addr := conf.Redis.GetRedisAddr()
		if conf.Redis.Host == "" {
			return nil, nil, ErrAddrNotFound
		}

		client, err := storage.NewRedisStorage(ctx, addr)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return repository.NewRedisRepository(client), func() { _ = client.Close() }, nil
	case config.BackendPostgres:
		if conf.Postgres.DSN == "" {
			return nil, nil, ErrDSNNotFound
		}

		pool, err := storage.NewPostgresStorage(ctx, conf.Postgres.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to postgres storage: %w", err)
		}

		if err = storage.EnsureTables(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}

		return repository.NewPostgresRepository(pool), pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownBackend, conf.Store.Backend)
	}
}

// SeedInitialState stores a fresh game under key unless something is there.
func SeedInitialState(ctx context.Context, repo repository.KeyValueRepository, key string) error {
	_, err := repo.Get(ctx, key)
	switch {
	case err == nil:
		return nil
	case !errors.Is(err, apperror.ErrKeyNotFound):
		return fmt.Errorf("could not read %s: %w", key, err)
	}

	data, err := persistence.Encode(entity.NewGameState())
	if err != nil {
		return err
	}

	if err = repo.Put(ctx, key, data); err != nil {
		return fmt.Errorf("could not seed %s: %w", key, err)
	}

	return nil
}
