package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rocketscienceinc/connectfour-backend/internal/config"
	"github.com/rocketscienceinc/connectfour-backend/internal/events"
	"github.com/rocketscienceinc/connectfour-backend/internal/persistence"
	"github.com/rocketscienceinc/connectfour-backend/internal/terminal"
	"github.com/rocketscienceinc/connectfour-backend/internal/usecase"
)

// main - runs the terminal client. Saves go to the key-value server in remote
// mode, otherwise to a file in persistence.local-dir.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	conf := initConfig()
	logger := initLogger(conf)

	if err := run(logger, conf); err != nil {
		panic(fmt.Errorf("client run failed: %w", err))
	}
}

func run(logger *slog.Logger, conf *config.Config) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// the client has no store of its own
	if conf.Persistence.Mode == config.ModeStore {
		conf.Persistence.Mode = config.ModeLocal
	}

	adapter, err := persistence.New(conf.Persistence, nil)
	if err != nil {
		return fmt.Errorf("could not build persistence adapter: %w", err)
	}

	producer := events.NewProducer(logger, conf.Kafka.Brokers, conf.Kafka.Topic)
	defer func() {
		if err = producer.Close(); err != nil {
			logger.Error("could not close event producer", "error", err)
		}
	}()

	session := usecase.NewGameSession(logger, adapter, producer)

	logger.Debug("terminal client started", "mode", conf.Persistence.Mode)

	return terminal.Run(ctx, os.Stdin, os.Stdout, session)
}

// initialize config.
func initConfig() *config.Config {
	baseDir, err := os.Getwd()
	if err != nil {
		panic(fmt.Errorf("failed to get current directory: %w", err))
	}

	return config.MustLoad(filepath.Join(baseDir, "./config.yml"))
}

// initialize logger. Logs go to stderr so they do not mix with the board.
func initLogger(conf *config.Config) *slog.Logger {
	level := slog.LevelWarn
	if conf.LogLevel == "debug" {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
