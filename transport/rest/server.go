package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rocketscienceinc/connectfour-backend/internal/config"
	"github.com/rocketscienceinc/connectfour-backend/internal/repository"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	logger *slog.Logger
	router *gin.Engine
}

// New builds the router. session may be nil, then the game endpoints are not
// mounted.
func New(logger *slog.Logger, apiKeys []string, repo repository.KeyValueRepository, session gameSession, staticDir string) *Server {
	gin.SetMode(gin.ReleaseMode)

	log := logger.With("component", "rest")

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log))

	router.GET("/ping", pingHandler)

	gate := apiKeyMiddleware(apiKeys)

	data := newDataHandler(log, repo)
	api := router.Group("/api", gate)
	api.GET("/data/:key", data.get)
	api.PUT("/data/:key", data.put)
	api.DELETE("/data/:key", data.delete)

	if session != nil {
		game := newGameHandler(log, session)
		api.GET("/game", game.state)
		api.POST("/game/new", game.newGame)
		api.POST("/game/move", game.move)
		api.POST("/game/undo", game.undo)
		api.POST("/game/save", game.save)
		api.POST("/game/load", game.load)
		api.DELETE("/game/save", game.deleteSaved)
	}

	if staticDir != "" {
		router.NoRoute(gin.WrapH(http.FileServer(http.Dir(staticDir))))
	}

	return &Server{
		logger: log,
		router: router,
	}
}

func (that *Server) Handler() http.Handler {
	return that.router
}

// Start serves until ctx is done, then shuts down gracefully.
func (that *Server) Start(ctx context.Context, conf config.HTTP) error {
	srv := &http.Server{
		Addr:         ":" + conf.Port,
		Handler:      that.router,
		ReadTimeout:  conf.ReadTimeout,
		WriteTimeout: conf.WriteTimeout,
		IdleTimeout:  conf.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	that.logger.Info("HTTP server stopped")

	return nil
}

func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		ctx.Next()

		log.Debug("request",
			"method", ctx.Request.Method,
			"path", ctx.FullPath(),
			"status", ctx.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
