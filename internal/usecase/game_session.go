package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/connectfour-backend/internal/apperror"
	"github.com/rocketscienceinc/connectfour-backend/internal/connectfour"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
	"github.com/rocketscienceinc/connectfour-backend/internal/events"
)

type stateStore interface {
	Save(ctx context.Context, state *entity.GameState) error
	Load(ctx context.Context) (*entity.GameState, error)
	Delete(ctx context.Context) error
}

type eventPublisher interface {
	Publish(ctx context.Context, name string, payload map[string]any)
}

// GameSession owns the single game of a session. Every method returns a
// clone of the state, so callers always redraw from an authoritative copy.
type GameSession struct {
	logger *slog.Logger

	mu    sync.Mutex
	state *entity.GameState

	store  stateStore
	events eventPublisher
}

func NewGameSession(logger *slog.Logger, store stateStore, events eventPublisher) *GameSession {
	return &GameSession{
		logger: logger.With("component", "game_session"),
		state:  entity.NewGameState(),
		store:  store,
		events: events,
	}
}

func (that *GameSession) State() *entity.GameState {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.state.Clone()
}

func (that *GameSession) NewGame(ctx context.Context) *entity.GameState {
	that.mu.Lock()
	that.state = entity.NewGameState()
	state := that.state.Clone()
	that.mu.Unlock()

	that.logger.Info("new game started")
	that.publish(ctx, events.GameNew, map[string]any{"currentPlayer": state.CurrentPlayer})

	return state
}

func (that *GameSession) MakeMove(ctx context.Context, column int) (connectfour.MoveResult, *entity.GameState, error) {
	log := that.logger.With("method", "MakeMove", "column", column)

	that.mu.Lock()
	result, err := connectfour.MakeMove(that.state, column)
	state := that.state.Clone()
	that.mu.Unlock()

	if err != nil {
		log.Debug("move rejected", "error", err)
		return connectfour.MoveResult{}, state, fmt.Errorf("failed make move: %w", err)
	}

	log.Debug("move accepted", "row", result.Row, "player", result.Player, "outcome", result.Outcome)
	that.publish(ctx, events.GameMove, map[string]any{
		"row":     result.Row,
		"column":  result.Column,
		"player":  result.Player,
		"outcome": result.Outcome,
	})

	if !result.Continues() {
		log.Info("game finished", "outcome", result.Outcome, "winner", result.Winner)
		that.publish(ctx, events.GameFinished, map[string]any{
			"outcome": result.Outcome,
			"winner":  result.Winner,
			"moves":   len(state.History),
		})
	}

	return result, state, nil
}

func (that *GameSession) Undo(ctx context.Context) (*entity.GameState, error) {
	that.mu.Lock()
	ok := connectfour.Undo(that.state)
	state := that.state.Clone()
	that.mu.Unlock()

	if !ok {
		return state, apperror.ErrNoHistory
	}

	that.logger.Debug("move undone", "history", len(state.History))
	that.publish(ctx, events.GameUndo, map[string]any{"history": len(state.History)})

	return state, nil
}

// Save persists the current state. History is not part of the document.
func (that *GameSession) Save(ctx context.Context) error {
	log := that.logger.With("method", "Save")

	state := that.State()

	if err := that.store.Save(ctx, state); err != nil {
		log.Error("could not save game", "error", err)
		return fmt.Errorf("failed to save game: %w", err)
	}

	log.Info("game saved")
	that.publish(ctx, events.GameSaved, map[string]any{"status": state.Status()})

	return nil
}

// Load replaces the session state with the saved one. On failure the current
// state is kept.
func (that *GameSession) Load(ctx context.Context) (*entity.GameState, error) {
	log := that.logger.With("method", "Load")

	loaded, err := that.store.Load(ctx)
	if err != nil {
		if errors.Is(err, apperror.ErrKeyNotFound) {
			log.Info("no saved game found")
		} else {
			log.Error("could not load game", "error", err)
		}
		return that.State(), fmt.Errorf("failed to load game: %w", err)
	}

	that.mu.Lock()
	that.state = loaded
	state := that.state.Clone()
	that.mu.Unlock()

	log.Info("game loaded", "status", state.Status())
	that.publish(ctx, events.GameLoaded, map[string]any{"status": state.Status()})

	return state, nil
}

// DeleteSaved removes the saved document. The session state is not touched.
func (that *GameSession) DeleteSaved(ctx context.Context) error {
	if err := that.store.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete saved game: %w", err)
	}

	that.logger.Info("saved game deleted")

	return nil
}

func (that *GameSession) publish(ctx context.Context, name string, payload map[string]any) {
	if that.events == nil {
		return
	}
	that.events.Publish(ctx, name, payload)
}
