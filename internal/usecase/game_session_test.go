package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/connectfour-backend/internal/apperror"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
	"github.com/rocketscienceinc/connectfour-backend/internal/events"
)

var errRedisDown = errors.New("redis down")

type mockStateStore struct {
	mock.Mock
}

func (that *mockStateStore) Save(ctx context.Context, state *entity.GameState) error {
	args := that.Called(ctx, state)
	return args.Error(0)
}

func (that *mockStateStore) Load(ctx context.Context) (*entity.GameState, error) {
	args := that.Called(ctx)
	state, _ := args.Get(0).(*entity.GameState)
	return state, args.Error(1)
}

func (that *mockStateStore) Delete(ctx context.Context) error {
	args := that.Called(ctx)
	return args.Error(0)
}

type mockPublisher struct {
	mock.Mock
}

func (that *mockPublisher) Publish(ctx context.Context, name string, payload map[string]any) {
	that.Called(ctx, name, payload)
}

func newSession(t *testing.T) (*GameSession, *mockStateStore, *mockPublisher) {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	store := &mockStateStore{}
	publisher := &mockPublisher{}
	publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return().Maybe()

	t.Cleanup(func() {
		store.AssertExpectations(t)
	})

	return NewGameSession(logger, store, publisher), store, publisher
}

func TestGameSession_MakeMove(t *testing.T) {
	ctx := context.Background()

	t.Run("Accepted move returns the updated state", func(t *testing.T) {
		// Given: a fresh session
		session, _, publisher := newSession(t)

		// When: red drops into column 4
		result, state, err := session.MakeMove(ctx, 4)

		// Then: the move is reflected and a move event is published
		require.NoError(t, err)
		assert.True(t, result.Continues())
		assert.Equal(t, entity.PlayerRed, state.Board[entity.Rows-1][4])
		assert.Equal(t, entity.PlayerBlue, state.CurrentPlayer)
		publisher.AssertCalled(t, "Publish", mock.Anything, events.GameMove, mock.Anything)
		publisher.AssertNotCalled(t, "Publish", mock.Anything, events.GameFinished, mock.Anything)
	})

	t.Run("Returned state is a copy", func(t *testing.T) {
		// Given: a session after one move
		session, _, _ := newSession(t)
		_, state, err := session.MakeMove(ctx, 0)
		require.NoError(t, err)

		// When: the caller mutates the returned state
		state.Board[0][0] = entity.PlayerBlue
		state.History = nil

		// Then: the session is unaffected
		current := session.State()
		assert.Equal(t, entity.EmptyCell, current.Board[0][0])
		assert.Len(t, current.History, 1)
	})

	t.Run("Winning move publishes a finished event", func(t *testing.T) {
		// Given: a fresh session
		session, _, publisher := newSession(t)

		// When: red stacks four in column 0
		var err error
		for _, column := range []int{0, 1, 0, 1, 0, 1} {
			_, _, err = session.MakeMove(ctx, column)
			require.NoError(t, err)
		}
		result, state, err := session.MakeMove(ctx, 0)

		// Then: red wins
		require.NoError(t, err)
		assert.True(t, result.IsWin())
		assert.Equal(t, entity.StatusWon, state.Status())
		publisher.AssertCalled(t, "Publish", mock.Anything, events.GameFinished, map[string]any{
			"outcome": result.Outcome,
			"winner":  entity.PlayerRed,
			"moves":   7,
		})

		// When: another move is attempted
		_, _, err = session.MakeMove(ctx, 3)

		// Then: it is rejected with ErrGameAlreadyOver
		require.ErrorIs(t, err, apperror.ErrGameAlreadyOver)
	})

	t.Run("Rejected move returns the unchanged state", func(t *testing.T) {
		// Given: a fresh session
		session, _, _ := newSession(t)

		// When: an invalid column is requested
		_, state, err := session.MakeMove(ctx, 9)

		// Then: ErrInvalidColumn and an untouched state
		require.ErrorIs(t, err, apperror.ErrInvalidColumn)
		assert.Equal(t, entity.NewGameState(), state)
	})
}

func TestGameSession_Undo(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns ErrNoHistory on a fresh game", func(t *testing.T) {
		session, _, _ := newSession(t)

		state, err := session.Undo(ctx)

		require.ErrorIs(t, err, apperror.ErrNoHistory)
		assert.Equal(t, entity.NewGameState(), state)
	})

	t.Run("Reverts the last move", func(t *testing.T) {
		// Given: a session with two moves
		session, _, _ := newSession(t)
		_, _, err := session.MakeMove(ctx, 2)
		require.NoError(t, err)
		_, _, err = session.MakeMove(ctx, 3)
		require.NoError(t, err)

		// When: one move is undone
		state, err := session.Undo(ctx)

		// Then: blue's piece is gone and blue is to move again
		require.NoError(t, err)
		assert.Equal(t, entity.EmptyCell, state.Board[entity.Rows-1][3])
		assert.Equal(t, entity.PlayerBlue, state.CurrentPlayer)
		assert.Len(t, state.History, 1)
	})
}

func TestGameSession_NewGame(t *testing.T) {
	// Given: a session with moves
	ctx := context.Background()
	session, _, publisher := newSession(t)
	_, _, err := session.MakeMove(ctx, 2)
	require.NoError(t, err)

	// When: a new game is started
	state := session.NewGame(ctx)

	// Then: the state is reset
	assert.Equal(t, entity.NewGameState(), state)
	assert.Equal(t, entity.NewGameState(), session.State())
	publisher.AssertCalled(t, "Publish", mock.Anything, events.GameNew, mock.Anything)
}

func TestGameSession_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("Saves the current state", func(t *testing.T) {
		// Given: a session with one move
		session, store, _ := newSession(t)
		_, expected, err := session.MakeMove(ctx, 5)
		require.NoError(t, err)

		store.On("Save", ctx, expected).Return(nil).Once()

		// When: the game is saved
		err = session.Save(ctx)

		// Then: the store receives the state
		require.NoError(t, err)
	})

	t.Run("Returns the store error", func(t *testing.T) {
		session, store, _ := newSession(t)

		store.On("Save", ctx, mock.AnythingOfType("*entity.GameState")).
			Return(fmt.Errorf("%w: %w", apperror.ErrPersistenceUnavailable, errRedisDown)).
			Once()

		err := session.Save(ctx)

		require.ErrorIs(t, err, apperror.ErrPersistenceUnavailable)
	})
}

func TestGameSession_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("Replaces the state with the loaded one", func(t *testing.T) {
		// Given: a session with history and a saved finished game
		session, store, _ := newSession(t)
		_, _, err := session.MakeMove(ctx, 1)
		require.NoError(t, err)

		saved := entity.NewGameState()
		saved.Board[entity.Rows-1][6] = entity.PlayerBlue
		saved.GameOver = true
		saved.Winner = entity.PlayerBlue

		store.On("Load", ctx).Return(saved, nil).Once()

		// When: the game is loaded
		state, err := session.Load(ctx)

		// Then: the saved state is active with empty history
		require.NoError(t, err)
		assert.Equal(t, saved, state)
		assert.Empty(t, session.State().History)

		// Then: undo has nothing to revert
		_, err = session.Undo(ctx)
		require.ErrorIs(t, err, apperror.ErrNoHistory)
	})

	t.Run("Keeps the current state when nothing was saved", func(t *testing.T) {
		// Given: a session with one move
		session, store, _ := newSession(t)
		_, before, err := session.MakeMove(ctx, 1)
		require.NoError(t, err)

		store.On("Load", ctx).Return(nil, apperror.ErrKeyNotFound).Once()

		// When: loading fails
		state, err := session.Load(ctx)

		// Then: ErrKeyNotFound and the previous state
		require.ErrorIs(t, err, apperror.ErrKeyNotFound)
		assert.Equal(t, before, state)
		assert.Equal(t, before, session.State())
	})

	t.Run("Keeps the current state on a corrupt document", func(t *testing.T) {
		session, store, _ := newSession(t)

		store.On("Load", ctx).Return(nil, apperror.ErrPersistenceFormat).Once()

		state, err := session.Load(ctx)

		require.ErrorIs(t, err, apperror.ErrPersistenceFormat)
		assert.Equal(t, entity.NewGameState(), state)
	})
}

func TestGameSession_DeleteSaved(t *testing.T) {
	ctx := context.Background()
	session, store, _ := newSession(t)

	store.On("Delete", ctx).Return(nil).Once()
	require.NoError(t, session.DeleteSaved(ctx))

	store.On("Delete", ctx).Return(apperror.ErrKeyNotFound).Once()
	require.ErrorIs(t, session.DeleteSaved(ctx), apperror.ErrKeyNotFound)
}
