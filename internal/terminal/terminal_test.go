package terminal

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
	"github.com/rocketscienceinc/connectfour-backend/internal/persistence"
	"github.com/rocketscienceinc/connectfour-backend/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T) *usecase.GameSession {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	adapter := persistence.NewLocalAdapter(filepath.Join(t.TempDir(), "saves"), "c4state")

	return usecase.NewGameSession(logger, adapter, nil)
}

func TestRun(t *testing.T) {
	t.Run("Plays a vertical win and rejects further moves", func(t *testing.T) {
		// Given: a session and a script of moves
		session := newSession(t)
		in := strings.NewReader("0\n1\n0\n1\n0\n1\n0\n3\nq\n")
		var out bytes.Buffer

		// When: the loop runs
		err := Run(context.Background(), in, &out, session)

		// Then: red wins and the extra move is refused
		require.NoError(t, err)
		assert.Contains(t, out.String(), "Red wins!")
		assert.Contains(t, out.String(), "Winner: Red!")
		assert.Contains(t, out.String(), "The game is over.")
		assert.Equal(t, entity.StatusWon, session.State().Status())
	})

	t.Run("Undo, save, new game and load", func(t *testing.T) {
		// Given: a session with nothing saved
		session := newSession(t)
		in := strings.NewReader("u\nl\n2\n3\nu\ns\nn\nl\nd\nd\n")
		var out bytes.Buffer

		// When: the loop runs until EOF
		err := Run(context.Background(), in, &out, session)

		// Then: the messages follow each command
		require.NoError(t, err)
		text := out.String()
		assert.Contains(t, text, "No moves to undo!")
		assert.Contains(t, text, "No saved game found!")
		assert.Contains(t, text, "Move undone")
		assert.Contains(t, text, "Game saved")
		assert.Contains(t, text, "New game started")
		assert.Contains(t, text, "Game loaded")
		assert.Contains(t, text, "Saved game deleted")

		// Then: the loaded game has red's piece in column 2 and blue to move
		state := session.State()
		assert.Equal(t, entity.PlayerRed, state.Board[entity.Rows-1][2])
		assert.Equal(t, entity.EmptyCell, state.Board[entity.Rows-1][3])
		assert.Equal(t, entity.PlayerBlue, state.CurrentPlayer)
		assert.Empty(t, state.History)
	})

	t.Run("Reports bad input", func(t *testing.T) {
		session := newSession(t)
		in := strings.NewReader("x\n7\n0\n0\n0\n0\n0\n0\n0\nq\n")
		var out bytes.Buffer

		err := Run(context.Background(), in, &out, session)

		require.NoError(t, err)
		assert.Contains(t, out.String(), `Unknown command "x"`)
		assert.Contains(t, out.String(), "Pick a column between 0 and 6.")
		assert.Contains(t, out.String(), "Column is full!")
	})

	t.Run("Stops when the context is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := Run(ctx, strings.NewReader("0\n"), io.Discard, newSession(t))

		require.NoError(t, err)
	})
}
