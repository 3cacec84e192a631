package render

import (
	"fmt"
	"testing"

	"github.com/rocketscienceinc/connectfour-backend/internal/apperror"
	"github.com/rocketscienceinc/connectfour-backend/internal/connectfour"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
	"github.com/stretchr/testify/assert"
)

func TestBoard(t *testing.T) {
	// Given: a board with two pieces in the bottom row
	var board entity.Board
	board[entity.Rows-1][0] = entity.PlayerRed
	board[entity.Rows-1][6] = entity.PlayerBlue

	// When: it is rendered
	out := Board(&board)

	// Then: rows are drawn top first with a column footer
	expected := "" +
		". . . . . . .\n" +
		". . . . . . .\n" +
		". . . . . . .\n" +
		". . . . . . .\n" +
		". . . . . . .\n" +
		"R . . . . . B\n" +
		"0 1 2 3 4 5 6\n"
	assert.Equal(t, expected, out)
}

func TestStatus(t *testing.T) {
	t.Run("In progress names the next player", func(t *testing.T) {
		state := entity.NewGameState()
		assert.Equal(t, "Next move: Red", Status(state))

		state.CurrentPlayer = entity.PlayerBlue
		assert.Equal(t, "Next move: Blue", Status(state))
	})

	t.Run("Won names the winner", func(t *testing.T) {
		state := &entity.GameState{GameOver: true, Winner: entity.PlayerBlue}
		assert.Equal(t, "Winner: Blue!", Status(state))
	})

	t.Run("Draw", func(t *testing.T) {
		state := &entity.GameState{GameOver: true}
		assert.Equal(t, "Draw!", Status(state))
	})
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "Red wins!", Outcome(connectfour.MoveResult{Outcome: connectfour.OutcomeWin, Winner: entity.PlayerRed}))
	assert.Equal(t, "Draw! The board is full.", Outcome(connectfour.MoveResult{Outcome: connectfour.OutcomeDraw}))
	assert.Empty(t, Outcome(connectfour.MoveResult{Outcome: connectfour.OutcomeContinue}))
}

func TestMessage(t *testing.T) {
	assert.Empty(t, Message(nil))
	assert.Equal(t, "Column is full!", Message(fmt.Errorf("invalid move: %w", apperror.ErrColumnFull)))
	assert.Equal(t, "Pick a column between 0 and 6.", Message(apperror.ErrInvalidColumn))
	assert.Equal(t, "No moves to undo!", Message(apperror.ErrNoHistory))
	assert.Equal(t, "No saved game found!", Message(apperror.ErrKeyNotFound))
	assert.Equal(t, "Storage rejected the api key.",
		Message(fmt.Errorf("%w: %w", apperror.ErrPersistenceUnavailable, apperror.ErrUnauthorized)))
	assert.Equal(t, "Storage is unavailable, try again later.", Message(apperror.ErrPersistenceUnavailable))
	assert.Equal(t, "Something went wrong.", Message(fmt.Errorf("boom")))
}
