package render

import (
	"errors"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/connectfour-backend/internal/apperror"
	"github.com/rocketscienceinc/connectfour-backend/internal/connectfour"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
)

var symbols = map[entity.Cell]string{
	entity.EmptyCell:  ".",
	entity.PlayerRed:  "R",
	entity.PlayerBlue: "B",
}

// Board draws the grid top row first, followed by the column indices.
func Board(board *entity.Board) string {
	var sb strings.Builder

	for row := range board {
		for col, cell := range board[row] {
			if col > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(symbols[cell])
		}
		sb.WriteByte('\n')
	}

	for col := 0; col < entity.Cols; col++ {
		if col > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.Itoa(col))
	}
	sb.WriteByte('\n')

	return sb.String()
}

func Status(state *entity.GameState) string {
	switch state.Status() {
	case entity.StatusWon:
		return "Winner: " + state.Winner.Name() + "!"
	case entity.StatusDraw:
		return "Draw!"
	default:
		return "Next move: " + state.CurrentPlayer.Name()
	}
}

// Game is the full view: board, then status line.
func Game(state *entity.GameState) string {
	return Board(&state.Board) + Status(state) + "\n"
}

func Outcome(result connectfour.MoveResult) string {
	switch result.Outcome {
	case connectfour.OutcomeWin:
		return result.Winner.Name() + " wins!"
	case connectfour.OutcomeDraw:
		return "Draw! The board is full."
	default:
		return ""
	}
}

// Message turns an error into a line for the player.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, apperror.ErrColumnFull):
		return "Column is full!"
	case errors.Is(err, apperror.ErrInvalidColumn):
		return "Pick a column between 0 and " + strconv.Itoa(entity.Cols-1) + "."
	case errors.Is(err, apperror.ErrGameAlreadyOver):
		return "The game is over. Start a new game to play again."
	case errors.Is(err, apperror.ErrNoHistory):
		return "No moves to undo!"
	case errors.Is(err, apperror.ErrKeyNotFound):
		return "No saved game found!"
	case errors.Is(err, apperror.ErrPersistenceFormat):
		return "The saved game is damaged."
	case errors.Is(err, apperror.ErrUnauthorized):
		return "Storage rejected the api key."
	case errors.Is(err, apperror.ErrPersistenceUnavailable):
		return "Storage is unavailable, try again later."
	default:
		return "Something went wrong."
	}
}
