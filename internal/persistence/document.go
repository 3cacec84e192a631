package persistence

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/connectfour-backend/internal/apperror"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
)

// Document is the stored form of a game. History is never written; it is
// accepted on read only so legacy documents that carry it still decode.
type Document struct {
	Board         [][]entity.Cell `json:"board"`
	CurrentPlayer entity.Cell     `json:"currentPlayer"`
	GameOver      *bool           `json:"gameOver,omitempty"`
	Winner        *entity.Cell    `json:"winner"`
	History       json.RawMessage `json:"history,omitempty"`
}

// Encode serializes board, player, gameOver and winner. An unset winner is
// written as null.
func Encode(state *entity.GameState) ([]byte, error) {
	board := make([][]entity.Cell, entity.Rows)
	for row := range state.Board {
		board[row] = append([]entity.Cell(nil), state.Board[row][:]...)
	}

	gameOver := state.GameOver
	doc := Document{
		Board:         board,
		CurrentPlayer: state.CurrentPlayer,
		GameOver:      &gameOver,
	}

	if state.Winner.IsPlayer() {
		winner := state.Winner
		doc.Winner = &winner
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("could not marshal game: %w", err)
	}

	return data, nil
}

// Decode parses a stored document into a fresh state with empty history.
// Missing gameOver becomes false, missing or null winner becomes unset.
func Decode(data []byte) (*entity.GameState, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrPersistenceFormat, err)
	}

	state := entity.NewGameState()

	if len(doc.Board) != entity.Rows {
		return nil, fmt.Errorf("%w: board has %d rows", apperror.ErrPersistenceFormat, len(doc.Board))
	}

	for row, cells := range doc.Board {
		if len(cells) != entity.Cols {
			return nil, fmt.Errorf("%w: row %d has %d columns", apperror.ErrPersistenceFormat, row, len(cells))
		}

		for col, cell := range cells {
			if !cell.IsValid() {
				return nil, fmt.Errorf("%w: unknown cell %q at %d,%d", apperror.ErrPersistenceFormat, cell, row, col)
			}
			state.Board[row][col] = cell
		}
	}

	if !doc.CurrentPlayer.IsPlayer() {
		return nil, fmt.Errorf("%w: unknown player %q", apperror.ErrPersistenceFormat, doc.CurrentPlayer)
	}
	state.CurrentPlayer = doc.CurrentPlayer

	if doc.GameOver != nil {
		state.GameOver = *doc.GameOver
	}

	if doc.Winner != nil {
		switch {
		case doc.Winner.IsPlayer():
			state.Winner = *doc.Winner
		case *doc.Winner != entity.EmptyCell:
			return nil, fmt.Errorf("%w: unknown winner %q", apperror.ErrPersistenceFormat, *doc.Winner)
		}
	}

	// a winner implies the game is over, even if the flag was lost
	if state.Winner.IsPlayer() {
		state.GameOver = true
	}

	return state, nil
}
