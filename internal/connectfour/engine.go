package connectfour

import (
	"fmt"

	"github.com/rocketscienceinc/connectfour-backend/internal/apperror"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
)

type Outcome string

const (
	OutcomeContinue Outcome = "continue"
	OutcomeWin      Outcome = "win"
	OutcomeDraw     Outcome = "draw"
)

// directions are the forward-only probes: right, down, down-right, down-left.
var directions = [4][2]int{
	{0, 1},
	{1, 0},
	{1, 1},
	{1, -1},
}

// MoveResult describes an accepted move.
type MoveResult struct {
	Row     int         `json:"row"`
	Column  int         `json:"column"`
	Player  entity.Cell `json:"player"`
	Outcome Outcome     `json:"outcome"`
	Winner  entity.Cell `json:"winner,omitempty"`
}

func (that MoveResult) IsWin() bool {
	return that.Outcome == OutcomeWin
}

func (that MoveResult) IsDraw() bool {
	return that.Outcome == OutcomeDraw
}

func (that MoveResult) Continues() bool {
	return that.Outcome == OutcomeContinue
}

// MakeMove drops the current player's piece into column. A rejected move
// returns an error and leaves state untouched.
func MakeMove(state *entity.GameState, column int) (MoveResult, error) {
	if err := validateMove(state, column); err != nil {
		return MoveResult{}, fmt.Errorf("invalid move: %w", err)
	}

	row := LowestEmptyRow(&state.Board, column)
	if row < 0 {
		return MoveResult{}, fmt.Errorf("invalid move: %w: column %d", apperror.ErrColumnFull, column)
	}

	state.History = append(state.History, state.Snapshot())

	player := state.CurrentPlayer
	state.Board[row][column] = player

	return updateGameStatus(state, row, column, player), nil
}

// validateMove - checks if the move is acceptable before touching the board.
func validateMove(state *entity.GameState, column int) error {
	if column < 0 || column >= entity.Cols {
		return fmt.Errorf("%w: %d", apperror.ErrInvalidColumn, column)
	}

	if state.GameOver {
		return apperror.ErrGameAlreadyOver
	}

	return nil
}

// updateGameStatus - evaluates terminal conditions after a placement.
func updateGameStatus(state *entity.GameState, row, column int, player entity.Cell) MoveResult {
	result := MoveResult{Row: row, Column: column, Player: player}

	switch {
	case CheckWinner(player, &state.Board):
		state.GameOver = true
		state.Winner = player
		result.Outcome = OutcomeWin
		result.Winner = player
	case IsBoardFull(&state.Board):
		state.GameOver = true
		result.Outcome = OutcomeDraw
	default:
		state.CurrentPlayer = player.Opponent()
		result.Outcome = OutcomeContinue
	}

	return result
}

// CheckWinner reports whether player owns WinLength consecutive cells in a
// row, column or diagonal.
func CheckWinner(player entity.Cell, board *entity.Board) bool {
	if !player.IsPlayer() {
		return false
	}

	for row := 0; row < entity.Rows; row++ {
		for col := 0; col < entity.Cols; col++ {
			if board[row][col] != player {
				continue
			}

			for _, dir := range directions {
				if hasRun(board, player, row, col, dir[0], dir[1]) {
					return true
				}
			}
		}
	}

	return false
}

func hasRun(board *entity.Board, player entity.Cell, row, col, dRow, dCol int) bool {
	for i := 0; i < entity.WinLength; i++ {
		r, c := row+i*dRow, col+i*dCol
		if !entity.InBounds(r, c) || board[r][c] != player {
			return false
		}
	}
	return true
}

// Undo restores the state before the most recent move. It returns false when
// there is nothing to undo.
func Undo(state *entity.GameState) bool {
	if len(state.History) == 0 {
		return false
	}

	last := len(state.History) - 1
	state.Restore(state.History[last])
	state.History = state.History[:last]

	return true
}

func IsBoardFull(board *entity.Board) bool {
	for row := range board {
		for col := range board[row] {
			if board[row][col] == entity.EmptyCell {
				return false
			}
		}
	}
	return true
}

// LowestEmptyRow returns the bottom-most empty row of column, or -1 if the
// column is full or out of range.
func LowestEmptyRow(board *entity.Board, column int) int {
	if column < 0 || column >= entity.Cols {
		return -1
	}

	for row := entity.Rows - 1; row >= 0; row-- {
		if board[row][column] == entity.EmptyCell {
			return row
		}
	}
	return -1
}
