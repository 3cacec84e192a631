package entity

// Status is the derived lifecycle state of a game.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusDraw       Status = "draw"
)

// Snapshot is a value copy of everything undo restores.
type Snapshot struct {
	Board         Board
	CurrentPlayer Cell
	GameOver      bool
	Winner        Cell
}

// GameState is a single game session. Winner is EmptyCell while unset,
// which includes a draw.
type GameState struct {
	Board         Board
	CurrentPlayer Cell
	GameOver      bool
	Winner        Cell
	History       []Snapshot
}

// NewGameState returns an empty board with red to move.
func NewGameState() *GameState {
	return &GameState{
		Board:         Board{},
		CurrentPlayer: PlayerRed,
		GameOver:      false,
		Winner:        EmptyCell,
		History:       []Snapshot{},
	}
}

func (that *GameState) Snapshot() Snapshot {
	return Snapshot{
		Board:         that.Board,
		CurrentPlayer: that.CurrentPlayer,
		GameOver:      that.GameOver,
		Winner:        that.Winner,
	}
}

// Restore overwrites the scalar fields and board with the snapshot. History is
// left alone.
func (that *GameState) Restore(snapshot Snapshot) {
	that.Board = snapshot.Board
	that.CurrentPlayer = snapshot.CurrentPlayer
	that.GameOver = snapshot.GameOver
	that.Winner = snapshot.Winner
}

// Clone returns a fully independent copy, history included.
func (that *GameState) Clone() *GameState {
	history := make([]Snapshot, len(that.History))
	copy(history, that.History)

	return &GameState{
		Board:         that.Board,
		CurrentPlayer: that.CurrentPlayer,
		GameOver:      that.GameOver,
		Winner:        that.Winner,
		History:       history,
	}
}

func (that *GameState) Status() Status {
	switch {
	case !that.GameOver:
		return StatusInProgress
	case that.Winner.IsPlayer():
		return StatusWon
	default:
		return StatusDraw
	}
}

func (that *GameState) IsFinished() bool {
	return that.GameOver
}

func (that *GameState) CanUndo() bool {
	return len(that.History) > 0
}
