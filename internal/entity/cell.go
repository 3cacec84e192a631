package entity

// Cell is the content of one board position.
type Cell string

const (
	EmptyCell  Cell = ""
	PlayerRed  Cell = "r"
	PlayerBlue Cell = "b"
)

// IsPlayer reports whether the cell holds one of the two player marks.
func (that Cell) IsPlayer() bool {
	return that == PlayerRed || that == PlayerBlue
}

// IsValid reports whether the cell is empty or a player mark.
func (that Cell) IsValid() bool {
	return that == EmptyCell || that.IsPlayer()
}

// Opponent returns the other player. EmptyCell has no opponent.
func (that Cell) Opponent() Cell {
	switch that {
	case PlayerRed:
		return PlayerBlue
	case PlayerBlue:
		return PlayerRed
	default:
		return EmptyCell
	}
}

// Name is the display name of a player mark.
func (that Cell) Name() string {
	switch that {
	case PlayerRed:
		return "Red"
	case PlayerBlue:
		return "Blue"
	default:
		return ""
	}
}
