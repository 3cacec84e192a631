package entity

const (
	Rows      = 6
	Cols      = 7
	WinLength = 4
)

// Board is a Rows x Cols grid, row 0 on top. It is an array, so assigning a
// Board copies every cell.
type Board [Rows][Cols]Cell

// InBounds reports whether (row, col) lies on the board.
func InBounds(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Cols
}

// PieceCount returns the number of non-empty cells.
func (that *Board) PieceCount() int {
	count := 0
	for row := range that {
		for col := range that[row] {
			if that[row][col] != EmptyCell {
				count++
			}
		}
	}
	return count
}
