package domain

// line directions as (column step, row step)
var winDirections = [4][2]int{
	{1, 0},  // horizontal
	{0, 1},  // vertical
	{1, 1},  // diagonal /
	{1, -1}, // diagonal \
}

// CheckWin reports whether player owns four in a row through pos.
// Only lines passing through pos are checked.
func CheckWin(board *Board, pos Position, player PlayerID) bool {
	if !pos.Valid() || board.At(pos) != player {
		return false
	}

	for _, dir := range winDirections {
		count := 1 + countDirection(board, pos, dir[0], dir[1], player) +
			countDirection(board, pos, -dir[0], -dir[1], player)
		if count >= ToWin {
			return true
		}
	}
	return false
}

// this counts the number of disks in a specific direction
func countDirection(board *Board, pos Position, dCol, dRow int, player PlayerID) int {
	count := 0
	c, r := pos.Column+dCol, pos.Row+dRow
	for c >= 0 && c < Columns && r >= 0 && r < Rows && board[c][r] == player {
		count++
		c += dCol
		r += dRow
	}
	return count
}
