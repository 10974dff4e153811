package domain

import (
	"fmt"
	"strings"
)

// Board is indexed as board[column][row] with row 0 at the bottom.
// It is a value type: assigning it yields an independent copy.
type Board [Columns][Rows]PlayerID

func NewBoard() Board {
	return Board{}
}

func (b *Board) At(pos Position) PlayerID {
	return b[pos.Column][pos.Row]
}

// DropRow returns the lowest empty row of a column
func (b *Board) DropRow(column int) (int, error) {
	if column < 0 || column >= Columns {
		return -1, fmt.Errorf("%w: column %d", ErrInvalidPosition, column)
	}
	for row := 0; row < Rows; row++ {
		if b[column][row] == Empty {
			return row, nil
		}
	}
	return -1, fmt.Errorf("%w: column %d", ErrColumnFull, column)
}

// Candidates lists the drop cell of every non-full column, left to right.
func (b *Board) Candidates() []Position {
	candidates := make([]Position, 0, Columns)
	for col := 0; col < Columns; col++ {
		if row, err := b.DropRow(col); err == nil {
			candidates = append(candidates, Position{Column: col, Row: row})
		}
	}
	return candidates
}

// Place puts a piece on the drop cell pos. pos must be the lowest empty cell of its column.
func (b *Board) Place(pos Position, player PlayerID) error {
	if err := ValidatePlayer(player); err != nil {
		return err
	}
	if !pos.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidPosition, pos)
	}
	if b.At(pos) != Empty {
		return fmt.Errorf("%w: %s", ErrOccupiedCell, pos)
	}
	row, err := b.DropRow(pos.Column)
	if err != nil {
		return err
	}
	if row != pos.Row {
		return fmt.Errorf("%w: %s is not the drop cell of column %d", ErrInvalidPosition, pos, pos.Column)
	}
	b[pos.Column][pos.Row] = player
	return nil
}

// Drop lets a piece fall down a column and returns where it landed
func (b *Board) Drop(column int, player PlayerID) (Position, error) {
	if err := ValidatePlayer(player); err != nil {
		return Position{}, err
	}
	row, err := b.DropRow(column)
	if err != nil {
		return Position{}, err
	}
	pos := Position{Column: column, Row: row}
	b[column][row] = player
	return pos, nil
}

// Clear empties one cell; the session uses it to undo a move
func (b *Board) Clear(pos Position) {
	if pos.Valid() {
		b[pos.Column][pos.Row] = Empty
	}
}

func (b *Board) IsFull() bool {
	for c := 0; c < Columns; c++ {
		if b[c][Rows-1] == Empty {
			return false
		}
	}
	return true
}

func (b *Board) MoveCount() int {
	count := 0
	for c := 0; c < Columns; c++ {
		for r := 0; r < Rows; r++ {
			if b[c][r] != Empty {
				count++
			}
		}
	}
	return count
}

// Key encodes the board column by column, bottom to top, one digit per cell.
func (b *Board) Key() string {
	var sb strings.Builder
	sb.Grow(Columns * Rows)
	for c := 0; c < Columns; c++ {
		for r := 0; r < Rows; r++ {
			sb.WriteByte(byte('0' + b[c][r]))
		}
	}
	return sb.String()
}

// Grid returns the board as rows of ints with the top row first, the way it is drawn.
func (b *Board) Grid() [][]int {
	grid := make([][]int, Rows)
	for i := range grid {
		grid[i] = make([]int, Columns)
		row := Rows - 1 - i
		for c := 0; c < Columns; c++ {
			grid[i][c] = int(b[c][row])
		}
	}
	return grid
}

// BoardFromGrid is the inverse of Grid. Floating pieces are rejected.
func BoardFromGrid(grid [][]int) (Board, error) {
	var b Board
	if len(grid) != Rows {
		return b, fmt.Errorf("%w: expected %d rows, got %d", ErrInvalidBoard, Rows, len(grid))
	}
	for i, line := range grid {
		if len(line) != Columns {
			return b, fmt.Errorf("%w: row %d has %d columns", ErrInvalidBoard, i, len(line))
		}
		row := Rows - 1 - i
		for c, v := range line {
			p := PlayerID(v)
			if p != Empty && ValidatePlayer(p) != nil {
				return b, fmt.Errorf("%w: cell value %d", ErrInvalidBoard, v)
			}
			b[c][row] = p
		}
	}

	for c := 0; c < Columns; c++ {
		for r := 1; r < Rows; r++ {
			if b[c][r] != Empty && b[c][r-1] == Empty {
				return b, fmt.Errorf("%w: floating piece in column %d", ErrInvalidBoard, c)
			}
		}
	}
	return b, nil
}

// String draws the board for logs and the selfplay tool
func (b Board) String() string {
	var sb strings.Builder
	for r := Rows - 1; r >= 0; r-- {
		for c := 0; c < Columns; c++ {
			switch b[c][r] {
			case Player1:
				sb.WriteString("X ")
			case Player2:
				sb.WriteString("O ")
			default:
				sb.WriteString(". ")
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("1 2 3 4 5 6 7\n")
	return sb.String()
}
