package domain

import "fmt"

type PlayerID int

const (
	Empty   PlayerID = 0
	Player1 PlayerID = 1
	Player2 PlayerID = 2
)

const (
	Rows    = 6
	Columns = 7
	ToWin   = 4
)

// ValidatePlayer rejects anything that is not one of the two players
func ValidatePlayer(p PlayerID) error {
	if p != Player1 && p != Player2 {
		return fmt.Errorf("%w: %d", ErrInvalidPlayer, p)
	}
	return nil
}

// Opponent returns the other player. Callers validate p first.
func Opponent(p PlayerID) PlayerID {
	if p == Player1 {
		return Player2
	}
	return Player1
}

// Position identifies one cell. Column 0 is leftmost, row 0 is the bottom row.
type Position struct {
	Column int `json:"column"`
	Row    int `json:"row"`
}

func (p Position) Valid() bool {
	return p.Column >= 0 && p.Column < Columns && p.Row >= 0 && p.Row < Rows
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Column, p.Row)
}

// to represent the game status
type GameStatus string

const (
	StatusActive GameStatus = "active"
	StatusWon    GameStatus = "won"
	StatusDraw   GameStatus = "draw"
)

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidPosition Error = "invalid position"
	ErrColumnFull      Error = "column is full"
	ErrOccupiedCell    Error = "cell is occupied"
	ErrInvalidPlayer   Error = "invalid player"
	ErrInvalidBoard    Error = "invalid board"
	ErrInvalidMove     Error = "invalid move"
	ErrGameOver        Error = "game is over"
	ErrNothingToUndo   Error = "nothing to undo"
)
