package bot

import "github.com/iamasit07/flexfour/internal/domain"

// Direction selects one of the four lines through a cell
type Direction int

const (
	Vertical Direction = iota
	Horizontal
	DiagUp
	DiagDown
)

var Directions = [4]Direction{Vertical, Horizontal, DiagUp, DiagDown}

func (d Direction) String() string {
	switch d {
	case Vertical:
		return "vertical"
	case Horizontal:
		return "horizontal"
	case DiagUp:
		return "diag-up"
	case DiagDown:
		return "diag-down"
	}
	return "unknown"
}

type scanRule struct {
	dCol, dRow int
	maxSteps   int
	bothWays   bool
}

// Vertical runs are only scanned toward the stack below the cell: everything
// above a drop cell is empty, so the upper half could never match.
// The step limits are fixed to the 7x6 board.
var scanRules = [4]scanRule{
	Vertical:   {dCol: 0, dRow: -1, maxSteps: 3, bothWays: false},
	Horizontal: {dCol: 1, dRow: 0, maxSteps: 6, bothWays: true},
	DiagUp:     {dCol: 1, dRow: 1, maxSteps: 5, bothWays: true},
	DiagDown:   {dCol: 1, dRow: -1, maxSteps: 5, bothWays: true},
}

// CountRun counts player pieces next to pos along one direction. The cell at
// pos itself is never inspected.
func CountRun(board *domain.Board, pos domain.Position, player domain.PlayerID, dir Direction) int {
	rule := scanRules[dir]
	count := scan(board, pos, player, rule.dCol, rule.dRow, rule.maxSteps)
	if rule.bothWays {
		// a blocked forward side does not cancel what the backward side finds
		count += scan(board, pos, player, -rule.dCol, -rule.dRow, rule.maxSteps)
	}
	return count
}

func scan(board *domain.Board, pos domain.Position, player domain.PlayerID, dCol, dRow, maxSteps int) int {
	count := 0
	for step := 1; step <= maxSteps; step++ {
		cell := domain.Position{Column: pos.Column + dCol*step, Row: pos.Row + dRow*step}
		if !cell.Valid() || board.At(cell) != player {
			break
		}
		count++
	}
	return count
}
