package bot

import (
	"fmt"

	"github.com/iamasit07/flexfour/internal/domain"
)

// Flexibility scores placing player's piece on the empty cell pos. It sums the
// run score of all four lines through pos and weights the sum by position.
// board is never modified.
func Flexibility(board *domain.Board, pos domain.Position, player domain.PlayerID) (float64, error) {
	if err := domain.ValidatePlayer(player); err != nil {
		return 0, err
	}
	if !pos.Valid() {
		return 0, fmt.Errorf("%w: %s", domain.ErrInvalidPosition, pos)
	}
	if board.At(pos) != domain.Empty {
		return 0, fmt.Errorf("%w: %s", domain.ErrOccupiedCell, pos)
	}

	flex := 0.0
	for _, dir := range Directions {
		flex += RunScore(CountRun(board, pos, player, dir))
	}
	return Weight(flex, pos), nil
}

// IsWin reports whether a flexibility stands for four in a row
func IsWin(flex float64) bool {
	return flex >= WinThreshold
}
