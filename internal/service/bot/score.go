package bot

import "github.com/iamasit07/flexfour/internal/domain"

const (
	SCORE_NO_RUN    = 2
	SCORE_ONE_RUN   = 8
	SCORE_TWO_RUN   = 32
	SCORE_THREE_RUN = 1000 // one move from four: near-certain win

	// WinThreshold marks a flexibility that stands for a completed four
	WinThreshold = 600.0
)

// RunScore maps a run length to its flexibility contribution
func RunScore(count int) float64 {
	switch {
	case count < 1:
		return SCORE_NO_RUN
	case count == 1:
		return SCORE_ONE_RUN
	case count == 2:
		return SCORE_TWO_RUN
	default:
		return SCORE_THREE_RUN
	}
}

// Weight scales a score by how central the cell is
func Weight(score float64, pos domain.Position) float64 {
	return score * columnMultiplier(pos.Column) * rowMultiplier(pos.Row)
}

func columnMultiplier(column int) float64 {
	switch column {
	case 3:
		return 4
	case 2, 4:
		return 2
	case 1, 5:
		return 1
	default:
		return 0.5
	}
}

func rowMultiplier(row int) float64 {
	switch row {
	case 2:
		return 3
	case 1, 3:
		return 1.5
	case 0:
		return 1
	default:
		return 0.5
	}
}
