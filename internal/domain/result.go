package domain

import "time"

// GameResult summarizes a finished game. Individual moves are not kept.
type GameResult struct {
	GameID     string    `json:"game_id" db:"game_id"`
	HumanSide  PlayerID  `json:"human_side" db:"human_side"`
	Strategy   string    `json:"strategy" db:"strategy"`
	Winner     PlayerID  `json:"winner" db:"winner"`
	Reason     string    `json:"reason" db:"reason"`
	TotalMoves int       `json:"total_moves" db:"total_moves"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	FinishedAt time.Time `json:"finished_at" db:"finished_at"`
}

// HumanWon reports whether the human side won this game
func (r GameResult) HumanWon() bool {
	return r.Winner != Empty && r.Winner == r.HumanSide
}

const (
	ReasonConnectFour = "connect_four"
	ReasonDraw        = "draw"
)
