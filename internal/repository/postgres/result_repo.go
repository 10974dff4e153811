package postgres

import (
	"context"
	"fmt"

	"github.com/iamasit07/flexfour/internal/domain"
	"github.com/jmoiron/sqlx"
)

type ResultRepo struct {
	DB *sqlx.DB
}

func NewResultRepo(db *sqlx.DB) *ResultRepo {
	return &ResultRepo{DB: db}
}

// StrategyStats aggregates finished games played against one strategy
type StrategyStats struct {
	Strategy  string  `db:"strategy" json:"strategy"`
	Games     int     `db:"games" json:"games"`
	HumanWins int     `db:"human_wins" json:"human_wins"`
	BotWins   int     `db:"bot_wins" json:"bot_wins"`
	Draws     int     `db:"draws" json:"draws"`
	AvgMoves  float64 `db:"avg_moves" json:"avg_moves"`
}

// SaveResult stores the outcome of a finished game. Replaying the same game ID
// (a reset session that finishes again) overwrites the earlier outcome.
func (r *ResultRepo) SaveResult(ctx context.Context, result domain.GameResult) error {
	query := `
	INSERT INTO game_result (game_id, human_side, strategy, winner, reason, total_moves, created_at, finished_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (game_id) DO UPDATE SET
		winner = EXCLUDED.winner,
		reason = EXCLUDED.reason,
		total_moves = EXCLUDED.total_moves,
		created_at = EXCLUDED.created_at,
		finished_at = EXCLUDED.finished_at;
	`

	_, err := r.DB.ExecContext(ctx, query,
		result.GameID, int(result.HumanSide), result.Strategy, int(result.Winner),
		result.Reason, result.TotalMoves, result.CreatedAt, result.FinishedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert game result: %w", err)
	}
	return nil
}

// Stats returns win/draw tallies per strategy
func (r *ResultRepo) Stats(ctx context.Context) ([]StrategyStats, error) {
	query := `
	SELECT strategy,
		COUNT(*) AS games,
		COUNT(*) FILTER (WHERE winner = human_side) AS human_wins,
		COUNT(*) FILTER (WHERE winner <> 0 AND winner <> human_side) AS bot_wins,
		COUNT(*) FILTER (WHERE winner = 0) AS draws,
		COALESCE(AVG(total_moves), 0)::float8 AS avg_moves
	FROM game_result
	GROUP BY strategy
	ORDER BY strategy;
	`

	stats := []StrategyStats{}
	if err := r.DB.SelectContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("failed to load result stats: %w", err)
	}
	return stats, nil
}
