package bot

import (
	"github.com/iamasit07/flexfour/internal/domain"
	"golang.org/x/sync/errgroup"
)

// OPPONENT_REPLY_FACTOR weighs the opponent's best answer against our own move
const OPPONENT_REPLY_FACTOR = 2.0

// ScoredMove is one candidate with its search scores
type ScoredMove struct {
	Position  domain.Position `json:"position"`
	Own       float64         `json:"own"`
	BestReply float64         `json:"best_reply"`
	Total     float64         `json:"total"`
}

// Scoring is the outcome of a one-ply search with opponent replies.
// When Winning is set, Moves is empty and WinningMove wins on the spot.
type Scoring struct {
	Winning     bool
	WinningMove ScoredMove
	Moves       []ScoredMove
}

// ScoreCandidates evaluates every drop cell for player. The first candidate
// (in column order) whose own flexibility reaches the win threshold ends the
// search. Otherwise each candidate gets Total = own - 2*best opponent reply.
// With parallel set, replies are scored concurrently on per-worker board copies;
// results keep candidate order.
func ScoreCandidates(board *domain.Board, player domain.PlayerID, parallel bool) (Scoring, error) {
	if err := domain.ValidatePlayer(player); err != nil {
		return Scoring{}, err
	}

	candidates := board.Candidates()
	moves := make([]ScoredMove, len(candidates))

	for i, pos := range candidates {
		own, err := Flexibility(board, pos, player)
		if err != nil {
			return Scoring{}, err
		}
		moves[i] = ScoredMove{Position: pos, Own: own}

		if IsWin(own) {
			// we can win right now, nothing else matters
			moves[i].Total = own
			return Scoring{Winning: true, WinningMove: moves[i]}, nil
		}
	}

	opponent := domain.Opponent(player)

	if !parallel {
		for i := range moves {
			if err := scoreReply(*board, &moves[i], player, opponent); err != nil {
				return Scoring{}, err
			}
		}
		return Scoring{Moves: moves}, nil
	}

	var g errgroup.Group
	for i := range moves {
		// each worker gets its own copy of the board
		scratch := *board
		move := &moves[i]
		g.Go(func() error {
			return scoreReply(scratch, move, player, opponent)
		})
	}
	if err := g.Wait(); err != nil {
		return Scoring{}, err
	}
	return Scoring{Moves: moves}, nil
}

// scoreReply plays move on the scratch board and fills in the opponent's best answer
func scoreReply(scratch domain.Board, move *ScoredMove, player, opponent domain.PlayerID) error {
	if err := scratch.Place(move.Position, player); err != nil {
		return err
	}

	best := 0.0
	for _, reply := range scratch.Candidates() {
		flex, err := Flexibility(&scratch, reply, opponent)
		if err != nil {
			return err
		}
		if flex > best {
			best = flex
		}
	}

	move.BestReply = best
	move.Total = move.Own - OPPONENT_REPLY_FACTOR*best
	return nil
}

// bestMove returns the first candidate with the highest total
func bestMove(moves []ScoredMove) ScoredMove {
	best := moves[0]
	for _, m := range moves[1:] {
		if m.Total > best.Total {
			best = m
		}
	}
	return best
}
