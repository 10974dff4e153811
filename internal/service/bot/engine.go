package bot

import (
	"math"
	"math/rand"
	"sync"

	"github.com/iamasit07/flexfour/internal/domain"
)

const (
	StrategyDeterministic = "deterministic"
	StrategyProbabilistic = "probabilistic"
)

// Strategy picks the bot's move. found is false only when the board is full.
type Strategy interface {
	Name() string
	ChooseMove(board domain.Board, player domain.PlayerID) (pos domain.Position, found bool, err error)
}

// NewStrategy resolves a strategy by name. Unknown names get the deterministic one.
func NewStrategy(name string, parallel bool, seed int64) Strategy {
	switch name {
	case StrategyProbabilistic:
		return NewProbabilistic(parallel, seed)
	default:
		return &Deterministic{Parallel: parallel}
	}
}

// Evaluate scores placing player at the empty cell pos. The shell uses it to
// spot a win before committing a human move.
func Evaluate(board domain.Board, pos domain.Position, player domain.PlayerID) (float64, error) {
	return Flexibility(&board, pos, player)
}

// ChooseMove runs one decision with the given strategy, deterministic when nil
func ChooseMove(board domain.Board, player domain.PlayerID, strategy Strategy) (domain.Position, bool, error) {
	if strategy == nil {
		strategy = &Deterministic{}
	}
	return strategy.ChooseMove(board, player)
}

// Deterministic plays the first candidate with the best total
type Deterministic struct {
	Parallel bool
}

func (d *Deterministic) Name() string {
	return StrategyDeterministic
}

func (d *Deterministic) ChooseMove(board domain.Board, player domain.PlayerID) (domain.Position, bool, error) {
	scoring, err := ScoreCandidates(&board, player, d.Parallel)
	if err != nil {
		return domain.Position{}, false, err
	}
	if scoring.Winning {
		return scoring.WinningMove.Position, true, nil
	}
	if len(scoring.Moves) == 0 {
		return domain.Position{}, false, nil
	}
	return bestMove(scoring.Moves).Position, true, nil
}

// Probabilistic samples a move from a distribution skewed toward good totals.
// It is never used unless asked for by name.
type Probabilistic struct {
	Parallel bool

	mu  sync.Mutex
	rng *rand.Rand
}

func NewProbabilistic(parallel bool, seed int64) *Probabilistic {
	return &Probabilistic{
		Parallel: parallel,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

func (p *Probabilistic) Name() string {
	return StrategyProbabilistic
}

func (p *Probabilistic) ChooseMove(board domain.Board, player domain.PlayerID) (domain.Position, bool, error) {
	scoring, err := ScoreCandidates(&board, player, p.Parallel)
	if err != nil {
		return domain.Position{}, false, err
	}
	if scoring.Winning {
		return scoring.WinningMove.Position, true, nil
	}
	if len(scoring.Moves) == 0 {
		return domain.Position{}, false, nil
	}

	moves, weights := MoveWeights(scoring.Moves)

	p.mu.Lock()
	r := p.rng.Float64()
	p.mu.Unlock()

	return moves[sampleIndex(weights, r)].Position, true, nil
}

// MoveWeights turns totals into sampling weights. When no total is positive
// every move is weighted by |1/total|^3, so the least bad move dominates; a
// total of zero takes all the weight. Otherwise only positive moves are kept,
// weighted by total^2.
func MoveWeights(moves []ScoredMove) ([]ScoredMove, []float64) {
	anyPositive := false
	for _, m := range moves {
		if m.Total > 0 {
			anyPositive = true
			break
		}
	}

	if anyPositive {
		kept := make([]ScoredMove, 0, len(moves))
		weights := make([]float64, 0, len(moves))
		for _, m := range moves {
			if m.Total > 0 {
				kept = append(kept, m)
				weights = append(weights, roundTo(m.Total*m.Total, 2))
			}
		}
		return kept, weights
	}

	weights := make([]float64, len(moves))
	var zeros []int
	for i, m := range moves {
		total := roundTo(m.Total, 1)
		if total == 0 {
			zeros = append(zeros, i)
			continue
		}
		weights[i] = math.Abs(roundTo(math.Pow(1/total, 3), 12))
	}

	if len(zeros) > 0 {
		for i := range weights {
			weights[i] = 0
		}
		for _, i := range zeros {
			weights[i] = 1
		}
	}
	return moves, weights
}

// sampleIndex picks an index with probability proportional to its weight,
// r being uniform in [0,1). All-zero weights fall back to a uniform pick.
func sampleIndex(weights []float64, r float64) int {
	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	if sum <= 0 {
		return int(r * float64(len(weights)))
	}

	target := r * sum
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if target < cumulative {
			return i
		}
	}
	return len(weights) - 1
}

func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
