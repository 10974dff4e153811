package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/iamasit07/flexfour/internal/domain"
	"github.com/iamasit07/flexfour/internal/service/bot"
)

func main() {
	first := flag.String("p1", bot.StrategyDeterministic, "strategy for player 1")
	second := flag.String("p2", bot.StrategyProbabilistic, "strategy for player 2")
	games := flag.Int("games", 10, "number of games to play")
	seed := flag.Int64("seed", 1, "seed for probabilistic strategies")
	parallel := flag.Bool("parallel", false, "score opponent replies in parallel")
	verbose := flag.Bool("v", false, "print the final board of every game")
	flag.Parse()

	if *games <= 0 {
		fmt.Fprintln(os.Stderr, "games must be positive")
		os.Exit(2)
	}

	players := map[domain.PlayerID]bot.Strategy{
		domain.Player1: bot.NewStrategy(*first, *parallel, *seed),
		domain.Player2: bot.NewStrategy(*second, *parallel, *seed+1),
	}

	var tally [3]int
	totalMoves := 0
	for i := 0; i < *games; i++ {
		board, winner, err := playGame(players)
		if err != nil {
			log.Fatalf("game %d failed: %v", i+1, err)
		}
		tally[winner]++
		totalMoves += board.MoveCount()

		if *verbose {
			fmt.Printf("game %d: winner %d after %d moves\n%s\n", i+1, winner, board.MoveCount(), board)
		}
	}

	fmt.Printf("%s (P1) vs %s (P2) over %d games\n", players[domain.Player1].Name(), players[domain.Player2].Name(), *games)
	fmt.Printf("  P1 wins: %d\n  P2 wins: %d\n  draws:   %d\n", tally[domain.Player1], tally[domain.Player2], tally[domain.Empty])
	fmt.Printf("  average length: %.1f moves\n", float64(totalMoves)/float64(*games))
}

// playGame runs one game to completion and returns the final board and the
// winner, Empty for a draw.
func playGame(players map[domain.PlayerID]bot.Strategy) (domain.Board, domain.PlayerID, error) {
	board := domain.NewBoard()
	current := domain.Player1

	for {
		pos, found, err := bot.ChooseMove(board, current, players[current])
		if err != nil {
			return board, domain.Empty, err
		}
		if !found {
			return board, domain.Empty, nil
		}
		if err := board.Place(pos, current); err != nil {
			return board, domain.Empty, err
		}
		if domain.CheckWin(&board, pos, current) {
			return board, current, nil
		}
		if board.IsFull() {
			return board, domain.Empty, nil
		}
		current = domain.Opponent(current)
	}
}
