package game

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/iamasit07/flexfour/internal/domain"
	"github.com/iamasit07/flexfour/internal/service/bot"
)

// ResultRecorder stores the outcome of finished games
type ResultRecorder interface {
	SaveResult(ctx context.Context, result domain.GameResult) error
}

// EventEmitter publishes game lifecycle events
type EventEmitter interface {
	Emit(event string, payload map[string]any)
}

// MoveInfo describes one committed move
type MoveInfo struct {
	Player   domain.PlayerID `json:"player"`
	Position domain.Position `json:"position"`
	Score    float64         `json:"score"`
	Win      bool            `json:"win"`
}

// Snapshot is a read-only copy of a session for transport
type Snapshot struct {
	GameID        string            `json:"game_id"`
	Board         [][]int           `json:"board"`
	CurrentPlayer domain.PlayerID   `json:"current_player"`
	HumanSide     domain.PlayerID   `json:"human_side"`
	BotSide       domain.PlayerID   `json:"bot_side"`
	Status        domain.GameStatus `json:"status"`
	Winner        domain.PlayerID   `json:"winner"`
	Reason        string            `json:"reason,omitempty"`
	Strategy      string            `json:"strategy"`
	MoveCount     int               `json:"move_count"`
	CanUndo       bool              `json:"can_undo"`
}

// TurnResult is what one human turn produced
type TurnResult struct {
	Human    MoveInfo  `json:"human"`
	Bot      *MoveInfo `json:"bot,omitempty"`
	Snapshot Snapshot  `json:"state"`
}

// GameSession is one human-vs-bot game. All state that used to be global
// (board, whose turn, last moves) lives here.
type GameSession struct {
	GameID        string
	HumanSide     domain.PlayerID
	BotSide       domain.PlayerID
	Board         domain.Board
	CurrentPlayer domain.PlayerID
	Status        domain.GameStatus
	Winner        domain.PlayerID
	Reason        string
	Strategy      bot.Strategy
	CreatedAt     time.Time
	UpdatedAt     time.Time
	FinishedAt    time.Time

	// single undo step: the last human move and the bot reply after it
	lastHuman *domain.Position
	lastBot   *domain.Position

	mu       sync.Mutex
	recorder ResultRecorder
	emitter  EventEmitter
}

func NewGameSession(humanSide domain.PlayerID, strategy bot.Strategy, recorder ResultRecorder, emitter EventEmitter) (*GameSession, error) {
	if err := domain.ValidatePlayer(humanSide); err != nil {
		return nil, err
	}
	if strategy == nil {
		strategy = &bot.Deterministic{}
	}

	now := time.Now()
	gs := &GameSession{
		GameID:    uuid.NewString(),
		HumanSide: humanSide,
		BotSide:   domain.Opponent(humanSide),
		Strategy:  strategy,
		CreatedAt: now,
		recorder:  recorder,
		emitter:   emitter,
	}

	gs.mu.Lock()
	defer gs.mu.Unlock()

	if err := gs.startLocked(); err != nil {
		return nil, err
	}
	return gs, nil
}

// startLocked clears the board and lets the bot open when it plays first
func (gs *GameSession) startLocked() error {
	gs.Board = domain.NewBoard()
	gs.CurrentPlayer = domain.Player1
	gs.Status = domain.StatusActive
	gs.Winner = domain.Empty
	gs.Reason = ""
	gs.lastHuman = nil
	gs.lastBot = nil
	gs.FinishedAt = time.Time{}
	gs.UpdatedAt = time.Now()

	gs.emit("game.start", map[string]any{
		"gameId":    gs.GameID,
		"humanSide": int(gs.HumanSide),
		"strategy":  gs.Strategy.Name(),
	})

	if gs.BotSide == domain.Player1 {
		if _, err := gs.playBotLocked(); err != nil {
			return err
		}
	}
	return nil
}

// PlayHuman drops the human's piece in column and, if the game goes on, lets
// the bot answer.
func (gs *GameSession) PlayHuman(column int) (TurnResult, error) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if gs.Status != domain.StatusActive {
		return TurnResult{}, domain.ErrGameOver
	}
	if gs.CurrentPlayer != gs.HumanSide {
		return TurnResult{}, fmt.Errorf("%w: not your turn", domain.ErrInvalidMove)
	}

	row, err := gs.Board.DropRow(column)
	if err != nil {
		return TurnResult{}, err
	}
	pos := domain.Position{Column: column, Row: row}

	human, err := gs.commitLocked(pos, gs.HumanSide)
	if err != nil {
		return TurnResult{}, err
	}
	gs.lastHuman = &pos
	gs.lastBot = nil

	result := TurnResult{Human: human}
	if gs.Status == domain.StatusActive {
		botMove, err := gs.playBotLocked()
		if err != nil {
			return TurnResult{}, err
		}
		result.Bot = botMove
	}

	result.Snapshot = gs.snapshotLocked()
	return result, nil
}

// playBotLocked asks the strategy for a move and commits it
func (gs *GameSession) playBotLocked() (*MoveInfo, error) {
	pos, found, err := gs.Strategy.ChooseMove(gs.Board, gs.BotSide)
	if err != nil {
		return nil, fmt.Errorf("bot move failed: %w", err)
	}
	if !found {
		// only a full board leaves the bot without a move
		gs.finishLocked(domain.Empty, domain.ReasonDraw)
		return nil, nil
	}

	info, err := gs.commitLocked(pos, gs.BotSide)
	if err != nil {
		return nil, err
	}
	if gs.lastHuman != nil {
		gs.lastBot = &pos
	}

	log.Printf("[BOT] Game %s: %s strategy played column %d (score %.1f)",
		gs.GameID, gs.Strategy.Name(), pos.Column, info.Score)
	return &info, nil
}

// commitLocked scores the move on the board as it was, places the piece and settles the status
func (gs *GameSession) commitLocked(pos domain.Position, player domain.PlayerID) (MoveInfo, error) {
	score, err := bot.Evaluate(gs.Board, pos, player)
	if err != nil {
		return MoveInfo{}, err
	}
	if err := gs.Board.Place(pos, player); err != nil {
		return MoveInfo{}, err
	}
	gs.UpdatedAt = time.Now()

	info := MoveInfo{Player: player, Position: pos, Score: score}

	if domain.CheckWin(&gs.Board, pos, player) {
		info.Win = true
		gs.finishLocked(player, domain.ReasonConnectFour)
		return info, nil
	}
	if gs.Board.IsFull() {
		gs.finishLocked(domain.Empty, domain.ReasonDraw)
		return info, nil
	}

	gs.CurrentPlayer = domain.Opponent(player)
	return info, nil
}

func (gs *GameSession) finishLocked(winner domain.PlayerID, reason string) {
	gs.Winner = winner
	gs.Reason = reason
	if winner == domain.Empty {
		gs.Status = domain.StatusDraw
	} else {
		gs.Status = domain.StatusWon
	}
	gs.FinishedAt = time.Now()

	result := domain.GameResult{
		GameID:     gs.GameID,
		HumanSide:  gs.HumanSide,
		Strategy:   gs.Strategy.Name(),
		Winner:     winner,
		Reason:     reason,
		TotalMoves: gs.Board.MoveCount(),
		CreatedAt:  gs.CreatedAt,
		FinishedAt: gs.FinishedAt,
	}

	log.Printf("[SESSION] Game %s finished: winner=%d reason=%s moves=%d",
		gs.GameID, winner, reason, result.TotalMoves)

	gs.emit("game.end", map[string]any{
		"gameId":   gs.GameID,
		"winner":   int(winner),
		"humanWon": result.HumanWon(),
		"reason":   reason,
		"moves":    result.TotalMoves,
		"strategy": result.Strategy,
	})
	gs.saveResultAsync(result)
}

func (gs *GameSession) saveResultAsync(result domain.GameResult) {
	if gs.recorder == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := gs.recorder.SaveResult(ctx, result); err != nil {
			log.Printf("[GAME] Error saving result of game %s: %v", result.GameID, err)
		} else {
			log.Printf("[GAME] Result of game %s saved successfully", result.GameID)
		}
	}()
}

func (gs *GameSession) emit(event string, payload map[string]any) {
	if gs.emitter != nil {
		gs.emitter.Emit(event, payload)
	}
}

// Undo takes back the last human move together with the bot reply that
// followed it. Only one step is remembered.
func (gs *GameSession) Undo() (Snapshot, error) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if gs.Status != domain.StatusActive {
		return Snapshot{}, domain.ErrGameOver
	}
	if gs.lastHuman == nil {
		return Snapshot{}, domain.ErrNothingToUndo
	}

	if gs.lastBot != nil {
		gs.Board.Clear(*gs.lastBot)
	}
	gs.Board.Clear(*gs.lastHuman)
	gs.lastHuman = nil
	gs.lastBot = nil
	gs.CurrentPlayer = gs.HumanSide
	gs.UpdatedAt = time.Now()

	log.Printf("[SESSION] Game %s: last move undone", gs.GameID)
	return gs.snapshotLocked(), nil
}

// Reset starts a fresh game in the same session with the same sides
func (gs *GameSession) Reset() (Snapshot, error) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	log.Printf("[SESSION] Game %s reset", gs.GameID)
	if err := gs.startLocked(); err != nil {
		return Snapshot{}, err
	}
	return gs.snapshotLocked(), nil
}

func (gs *GameSession) Snapshot() Snapshot {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.snapshotLocked()
}

func (gs *GameSession) snapshotLocked() Snapshot {
	return Snapshot{
		GameID:        gs.GameID,
		Board:         gs.Board.Grid(),
		CurrentPlayer: gs.CurrentPlayer,
		HumanSide:     gs.HumanSide,
		BotSide:       gs.BotSide,
		Status:        gs.Status,
		Winner:        gs.Winner,
		Reason:        gs.Reason,
		Strategy:      gs.Strategy.Name(),
		MoveCount:     gs.Board.MoveCount(),
		CanUndo:       gs.Status == domain.StatusActive && gs.lastHuman != nil,
	}
}

// IsFinished reports whether the game has ended
func (gs *GameSession) IsFinished() bool {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.Status != domain.StatusActive
}

func (gs *GameSession) lastActivity() time.Time {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.UpdatedAt
}
