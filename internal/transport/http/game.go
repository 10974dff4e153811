package http

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/flexfour/internal/domain"
	"github.com/iamasit07/flexfour/internal/repository/postgres"
	"github.com/iamasit07/flexfour/internal/service/bot"
	"github.com/iamasit07/flexfour/internal/service/game"
	"github.com/iamasit07/flexfour/internal/transport/http/middleware"
	"github.com/iamasit07/flexfour/pkg/auth"
)

// StatsSource reports finished-game tallies
type StatsSource interface {
	Stats(ctx context.Context) ([]postgres.StrategyStats, error)
}

type GameHandler struct {
	SessionManager *game.SessionManager
	Strategies     game.StrategyFactory
	Stats          StatsSource
}

func NewGameHandler(sm *game.SessionManager, strategies game.StrategyFactory, stats StatsSource) *GameHandler {
	return &GameHandler{SessionManager: sm, Strategies: strategies, Stats: stats}
}

type createGameRequest struct {
	HumanSide domain.PlayerID `json:"human_side"`
	Strategy  string          `json:"strategy"`
}

type moveRequest struct {
	Column *int `json:"column"`
}

type evaluateRequest struct {
	Board  [][]int         `json:"board"`
	Column int             `json:"column"`
	Row    int             `json:"row"`
	Player domain.PlayerID `json:"player"`
}

type chooseMoveRequest struct {
	Board    [][]int         `json:"board"`
	Player   domain.PlayerID `json:"player"`
	Strategy string          `json:"strategy"`
}

// CreateGame starts a session and hands out the token that guards it
func (h *GameHandler) CreateGame(c *gin.Context) {
	var req createGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if req.HumanSide == domain.Empty {
		req.HumanSide = domain.Player1
	}

	session, err := h.SessionManager.CreateSession(req.HumanSide, req.Strategy)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := auth.GenerateGameToken(session.GameID, session.HumanSide)
	if err != nil {
		log.Printf("[HTTP] Failed to sign token for game %s: %v", session.GameID, err)
		h.SessionManager.RemoveSession(session.GameID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"state": session.Snapshot(),
	})
}

func (h *GameHandler) GetGame(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, session.Snapshot())
}

func (h *GameHandler) PlayMove(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Column == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "column is required"})
		return
	}

	result, err := session.PlayHuman(*req.Column)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *GameHandler) Undo(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	snap, err := session.Undo()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (h *GameHandler) Reset(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	snap, err := session.Reset()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// Evaluate scores a single cell without touching any session
func (h *GameHandler) Evaluate(c *gin.Context) {
	var req evaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	board, err := domain.BoardFromGrid(req.Board)
	if err != nil {
		respondError(c, err)
		return
	}

	score, err := bot.Evaluate(board, domain.Position{Column: req.Column, Row: req.Row}, req.Player)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"score": score, "win": bot.IsWin(score)})
}

// ChooseMove runs a strategy on a posted board
func (h *GameHandler) ChooseMove(c *gin.Context) {
	var req chooseMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	board, err := domain.BoardFromGrid(req.Board)
	if err != nil {
		respondError(c, err)
		return
	}

	pos, found, err := bot.ChooseMove(board, req.Player, h.Strategies(req.Strategy))
	if err != nil {
		respondError(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusOK, gin.H{"found": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"found": true, "column": pos.Column, "row": pos.Row})
}

func (h *GameHandler) GetStats(c *gin.Context) {
	if h.Stats == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Result storage is not configured"})
		return
	}

	stats, err := h.Stats.Stats(c.Request.Context())
	if err != nil {
		log.Printf("[HTTP] Failed to load stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"active_sessions": h.SessionManager.Count(),
		"strategies":      stats,
	})
}

func (h *GameHandler) session(c *gin.Context) (*game.GameSession, bool) {
	gameID := c.Param("id")
	session, ok := h.SessionManager.GetSession(gameID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return nil, false
	}
	if claimed := c.GetString(middleware.GameIDKey); claimed != gameID {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token does not belong to this game"})
		return nil, false
	}
	return session, true
}
