package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/iamasit07/flexfour/internal/config"
	"github.com/iamasit07/flexfour/internal/service/game"
	"github.com/iamasit07/flexfour/pkg/auth"
)

// Handler serves live play over a WebSocket
type Handler struct {
	ConnManager    *ConnectionManager
	SessionManager *game.SessionManager
	Upgrader       websocket.Upgrader
}

func NewHandler(cm *ConnectionManager, sm *game.SessionManager) *Handler {
	return &Handler{
		ConnManager:    cm,
		SessionManager: sm,
		Upgrader: websocket.Upgrader{
			CheckOrigin:     checkOrigin,
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

func checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || config.AppConfig == nil {
		return true
	}
	for _, allowed := range config.AppConfig.AllowedOrigins {
		if allowed == origin {
			return true
		}
	}
	log.Printf("[WS] Rejected origin %s", origin)
	return false
}

// HandleWebSocket authenticates game_id and token from the query string
// before upgrading the connection.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	gameID := c.Query("game_id")
	claims, err := auth.ValidateGameToken(c.Query("token"))
	if err != nil || claims.GameID != gameID {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	session, ok := h.SessionManager.GetSession(gameID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	conn, err := h.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}

	h.handleConnection(conn, session)
}

// handleConnection manages the lifecycle of a single WebSocket connection
func (h *Handler) handleConnection(conn *websocket.Conn, session *game.GameSession) {
	gameID := session.GameID
	done := make(chan struct{})

	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	h.ConnManager.AddConnection(gameID, conn)
	log.Printf("[WS] Connection opened for game %s", gameID)

	defer func() {
		close(done)
		log.Printf("[WS] Connection closed for game %s", gameID)
		h.ConnManager.RemoveConnectionIfMatching(gameID, conn)
	}()

	// Keep-alive pinger
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(10*time.Second)); err != nil {
					return
				}
			}
		}
	}()

	snap := session.Snapshot()
	h.ConnManager.SendMessage(gameID, ServerMessage{Type: "state", State: &snap})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WS] Game %s disconnected unexpectedly: %v", gameID, err)
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("[WS] Invalid message format: %v", err)
			h.ConnManager.SendMessage(gameID, ServerMessage{Type: "error", Message: "invalid message"})
			continue
		}

		h.ConnManager.SendMessage(gameID, processMessage(session, msg))
	}
}

func processMessage(session *game.GameSession, msg ClientMessage) ServerMessage {
	switch msg.Type {
	case "move":
		if msg.Column == nil {
			return ServerMessage{Type: "error", Message: "column is required"}
		}
		turn, err := session.PlayHuman(*msg.Column)
		if err != nil {
			return ServerMessage{Type: "error", Message: err.Error()}
		}
		return ServerMessage{Type: "state", State: &turn.Snapshot, Turn: &turn}
	case "undo":
		snap, err := session.Undo()
		if err != nil {
			return ServerMessage{Type: "error", Message: err.Error()}
		}
		return ServerMessage{Type: "state", State: &snap}
	case "reset":
		snap, err := session.Reset()
		if err != nil {
			return ServerMessage{Type: "error", Message: err.Error()}
		}
		return ServerMessage{Type: "state", State: &snap}
	default:
		return ServerMessage{Type: "error", Message: "unknown message type: " + msg.Type}
	}
}
