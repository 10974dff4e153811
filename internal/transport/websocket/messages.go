package websocket

import "github.com/iamasit07/flexfour/internal/service/game"

// ClientMessage is sent by the browser: "move" (with column), "undo" or "reset"
type ClientMessage struct {
	Type   string `json:"type"`
	Column *int   `json:"column,omitempty"`
}

// ServerMessage answers every client message with either "state" or "error"
type ServerMessage struct {
	Type    string           `json:"type"`
	State   *game.Snapshot   `json:"state,omitempty"`
	Turn    *game.TurnResult `json:"turn,omitempty"`
	Message string           `json:"message,omitempty"`
}
