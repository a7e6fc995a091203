package network

import (
	"encoding/json"

	"github.com/baweed/shashki/game/core"
)

// Message is the websocket envelope in both directions.
type Message struct {
	Type    string      `json:"type"`
	Content interface{} `json:"content,omitempty"`
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Content json.RawMessage `json:"content,omitempty"`
}

// CellRequest names a board cell. Pointers let 0 pass the required check.
type CellRequest struct {
	Row *int `json:"row" binding:"required"`
	Col *int `json:"col" binding:"required"`
}

type Command struct {
	Type string
	Row  int
	Col  int
}

const (
	CmdSelect = "select"
	CmdMove   = "move"
	CmdClick  = "click"
	CmdReset  = "reset"
)

// GameState is what clients render: the engine snapshot plus localized text
// and the effect of the last command.
type GameState struct {
	ID string `json:"id"`
	core.Snapshot
	Banner   string      `json:"banner,omitempty"`
	Turn     string      `json:"turn,omitempty"`
	Action   string      `json:"action,omitempty"`
	Captured *core.Piece `json:"captured,omitempty"`
}
