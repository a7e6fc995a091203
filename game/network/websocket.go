package network

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/baweed/shashki/game/obslog"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// HandleWebSocket attaches the connection to the session named by ?game=,
// creating a fresh session when none is given, and feeds client commands
// into it until the connection drops.
func HandleWebSocket(c *gin.Context, hub *Hub) {
	session, err := sessionForSocket(hub, c.Query("game"))
	if err != nil {
		writeError(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		obslog.L().Warn("ws_upgrade_failed", zap.Error(err))
		return
	}
	defer func() {
		session.detach(conn)
		conn.Close()
		obslog.L().Debug("ws_disconnect", zap.String("game_id", session.ID))
	}()

	session.attach(conn)
	obslog.L().Debug("ws_connect", zap.String("game_id", session.ID), zap.String("remote", c.ClientIP()))

	for {
		var msg inboundMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				obslog.L().Debug("ws_read_error", zap.String("game_id", session.ID), zap.Error(err))
			}
			return
		}
		if _, err := hub.Get(session.ID); err != nil {
			session.send(conn, Message{Type: "error", Content: err.Error()})
			return
		}

		switch msg.Type {
		case CmdSelect, CmdMove, CmdClick:
			var cell CellRequest
			if err := json.Unmarshal(msg.Content, &cell); err != nil || cell.Row == nil || cell.Col == nil {
				session.send(conn, Message{Type: "error", Content: "row and col are required"})
				continue
			}
			if st, changed := session.Apply(Command{Type: msg.Type, Row: *cell.Row, Col: *cell.Col}); !changed {
				session.send(conn, Message{Type: "state", Content: st})
			}
		case CmdReset:
			session.Apply(Command{Type: CmdReset})
		case "state":
			session.send(conn, Message{Type: "state", Content: session.State()})
		default:
			session.send(conn, Message{Type: "error", Content: "unknown message type"})
		}
	}
}

func sessionForSocket(hub *Hub, id string) (*GameSession, error) {
	if id == "" {
		return hub.Create()
	}
	return hub.Get(id)
}

func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ErrTooManySessions):
		status = http.StatusServiceUnavailable
	}
	if status == http.StatusInternalServerError {
		obslog.L().Error("request_failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.AbortWithStatusJSON(status, gin.H{"type": "error", "message": err.Error()})
}
