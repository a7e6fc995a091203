package network

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/baweed/shashki/game/core"
	"github.com/baweed/shashki/game/msgcat"
	"github.com/baweed/shashki/game/obslog"
)

var (
	ErrSessionNotFound = errors.New("game session not found")
	ErrTooManySessions = errors.New("too many game sessions")
)

// GameSession is one hot-seat game. Every connection attached to it is a
// view of the same board.
type GameSession struct {
	ID      string
	game    *core.Game
	cat     *msgcat.Catalog
	clients map[*websocket.Conn]struct{}
	seen    time.Time
	mu      sync.Mutex
}

func newGameSession(id string, cat *msgcat.Catalog, now time.Time) *GameSession {
	return &GameSession{
		ID:      id,
		game:    core.NewGame(),
		cat:     cat,
		clients: make(map[*websocket.Conn]struct{}),
		seen:    now,
	}
}

func (s *GameSession) State() GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked("", nil)
}

func (s *GameSession) stateLocked(action string, captured *core.Piece) GameState {
	snap := s.game.Snapshot()
	st := GameState{
		ID:       s.ID,
		Snapshot: snap,
		Action:   action,
		Captured: captured,
	}
	if s.cat != nil {
		st.Banner = s.cat.Banner(snap.Result)
		if !snap.Result.Terminal() {
			st.Turn = s.cat.Turn(snap.CurrentPlayer)
		}
	}
	return st
}

// Apply runs cmd against the game. Rejected commands are not errors: the
// returned state is unchanged and changed is false. Accepted commands are
// pushed to every attached connection.
func (s *GameSession) Apply(cmd Command) (GameState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		action   = core.ActionIgnored
		captured *core.Piece
	)
	switch cmd.Type {
	case CmdSelect:
		if s.game.Select(cmd.Row, cmd.Col) {
			action = core.ActionSelected
		}
	case CmdMove:
		if out := s.game.MoveTo(cmd.Row, cmd.Col); out.Accepted() {
			action, captured = core.ActionMoved, out.Captured
		}
	case CmdClick:
		var out core.MoveOutcome
		action, out = s.game.Click(cmd.Row, cmd.Col)
		captured = out.Captured
	case CmdReset:
		s.game.Reset()
		obslog.L().Info("game_reset", zap.String("game_id", s.ID))
		st := s.stateLocked(CmdReset, nil)
		s.broadcastLocked(Message{Type: "state", Content: st})
		return st, true
	}

	st := s.stateLocked(action.String(), captured)
	if action == core.ActionIgnored {
		return st, false
	}
	if action == core.ActionMoved {
		s.logMove(st)
	}
	s.broadcastLocked(Message{Type: "state", Content: st})
	return st, true
}

func (s *GameSession) logMove(st GameState) {
	m := st.LastMove
	if m == nil {
		return
	}
	obslog.L().Debug("move_accepted",
		zap.String("game_id", s.ID),
		zap.Stringer("from", m.From),
		zap.Stringer("to", m.To),
		zap.Bool("capture", m.IsCapture()),
		zap.Int("version", st.Version),
	)
	if st.Result.Terminal() {
		obslog.L().Info("game_over",
			zap.String("game_id", s.ID),
			zap.Stringer("result", st.Result),
			zap.Int("moves", st.MoveCount),
		)
	}
}

func (s *GameSession) attach(conn *websocket.Conn) GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[conn] = struct{}{}
	st := s.stateLocked("", nil)
	if err := conn.WriteJSON(Message{Type: "state", Content: st}); err != nil {
		obslog.L().Warn("ws_write_error", zap.String("game_id", s.ID), zap.Error(err))
	}
	return st
}

func (s *GameSession) detach(conn *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.clients, conn)
}

// send writes to one connection under the session lock, which is also what
// keeps gorilla's single-writer rule.
func (s *GameSession) send(conn *websocket.Conn, msg Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := conn.WriteJSON(msg); err != nil {
		obslog.L().Warn("ws_write_error", zap.String("game_id", s.ID), zap.Error(err))
	}
}

func (s *GameSession) broadcastLocked(msg Message) {
	for client := range s.clients {
		if err := client.WriteJSON(msg); err != nil {
			obslog.L().Warn("ws_broadcast_error", zap.String("game_id", s.ID), zap.Error(err))
			delete(s.clients, client)
			client.Close()
		}
	}
}

func (s *GameSession) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for client := range s.clients {
		client.Close()
		delete(s.clients, client)
	}
}

// Hub owns the live sessions. Idle sessions are dropped lazily when the hub
// is touched; nothing outlives the process.
type Hub struct {
	sessions map[string]*GameSession
	cat      *msgcat.Catalog
	ttl      time.Duration
	max      int
	now      func() time.Time
	mu       sync.Mutex
}

func NewHub(cat *msgcat.Catalog, ttl time.Duration, maxSessions int) *Hub {
	return &Hub{
		sessions: make(map[string]*GameSession),
		cat:      cat,
		ttl:      ttl,
		max:      maxSessions,
		now:      time.Now,
	}
}

func (h *Hub) Create() (*GameSession, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := h.now()
	h.pruneLocked(now)
	if h.max > 0 && len(h.sessions) >= h.max {
		return nil, ErrTooManySessions
	}
	s := newGameSession(uuid.NewString(), h.cat, now)
	h.sessions[s.ID] = s
	obslog.L().Info("session_created", zap.String("game_id", s.ID), zap.Int("live", len(h.sessions)))
	return s, nil
}

func (h *Hub) Get(id string) (*GameSession, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := h.now()
	h.pruneLocked(now)
	s, ok := h.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.seen = now
	return s, nil
}

func (h *Hub) Delete(id string) error {
	h.mu.Lock()
	s, ok := h.sessions[id]
	delete(h.sessions, id)
	h.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	s.closeAll()
	obslog.L().Info("session_deleted", zap.String("game_id", id))
	return nil
}

func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

func (h *Hub) pruneLocked(now time.Time) {
	if h.ttl <= 0 {
		return
	}
	for id, s := range h.sessions {
		if now.Sub(s.seen) <= h.ttl {
			continue
		}
		delete(h.sessions, id)
		s.closeAll()
		obslog.L().Info("session_expired", zap.String("game_id", id))
	}
}
