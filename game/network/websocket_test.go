package network

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/baweed/shashki/game/core"
)

type wsState struct {
	Type    string
	Content GameState
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws" + query
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readState(t *testing.T, conn *websocket.Conn) wsState {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var raw inboundMessage
	require.NoError(t, conn.ReadJSON(&raw))
	msg := wsState{Type: raw.Type}
	if raw.Type == "state" {
		require.NoError(t, json.Unmarshal(raw.Content, &msg.Content))
	}
	return msg
}

func TestWebSocketCreatesSessionAndPlays(t *testing.T) {
	hub := newTestHub(t)
	srv := httptest.NewServer(NewRouter(hub, RouterOptions{}))
	defer srv.Close()

	conn := dial(t, srv, "")
	first := readState(t, conn)
	require.Equal(t, "state", first.Type)
	require.NotEmpty(t, first.Content.ID)
	require.Equal(t, 1, hub.Len())

	require.NoError(t, conn.WriteJSON(Message{Type: CmdClick, Content: map[string]int{"row": 5, "col": 6}}))
	msg := readState(t, conn)
	require.Equal(t, "selected", msg.Content.Action)

	require.NoError(t, conn.WriteJSON(Message{Type: CmdClick, Content: map[string]int{"row": 4, "col": 7}}))
	msg = readState(t, conn)
	require.Equal(t, "moved", msg.Content.Action)
	require.Equal(t, core.Black, msg.Content.CurrentPlayer)
}

func TestWebSocketBroadcastsToSessionViewers(t *testing.T) {
	hub := newTestHub(t)
	srv := httptest.NewServer(NewRouter(hub, RouterOptions{}))
	defer srv.Close()

	s, err := hub.Create()
	require.NoError(t, err)

	a := dial(t, srv, "?game="+s.ID)
	b := dial(t, srv, "?game="+s.ID)
	readState(t, a)
	readState(t, b)

	// a REST-style command reaches both sockets
	st, changed := s.Apply(Command{Type: CmdSelect, Row: 5, Col: 0})
	require.True(t, changed)
	require.Equal(t, st.Version, readState(t, a).Content.Version)
	require.Equal(t, st.Version, readState(t, b).Content.Version)

	// a rejected command is answered to the sender only
	require.NoError(t, a.WriteJSON(Message{Type: CmdMove, Content: map[string]int{"row": 0, "col": 0}}))
	msg := readState(t, a)
	require.Equal(t, "ignored", msg.Content.Action)
	require.Equal(t, st.Version, msg.Content.Version)

	require.NoError(t, b.WriteJSON(Message{Type: "state"}))
	msg = readState(t, b)
	require.Equal(t, "", msg.Content.Action, "b must not have seen a's rejected move")
}

func TestWebSocketProtocolErrors(t *testing.T) {
	hub := newTestHub(t)
	srv := httptest.NewServer(NewRouter(hub, RouterOptions{}))
	defer srv.Close()

	conn := dial(t, srv, "")
	readState(t, conn)

	require.NoError(t, conn.WriteJSON(Message{Type: "dance"}))
	msg := readState(t, conn)
	require.Equal(t, "error", msg.Type)

	require.NoError(t, conn.WriteJSON(Message{Type: CmdSelect, Content: map[string]int{"row": 5}}))
	msg = readState(t, conn)
	require.Equal(t, "error", msg.Type)
}

func TestWebSocketUnknownGame(t *testing.T) {
	srv := httptest.NewServer(NewRouter(newTestHub(t), RouterOptions{}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?game=missing"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteClosesSockets(t *testing.T) {
	hub := newTestHub(t)
	srv := httptest.NewServer(NewRouter(hub, RouterOptions{}))
	defer srv.Close()

	conn := dial(t, srv, "")
	id := readState(t, conn).Content.ID
	require.NoError(t, hub.Delete(id))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
}
