package ws

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"nhooyr.io/websocket"

	"github.com/Gabrielb-Webdev/smash-ban-server/internal/engine"
	"github.com/Gabrielb-Webdev/smash-ban-server/internal/hub"
	"github.com/Gabrielb-Webdev/smash-ban-server/pkg/types"
)

var testRules = engine.StandardRuleset(
	[]string{"battlefield", "small-battlefield", "pokemon-stadium-2", "smashville", "town-and-city"},
	[]string{"battlefield", "small-battlefield", "pokemon-stadium-2", "smashville",
		"town-and-city", "hollow-bastion", "final-destination", "kalos"},
)

func newTestServer(t *testing.T) (*hub.Hub, *httptest.Server) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	h := hub.NewHub(ctx, zap.NewNop())
	srv := httptest.NewServer(Handler(h, testRules, zap.NewNop()))
	t.Cleanup(srv.Close)
	return h, srv
}

func dialWS(t *testing.T, ctx context.Context, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "") })
	return conn
}

func writeFrame(t *testing.T, ctx context.Context, conn *websocket.Conn, msg types.ClientMessage) {
	t.Helper()
	payload, err := json.Marshal(msg)
	require.NoError(t, err)
	require.NoError(t, conn.Write(ctx, websocket.MessageText, payload))
}

func readFrame(t *testing.T, ctx context.Context, conn *websocket.Conn) types.ServerMessage {
	t.Helper()
	rctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	_, data, err := conn.Read(rctx)
	require.NoError(t, err)
	var msg types.ServerMessage
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

// expectTypes reads frames until every wanted type has been seen once. The
// broadcast pump and the command reply path write concurrently, so arrival
// order between frame types is not fixed.
func expectTypes(t *testing.T, ctx context.Context, conn *websocket.Conn, want ...string) map[string]types.ServerMessage {
	t.Helper()
	pending := make(map[string]bool, len(want))
	for _, w := range want {
		pending[w] = true
	}
	got := make(map[string]types.ServerMessage, len(want))
	for len(got) < len(want) {
		msg := readFrame(t, ctx, conn)
		require.NotEqual(t, "sessionError", msg.Type, "unexpected error frame: %s", msg.Error)
		if pending[msg.Type] {
			got[msg.Type] = msg
			delete(pending, msg.Type)
		}
	}
	return got
}

func sessionCount(t *testing.T, h *hub.Hub) int {
	t.Helper()
	reply := make(chan int, 1)
	h.Inbox() <- hub.CountSessions{Reply: reply}
	select {
	case n := <-reply:
		return n
	case <-time.After(time.Second):
		t.Fatal("timed out counting sessions")
		return -1 // unreachable
	}
}

// A viewer keeps one connection open across the whole tournament night; a
// session expired between matches must not poison the connection for the
// next one.
func TestHandler_RecreateSessionAfterExpiry(t *testing.T) {
	h, srv := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	conn := dialWS(t, ctx, srv)

	create := types.ClientMessage{
		Type: "createSession", SessionID: "weekly-42",
		Player1: "Gabi", Player2: "Ikki", Format: "BO3",
	}
	writeFrame(t, ctx, conn, create)
	expectTypes(t, ctx, conn, "sessionCreated", "sessionUpdated")

	time.Sleep(20 * time.Millisecond)
	h.Inbox() <- hub.Sweep{IdleFor: time.Nanosecond}
	require.Equal(t, 0, sessionCount(t, h), "idle session should be swept")

	// Same connection, same id: the server must come back with a working
	// session instead of crashing on the stale subscription.
	writeFrame(t, ctx, conn, create)
	got := expectTypes(t, ctx, conn, "sessionCreated", "sessionUpdated")
	require.Equal(t, engine.PhaseRPS, got["sessionUpdated"].Session.Phase)

	writeFrame(t, ctx, conn, types.ClientMessage{
		Type: "reportCoinTossWinner", SessionID: "weekly-42", Winner: "player1",
	})
	upd := expectTypes(t, ctx, conn, "sessionUpdated")["sessionUpdated"]
	require.Equal(t, engine.PhaseStageBan, upd.Session.Phase)
	require.Equal(t, engine.SlotPlayer1, upd.Session.CurrentTurn)
}

func TestHandler_SwitchBetweenSessions(t *testing.T) {
	_, srv := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	conn := dialWS(t, ctx, srv)

	writeFrame(t, ctx, conn, types.ClientMessage{
		Type: "createSession", SessionID: "setup-a",
		Player1: "Gabi", Player2: "Ikki", Format: "BO3",
	})
	expectTypes(t, ctx, conn, "sessionCreated", "sessionUpdated")

	writeFrame(t, ctx, conn, types.ClientMessage{
		Type: "createSession", SessionID: "setup-b",
		Player1: "Leo", Player2: "Ken", Format: "BO5",
	})
	got := expectTypes(t, ctx, conn, "sessionCreated", "sessionUpdated")
	require.Equal(t, "setup-b", got["sessionUpdated"].Session.ID)

	writeFrame(t, ctx, conn, types.ClientMessage{
		Type: "reportCoinTossWinner", SessionID: "setup-b", Winner: "player2",
	})
	upd := expectTypes(t, ctx, conn, "sessionUpdated")["sessionUpdated"]
	require.Equal(t, "setup-b", upd.Session.ID)
	require.Equal(t, engine.PhaseStageBan, upd.Session.Phase)
}
