package api

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brawler/internal/game"
)

func dialHub(t *testing.T, s *Server) (*websocket.Conn, func()) {
	t.Helper()
	ts := httptest.NewServer(s.Router())
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn, func() {
		conn.Close()
		ts.Close()
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s := NewServer(ServerConfig{Router: RouterConfig{Match: newTestMatch(t), DisableLogging: true}})
	go s.wsHub.Run()
	t.Cleanup(func() { s.wsHub.Stop(); s.rateLimiter.Stop() })
	return s
}

func TestWebSocketBroadcast(t *testing.T) {
	s := newTestServer(t)
	conn, done := dialHub(t, s)
	defer done()

	require.Eventually(t, func() bool { return s.Hub().ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	s.Hub().Broadcast("match:ko", map[string]game.FighterID{"winner": 0, "loser": 1})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg struct {
		Event string         `json:"event"`
		Data  map[string]int `json:"data"`
	}
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, "match:ko", msg.Event)
	assert.Equal(t, 1, msg.Data["loser"])
}

func TestWebSocketSnapshotLoop(t *testing.T) {
	s := newTestServer(t)
	s.wsHub.StartBroadcastLoop(s.match)
	conn, done := dialHub(t, s)
	defer done()

	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg struct {
		Event string             `json:"event"`
		Data  game.MatchSnapshot `json:"data"`
	}
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, "match:snapshot", msg.Event)
	assert.Equal(t, "KHALID", msg.Data.Fighters[0].Name)
}

func TestWebSocketUnregister(t *testing.T) {
	s := newTestServer(t)
	conn, done := dialHub(t, s)
	defer done()

	require.Eventually(t, func() bool { return s.Hub().ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)
	conn.Close()
	require.Eventually(t, func() bool { return s.Hub().ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestWebSocketRejectsForeignOrigin(t *testing.T) {
	s := newTestServer(t)
	ts := httptest.NewServer(s.Router())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	header := map[string][]string{"Origin": {"https://example.com"}}
	_, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 403, resp.StatusCode)
}

func TestMetricsCallbacks(t *testing.T) {
	cb := MetricsCallbacks(nil)
	assert.NotPanics(t, func() {
		cb.OnHit(game.HitReport{Outcome: game.HitOutcome{Result: game.HitBlocked, Damage: 2}})
		cb.OnKO(0, 1)
		cb.OnSpecial(&game.SpecialEffect{Special: "fireball", Move: "special"})
		cb.OnTick(time.Millisecond, 3)
	})
}
