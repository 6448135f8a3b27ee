package live

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/CarlManson/hottest100/logging"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		hub.Register(NewClient(conn))
	}))
}

func TestHubBroadcast(t *testing.T) {
	logging.BoostrapLogger()

	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	server := newTestServer(t, hub)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Registration goes through the hub's event loop, give it a beat
	time.Sleep(50 * time.Millisecond)

	hub.Broadcast("leaderboard", map[string]int{"revealedMain": 42})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, message, err := conn.ReadMessage()
	require.NoError(t, err)

	var envelope struct {
		Event string          `json:"event"`
		Data  json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(message, &envelope))
	assert.Equal(t, "leaderboard", envelope.Event)
	assert.JSONEq(t, `{"revealedMain":42}`, string(envelope.Data))
}

func TestHubBroadcastReachesEveryClient(t *testing.T) {
	logging.BoostrapLogger()

	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	server := newTestServer(t, hub)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conns := make([]*websocket.Conn, 0, 3)
	for i := 0; i < 3; i++ {
		conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
		require.NoError(t, err)
		defer conn.Close()
		conns = append(conns, conn)
	}
	time.Sleep(50 * time.Millisecond)

	hub.Broadcast("leaderboard", map[string]string{"hello": "everyone"})

	for _, conn := range conns {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, message, err := conn.ReadMessage()
		require.NoError(t, err)
		assert.Contains(t, string(message), "everyone")
	}
}
