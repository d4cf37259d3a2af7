package stream

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	ws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testHub starts a hub behind a test HTTP server and returns a dial function
// for connecting clients.
func testHub(t *testing.T) (*Hub, func() *ws.Conn) {
	t.Helper()

	hub := NewHub()
	t.Cleanup(func() { hub.Stop() })

	server := httptest.NewServer(hub)
	t.Cleanup(func() { server.Close() })

	dial := func() *ws.Conn {
		t.Helper()
		url := "ws" + strings.TrimPrefix(server.URL, "http")
		conn, _, err := ws.DefaultDialer.Dial(url, nil)
		require.NoError(t, err)
		t.Cleanup(func() { conn.Close() })
		return conn
	}

	return hub, dial
}

// waitForClientCount polls until the hub reports the expected client count.
func waitForClientCount(hub *Hub, expected int) bool {
	for i := 0; i < 100; i++ {
		if hub.ClientCount() == expected {
			return true
		}
		time.Sleep(time.Millisecond)
	}
	return false
}

func TestHub_BroadcastReachesAllClients(t *testing.T) {
	hub, dial := testHub(t)

	conn1 := dial()
	conn2 := dial()
	require.True(t, waitForClientCount(hub, 2))

	hub.Broadcast(TypeIndex, map[string]interface{}{"value": 56, "rating": "degen"})

	for _, conn := range []*ws.Conn{conn1, conn2} {
		conn.SetReadDeadline(time.Now().Add(time.Second))
		_, msg, err := conn.ReadMessage()
		require.NoError(t, err)

		var envelope struct {
			Type string                 `json:"type"`
			Data map[string]interface{} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(msg, &envelope))
		assert.Equal(t, TypeIndex, envelope.Type)
		assert.Equal(t, 56.0, envelope.Data["value"])
		assert.Equal(t, "degen", envelope.Data["rating"])
	}
}

func TestHub_ClientCountTracksDisconnects(t *testing.T) {
	hub, dial := testHub(t)

	conn1 := dial()
	dial()
	require.True(t, waitForClientCount(hub, 2))

	conn1.Close()
	require.True(t, waitForClientCount(hub, 1))
}

func TestHub_BroadcastWithoutClients(t *testing.T) {
	hub, _ := testHub(t)
	// Should not panic or block
	hub.Broadcast(TypeSummary, map[string]string{"subreddit": "wallstreetbets"})
}

func TestHub_StopClosesConnections(t *testing.T) {
	hub, dial := testHub(t)

	conn := dial()
	require.True(t, waitForClientCount(hub, 1))

	hub.Stop()

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err, "connection should be closed after hub stops")
}

func TestHub_UnknownPayloadIsDropped(t *testing.T) {
	hub, dial := testHub(t)

	conn := dial()
	require.True(t, waitForClientCount(hub, 1))

	// Unmarshalable payload is logged and dropped, clients stay connected
	hub.Broadcast(TypeClassification, func() {})

	hub.Broadcast(TypeClassification, map[string]string{"comment_id": "abc"})
	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(msg), "comment_id")
}
