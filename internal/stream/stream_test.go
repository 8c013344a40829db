package stream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/newthinker/pulse/internal/core"
	"github.com/newthinker/pulse/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var upgrader = websocket.Upgrader{}

// newPushServer upgrades each connection and feeds it the given raw
// event frames, then holds the connection open.
func newPushServer(t *testing.T, frames []string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		for _, f := range frames {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(f)); err != nil {
				return
			}
		}
		// Hold the connection until the client goes away.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func wsURL(server *httptest.Server) string {
	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestClient_NewSignalPublished(t *testing.T) {
	frames := []string{
		`{"event":"connect"}`,
		`{"event":"new_signal","data":{"status":"active","direction":"PUT","confidence":83,"price":"1.08411","expiry":"5m","asset":"EURUSD"}}`,
	}
	server := newPushServer(t, frames)

	store := state.NewStore(10)
	c := New(Config{URL: wsURL(server), ReconnectWait: 10 * time.Millisecond}, store, nil, nil)

	require.NoError(t, c.Start(context.Background()))
	defer c.Stop()

	waitFor(t, time.Second, func() bool {
		_, ok := store.Latest()
		return ok
	})

	latest, ok := store.Latest()
	require.True(t, ok)
	assert.Equal(t, core.DirectionPut, latest.Direction)
	assert.Equal(t, 83, latest.Confidence)
	assert.Equal(t, "stream", latest.Source)
	assert.True(t, store.Connection().Connected)
	assert.True(t, c.Connected())
}

func TestClient_DropsMalformedEvents(t *testing.T) {
	frames := []string{
		// Payload is not a signal object; must be dropped, not fatal.
		`{"event":"new_signal","data":"garbage"}`,
		// Active signal without a direction fails validation.
		`{"event":"new_signal","data":{"status":"active","asset":"EURUSD"}}`,
		`{"event":"new_signal","data":{"status":"active","direction":"CALL","confidence":85,"price":"1.08532","expiry":"1m","asset":"EURUSD"}}`,
	}
	server := newPushServer(t, frames)

	store := state.NewStore(10)
	c := New(Config{URL: wsURL(server), ReconnectWait: 10 * time.Millisecond}, store, nil, nil)

	require.NoError(t, c.Start(context.Background()))
	defer c.Stop()

	waitFor(t, time.Second, func() bool {
		latest, ok := store.Latest()
		return ok && latest.Direction == core.DirectionCall
	})

	// Only the valid frame made it into history.
	assert.Equal(t, 1, store.Count(state.ListFilter{}))
}

func TestClient_DisconnectEvent(t *testing.T) {
	frames := []string{
		`{"event":"connect"}`,
		`{"event":"disconnect"}`,
	}
	server := newPushServer(t, frames)

	store := state.NewStore(10)
	c := New(Config{URL: wsURL(server), ReconnectWait: 50 * time.Millisecond}, store, nil, nil)

	require.NoError(t, c.Start(context.Background()))
	defer c.Stop()

	waitFor(t, time.Second, func() bool {
		conn := store.Connection()
		return !conn.Connected && conn.Error != ""
	})
}

func TestClient_StartValidation(t *testing.T) {
	store := state.NewStore(10)
	c := New(Config{}, store, nil, nil)

	assert.Error(t, c.Start(context.Background()), "empty url must be rejected")
}

func TestClient_StopAndRestart(t *testing.T) {
	frames := []string{`{"event":"connect"}`}
	server := newPushServer(t, frames)

	store := state.NewStore(10)
	c := New(Config{URL: wsURL(server), ReconnectWait: 10 * time.Millisecond}, store, nil, nil)

	require.NoError(t, c.Start(context.Background()))
	waitFor(t, time.Second, c.Connected)

	c.Stop()
	assert.False(t, c.Connected(), "client should report disconnected after Stop")

	// Second Stop is a no-op.
	c.Stop()

	require.NoError(t, c.Start(context.Background()), "client should be restartable after Stop")
	c.Stop()
}
