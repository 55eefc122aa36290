// internal/httpserver/sse_test.go

package httpserver

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/minesweeper/internal/event"
)

// TestEventsStreamDeliversLifecycle opens the SSE endpoint over a real
// listener, creates a game through the API, and expects the created event
// to arrive on the stream.
func TestEventsStreamDeliversLifecycle(t *testing.T) {
	s := testServer(t)
	ts := httptest.NewServer(s.Router())
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/events", nil)
	require.NoError(t, err)
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	// The subscription exists before the response headers go out, so a
	// game created now is guaranteed to reach the stream.
	created := decodeGameRes(t, doJSON(t, s, http.MethodPost, "/game/new", nil))

	rd := bufio.NewReader(resp.Body)
	var eventName string
	for {
		line, err := rd.ReadString('\n')
		require.NoError(t, err, "stream ended before the event arrived")
		line = strings.TrimRight(line, "\n")

		switch {
		case strings.HasPrefix(line, "event: "):
			eventName = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			require.Equal(t, string(event.GameCreated), eventName)
			var e event.Event
			require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &e))
			assert.Equal(t, created.GameID, e.Game.ID)
			assert.Equal(t, 50, e.Game.Mines)
			assert.False(t, e.At.IsZero())
			return
		}
	}
}

func TestEventsStreamEndsWithClient(t *testing.T) {
	s := testServer(t)
	ts := httptest.NewServer(s.Router())
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/events", nil)
	require.NoError(t, err)
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Dropping the client must unblock the handler; ts.Close would hang
	// on a leaked connection otherwise.
	cancel()

	buf := make([]byte, 1)
	_, readErr := resp.Body.Read(buf)
	assert.Error(t, readErr)
}
