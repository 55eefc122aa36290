// internal/httpserver/sse.go
//
// Server-sent events for game lifecycle notifications. Each connection
// gets its own subscription on the event bus and a periodic heartbeat
// comment so idle proxies keep the stream open.

package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

const sseHeartbeatInterval = 30 * time.Second

// handleEvents streams lifecycle events until the client disconnects.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	sse, err := newSSEWriter(w)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	events, err := s.bus.Subscribe(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("subscribe events")
		writeError(w, http.StatusInternalServerError, "could not subscribe")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	sse.flush()

	heartbeat := time.NewTicker(sseHeartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			sse.writeHeartbeat()
		case e, ok := <-events:
			if !ok {
				return
			}
			if err := sse.writeEvent(string(e.Type), e); err != nil {
				log.Debug().Err(err).Msg("sse write failed, dropping client")
				return
			}
		}
	}
}

// sseWriter knows the event-stream wire format.
type sseWriter struct {
	w  http.ResponseWriter
	rc *http.ResponseController
}

func newSSEWriter(w http.ResponseWriter) (*sseWriter, error) {
	if _, ok := w.(http.Flusher); !ok {
		return nil, errors.New("response writer does not support flushing")
	}
	return &sseWriter{w: w, rc: http.NewResponseController(w)}, nil
}

// writeEvent sends one named event with a JSON data payload.
func (s *sseWriter) writeEvent(name string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", name, payload); err != nil {
		return err
	}
	return s.rc.Flush()
}

// writeHeartbeat sends a comment line clients ignore.
func (s *sseWriter) writeHeartbeat() {
	_, _ = fmt.Fprint(s.w, ": heartbeat\n\n")
	_ = s.rc.Flush()
}

func (s *sseWriter) flush() { _ = s.rc.Flush() }
