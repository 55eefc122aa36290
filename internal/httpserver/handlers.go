// internal/httpserver/handlers.go
//
// Game endpoint handlers.
// Responsibilities:
//   - Decode requests, look up the session, run the move under the
//     session lock, and translate engine errors into status codes.
//   - Redact boards for games still in progress.
//   - Settle finished games: unregister, publish the outcome, and write
//     the history row best effort.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/minesweeper/internal/event"
	"github.com/robalobadob/minesweeper/internal/game"
	"github.com/robalobadob/minesweeper/internal/results"
)

// ---- payloads ----

// moveReq is the body of POST /game/reveal and POST /game/flag.
type moveReq struct {
	GameID string `json:"gameId"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
}

// gameRes is the envelope every game endpoint answers with.
type gameRes struct {
	GameID          string          `json:"gameId"`
	Board           game.BoardState `json:"board"`
	EndStatus       game.EndStatus  `json:"endStatus"`
	SecondsToExpire float64         `json:"secondsToExpire"`
}

// ---- handlers ----

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	playerID := s.ensurePlayerID(w, r)

	g, err := game.New(game.DefaultSettings())
	if err != nil {
		log.Error().Err(err).Msg("create game")
		writeError(w, http.StatusInternalServerError, "could not create game")
		return
	}

	// Snapshot before registering: until Register returns nobody else can
	// reach the game, so no lock is needed here.
	board := redactBoard(g.Snapshot(), false)
	id := s.registry.Register(g)

	s.publish(event.GameCreated, event.GameInfo{ID: id, Mines: g.NMines()})
	log.Info().Str("game_id", id).Str("player_id", playerID).Msg("game created")

	ttl, _ := s.registry.SecondsToExpire(id)
	writeJSON(w, http.StatusOK, gameRes{GameID: id, Board: board, EndStatus: g.EndStatus, SecondsToExpire: ttl})
}

func (s *Server) handleGameState(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "gameID")
	sess, ok := s.registry.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "game not found")
		return
	}

	var res gameRes
	sess.Do(func(g *game.Game) {
		res = gameRes{GameID: id, Board: redactBoard(g.Snapshot(), g.Ended()), EndStatus: g.EndStatus}
	})
	res.SecondsToExpire, _ = s.registry.SecondsToExpire(id)
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleReveal(w http.ResponseWriter, r *http.Request) {
	s.handleMove(w, r, func(g *game.Game, row, col int) error {
		return g.RevealArea(row, col)
	})
}

func (s *Server) handleFlag(w http.ResponseWriter, r *http.Request) {
	s.handleMove(w, r, func(g *game.Game, row, col int) error {
		return g.ToggleFlag(row, col)
	})
}

func (s *Server) handleLiveGames(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.registry.ListLive())
}

func (s *Server) handleRecentResults(w http.ResponseWriter, r *http.Request) {
	if s.results == nil {
		writeJSON(w, http.StatusOK, []results.Result{})
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	rows, err := s.results.Recent(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("load results")
		writeError(w, http.StatusInternalServerError, "could not load results")
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// ---- shared move plumbing ----

// handleMove is the common path for reveal and flag: decode, look up the
// session (which refreshes its deadline), apply the move under the session
// lock, then either report the error or settle a game the move finished.
func (s *Server) handleMove(w http.ResponseWriter, r *http.Request, op func(g *game.Game, row, col int) error) {
	playerID := s.ensurePlayerID(w, r)

	var req moveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	sess, ok := s.registry.Get(req.GameID)
	if !ok {
		writeError(w, http.StatusNotFound, "game not found")
		return
	}

	var (
		opErr error
		res   gameRes
		ended bool
		info  event.GameInfo
		row   results.Result
	)
	sess.Do(func(g *game.Game) {
		wasEnded := g.Ended()
		opErr = op(g, req.Row, req.Col)
		if opErr != nil {
			return
		}
		terminal := g.Ended()
		res = gameRes{GameID: req.GameID, Board: redactBoard(g.Snapshot(), terminal), EndStatus: g.EndStatus}
		// Settle only on the move that flipped the game; a racing request
		// that lands between the flip and the unregister must not settle
		// a second time.
		ended = terminal && !wasEnded
		if ended {
			now := time.Now()
			info = event.GameInfo{ID: req.GameID, Status: string(g.EndStatus), Score: g.Score, Mines: g.NMines()}
			row = results.Result{
				GameID:     req.GameID,
				PlayerID:   playerID,
				NRows:      g.Settings().NRows,
				NCols:      g.Settings().NCols,
				NMines:     g.NMines(),
				Status:     string(g.EndStatus),
				Score:      g.Score,
				StartedAt:  g.CreatedAt,
				FinishedAt: now,
				DurationMs: now.Sub(g.CreatedAt).Milliseconds(),
			}
		}
	})

	if opErr != nil {
		var oob *game.OutOfBoundsError
		switch {
		case errors.As(opErr, &oob), errors.Is(opErr, game.ErrRevealedCell):
			writeError(w, http.StatusBadRequest, opErr.Error())
		default:
			log.Error().Err(opErr).Str("game_id", req.GameID).Msg("apply move")
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	if ended {
		s.settleGame(r, row, info)
	} else {
		res.SecondsToExpire, _ = s.registry.SecondsToExpire(req.GameID)
	}
	writeJSON(w, http.StatusOK, res)
}

// settleGame retires a finished game: the registry entry goes away at once
// so the session cannot linger until expiry, the outcome is published, and
// the history row is written if a store is configured.
func (s *Server) settleGame(r *http.Request, row results.Result, info event.GameInfo) {
	s.registry.Unregister(row.GameID)

	evType := event.GameLost
	if row.Status == string(game.EndStatusWon) {
		evType = event.GameWon
	}
	s.publish(evType, info)

	if s.results != nil {
		if err := s.results.Insert(r.Context(), row); err != nil {
			log.Warn().Err(err).Str("game_id", row.GameID).Msg("record result")
		}
	}
	log.Info().
		Str("game_id", row.GameID).
		Str("status", row.Status).
		Int("score", row.Score).
		Int64("duration_ms", row.DurationMs).
		Msg("game over")
}

// publish emits a lifecycle event; losing one is log-worthy, not fatal.
func (s *Server) publish(t event.Type, info event.GameInfo) {
	if err := s.bus.Publish(event.Event{Type: t, Game: info}); err != nil {
		log.Warn().Err(err).Str("game_id", info.ID).Msg("publish event")
	}
}
