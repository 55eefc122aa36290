// internal/httpserver/server.go
//
// HTTP wiring for the minesweeper backend.
// Responsibilities:
//   - Router + middleware (request IDs, real IP, panic recovery, CORS,
//     bounded handler time and JSON content type on the API routes).
//   - Game endpoints: POST /game/new, GET /game/{gameID}, POST /game/reveal,
//     POST /game/flag, GET /games/live, GET /results/recent.
//   - Lifecycle event stream: GET /events (SSE, outside the timeout group).
//   - Embedded browser client on "/" plus /assets/*.
//   - Anonymous signed player cookie (attribution only, no authorization).
//
// Notes:
//   - The engine reports truthful snapshots; this layer redacts hidden
//     cells for games still in progress so mine positions never leak.
//   - A finished game is unregistered here, the moment the move ends it.

package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/minesweeper/assets"
	"github.com/robalobadob/minesweeper/internal/config"
	"github.com/robalobadob/minesweeper/internal/event"
	"github.com/robalobadob/minesweeper/internal/registry"
	"github.com/robalobadob/minesweeper/internal/results"
)

// Server bundles the router, the session registry, the results store, and
// the event bus.
type Server struct {
	r        *chi.Mux
	cfg      config.Config
	registry *registry.Registry
	results  *results.Store // nil disables history
	bus      *event.Bus
	httpSrv  *http.Server
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg config.Config, reg *registry.Registry, res *results.Store, bus *event.Bus) *Server {
	s := &Server{r: chi.NewRouter(), cfg: cfg, registry: reg, results: res, bus: bus}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Logger)
	s.r.Use(chimw.Recoverer)
	s.r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.ClientOrigin},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: cfg.ClientOrigin != "*", // the cookie needs credentials; "*" forbids them
		MaxAge:           300,
	}))

	// --- API routes: bounded handler time, JSON by default ---
	s.r.Group(func(api chi.Router) {
		api.Use(chimw.Timeout(10 * time.Second))
		api.Use(jsonContentType)

		api.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"ok":true}`))
		})

		api.Post("/game/new", s.handleNewGame)
		api.Get("/game/{gameID}", s.handleGameState)
		api.Post("/game/reveal", s.handleReveal)
		api.Post("/game/flag", s.handleFlag)
		api.Get("/games/live", s.handleLiveGames)
		api.Get("/results/recent", s.handleRecentResults)
	})

	// Event stream lives as long as the client does; no timeout middleware.
	s.r.Get("/events", s.handleEvents)

	// Embedded browser client.
	s.r.Get("/", s.handleIndex)
	s.r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.FS(assets.FS))))

	// JSON 404 for easier debugging.
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})

	return s
}

// Start begins serving HTTP and blocks until Shutdown.
func (s *Server) Start() error {
	s.httpSrv = &http.Server{
		Addr:        s.cfg.Addr(),
		Handler:     s.r,
		ReadTimeout: 15 * time.Second,
		// No write timeout: /events connections stay open indefinitely.
		WriteTimeout: 0,
	}
	log.Info().Str("addr", s.cfg.Addr()).Msg("server listening")
	if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// handleIndex serves the embedded page and makes sure the caller leaves
// with a player cookie.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.ensurePlayerID(w, r)
	http.ServeFileFS(w, r, assets.FS, "index.html")
}

// jsonContentType sets a default JSON Content-Type header on API responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}
