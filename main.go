// main.go
//
// Process entry point: configuration, logging, storage, the session
// registry with its reaper, the event bus, and the HTTP server, plus a
// graceful shutdown path tying them together.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/minesweeper/internal/config"
	"github.com/robalobadob/minesweeper/internal/event"
	"github.com/robalobadob/minesweeper/internal/httpserver"
	"github.com/robalobadob/minesweeper/internal/registry"
	"github.com/robalobadob/minesweeper/internal/results"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	setupLogging(cfg)

	db, err := openDB(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database")
	}
	defer db.Close()
	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("run migrations")
	}

	bus := event.NewBus()
	reg := registry.New(cfg.SessionTTL, cfg.SweepInterval, bus)

	logCtx, stopEventLog := context.WithCancel(context.Background())
	go logEvents(logCtx, bus)

	srv := httpserver.New(cfg, reg, results.NewStore(db), bus)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-errCh:
		log.Error().Err(err).Msg("server failed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("shutdown http server")
	}

	stopEventLog()
	reg.Close()
	if err := bus.Close(); err != nil {
		log.Warn().Err(err).Msg("close event bus")
	}
}

func setupLogging(cfg config.Config) {
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

// logEvents mirrors bus traffic into the log. It also keeps a subscriber
// attached for the whole process lifetime, which makes event plumbing
// problems visible even with no browser connected.
func logEvents(ctx context.Context, bus *event.Bus) {
	events, err := bus.Subscribe(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("subscribe event log")
		return
	}
	for e := range events {
		log.Info().
			Str("type", string(e.Type)).
			Str("game_id", e.Game.ID).
			Str("status", e.Game.Status).
			Int("score", e.Game.Score).
			Msg("game event")
	}
}
