// internal/registry/registry.go
//
// Expiring in-memory session registry.
// Responsibilities:
//   - Issue game identifiers and own the (game, lastAccess) table.
//   - Keep-alive on access: every Get pushes the expiry deadline out, even
//     for entries already past it that the reaper has not visited yet.
//   - Serialize game operations per session (Session.Do) so reveal/flag
//     mutations never interleave on one board.
//   - Reap idle sessions on a background ticker and announce each removal
//     on the event bus.
//
// Notes:
//   - The registry is an explicitly constructed object; main builds one and
//     passes it around. No package state.
//   - Live sessions are never persisted. A process restart forfeits them.

package registry

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/minesweeper/internal/event"
	"github.com/robalobadob/minesweeper/internal/game"
)

// Summary is one row of the live-games listing.
type Summary struct {
	ID                string  `json:"id"`
	SecondsToExpire   float64 `json:"secondsToExpire"`
	CompletionPercent float64 `json:"completionPercent"`
}

// Session couples a game with its access bookkeeping.
type Session struct {
	id   string
	mu   sync.Mutex // serializes game operations
	game *game.Game

	// lastAccess is guarded by the owning registry's mutex, not the session
	// mutex: reap decisions must read it atomically with the removal.
	lastAccess time.Time
}

// ID reports the registry identifier of the session.
func (s *Session) ID() string { return s.id }

// Do runs fn with exclusive access to the session's game. The board is not
// safe under concurrent mutation, so every read and write goes through
// here. Registry methods must not be called from inside fn.
func (s *Session) Do(fn func(g *game.Game)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.game)
}

// Registry owns every live game and is the sole authority for disposing of
// ended or idle ones.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*Session
	now     func() time.Time // test clock; guarded by mu like the table

	window time.Duration
	bus    *event.Bus

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// New constructs a registry and starts its reaper, which removes entries
// idle longer than window every sweepInterval. bus may be nil; expirations
// then go unannounced. Close stops the reaper.
func New(window, sweepInterval time.Duration, bus *event.Bus) *Registry {
	r := &Registry{
		entries: make(map[string]*Session),
		now:     time.Now,
		window:  window,
		bus:     bus,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go r.reap(sweepInterval)
	return r
}

// Register stores g under a fresh identifier, assigns it to the game, and
// stamps the access time.
func (r *Registry) Register(g *game.Game) string {
	id := uuid.NewString()
	g.ID = id
	s := &Session{id: id, game: g}

	r.mu.Lock()
	s.lastAccess = r.now()
	r.entries[id] = s
	r.mu.Unlock()

	return id
}

// Get looks up a session and refreshes its expiry deadline. A miss is a
// normal outcome, not an error: ids go stale the moment the reaper or an
// end-of-game unregister runs.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.entries[id]
	if !ok {
		return nil, false
	}
	s.lastAccess = r.now()
	return s, true
}

// Unregister removes the entry. Idempotent.
func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	delete(r.entries, id)
	r.mu.Unlock()
}

// SecondsToExpire reports the remaining lifetime of id without refreshing
// it. Negative means expired but not yet reaped.
func (r *Registry) SecondsToExpire(id string) (float64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.entries[id]
	if !ok {
		return 0, false
	}
	return r.remaining(s).Seconds(), true
}

// remaining computes window - (now - lastAccess). Callers hold r.mu.
func (r *Registry) remaining(s *Session) time.Duration {
	return r.window - r.now().Sub(s.lastAccess)
}

// ListLive summarizes every session still inside its window: identifier,
// remaining seconds, and how much of the minefield is flagged. Read-only;
// nothing is refreshed. Sorted by id for stable output.
func (r *Registry) ListLive() []Summary {
	type live struct {
		s   *Session
		ttl time.Duration
	}

	r.mu.Lock()
	lives := make([]live, 0, len(r.entries))
	for _, s := range r.entries {
		if ttl := r.remaining(s); ttl > 0 {
			lives = append(lives, live{s: s, ttl: ttl})
		}
	}
	r.mu.Unlock()

	out := make([]Summary, 0, len(lives))
	for _, l := range lives {
		var completion float64
		l.s.Do(func(g *game.Game) {
			if n := g.NMines(); n > 0 {
				completion = float64(g.Score) / float64(n) * 100
			}
		})
		out = append(out, Summary{
			ID:                l.s.id,
			SecondsToExpire:   l.ttl.Seconds(),
			CompletionPercent: completion,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len reports the number of registered sessions, expired-but-unreaped ones
// included.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Close stops the reaper and drops every entry.
func (r *Registry) Close() {
	r.stopOnce.Do(func() { close(r.stop) })
	<-r.done

	r.mu.Lock()
	r.entries = make(map[string]*Session)
	r.mu.Unlock()
}

func (r *Registry) reap(interval time.Duration) {
	defer close(r.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			r.sweep()
		}
	}
}

// sweep removes every entry whose lastAccess fell outside the window. The
// timestamp read and the removal decision happen under one lock: a
// concurrent Get either refreshes first and the entry lives, or finds it
// gone. Expiry events go out after the lock drops.
func (r *Registry) sweep() {
	r.mu.Lock()
	cutoff := r.now().Add(-r.window)
	var reaped []*Session
	for id, s := range r.entries {
		if s.lastAccess.Before(cutoff) {
			delete(r.entries, id)
			reaped = append(reaped, s)
		}
	}
	r.mu.Unlock()

	for _, s := range reaped {
		log.Info().Str("game_id", s.id).Msg("session expired")
		if r.bus == nil {
			continue
		}
		var info event.GameInfo
		s.Do(func(g *game.Game) {
			info = event.GameInfo{ID: s.id, Status: string(g.EndStatus), Score: g.Score, Mines: g.NMines()}
		})
		if err := r.bus.Publish(event.Event{Type: event.GameExpired, Game: info}); err != nil {
			log.Warn().Err(err).Str("game_id", s.id).Msg("publish expiry event")
		}
	}
}
