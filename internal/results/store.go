// internal/results/store.go
//
// SQLite-backed history of finished games. Inserts are best effort from the
// HTTP layer; reads feed the recent-results endpoint. Live sessions never
// touch this table.

package results

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Result is one finished game.
type Result struct {
	GameID     string    `json:"gameId"`
	PlayerID   string    `json:"playerId,omitempty"`
	NRows      int       `json:"nRows"`
	NCols      int       `json:"nCols"`
	NMines     int       `json:"nMines"`
	Status     string    `json:"status"`
	Score      int       `json:"score"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	DurationMs int64     `json:"durationMs"`
}

// Store reads and writes the game_results table.
type Store struct{ db *sql.DB }

// NewStore wraps an open database handle.
func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Insert records a finished game. Re-inserting the same game id is ignored,
// so a retried request cannot duplicate history.
func (s *Store) Insert(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO game_results
		   (game_id, player_id, n_rows, n_cols, n_mines, status, score, started_at, finished_at, duration_ms)
		 VALUES (?,?,?,?,?,?,?,?,?,?)`,
		r.GameID, r.PlayerID, r.NRows, r.NCols, r.NMines, r.Status, r.Score,
		r.StartedAt, r.FinishedAt, r.DurationMs,
	)
	if err != nil {
		return fmt.Errorf("insert result: %w", err)
	}
	return nil
}

// Recent returns the latest finished games, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT game_id, player_id, n_rows, n_cols, n_mines, status, score, started_at, finished_at, duration_ms
		 FROM game_results
		 ORDER BY finished_at DESC
		 LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	out := make([]Result, 0, limit)
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.GameID, &r.PlayerID, &r.NRows, &r.NCols, &r.NMines,
			&r.Status, &r.Score, &r.StartedAt, &r.FinishedAt, &r.DurationMs); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
