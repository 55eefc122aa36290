// internal/game/settings.go
//
// Board shape and mine density configuration for new games.

package game

import "math"

// Settings describes the board shape and mine density for a new game.
// MinesRatio is a density divisor: one mine per MinesRatio cells, rounded.
// Fractional ratios are legal and are the one path by which the derived mine
// count can exceed the cell count.
type Settings struct {
	NRows      int
	NCols      int
	MinesRatio float64
}

// DefaultSettings is the production configuration: 20x20 cells, one mine per
// eight cells (50 mines). Difficulty is not player-selectable.
func DefaultSettings() Settings {
	return Settings{NRows: 20, NCols: 20, MinesRatio: 8}
}

// NMines derives the mine count from the board size and density divisor.
func (s Settings) NMines() int {
	return int(math.Round(float64(s.NRows*s.NCols) / s.MinesRatio))
}
