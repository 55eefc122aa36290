// internal/game/errors.go
//
// Engine error values.
// Construction failures are typed errors; in-game rule violations that the
// player can recover from are ordinary sentinel errors, not faults.

package game

import (
	"errors"
	"fmt"
)

// ErrRevealedCell reports a flag toggle on a cell that is already revealed.
// The game continues; the caller decides how to surface it.
var ErrRevealedCell = errors.New("cannot flag or unflag an already revealed cell")

// ConfigurationError reports settings that cannot produce a playable board.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "invalid game configuration: " + e.Reason
}

// NotEnoughCellsError reports a mine count larger than the board. Carries
// both numbers for diagnostics.
type NotEnoughCellsError struct {
	NMines int
	NCells int
}

func (e *NotEnoughCellsError) Error() string {
	return fmt.Sprintf(
		"you are trying to place %d mines on the board, but there are only %d cells available",
		e.NMines, e.NCells,
	)
}

// OutOfBoundsError reports coordinates outside the board. Raised before any
// grid indexing.
type OutOfBoundsError struct {
	Row int
	Col int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("cell (%d, %d) is outside the board", e.Row, e.Col)
}
