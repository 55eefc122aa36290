// internal/game/game.go
//
// Core game engine for a single minesweeper session.
// Responsibilities:
//   - Construct games: board allocation, mine placement, one-shot neighbor
//     count propagation.
//   - Reveal cells with iterative flood fill (4-way propagation over
//     zero-valued cells plus their one-ring boundary).
//   - Toggle flags and keep Score (count of flagged mines) current.
//   - Detect both win paths (all mines flagged / all safe cells revealed)
//     and the loss path (mine revealed), each ending with a bulk reveal.
//
// Notes:
//   - The engine does no locking and no I/O; callers serialize access to a
//     Game. The registry does this per session.
//   - ID is assigned by the registry at registration, not here.

package game

import (
	"fmt"
	"time"
)

// EndStatus is the terminal state of a game. Empty while play continues;
// once set it never changes and the game ignores further mutation.
type EndStatus string

const (
	EndStatusNone EndStatus = ""
	EndStatusWon  EndStatus = "won"
	EndStatusLost EndStatus = "lost"
)

// Coord addresses one board cell. Variadic New coords pin the minefield for
// deterministic tests.
type Coord struct {
	Row int
	Col int
}

// Game holds the full state of one minesweeper session.
type Game struct {
	ID        string    // Opaque identifier, set by the registry.
	CreatedAt time.Time // Construction time, diagnostics and history only.
	EndStatus EndStatus // "" -> "won"/"lost", transitions once.
	Score     int       // Currently flagged mined cells. Drives the flag win path.

	settings Settings
	board    *Board
	nMines   int // Effective mine count, the authority for win checks.
	revealed int // Cells unhidden via reveal operations; terminal bulk reveals excluded.
}

// New constructs a game. With no explicit coords the mine count derived from
// the settings is placed uniformly at random, retrying collisions. Explicit
// coords pin the minefield (set semantics, duplicates collapse) and override
// the derived count.
func New(settings Settings, mines ...Coord) (*Game, error) {
	if settings.MinesRatio <= 0 {
		return nil, &ConfigurationError{
			Reason: fmt.Sprintf("mines ratio must be positive, got %g", settings.MinesRatio),
		}
	}
	board, err := NewBoard(settings.NRows, settings.NCols)
	if err != nil {
		return nil, err
	}
	g := &Game{
		CreatedAt: time.Now(),
		settings:  settings,
		board:     board,
	}
	if len(mines) > 0 {
		err = g.placeMinesAt(mines)
	} else {
		err = g.placeMinesRandomly(settings.NMines())
	}
	if err != nil {
		return nil, err
	}
	g.propagateMineValues()
	return g, nil
}

// Settings reports the configuration the game was created with.
func (g *Game) Settings() Settings { return g.settings }

// NMines reports the effective mine count.
func (g *Game) NMines() int { return g.nMines }

// Ended reports whether the game reached a terminal state.
func (g *Game) Ended() bool { return g.EndStatus != EndStatusNone }

// placeMinesRandomly mines nMines distinct cells, drawing random cells and
// retrying collisions. Fails before any placement if the board cannot hold
// the requested count.
func (g *Game) placeMinesRandomly(nMines int) error {
	if nMines > g.board.NCells {
		return &NotEnoughCellsError{NMines: nMines, NCells: g.board.NCells}
	}
	placed := 0
	for placed < nMines {
		c := g.board.RandomCell()
		if c.Mined {
			continue
		}
		c.Mined = true
		placed++
	}
	g.nMines = placed
	return nil
}

// placeMinesAt mines exactly the given coords.
func (g *Game) placeMinesAt(coords []Coord) error {
	for _, co := range coords {
		if !g.board.Contains(co.Row, co.Col) {
			return &OutOfBoundsError{Row: co.Row, Col: co.Col}
		}
		c := g.board.Cell(co.Row, co.Col)
		if c.Mined {
			continue
		}
		c.Mined = true
		g.nMines++
	}
	return nil
}

// propagateMineValues increments Value on every in-bounds neighbor (8-way)
// of every mine. Runs exactly once, after all mines are down; running it
// twice would double counts, which is a programming error rather than a
// recoverable condition. Mined neighbors accumulate counts too; their values
// are simply never shown.
func (g *Game) propagateMineValues() {
	for r := 0; r < g.board.NRows; r++ {
		for c := 0; c < g.board.NCols; c++ {
			cell := g.board.Cell(r, c)
			if !cell.Mined {
				continue
			}
			for _, n := range g.board.Neighbors(cell) {
				n.Value++
			}
		}
	}
}

// RevealArea reveals the cell at (row, col); a zero-valued cell opens its
// whole connected zero region plus the one-ring boundary around it.
//
// The fill is iterative with an explicit work stack, so stack usage is
// bounded regardless of board size. Propagation is orthogonal (4-way) even
// though mine counting is 8-way: a zero cell guarantees no mine touches it
// diagonally either, and the narrower spread shapes the opening the way
// players expect.
//
// Per popped cell:
//   - flagged: skipped, the flag protects it from inadvertent reveal;
//   - mined (only ever the entry cell, propagation never pushes mines):
//     the game ends lost and the whole board is revealed;
//   - otherwise it is unhidden and counted once, and a zero value pushes
//     every hidden, unmined orthogonal neighbor.
//
// When the stack drains and only mines remain hidden, Score is forced to the
// mine count and the win check ends the game.
func (g *Game) RevealArea(row, col int) error {
	if !g.board.Contains(row, col) {
		return &OutOfBoundsError{Row: row, Col: col}
	}
	if g.Ended() {
		return nil
	}

	stack := []*Cell{g.board.Cell(row, col)}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if c.Flagged {
			continue
		}
		if c.Mined {
			g.EndStatus = EndStatusLost
			g.board.revealAll()
			return nil
		}
		if c.Hidden {
			c.Hidden = false
			g.revealed++
		}
		if c.Value != 0 {
			continue
		}
		for _, n := range g.board.OrthogonalNeighbors(c) {
			if n.Hidden && !n.Mined {
				stack = append(stack, n)
			}
		}
	}

	if g.board.NCells-g.revealed == g.nMines {
		g.Score = g.nMines
		g.checkWin()
	}
	return nil
}

// ToggleFlag flips the flag on a hidden cell. Flagging a mined cell raises
// Score and may win the game; unflagging a mined cell lowers it (never a
// win). Revealed cells reject the toggle with ErrRevealedCell and nothing
// changes.
func (g *Game) ToggleFlag(row, col int) error {
	if !g.board.Contains(row, col) {
		return &OutOfBoundsError{Row: row, Col: col}
	}
	c := g.board.Cell(row, col)
	if !c.Hidden {
		return ErrRevealedCell
	}
	if c.Flagged {
		c.Flagged = false
		if c.Mined {
			g.Score--
		}
		return nil
	}
	c.Flagged = true
	if c.Mined {
		g.Score++
		g.checkWin()
	}
	return nil
}

// checkWin ends the game as won when the score reaches the mine count.
// The transition happens at most once and triggers the terminal bulk
// reveal; flags offer no protection from it.
func (g *Game) checkWin() {
	if g.EndStatus == EndStatusNone && g.Score == g.nMines {
		g.EndStatus = EndStatusWon
		g.board.revealAll()
	}
}
