// internal/game/board.go
//
// Rectangular cell grid owned by a single Game.
// Responsibilities:
//   - Allocate the all-hidden grid and reject impossible dimensions.
//   - Bounds checks and cell addressing.
//   - Random cell selection for mine placement.
//   - Neighborhood queries: 8-way for mine counting, 4-way for flood fill.

package game

import (
	"fmt"
	"math/rand"
)

// Board is the cell grid. It never mutates game state on its own; the Game
// drives every reveal and flag through it.
type Board struct {
	NRows  int
	NCols  int
	NCells int
	cells  [][]Cell
}

// NewBoard allocates an nRows x nCols grid of hidden cells.
func NewBoard(nRows, nCols int) (*Board, error) {
	if nRows <= 0 || nCols <= 0 {
		return nil, &ConfigurationError{
			Reason: fmt.Sprintf("board dimensions must be positive, got %dx%d", nRows, nCols),
		}
	}
	cells := make([][]Cell, nRows)
	for r := range cells {
		row := make([]Cell, nCols)
		for c := range row {
			row[c] = Cell{Row: r, Col: c, Hidden: true}
		}
		cells[r] = row
	}
	return &Board{
		NRows:  nRows,
		NCols:  nCols,
		NCells: nRows * nCols,
		cells:  cells,
	}, nil
}

// Contains reports whether (row, col) addresses a cell on the board.
func (b *Board) Contains(row, col int) bool {
	return row >= 0 && row < b.NRows && col >= 0 && col < b.NCols
}

// Cell returns the cell at (row, col). Callers bounds-check first.
func (b *Board) Cell(row, col int) *Cell {
	return &b.cells[row][col]
}

// RandomCell selects one cell by independent uniform draws over the row and
// column ranges.
func (b *Board) RandomCell() *Cell {
	return &b.cells[rand.Intn(b.NRows)][rand.Intn(b.NCols)]
}

// Neighbors returns every in-bounds cell at Chebyshev distance 1 from c
// (up to 8). Mine counting uses this full neighborhood.
func (b *Board) Neighbors(c *Cell) []*Cell {
	out := make([]*Cell, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			if b.Contains(c.Row+dr, c.Col+dc) {
				out = append(out, &b.cells[c.Row+dr][c.Col+dc])
			}
		}
	}
	return out
}

// OrthogonalNeighbors returns the in-bounds cells directly above, below,
// left, and right of c (up to 4). Flood-fill propagation uses this narrower
// set; the shape of an opening depends on it.
func (b *Board) OrthogonalNeighbors(c *Cell) []*Cell {
	deltas := [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	out := make([]*Cell, 0, 4)
	for _, d := range deltas {
		if b.Contains(c.Row+d[0], c.Col+d[1]) {
			out = append(out, &b.cells[c.Row+d[0]][c.Col+d[1]])
		}
	}
	return out
}

// revealAll unhides every cell, mined and flagged included. Terminal bulk
// reveal only; flags offer no protection once the game ends.
func (b *Board) revealAll() {
	for r := range b.cells {
		for c := range b.cells[r] {
			b.cells[r][c].Hidden = false
		}
	}
}
