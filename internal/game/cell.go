// internal/game/cell.go
//
// Cell model for the minesweeper engine.
// Defines:
//   - Cell: one grid position with mine/hidden/flagged/value state.
//   - Symbol(): the presentation string derived from that state.

package game

import "strconv"

// Cell is a single board position. All cells start hidden; Value carries the
// 8-way adjacent mine count computed once at construction.
type Cell struct {
	Row     int  // Zero-based row index.
	Col     int  // Zero-based column index.
	Value   int  // Count of mined neighbors (8-way). Meaningless to display for mined cells.
	Mined   bool // True if the cell holds a mine.
	Hidden  bool // True until revealed.
	Flagged bool // True while the player holds a flag here.
}

// Symbol derives the display string for the cell:
//   - "F" while flagged (the flag wins over every other rule),
//   - "" while hidden and unflagged,
//   - once revealed: "M" if mined, "" if the value is zero, else the value.
func (c *Cell) Symbol() string {
	switch {
	case c.Flagged:
		return "F"
	case c.Hidden:
		return ""
	case c.Mined:
		return "M"
	case c.Value == 0:
		return ""
	default:
		return strconv.Itoa(c.Value)
	}
}
