// internal/game/state.go
//
// Serializable snapshots of board state.
// The engine reports the truth, hidden mines included; scrubbing snapshots
// for untrusted consumers is the transport boundary's job.

package game

// CellState is the wire form of a single cell.
type CellState struct {
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	Hidden  bool   `json:"hidden"`
	Mined   bool   `json:"mined"`
	Flagged bool   `json:"flagged"`
	Symbol  string `json:"symbol"`
	Value   int    `json:"value"`
}

// BoardState is the wire form of the whole board, row-major.
type BoardState struct {
	NRows int           `json:"nRows"`
	NCols int           `json:"nCols"`
	Rows  [][]CellState `json:"rows"`
}

// Snapshot captures the current board state. Mined and Value are truthful
// even for hidden cells.
func (g *Game) Snapshot() BoardState {
	rows := make([][]CellState, g.board.NRows)
	for r := 0; r < g.board.NRows; r++ {
		row := make([]CellState, g.board.NCols)
		for c := 0; c < g.board.NCols; c++ {
			cell := g.board.Cell(r, c)
			row[c] = CellState{
				Row:     cell.Row,
				Col:     cell.Col,
				Hidden:  cell.Hidden,
				Mined:   cell.Mined,
				Flagged: cell.Flagged,
				Symbol:  cell.Symbol(),
				Value:   cell.Value,
			}
		}
		rows[r] = row
	}
	return BoardState{NRows: g.board.NRows, NCols: g.board.NCols, Rows: rows}
}
