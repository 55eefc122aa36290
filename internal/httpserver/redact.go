// internal/httpserver/redact.go
//
// Board redaction. The engine's snapshot is truthful; clients of a game
// still in progress must not learn where the mines are.

package httpserver

import "github.com/robalobadob/minesweeper/internal/game"

// redactBoard scrubs mine positions and adjacency values from hidden cells
// while a game is running. Terminal boards go out as-is: once won or lost
// the full layout is public. The snapshot is mutated in place, so callers
// must pass a freshly built one.
func redactBoard(st game.BoardState, terminal bool) game.BoardState {
	if terminal {
		return st
	}
	for r := range st.Rows {
		for c := range st.Rows[r] {
			if st.Rows[r][c].Hidden {
				st.Rows[r][c].Mined = false
				st.Rows[r][c].Value = 0
			}
		}
	}
	return st
}
