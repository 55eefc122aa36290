package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbol(t *testing.T) {
	tests := []struct {
		name string
		cell Cell
		want string
	}{
		{"hidden unflagged", Cell{Hidden: true}, ""},
		{"hidden flagged", Cell{Hidden: true, Flagged: true}, "F"},
		{"hidden flagged mine", Cell{Hidden: true, Flagged: true, Mined: true}, "F"},
		{"revealed flagged mine keeps the flag", Cell{Flagged: true, Mined: true}, "F"},
		{"revealed mine", Cell{Mined: true}, "M"},
		{"revealed mine with neighbors", Cell{Mined: true, Value: 3}, "M"},
		{"revealed zero", Cell{Value: 0}, ""},
		{"revealed numeric", Cell{Value: 5}, "5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cell.Symbol())
		})
	}
}

func TestSnapshotShape(t *testing.T) {
	g := test4x4(t)

	st := g.Snapshot()

	assert.Equal(t, 4, st.NRows)
	assert.Equal(t, 4, st.NCols)
	require.Len(t, st.Rows, 4)
	for r, row := range st.Rows {
		require.Len(t, row, 4)
		for c, cell := range row {
			assert.Equal(t, r, cell.Row)
			assert.Equal(t, c, cell.Col)
			assert.True(t, cell.Hidden)
			assert.Empty(t, cell.Symbol)
		}
	}
}

func TestSnapshotIsTruthful(t *testing.T) {
	g := test4x4(t)

	// The engine does not redact: the hidden mine and the neighbor counts
	// sit in the snapshot as-is. Boundaries that serve untrusted players
	// scrub them before transmission.
	st := g.Snapshot()
	assert.True(t, st.Rows[0][0].Mined)
	assert.Equal(t, 1, st.Rows[1][1].Value)
}

func TestSnapshotAfterMoves(t *testing.T) {
	g := test4x4(t)
	require.NoError(t, g.ToggleFlag(2, 2))
	require.NoError(t, g.RevealArea(1, 1))

	st := g.Snapshot()

	flagged := st.Rows[2][2]
	assert.True(t, flagged.Flagged)
	assert.True(t, flagged.Hidden)
	assert.Equal(t, "F", flagged.Symbol)

	revealed := st.Rows[1][1]
	assert.False(t, revealed.Hidden)
	assert.Equal(t, "1", revealed.Symbol)
}

func TestSnapshotTerminal(t *testing.T) {
	g := test4x4(t)
	require.NoError(t, g.RevealArea(0, 0))
	require.Equal(t, EndStatusLost, g.EndStatus)

	st := g.Snapshot()

	assert.Equal(t, "M", st.Rows[0][0].Symbol)
	for _, row := range st.Rows {
		for _, cell := range row {
			assert.False(t, cell.Hidden)
		}
	}
}
