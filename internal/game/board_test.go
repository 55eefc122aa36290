package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoard(t *testing.T) {
	b, err := NewBoard(3, 5)
	require.NoError(t, err)

	assert.Equal(t, 3, b.NRows)
	assert.Equal(t, 5, b.NCols)
	assert.Equal(t, 15, b.NCells)

	// Every cell starts hidden, unmined, unflagged, zero-valued.
	for r := 0; r < b.NRows; r++ {
		for c := 0; c < b.NCols; c++ {
			cell := b.Cell(r, c)
			assert.Equal(t, r, cell.Row)
			assert.Equal(t, c, cell.Col)
			assert.True(t, cell.Hidden)
			assert.False(t, cell.Mined)
			assert.False(t, cell.Flagged)
			assert.Zero(t, cell.Value)
		}
	}
}

func TestNewBoardRejectsBadDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 5}, {5, 0}, {-1, 5}, {5, -1}, {0, 0}} {
		_, err := NewBoard(dims[0], dims[1])
		var cfgErr *ConfigurationError
		require.ErrorAs(t, err, &cfgErr, "dims %v", dims)
	}
}

func TestContains(t *testing.T) {
	b, err := NewBoard(2, 3)
	require.NoError(t, err)

	assert.True(t, b.Contains(0, 0))
	assert.True(t, b.Contains(1, 2))
	assert.False(t, b.Contains(-1, 0))
	assert.False(t, b.Contains(0, -1))
	assert.False(t, b.Contains(2, 0))
	assert.False(t, b.Contains(0, 3))
}

func TestNeighborsCorner(t *testing.T) {
	b, err := NewBoard(4, 4)
	require.NoError(t, err)

	ns := b.Neighbors(b.Cell(0, 0))
	require.Len(t, ns, 3)
	got := coordsOf(ns)
	assert.ElementsMatch(t, []Coord{{0, 1}, {1, 0}, {1, 1}}, got)
}

func TestNeighborsInterior(t *testing.T) {
	b, err := NewBoard(4, 4)
	require.NoError(t, err)

	ns := b.Neighbors(b.Cell(1, 1))
	require.Len(t, ns, 8)
	got := coordsOf(ns)
	assert.ElementsMatch(t, []Coord{
		{0, 0}, {0, 1}, {0, 2},
		{1, 0}, {1, 2},
		{2, 0}, {2, 1}, {2, 2},
	}, got)
}

func TestOrthogonalNeighbors(t *testing.T) {
	b, err := NewBoard(4, 4)
	require.NoError(t, err)

	// Interior cell has four, corner cell two; no diagonals anywhere.
	inner := coordsOf(b.OrthogonalNeighbors(b.Cell(2, 2)))
	assert.ElementsMatch(t, []Coord{{1, 2}, {3, 2}, {2, 1}, {2, 3}}, inner)

	corner := coordsOf(b.OrthogonalNeighbors(b.Cell(0, 0)))
	assert.ElementsMatch(t, []Coord{{0, 1}, {1, 0}}, corner)
}

func TestRandomCellStaysOnBoard(t *testing.T) {
	b, err := NewBoard(3, 3)
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		c := b.RandomCell()
		assert.True(t, b.Contains(c.Row, c.Col))
	}
}

func TestRevealAllIgnoresFlags(t *testing.T) {
	b, err := NewBoard(2, 2)
	require.NoError(t, err)
	b.Cell(0, 0).Flagged = true

	b.revealAll()

	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			assert.False(t, b.Cell(r, c).Hidden)
		}
	}
	// The flag itself survives the reveal.
	assert.True(t, b.Cell(0, 0).Flagged)
}

func coordsOf(cells []*Cell) []Coord {
	out := make([]Coord, len(cells))
	for i, c := range cells {
		out[i] = Coord{Row: c.Row, Col: c.Col}
	}
	return out
}
