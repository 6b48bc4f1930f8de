package maze

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("Valid layout", func(t *testing.T) {
		g, err := Parse([]string{"O #", "# #", "# X"})
		require.NoError(t, err)
		assert.Equal(t, 3, g.Height())
		assert.Equal(t, 3, g.Width())

		kind, err := g.KindAt(CellPosition{Row: 0, Col: 0})
		require.NoError(t, err)
		assert.Equal(t, Start, kind)

		kind, err = g.KindAt(CellPosition{Row: 2, Col: 2})
		require.NoError(t, err)
		assert.Equal(t, Goal, kind)
	})

	t.Run("Ragged rows", func(t *testing.T) {
		_, err := Parse([]string{"O  ", "#X"})
		assert.ErrorIs(t, err, ErrNotRectangular)
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := Parse(nil)
		assert.ErrorIs(t, err, ErrEmptyGrid)

		_, err = Parse([]string{""})
		assert.ErrorIs(t, err, ErrEmptyGrid)
	})

	t.Run("Unknown glyph", func(t *testing.T) {
		_, err := Parse([]string{"O?X"})
		assert.ErrorIs(t, err, ErrUnknownGlyph)
	})
}

func TestNewCopiesInput(t *testing.T) {
	rows := [][]CellKind{{Start, Open}, {Wall, Goal}}
	g, err := New(rows)
	require.NoError(t, err)

	rows[0][1] = Wall
	kind, err := g.KindAt(CellPosition{Row: 0, Col: 1})
	require.NoError(t, err)
	assert.Equal(t, Open, kind)
}

func TestLoad(t *testing.T) {
	g, err := Load(strings.NewReader("O #\r\n  X\n\n\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, g.Height())
	assert.Equal(t, []string{"O #", "  X"}, g.Rows())
}

func TestKindAtOutOfBounds(t *testing.T) {
	g := Default()
	for _, pos := range []CellPosition{
		{Row: -1, Col: 0},
		{Row: 0, Col: -1},
		{Row: g.Height(), Col: 0},
		{Row: 0, Col: g.Width()},
	} {
		_, err := g.KindAt(pos)
		assert.ErrorIs(t, err, ErrOutOfBounds, pos.String())
	}
}

func TestFindUnique(t *testing.T) {
	t.Run("Default maze markers", func(t *testing.T) {
		g := Default()
		start, err := g.FindUnique(Start)
		require.NoError(t, err)
		assert.Equal(t, CellPosition{Row: 0, Col: 1}, start)

		goal, err := g.FindUnique(Goal)
		require.NoError(t, err)
		assert.Equal(t, CellPosition{Row: 8, Col: 7}, goal)
	})

	t.Run("Missing marker", func(t *testing.T) {
		g, err := Parse([]string{"O  "})
		require.NoError(t, err)
		_, err = g.FindUnique(Goal)
		assert.ErrorIs(t, err, ErrMarkerNotFound)
	})

	t.Run("Duplicate marker", func(t *testing.T) {
		g, err := Parse([]string{"O O", "  X"})
		require.NoError(t, err)
		_, err = g.FindUnique(Start)
		assert.ErrorIs(t, err, ErrAmbiguousMarker)
	})
}

func TestNeighbors(t *testing.T) {
	g, err := Parse([]string{"O# ", "   ", " #X"})
	require.NoError(t, err)

	t.Run("Fixed order up down left right", func(t *testing.T) {
		got := g.Neighbors(CellPosition{Row: 1, Col: 1})
		assert.Equal(t, []CellPosition{
			{Row: 0, Col: 1},
			{Row: 2, Col: 1},
			{Row: 1, Col: 0},
			{Row: 1, Col: 2},
		}, got)
	})

	t.Run("Corner stays in bounds", func(t *testing.T) {
		got := g.Neighbors(CellPosition{Row: 0, Col: 0})
		assert.Equal(t, []CellPosition{{Row: 1, Col: 0}, {Row: 0, Col: 1}}, got)
	})

	t.Run("Walls are not filtered", func(t *testing.T) {
		got := g.Neighbors(CellPosition{Row: 0, Col: 2})
		assert.Contains(t, got, CellPosition{Row: 0, Col: 1})
	})
}

func TestString(t *testing.T) {
	g, err := Parse([]string{"O #", "  X"})
	require.NoError(t, err)
	assert.Equal(t, "O #\n  X\n", g.String())
}

func TestCellPositionAdjacent(t *testing.T) {
	p := CellPosition{Row: 2, Col: 2}
	assert.True(t, p.Adjacent(CellPosition{Row: 1, Col: 2}))
	assert.True(t, p.Adjacent(CellPosition{Row: 2, Col: 3}))
	assert.False(t, p.Adjacent(CellPosition{Row: 3, Col: 3}))
	assert.False(t, p.Adjacent(p))
}

func TestLoadShippedMaze(t *testing.T) {
	f, err := os.Open("../mazes/classic.txt")
	require.NoError(t, err)
	defer f.Close()

	g, err := Load(f)
	require.NoError(t, err)
	assert.Equal(t, Default().Rows(), g.Rows())
}
