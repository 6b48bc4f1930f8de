/*
Package maze provides the immutable grid a path search runs over.

A Grid is a rectangular matrix of cell kinds (wall, open, start, goal). It is built
once, from a kind matrix or from a textual layout, and is never mutated afterwards, so
any number of searches may read it concurrently.

The package offers bounds-checked cell lookup, marker lookup and orthogonal neighbour
detection, plus an ASCII rendering of the layout.
*/
package maze

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	ErrEmptyGrid       = errors.New("maze has no cells")
	ErrNotRectangular  = errors.New("maze rows differ in length")
	ErrUnknownGlyph    = errors.New("unknown maze glyph")
	ErrOutOfBounds     = errors.New("position is out of the maze")
	ErrMarkerNotFound  = errors.New("marker not found")
	ErrAmbiguousMarker = errors.New("marker appears more than once")
)

// Directions in the order neighbours are reported: up, down, left, right.
// The order decides which of several equally short paths a search returns.
var Directions = []CellPosition{
	{Row: -1, Col: 0},
	{Row: 1, Col: 0},
	{Row: 0, Col: -1},
	{Row: 0, Col: 1},
}

// defaultLayout is the maze the tool ships with.
var defaultLayout = []string{
	"#O#######",
	"#       #",
	"# ## ## #",
	"# #   # #",
	"# # # # #",
	"# # # # #",
	"# # # ###",
	"#       #",
	"#######X#",
}

// Grid is an immutable rectangular maze.
type Grid struct {
	width  int
	height int
	cells  [][]CellKind
}

// New builds a grid from a kind matrix. The matrix is copied.
func New(rows [][]CellKind) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyGrid
	}

	width := len(rows[0])
	cells := make([][]CellKind, len(rows))
	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrNotRectangular, i, len(row), width)
		}
		cells[i] = make([]CellKind, width)
		copy(cells[i], row)
	}

	return &Grid{
		width:  width,
		height: len(rows),
		cells:  cells,
	}, nil
}

// ParseRows builds a grid from a matrix of single-character glyphs.
func ParseRows(rows [][]string) (*Grid, error) {
	kinds := make([][]CellKind, len(rows))
	for i, row := range rows {
		kinds[i] = make([]CellKind, len(row))
		for j, glyph := range row {
			kind, err := KindOf(glyph)
			if err != nil {
				return nil, fmt.Errorf("cell (%d,%d): %w", i, j, err)
			}
			kinds[i][j] = kind
		}
	}
	return New(kinds)
}

// Parse builds a grid from one string per row, one glyph per character.
func Parse(rows []string) (*Grid, error) {
	glyphRows := make([][]string, len(rows))
	for i, row := range rows {
		glyphRows[i] = strings.Split(row, "")
	}
	return ParseRows(glyphRows)
}

// Load reads a layout with one row per line. Trailing blank lines are ignored.
func Load(r io.Reader) (*Grid, error) {
	var rows []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		rows = append(rows, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	for len(rows) > 0 && strings.TrimSpace(rows[len(rows)-1]) == "" {
		rows = rows[:len(rows)-1]
	}
	return Parse(rows)
}

// Default returns the built-in maze.
func Default() *Grid {
	g, err := Parse(defaultLayout)
	if err != nil {
		panic(err)
	}
	return g
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// InBound reports whether the coordinate lies inside the grid.
func (g *Grid) InBound(row, col int) bool {
	return row >= 0 && row < g.height && col >= 0 && col < g.width
}

// KindAt returns the kind of the cell at pos.
func (g *Grid) KindAt(pos CellPosition) (CellKind, error) {
	if !g.InBound(pos.Row, pos.Col) {
		return Wall, fmt.Errorf("%w: %s", ErrOutOfBounds, pos)
	}
	return g.cells[pos.Row][pos.Col], nil
}

// FindUnique scans the grid in row-major order for the only cell of the given kind.
func (g *Grid) FindUnique(kind CellKind) (CellPosition, error) {
	var (
		found CellPosition
		seen  bool
	)
	for row := 0; row < g.height; row++ {
		for col := 0; col < g.width; col++ {
			if g.cells[row][col] != kind {
				continue
			}
			if seen {
				return CellPosition{}, fmt.Errorf("%w: %s at %s and %s", ErrAmbiguousMarker, kind, found, CellPosition{Row: row, Col: col})
			}
			found, seen = CellPosition{Row: row, Col: col}, true
		}
	}

	if !seen {
		return CellPosition{}, fmt.Errorf("%w: %s", ErrMarkerNotFound, kind)
	}
	return found, nil
}

// Neighbors returns the in-bound orthogonal neighbours of pos in Directions order.
// Walls are included; filtering them is up to the caller.
func (g *Grid) Neighbors(pos CellPosition) []CellPosition {
	result := make([]CellPosition, 0, len(Directions))
	for _, delta := range Directions {
		neighbor := CellPosition{Row: pos.Row + delta.Row, Col: pos.Col + delta.Col}
		if g.InBound(neighbor.Row, neighbor.Col) {
			result = append(result, neighbor)
		}
	}
	return result
}

// Rows returns the layout as one glyph string per row.
func (g *Grid) Rows() []string {
	rows := make([]string, g.height)
	for i, row := range g.cells {
		var sb strings.Builder
		for _, kind := range row {
			sb.WriteString(kind.Glyph())
		}
		rows[i] = sb.String()
	}
	return rows
}

// String provides a textual representation of the maze.
func (g *Grid) String() string {
	return strings.Join(g.Rows(), "\n") + "\n"
}
