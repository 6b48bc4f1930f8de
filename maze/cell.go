package maze

import "fmt"

// CellKind is the content of a single cell in the grid.
type CellKind int

const (
	Wall  CellKind = iota // Wall blocks movement.
	Open                  // Open can be walked through.
	Start                 // Start is where the search begins.
	Goal                  // Goal is where the search ends.
)

// Glyphs used by the textual maze layout.
const (
	WallGlyph  = "#"
	OpenGlyph  = " "
	StartGlyph = "O"
	GoalGlyph  = "X"
)

var glyphs = map[CellKind]string{
	Wall:  WallGlyph,
	Open:  OpenGlyph,
	Start: StartGlyph,
	Goal:  GoalGlyph,
}

// String returns the name of the kind.
func (k CellKind) String() string {
	switch k {
	case Wall:
		return "Wall"
	case Open:
		return "Open"
	case Start:
		return "Start"
	case Goal:
		return "Goal"
	default:
		return fmt.Sprintf("CellKind(%d)", int(k))
	}
}

// Glyph returns the single character used for the kind in a textual layout.
func (k CellKind) Glyph() string {
	if g, ok := glyphs[k]; ok {
		return g
	}
	return "?"
}

// KindOf decodes a layout glyph.
func KindOf(glyph string) (CellKind, error) {
	for kind, g := range glyphs {
		if g == glyph {
			return kind, nil
		}
	}
	return Wall, fmt.Errorf("%w: %q", ErrUnknownGlyph, glyph)
}

// CellPosition represents the position of a cell in the maze grid.
type CellPosition struct {
	Row int `json:"row"` // Row index of the cell
	Col int `json:"col"` // Column index of the cell
}

// String renders the position as (row,col).
func (cp CellPosition) String() string {
	return fmt.Sprintf("(%d,%d)", cp.Row, cp.Col)
}

// Adjacent reports whether two positions differ by exactly one orthogonal step.
func (cp CellPosition) Adjacent(other CellPosition) bool {
	dr, dc := cp.Row-other.Row, cp.Col-other.Col
	return dr*dr+dc*dc == 1
}
