// Package render draws a maze and the path explored so far on an ANSI terminal.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/beka-birhanu/vinom-pathfinder/config"
	"github.com/beka-birhanu/vinom-pathfinder/maze"
	"github.com/beka-birhanu/vinom-pathfinder/pathfinding"
)

const pathGlyph = "X"

// Terminal redraws the whole maze for every search step.
type Terminal struct {
	grid  *maze.Grid
	out   io.Writer
	delay time.Duration
	sleep func(time.Duration)
}

// NewTerminal creates a renderer for grid writing to out, pausing delay after each frame.
func NewTerminal(grid *maze.Grid, out io.Writer, delay time.Duration) *Terminal {
	return &Terminal{
		grid:  grid,
		out:   out,
		delay: delay,
		sleep: time.Sleep,
	}
}

// Step draws one frame and waits. It has the pathfinding.StepFunc signature.
func (t *Terminal) Step(path pathfinding.Path) error {
	if _, err := io.WriteString(t.out, config.ClearScreen+config.CursorHome+t.Frame(path)); err != nil {
		return err
	}
	if t.delay > 0 {
		t.sleep(t.delay)
	}
	return nil
}

// Frame renders the maze with path highlighted, two columns per cell.
func (t *Terminal) Frame(path pathfinding.Path) string {
	onPath := make(map[maze.CellPosition]bool, len(path))
	for _, c := range path {
		onPath[c] = true
	}

	var sb strings.Builder
	for row, line := range t.grid.Rows() {
		for col, glyph := range strings.Split(line, "") {
			if onPath[maze.CellPosition{Row: row, Col: col}] {
				fmt.Fprintf(&sb, "%s%s%s ", config.ColorRed, pathGlyph, config.ColorReset)
				continue
			}
			fmt.Fprintf(&sb, "%s%s%s ", config.ColorBlue, glyph, config.ColorReset)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Summary describes the outcome of a search in one line.
func Summary(path pathfinding.Path, explored int) string {
	if len(path) == 0 {
		return fmt.Sprintf("no path exists (%d cells explored)", explored)
	}
	cells := make([]string, len(path))
	for i, c := range path {
		cells[i] = c.String()
	}
	return fmt.Sprintf("path of %d steps (%d cells explored): %s", len(path)-1, explored, strings.Join(cells, " "))
}
