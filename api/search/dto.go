// Package searchapi exposes maze path searches over HTTP.
package searchapi

import (
	"github.com/beka-birhanu/vinom-pathfinder/maze"
	"github.com/beka-birhanu/vinom-pathfinder/service/i"
)

// SearchRequest carries a maze layout, one glyph string per row.
// Glyphs: '#' wall, ' ' open, 'O' start, 'X' goal.
type SearchRequest struct {
	Maze         []string `json:"maze" binding:"required,min=1"`
	IncludeSteps bool     `json:"include_steps"`
}

// SearchResponse is the outcome of a search run.
type SearchResponse struct {
	RunID    string                `json:"run_id"`
	Found    bool                  `json:"found"`
	Path     []maze.CellPosition   `json:"path"`
	Explored int                   `json:"explored"`
	Steps    [][]maze.CellPosition `json:"steps,omitempty"`
}

// BroadcastResponse tells the caller which stream holds the steps of a broadcast run.
type BroadcastResponse struct {
	RunID  string              `json:"run_id"`
	Stream string              `json:"stream"`
	Found  bool                `json:"found"`
	Path   []maze.CellPosition `json:"path"`
}

// EventsResponse replays a broadcast run.
type EventsResponse struct {
	RunID  string        `json:"run_id"`
	Events []i.StepEvent `json:"events"`
}

// MazeResponse holds a maze layout.
type MazeResponse struct {
	Maze []string `json:"maze"`
}
