package i

import (
	"context"

	"github.com/beka-birhanu/vinom-pathfinder/maze"
	"github.com/beka-birhanu/vinom-pathfinder/pathfinding"
	"github.com/google/uuid"
)

// SearchRun is the outcome of one search over a grid.
type SearchRun struct {
	ID       uuid.UUID
	Found    bool
	Path     pathfinding.Path
	Explored int
	Steps    []pathfinding.Path // only filled when SolveOptions.RecordSteps is set
	Stream   string             // set for broadcast runs
}

// SolveOptions tunes a single Solve call.
type SolveOptions struct {
	OnStep      pathfinding.StepFunc // called for every dequeued cell when not nil
	RecordSteps bool                 // keep a copy of every step in SearchRun.Steps
}

// StepEvent is one entry of a broadcast run's stream.
type StepEvent struct {
	RunID string           `json:"run_id"`
	Index int              `json:"index"`
	Path  pathfinding.Path `json:"path,omitempty"`
	Done  bool             `json:"done"`
	Found bool             `json:"found"`
}

// Searcher runs path searches on behalf of the transports.
type Searcher interface {
	// Solve searches grid.
	Solve(ctx context.Context, grid *maze.Grid, opts SolveOptions) (*SearchRun, error)

	// Broadcast searches grid and appends every step to the run's stream.
	Broadcast(ctx context.Context, grid *maze.Grid) (*SearchRun, error)

	// Events replays the stream of a broadcast run.
	Events(ctx context.Context, runID uuid.UUID) ([]StepEvent, error)
}
