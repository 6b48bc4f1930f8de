package pathfinding

import (
	"context"
	"errors"
	"slices"

	"github.com/beka-birhanu/vinom-pathfinder/maze"
	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"
)

// ErrNoPathExists is returned when every reachable cell was explored without reaching
// the goal. It is a normal outcome, not a malformed input.
var ErrNoPathExists = errors.New("no path exists between start and goal")

// Path is an ordered sequence of orthogonally adjacent cells starting at the start marker.
type Path []maze.CellPosition

// Last returns the final cell of the path and false when the path is empty.
func (p Path) Last() (maze.CellPosition, bool) {
	if len(p) == 0 {
		return maze.CellPosition{}, false
	}
	return p[len(p)-1], true
}

// StepFunc observes the search. It receives the path from the start to the cell just
// dequeued; the slice is a copy owned by the callee. A non-nil error stops the
// search and is returned to the caller.
type StepFunc func(path Path) error

// Result contains the outcome of a search.
type Result struct {
	Path     Path
	Explored int // cells dequeued, equal to the number of StepFunc calls
}

// Options defines parameters for the search.
type Options struct {
	Context context.Context
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithContext makes the search stop with ctx.Err() once ctx is done.
func WithContext(ctx context.Context) Option {
	return func(options *Options) { options.Context = ctx }
}

// Run searches grid for the shortest path from its start to its goal marker.
func Run(grid *maze.Grid, onStep StepFunc) (Path, error) {
	result, err := Search(grid, onStep)
	if err != nil {
		return nil, err
	}
	return result.Path, nil
}

// Search executes the breadth-first search.
func Search(grid *maze.Grid, onStep StepFunc, options ...Option) (Result, error) {
	searchOptions := Options{Context: context.Background()}
	for _, option := range options {
		option(&searchOptions)
	}
	ctx := searchOptions.Context

	start, err := grid.FindUnique(maze.Start)
	if err != nil {
		return Result{}, err
	}
	if _, err := grid.FindUnique(maze.Goal); err != nil {
		return Result{}, err
	}

	// --- Initialize state ---
	frontier := queue.New[maze.CellPosition]()
	frontier.Enqueue(start)
	visited := mapset.New[maze.CellPosition]()
	visited.Put(start)
	cameFrom := make(map[maze.CellPosition]maze.CellPosition)

	explored := 0
	for !frontier.Empty() {
		select {
		case <-ctx.Done():
			return Result{Explored: explored}, ctx.Err()
		default:
		}

		current := frontier.Dequeue()
		explored++
		path := reconstructPath(cameFrom, current, start)

		if onStep != nil {
			if err := onStep(slices.Clone(path)); err != nil {
				return Result{Explored: explored}, err
			}
		}

		kind, err := grid.KindAt(current)
		if err != nil {
			return Result{Explored: explored}, err
		}
		if kind == maze.Goal {
			return Result{Path: path, Explored: explored}, nil
		}

		for _, neighbor := range grid.Neighbors(current) {
			if visited.Has(neighbor) {
				continue
			}
			neighborKind, err := grid.KindAt(neighbor)
			if err != nil {
				return Result{Explored: explored}, err
			}
			if neighborKind == maze.Wall {
				continue
			}
			visited.Put(neighbor)
			cameFrom[neighbor] = current
			frontier.Enqueue(neighbor)
		}
	}

	return Result{Explored: explored}, ErrNoPathExists
}

// reconstructPath walks cameFrom back from current to start and returns the path in
// start-to-current order.
func reconstructPath(
	cameFrom map[maze.CellPosition]maze.CellPosition,
	current maze.CellPosition,
	start maze.CellPosition,
) Path {
	path := Path{current}
	for current != start {
		previous, exists := cameFrom[current]
		if !exists {
			break
		}
		path = append(path, previous)
		current = previous
	}
	// reverse path
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
