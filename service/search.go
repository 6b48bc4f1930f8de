package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/beka-birhanu/vinom-pathfinder/maze"
	"github.com/beka-birhanu/vinom-pathfinder/pathfinding"
	"github.com/beka-birhanu/vinom-pathfinder/service/i"
	"github.com/google/uuid"
)

const (
	defaultPrefix    = "pathfinder"
	runStepStreamFmt = "%s:run:%s:steps"
)

var (
	ErrNoStream    = errors.New("step broadcasting is not configured")
	ErrRunNotFound = errors.New("broadcast run not found")
)

type SearchOptions struct {
	Prefix string
	Stream i.StepStream // optional; nil disables Broadcast and Events
}

// SearchService runs breadth-first searches and reports their outcome.
type SearchService struct {
	logger i.Logger
	opts   *SearchOptions
}

func NewSearchService(logger i.Logger, opts *SearchOptions) (i.Searcher, error) {
	if logger == nil {
		return nil, errors.New("search service needs a logger")
	}
	if opts == nil {
		opts = &SearchOptions{}
	}
	if opts.Prefix == "" {
		opts.Prefix = defaultPrefix
	}

	return &SearchService{
		logger: logger,
		opts:   opts,
	}, nil
}

// Solve runs a search. An unreachable goal is reported with Found false and no error;
// a malformed grid is returned as an error.
func (s *SearchService) Solve(ctx context.Context, grid *maze.Grid, opts i.SolveOptions) (*i.SearchRun, error) {
	return s.solve(ctx, uuid.New(), grid, opts)
}

func (s *SearchService) solve(ctx context.Context, runID uuid.UUID, grid *maze.Grid, opts i.SolveOptions) (*i.SearchRun, error) {
	run := &i.SearchRun{ID: runID}
	s.logger.Info(fmt.Sprintf("Search started: ID=%s Size=%dx%d", run.ID, grid.Height(), grid.Width()))

	onStep := opts.OnStep
	if opts.RecordSteps {
		onStep = func(path pathfinding.Path) error {
			run.Steps = append(run.Steps, slices.Clone(path))
			if opts.OnStep != nil {
				return opts.OnStep(path)
			}
			return nil
		}
	}

	result, err := pathfinding.Search(grid, onStep, pathfinding.WithContext(ctx))
	run.Explored = result.Explored
	switch {
	case err == nil:
		run.Found = true
		run.Path = result.Path
		s.logger.Info(fmt.Sprintf("Path found: ID=%s Steps=%d Explored=%d", run.ID, len(run.Path)-1, run.Explored))
	case errors.Is(err, pathfinding.ErrNoPathExists):
		s.logger.Info(fmt.Sprintf("No path exists: ID=%s Explored=%d", run.ID, run.Explored))
	default:
		s.logger.Error(fmt.Sprintf("Search failed: ID=%s: %s", run.ID, err))
		return nil, err
	}

	return run, nil
}

// Broadcast runs a search and appends a StepEvent per step to the run's stream,
// followed by a final event with Done set. The stream outlives the call, so viewers
// replay it through Events whenever they learn the run id.
func (s *SearchService) Broadcast(ctx context.Context, grid *maze.Grid) (*i.SearchRun, error) {
	if s.opts.Stream == nil {
		return nil, ErrNoStream
	}

	runID := uuid.New()
	stream := s.stream(runID)
	index := 0
	appendStep := func(path pathfinding.Path) error {
		index++
		return s.append(ctx, stream, i.StepEvent{RunID: runID.String(), Index: index, Path: path})
	}

	run, err := s.solve(ctx, runID, grid, i.SolveOptions{OnStep: appendStep})
	if err != nil {
		return nil, err
	}
	run.Stream = stream

	final := i.StepEvent{RunID: runID.String(), Index: index + 1, Path: run.Path, Done: true, Found: run.Found}
	if err := s.append(ctx, stream, final); err != nil {
		return nil, err
	}

	s.logger.Info(fmt.Sprintf("Broadcast finished: ID=%s Stream=%s Events=%d", runID, stream, index+1))
	return run, nil
}

// Events returns the recorded events of a broadcast run in order.
func (s *SearchService) Events(ctx context.Context, runID uuid.UUID) ([]i.StepEvent, error) {
	if s.opts.Stream == nil {
		return nil, ErrNoStream
	}

	payloads, err := s.opts.Stream.Range(ctx, s.stream(runID))
	if err != nil {
		s.logger.Error(fmt.Sprintf("Failed to read stream: ID=%s: %s", runID, err))
		return nil, err
	}
	if len(payloads) == 0 {
		return nil, ErrRunNotFound
	}

	events := make([]i.StepEvent, 0, len(payloads))
	for _, payload := range payloads {
		var event i.StepEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			return nil, fmt.Errorf("decoding step event: %w", err)
		}
		events = append(events, event)
	}
	return events, nil
}

func (s *SearchService) append(ctx context.Context, stream string, event i.StepEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if err := s.opts.Stream.Append(ctx, stream, payload); err != nil {
		s.logger.Error(fmt.Sprintf("Failed to append step: %s", err))
		return err
	}
	return nil
}

func (s *SearchService) stream(runID uuid.UUID) string {
	return fmt.Sprintf(runStepStreamFmt, s.opts.Prefix, runID)
}
