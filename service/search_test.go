package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beka-birhanu/vinom-pathfinder/maze"
	"github.com/beka-birhanu/vinom-pathfinder/pathfinding"
	"github.com/beka-birhanu/vinom-pathfinder/service/i"
)

type nopLogger struct{ errors int }

func (l *nopLogger) Info(string)    {}
func (l *nopLogger) Warning(string) {}
func (l *nopLogger) Error(string)   { l.errors++ }

// memoryStream keeps appended payloads per stream, like a Redis stream would.
type memoryStream struct {
	entries map[string][][]byte
	appends int
	failAt  int
}

func newMemoryStream() *memoryStream {
	return &memoryStream{entries: map[string][][]byte{}}
}

func (m *memoryStream) Append(_ context.Context, stream string, payload []byte) error {
	m.appends++
	if m.failAt > 0 && m.appends == m.failAt {
		return errors.New("stream down")
	}
	m.entries[stream] = append(m.entries[stream], payload)
	return nil
}

func (m *memoryStream) Range(_ context.Context, stream string) ([][]byte, error) {
	return m.entries[stream], nil
}

func mustParse(t *testing.T, rows ...string) *maze.Grid {
	t.Helper()
	g, err := maze.Parse(rows)
	require.NoError(t, err)
	return g
}

func TestSolve(t *testing.T) {
	svc, err := NewSearchService(&nopLogger{}, nil)
	require.NoError(t, err)

	t.Run("Path found", func(t *testing.T) {
		var observed int
		run, err := svc.Solve(context.Background(), maze.Default(), i.SolveOptions{
			OnStep: func(pathfinding.Path) error {
				observed++
				return nil
			},
		})
		require.NoError(t, err)
		assert.True(t, run.Found)
		assert.NotEmpty(t, run.Path)
		assert.Equal(t, observed, run.Explored)
	})

	t.Run("Steps are not kept by default", func(t *testing.T) {
		run, err := svc.Solve(context.Background(), maze.Default(), i.SolveOptions{})
		require.NoError(t, err)
		assert.Positive(t, run.Explored)
		assert.Nil(t, run.Steps)
	})

	t.Run("Steps kept on request", func(t *testing.T) {
		var observed int
		run, err := svc.Solve(context.Background(), maze.Default(), i.SolveOptions{
			RecordSteps: true,
			OnStep: func(pathfinding.Path) error {
				observed++
				return nil
			},
		})
		require.NoError(t, err)
		assert.Equal(t, run.Explored, observed)
		require.Len(t, run.Steps, run.Explored)
		assert.Equal(t, run.Path, run.Steps[len(run.Steps)-1])
	})

	t.Run("No path is not an error", func(t *testing.T) {
		run, err := svc.Solve(context.Background(), mustParse(t, "O#X"), i.SolveOptions{})
		require.NoError(t, err)
		assert.False(t, run.Found)
		assert.Empty(t, run.Path)
		assert.Equal(t, 1, run.Explored)
	})

	t.Run("Malformed grid is an error", func(t *testing.T) {
		logger := &nopLogger{}
		svc, err := NewSearchService(logger, nil)
		require.NoError(t, err)

		run, err := svc.Solve(context.Background(), mustParse(t, "O O", "  X"), i.SolveOptions{})
		assert.ErrorIs(t, err, maze.ErrAmbiguousMarker)
		assert.Nil(t, run)
		assert.Equal(t, 1, logger.errors)
	})

	t.Run("Runs get distinct ids", func(t *testing.T) {
		a, err := svc.Solve(context.Background(), maze.Default(), i.SolveOptions{})
		require.NoError(t, err)
		b, err := svc.Solve(context.Background(), maze.Default(), i.SolveOptions{})
		require.NoError(t, err)
		assert.NotEqual(t, a.ID, b.ID)
	})
}

func TestBroadcast(t *testing.T) {
	t.Run("Events readable after the run returns", func(t *testing.T) {
		stream := newMemoryStream()
		svc, err := NewSearchService(&nopLogger{}, &SearchOptions{Stream: stream})
		require.NoError(t, err)

		run, err := svc.Broadcast(context.Background(), maze.Default())
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("pathfinder:run:%s:steps", run.ID), run.Stream)
		assert.Empty(t, run.Steps)

		events, err := svc.Events(context.Background(), run.ID)
		require.NoError(t, err)
		require.Len(t, events, run.Explored+1)
		for i, e := range events {
			assert.Equal(t, run.ID.String(), e.RunID)
			assert.Equal(t, i+1, e.Index)
			assert.Equal(t, i == len(events)-1, e.Done)
		}

		last := events[len(events)-1]
		assert.True(t, last.Found)
		assert.Equal(t, run.Path, last.Path)
	})

	t.Run("Stream holds every entry under the returned name", func(t *testing.T) {
		stream := newMemoryStream()
		svc, err := NewSearchService(&nopLogger{}, &SearchOptions{Stream: stream})
		require.NoError(t, err)

		run, err := svc.Broadcast(context.Background(), mustParse(t, "O X"))
		require.NoError(t, err)

		payloads, err := stream.Range(context.Background(), run.Stream)
		require.NoError(t, err)
		assert.Len(t, payloads, run.Explored+1)
		assert.Len(t, stream.entries, 1)
	})

	t.Run("Custom prefix", func(t *testing.T) {
		svc, err := NewSearchService(&nopLogger{}, &SearchOptions{Prefix: "demo", Stream: newMemoryStream()})
		require.NoError(t, err)

		run, err := svc.Broadcast(context.Background(), mustParse(t, "OX"))
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("demo:run:%s:steps", run.ID), run.Stream)
	})

	t.Run("Stream failure stops the run", func(t *testing.T) {
		stream := newMemoryStream()
		stream.failAt = 2
		svc, err := NewSearchService(&nopLogger{}, &SearchOptions{Stream: stream})
		require.NoError(t, err)

		run, err := svc.Broadcast(context.Background(), maze.Default())
		assert.Error(t, err)
		assert.Nil(t, run)
		assert.Equal(t, 2, stream.appends)
	})

	t.Run("Without stream", func(t *testing.T) {
		svc, err := NewSearchService(&nopLogger{}, nil)
		require.NoError(t, err)

		_, err = svc.Broadcast(context.Background(), maze.Default())
		assert.ErrorIs(t, err, ErrNoStream)
		_, err = svc.Events(context.Background(), uuid.New())
		assert.ErrorIs(t, err, ErrNoStream)
	})
}

func TestEvents(t *testing.T) {
	t.Run("Unknown run", func(t *testing.T) {
		svc, err := NewSearchService(&nopLogger{}, &SearchOptions{Stream: newMemoryStream()})
		require.NoError(t, err)

		_, err = svc.Events(context.Background(), uuid.New())
		assert.ErrorIs(t, err, ErrRunNotFound)
	})

	t.Run("Corrupt entry", func(t *testing.T) {
		stream := newMemoryStream()
		svc, err := NewSearchService(&nopLogger{}, &SearchOptions{Stream: stream})
		require.NoError(t, err)

		id := uuid.New()
		stream.entries[fmt.Sprintf("pathfinder:run:%s:steps", id)] = [][]byte{[]byte("not json")}
		_, err = svc.Events(context.Background(), id)
		assert.Error(t, err)
	})
}

func TestNewSearchServiceNeedsLogger(t *testing.T) {
	_, err := NewSearchService(nil, nil)
	assert.Error(t, err)
}
