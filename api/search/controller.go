package searchapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/beka-birhanu/vinom-pathfinder/maze"
	"github.com/beka-birhanu/vinom-pathfinder/pathfinding"
	"github.com/beka-birhanu/vinom-pathfinder/service"
	"github.com/beka-birhanu/vinom-pathfinder/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	defaultMaxSide          = 256
	defaultMaxRecordedCells = 32 * 32
)

// Limits bounds the mazes accepted over HTTP. Zero fields take the defaults.
type Limits struct {
	MaxRows int
	MaxCols int
	// MaxRecordedCells caps the grid area of requests with include_steps set,
	// since the recorded steps grow with the square of the explored area.
	MaxRecordedCells int
}

func (l Limits) withDefaults() Limits {
	if l.MaxRows <= 0 {
		l.MaxRows = defaultMaxSide
	}
	if l.MaxCols <= 0 {
		l.MaxCols = defaultMaxSide
	}
	if l.MaxRecordedCells <= 0 {
		l.MaxRecordedCells = defaultMaxRecordedCells
	}
	return l
}

// maxBodyBytes allows every row quoted and escaped, plus room for the envelope.
func (l Limits) maxBodyBytes() int64 {
	return int64(l.MaxRows)*int64(2*l.MaxCols+8) + 1024
}

// Controller serves maze searches.
type Controller struct {
	searcher i.Searcher
	limits   Limits
}

// NewController initializes a Controller.
func NewController(s i.Searcher, limits Limits) (*Controller, error) {
	if s == nil {
		return nil, errors.New("search controller needs a searcher")
	}
	return &Controller{searcher: s, limits: limits.withDefaults()}, nil
}

// RegisterPublic registers public routes.
func (c *Controller) RegisterPublic(route *gin.RouterGroup) {
	route.GET("/maze", c.defaultMaze)
	route.POST("/search", c.search)
}

// RegisterProtected registers protected routes.
func (c *Controller) RegisterProtected(route *gin.RouterGroup) {
	route.POST("/search/broadcast", c.broadcast)
	route.GET("/search/broadcast/:id/events", c.events)
}

// defaultMaze returns the built-in layout.
func (c *Controller) defaultMaze(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, &MazeResponse{Maze: maze.Default().Rows()})
}

// search runs a search and returns the path, with every intermediate step when asked.
func (c *Controller) search(ctx *gin.Context) {
	request, grid, ok := c.bindGrid(ctx)
	if !ok {
		return
	}

	run, err := c.searcher.Solve(ctx.Request.Context(), grid, i.SolveOptions{RecordSteps: request.IncludeSteps})
	if err != nil {
		writeSearchError(ctx, err)
		return
	}

	var steps [][]maze.CellPosition
	for _, step := range run.Steps {
		steps = append(steps, step)
	}
	ctx.JSON(http.StatusOK, &SearchResponse{
		RunID:    run.ID.String(),
		Found:    run.Found,
		Path:     nonNil(run.Path),
		Explored: run.Explored,
		Steps:    steps,
	})
}

// broadcast runs a search whose steps are stored for remote viewers to replay.
func (c *Controller) broadcast(ctx *gin.Context) {
	_, grid, ok := c.bindGrid(ctx)
	if !ok {
		return
	}

	run, err := c.searcher.Broadcast(ctx.Request.Context(), grid)
	if err != nil {
		if errors.Is(err, service.ErrNoStream) {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		writeSearchError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, &BroadcastResponse{
		RunID:  run.ID.String(),
		Stream: run.Stream,
		Found:  run.Found,
		Path:   nonNil(run.Path),
	})
}

// events replays the steps of a finished broadcast run.
func (c *Controller) events(ctx *gin.Context) {
	runID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid run id"})
		return
	}

	events, err := c.searcher.Events(ctx.Request.Context(), runID)
	switch {
	case err == nil:
		ctx.JSON(http.StatusOK, &EventsResponse{RunID: runID.String(), Events: events})
	case errors.Is(err, service.ErrRunNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNoStream):
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while reading run events"})
	}
}

// bindGrid decodes the request body into a grid, answering 400 on failure or when the
// maze exceeds the configured limits.
func (c *Controller) bindGrid(ctx *gin.Context) (*SearchRequest, *maze.Grid, bool) {
	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, c.limits.maxBodyBytes())

	var request SearchRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit)})
			return nil, nil, false
		}
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, nil, false
	}

	if len(request.Maze) > c.limits.MaxRows {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("maze has more than %d rows", c.limits.MaxRows)})
		return nil, nil, false
	}
	for _, row := range request.Maze {
		if len(row) > c.limits.MaxCols {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("maze has more than %d columns", c.limits.MaxCols)})
			return nil, nil, false
		}
	}

	grid, err := maze.Parse(request.Maze)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, nil, false
	}

	if request.IncludeSteps && grid.Height()*grid.Width() > c.limits.MaxRecordedCells {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("include_steps is limited to mazes of %d cells", c.limits.MaxRecordedCells)})
		return nil, nil, false
	}
	return &request, grid, true
}

// writeSearchError maps grid errors to 400 and anything else to 500.
func writeSearchError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, maze.ErrMarkerNotFound),
		errors.Is(err, maze.ErrAmbiguousMarker),
		errors.Is(err, maze.ErrOutOfBounds):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while searching maze"})
	}
}

func nonNil(p pathfinding.Path) []maze.CellPosition {
	if p == nil {
		return []maze.CellPosition{}
	}
	return p
}
