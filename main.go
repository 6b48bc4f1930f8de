package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/beka-birhanu/vinom-pathfinder/api"
	api_i "github.com/beka-birhanu/vinom-pathfinder/api/i"
	"github.com/beka-birhanu/vinom-pathfinder/api/identity"
	searchapi "github.com/beka-birhanu/vinom-pathfinder/api/search"
	"github.com/beka-birhanu/vinom-pathfinder/config"
	logger "github.com/beka-birhanu/vinom-pathfinder/infrastruture/log"
	"github.com/beka-birhanu/vinom-pathfinder/infrastruture/stream"
	"github.com/beka-birhanu/vinom-pathfinder/infrastruture/token"
	"github.com/beka-birhanu/vinom-pathfinder/maze"
	"github.com/beka-birhanu/vinom-pathfinder/render"
	"github.com/beka-birhanu/vinom-pathfinder/service"
	"github.com/beka-birhanu/vinom-pathfinder/service/i"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const viewerTokenTTL = 24 * time.Hour

// Global variables for dependencies
var (
	redisClient      *redis.Client
	stepStream       i.StepStream
	jwtTokenizer     i.Tokenizer
	searchService    i.Searcher
	searchController api_i.Controller
	router           *api.Router
	appLogger        *logger.Logger
)

// initAppLogger runs before any other logger exists, so its failure goes to the standard logger.
func initAppLogger(out io.Writer) {
	var err error
	appLogger, err = logger.New("APP", config.ColorGreen, out)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Creating app logger: %v", err)
	}
}

func exitOnError(msg string, err error) {
	appLogger.Error(fmt.Sprintf("%s: %v", msg, err))
	os.Exit(1)
}

func loadGrid(path string) *maze.Grid {
	if path == "" {
		return maze.Default()
	}

	f, err := os.Open(path)
	if err != nil {
		exitOnError("Opening maze file", err)
	}
	defer f.Close()

	grid, err := maze.Load(f)
	if err != nil {
		exitOnError("Invalid maze", err)
	}
	return grid
}

func initRedis(ctx context.Context) {
	if config.Envs.RedisAddr == "" {
		appLogger.Warning("REDIS_ADDR not set, step broadcasting disabled")
		return
	}

	redisClient = redis.NewClient(&redis.Options{
		Addr:     config.Envs.RedisAddr,
		Password: config.Envs.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		exitOnError("Redis ping failed", err)
	}

	var err error
	stepStream, err = stream.NewRedisStepStream(redisClient, config.Envs.StreamTTLSec)
	if err != nil {
		exitOnError("Creating step stream", err)
	}
	appLogger.Info("Connected to Redis")
}

func initJWTTokenizer() {
	var err error
	jwtTokenizer, err = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	if err != nil {
		exitOnError("Creating JWT tokenizer", err)
	}
	appLogger.Info("JWT Tokenizer initialized")
}

func initSearchService(out *os.File) {
	searchLogger, err := logger.New("SEARCH", config.ColorCyan, out)
	if err != nil {
		exitOnError("Creating search logger", err)
	}

	searchService, err = service.NewSearchService(searchLogger, &service.SearchOptions{Stream: stepStream})
	if err != nil {
		exitOnError("Creating search service", err)
	}
	appLogger.Info("Search service initialized")
}

func initSearchController() {
	var err error
	searchController, err = searchapi.NewController(searchService, searchapi.Limits{
		MaxRows: config.Envs.MaxGridSide,
		MaxCols: config.Envs.MaxGridSide,
	})
	if err != nil {
		exitOnError("Creating search controller", err)
	}
	appLogger.Info("Search controller initialized")
}

func initRouter(t i.Tokenizer) {
	gin.SetMode(config.Envs.GinMode)
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{searchController},
		AuthorizationMiddleware: identity.Authoriz(t),
	})
	appLogger.Info("Router initialized")
}

func serve() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	initRedis(ctx)
	if redisClient != nil {
		defer redisClient.Close()
	}
	initJWTTokenizer()
	initSearchService(os.Stdout)
	initSearchController()
	initRouter(jwtTokenizer)

	if err := router.Run(); err != nil {
		exitOnError("Starting server", err)
	}
}

func issueToken(viewer string) {
	initJWTTokenizer()
	t, err := jwtTokenizer.Generate(map[string]interface{}{"viewer": viewer}, viewerTokenTTL)
	if err != nil {
		exitOnError("Generating token", err)
	}
	fmt.Println(t)
}

// solve animates the search on the terminal. Logs go to stderr so they do not tear frames.
func solve(mazeFile string) {
	grid := loadGrid(mazeFile)
	initSearchService(os.Stderr)

	terminal := render.NewTerminal(grid, os.Stdout, time.Duration(config.Envs.StepDelayMS)*time.Millisecond)
	run, err := searchService.Solve(context.Background(), grid, i.SolveOptions{OnStep: terminal.Step})
	if err != nil {
		if errors.Is(err, maze.ErrMarkerNotFound) || errors.Is(err, maze.ErrAmbiguousMarker) {
			exitOnError("Invalid maze", err)
		}
		exitOnError("Search failed", err)
	}

	fmt.Println(render.Summary(run.Path, run.Explored))
}

func main() {
	mazeFile := flag.String("maze", "", "maze layout file, one row per line ('#' wall, ' ' open, 'O' start, 'X' goal); built-in maze when empty")
	serveHTTP := flag.Bool("serve", false, "serve the HTTP API instead of solving on the terminal")
	viewer := flag.String("issue-token", "", "print a broadcast token for the named viewer and exit")
	flag.Parse()

	initAppLogger(os.Stderr)

	switch {
	case *viewer != "":
		issueToken(*viewer)
	case *serveHTTP:
		serve()
	default:
		solve(*mazeFile)
	}
}
