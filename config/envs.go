package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP        string // Host IP for the server
	RESTPort      int    // Port for the REST API
	RedisAddr     string // Address of the Redis server used to broadcast steps; empty disables it
	RedisPassword string // Password for the Redis server
	GinMode       string // Mode for the Gin framework (e.g., release, debug, test)
	JWTSecret     string // Secret key for JWT signing
	JWTIssuer     string // Issuer claim for JWTs
	StepDelayMS   int    // Pause between rendered search steps, in milliseconds
	StreamTTLSec  int    // How long a broadcast run's steps stay readable, in seconds
	MaxGridSide   int    // Largest accepted row or column count on the HTTP API
}

// Envs holds the application's configuration loaded from environment variables.
var Envs = initConfig()

// initConfig initializes and returns the application configuration.
// It loads environment variables from a .env file.
func initConfig() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	return Config{
		HostIP:        getEnvWithDefault("HOST_IP", "0.0.0.0"),
		RESTPort:      getEnvAsIntWithDefault("REST_PORT", 8080),
		RedisAddr:     getEnvWithDefault("REDIS_ADDR", ""),
		RedisPassword: getEnvWithDefault("REDIS_PASSWORD", ""),
		GinMode:       getEnvWithDefault("GIN_MODE", "release"),
		JWTSecret:     getEnvWithDefault("JWT_SECRET", ""),
		JWTIssuer:     getEnvWithDefault("JWT_ISSUER", "vinom-pathfinder"),
		StepDelayMS:   getEnvAsIntWithDefault("STEP_DELAY_MS", 200),
		StreamTTLSec:  getEnvAsIntWithDefault("STREAM_TTL_SEC", 3600),
		MaxGridSide:   getEnvAsIntWithDefault("MAX_GRID_SIDE", 256),
	}
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsIntWithDefault retrieves an integer environment variable or returns a default value if not set.
// A value that cannot be parsed is fatal.
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}
