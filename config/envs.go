package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the service configuration of the application.
type Config struct {
	ServerAddr string // Listen address of the HTTP server
	GinMode    string // Mode for the Gin framework (release, debug, test)
	RedisAddr  string // Address of the redis server summaries are pushed to, empty to disable
	RedisKey   string // Redis list holding the summaries
	ResultsDir string // Folder the run results are saved to
	Episodes   int    // Default number of training episodes
}

// Load reads the configuration from the environment.
// Variables are first loaded from the given .env files (".env" when none are given) if they exist.
func Load(files ...string) Config {
	if err := godotenv.Load(files...); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	return Config{
		ServerAddr: getEnvWithDefault("PATHFINDER_ADDR", ":8080"),
		GinMode:    getEnvWithDefault("GIN_MODE", "release"),
		RedisAddr:  getEnvWithDefault("REDIS_ADDR", ""),
		RedisKey:   getEnvWithDefault("REDIS_KEY", "pathfinder:runs"),
		ResultsDir: getEnvWithDefault("RESULTS_DIR", "results"),
		Episodes:   getEnvAsIntWithDefault("PATHFINDER_EPISODES", 1000),
	}
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("[APP] [ERROR] Environment variable %s must be an integer, using %d: %v", key, defaultValue, err)
		return defaultValue
	}
	return value
}
