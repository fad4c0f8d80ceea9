// Package config loads the service configuration from environment variables,
// optionally seeded from a .env file in the working directory.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the runtime configuration of the scheduling service
type Config struct {
	Env           string        // application environment (e.g. "dev", "prod")
	Port          string        // HTTP port to listen on
	MaxTimetables int           // result cap of a single request
	StrictTimings bool          // refuse requests referencing slots without timing data
	SearchTimeout time.Duration // upper bound of a single search
	Cache         CacheConfig
	Redis         RedisConfig
}

// CacheConfig controls the timetable result cache. Caching is disabled when
// Enabled is false or Redis cannot be reached at startup.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
	Prefix  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Load reads the configuration. Values already present in the environment win
// over the ones in .env; a missing .env file is not an error.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: cannot read .env: %v", err)
	}

	return Config{
		Env:           getenv("APP_ENV", "dev"),
		Port:          getenv("APP_PORT", "8080"),
		MaxTimetables: mustInt("MAX_TIMETABLES", 500),
		StrictTimings: parseBool(getenv("STRICT_TIMINGS", "false")),
		SearchTimeout: mustDuration("SEARCH_TIMEOUT", "10s"),
		Cache: CacheConfig{
			Enabled: parseBool(getenv("CACHE_ENABLED", "true")),
			TTL:     mustDuration("CACHE_TTL", "10m"),
			Prefix:  getenv("CACHE_PREFIX", "timetables"),
		},
		Redis: RedisConfig{
			Addr:     redisAddr(),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       mustInt("REDIS_DB", 0),
		},
	}
}

// REDIS_HOST and REDIS_PORT take precedence over REDIS_ADDR
func redisAddr() string {
	host, port := os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT")
	if host != "" && port != "" {
		return host + ":" + port
	}
	return getenv("REDIS_ADDR", "localhost:6379")
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// mustInt is like getenv but converts the value into an integer, exiting on malformed values
func mustInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

func mustDuration(key, def string) time.Duration {
	s := getenv(key, def)
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		log.Fatalf("invalid duration for %s: %q", key, s)
	}
	return d
}

func parseBool(s string) bool {
	s = strings.TrimSpace(s)
	return strings.EqualFold(s, "true") || s == "1"
}
