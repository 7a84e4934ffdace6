package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort  string
	LogLevel string
	LogJSON  bool

	// Match pacing
	TurnWindow time.Duration

	// Room eviction
	RoomTTL       time.Duration
	SweepInterval time.Duration

	// Rate limiter backend (optional)
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Load reads the config from env, with .env support for local runs.
func Load() *Config {
	_ = godotenv.Load()

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	turnWindow := 10 * time.Second
	if v := os.Getenv("TURN_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			turnWindow = time.Duration(n) * time.Second
		}
	}

	roomTTL := time.Hour
	if v := os.Getenv("ROOM_TTL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			roomTTL = time.Duration(n) * time.Minute
		}
	}

	sweepInterval := 10 * time.Minute
	if v := os.Getenv("SWEEP_INTERVAL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			sweepInterval = time.Duration(n) * time.Minute
		}
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	return &Config{
		AppPort:       port,
		LogLevel:      logLevel,
		LogJSON:       os.Getenv("LOG_JSON") == "true",
		TurnWindow:    turnWindow,
		RoomTTL:       roomTTL,
		SweepInterval: sweepInterval,
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,
	}
}
