package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/lixenwraith/pinball/parameter"
)

type Config struct {
	// Environment
	Environment string

	// Table
	Table    string
	TableDir string

	// Rules
	Boost       string
	DrainReset  string
	Balls       int
	IdlePhysics bool

	// Client side leaderboard
	Player         string
	LeaderboardURL string
	ScoresPath     string

	// Spectator feed
	SpectateAddr string

	// Audio
	Mute bool

	// Leaderboard server
	Port           string
	Store          string
	RedisURL       string
	DatabaseURL    string
	LeaderboardKey string
	RateLimit      int
	RateWindow     time.Duration
}

// Load reads .env when present, then the process environment
func Load() *Config {
	godotenv.Load()

	return &Config{
		Environment: getEnv("ENVIRONMENT", "development"),

		Table:    getEnv("PINBALL_TABLE", parameter.DefaultTable),
		TableDir: getEnv("PINBALL_TABLE_DIR", ""),

		Boost:       getEnv("PINBALL_BOOST", "additive"),
		DrainReset:  getEnv("PINBALL_DRAIN_RESET", "floor"),
		Balls:       getEnvInt("PINBALL_BALLS", parameter.DefaultBalls),
		IdlePhysics: getEnvBool("PINBALL_IDLE_PHYSICS", true),

		Player:         getEnv("PINBALL_PLAYER", ""),
		LeaderboardURL: getEnv("PINBALL_LEADERBOARD_URL", ""),
		ScoresPath:     getEnv("PINBALL_SCORES_PATH", ""),

		SpectateAddr: getEnv("PINBALL_SPECTATE_ADDR", ""),

		Mute: getEnvBool("PINBALL_MUTE", false),

		Port:           getEnv("PORT", "8080"),
		Store:          strings.ToLower(getEnv("LEADERBOARD_STORE", "redis")),
		RedisURL:       getEnv("REDIS_URL", "redis://localhost:6379/0"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		LeaderboardKey: getEnv("LEADERBOARD_KEY", parameter.LeaderboardKey),
		RateLimit:      getEnvInt("RATE_LIMIT", parameter.RateLimitCount),
		RateWindow:     getEnvDuration("RATE_WINDOW", parameter.RateLimitWindow),
	}
}

// Production reports whether the server runs in release mode
func (c *Config) Production() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}
