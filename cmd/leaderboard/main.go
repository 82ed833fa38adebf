package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/lixenwraith/pinball/config"
	"github.com/lixenwraith/pinball/leaderboard"
)

func main() {
	cfg := config.Load()

	var store leaderboard.Store
	var limiter leaderboard.Limiter

	// Redis backs the rate limiter for either store
	rdb, err := leaderboard.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Printf("[redis] unavailable, rate limiting disabled: %v", err)
	} else {
		defer rdb.Close()
		limiter = leaderboard.NewRateLimiter(rdb, cfg.RateLimit, cfg.RateWindow)
	}

	switch cfg.Store {
	case "postgres":
		db, err := leaderboard.ConnectPostgres(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		log.Println("[leaderboard] running migrations")
		if err := leaderboard.Migrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		store = leaderboard.NewSQLStore(db)

	case "redis":
		if rdb == nil {
			log.Fatalf("Redis store selected but Redis is unavailable")
		}
		store = leaderboard.NewRedisStore(rdb, cfg.LeaderboardKey)

	case "memory":
		store = leaderboard.NewMemoryStore()

	default:
		log.Fatalf("Unknown LEADERBOARD_STORE %q", cfg.Store)
	}

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	leaderboard.SetupRoutes(router, store, limiter)

	log.Printf("Starting leaderboard server on port %s (store=%s)", cfg.Port, cfg.Store)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
