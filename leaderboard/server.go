package leaderboard

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Limiter decides whether a client may submit now
type Limiter interface {
	Allow(ctx context.Context, client string) (bool, error)
}

var startTime = time.Now()

type submitRequest struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// SetupRoutes registers the score API on router; limiter may be nil
func SetupRoutes(router *gin.Engine, store Store, limiter Limiter) {
	router.Use(func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Accept")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	router.GET("/health", HealthCheck)
	api := router.Group("/api")
	{
		api.POST("/score", SubmitScore(store, limiter))
		api.GET("/leaderboard", GetLeaderboard(store))
	}
}

// HealthCheck returns server health status
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "pinball-leaderboard",
		"uptime":  time.Since(startTime).String(),
	})
}

// SubmitScore rate limits by client IP, then validates and stores the score
// A limiter outage does not block submissions
func SubmitScore(store Store, limiter Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if limiter != nil {
			ok, err := limiter.Allow(ctx, c.ClientIP())
			if err != nil {
				log.Printf("[leaderboard] limiter: %v", err)
			} else if !ok {
				c.JSON(http.StatusTooManyRequests, gin.H{"error": ErrRateLimited.Error()})
				return
			}
		}

		var req submitRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": ErrInvalidScore.Error()})
			return
		}
		score, err := ScoreFromFloat(req.Score)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": ErrInvalidScore.Error()})
			return
		}

		entry := Entry{Name: SanitizeName(req.Name), Score: score}
		if err := store.Submit(ctx, entry); err != nil {
			if errors.Is(err, ErrInvalidScore) {
				c.JSON(http.StatusBadRequest, gin.H{"error": ErrInvalidScore.Error()})
				return
			}
			log.Printf("[leaderboard] submit %q %d: %v", entry.Name, entry.Score, err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "store unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// GetLeaderboard returns {items:[{name,score}]} best first
func GetLeaderboard(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := ParseLimit(c.Query("limit"))
		items, err := store.Top(c.Request.Context(), limit)
		if err != nil {
			log.Printf("[leaderboard] top: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "store unavailable"})
			return
		}
		if items == nil {
			items = []Entry{}
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}
