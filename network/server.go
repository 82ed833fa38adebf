package network

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lixenwraith/pinball/core"
)

// Server exposes the feed over HTTP: GET /ws and GET /health
type Server struct {
	feed   *Feed
	router *gin.Engine
	srv    *http.Server
	ln     net.Listener
}

// NewServer builds the router; gin output goes to the standard logger
// since the terminal owns stdout while the game runs
func NewServer(feed *Feed) *Server {
	router := gin.New()
	router.Use(gin.RecoveryWithWriter(log.Writer()))

	router.GET("/ws", feed.ServeWS)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "spectators": feed.PeerCount()})
	})

	return &Server{feed: feed, router: router}
}

// Handler returns the router for embedding or tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start binds addr synchronously and serves in the background
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("spectate listen %s: %w", addr, err)
	}
	s.ln = ln
	s.srv = &http.Server{Handler: s.router}

	core.Go(func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[spectate] serve: %v", err)
		}
	})
	log.Printf("[spectate] listening on %s", ln.Addr())
	return nil
}

// Addr returns the bound address, empty before Start
func (s *Server) Addr() string {
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}

// Stop closes spectators and shuts the listener down
func (s *Server) Stop(ctx context.Context) error {
	s.feed.Close()
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
