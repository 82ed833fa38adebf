package network

import (
	"time"

	"github.com/lixenwraith/pinball/parameter"
)

// Config holds spectator feed configuration
type Config struct {
	// Address to bind; empty disables the feed
	Address string

	// Connection limits
	MaxPeers int

	// Timing
	WriteTimeout time.Duration
	PongWait     time.Duration
	PingInterval time.Duration // Must be less than PongWait
	HudInterval  time.Duration // Minimum gap between HUD frames per feed

	// Buffer sizes
	SendQueueSize   int
	ReadBufferSize  int
	WriteBufferSize int
}

// DefaultConfig returns the feed defaults
func DefaultConfig() *Config {
	return &Config{
		MaxPeers:        32,
		WriteTimeout:    parameter.FeedWriteWait,
		PongWait:        parameter.FeedPongWait,
		PingInterval:    parameter.FeedPingPeriod,
		HudInterval:     50 * time.Millisecond,
		SendQueueSize:   parameter.FeedSendBuffer,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
}
