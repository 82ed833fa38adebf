package parameter

import "time"

// Leaderboard
const (
	LeaderboardKey    = "ball3d:lb:table1:v1"
	LeaderboardTTL    = 365 * 24 * time.Hour
	RateLimitPrefix   = "ball3d:rl:"
	RateLimitCount    = 12
	RateLimitWindow   = 10 * time.Second
	NameMaxRunes      = 12
	DefaultPlayerName = "Anonymous"
	TopDefault        = 20
	TopMax            = 50
	LocalStoreCap     = 200
	ClientTimeout     = 4 * time.Second
)

// Spectator Feed
const (
	FeedWriteWait  = 10 * time.Second
	FeedPongWait   = 60 * time.Second
	FeedPingPeriod = 30 * time.Second
	FeedSendBuffer = 64
)
