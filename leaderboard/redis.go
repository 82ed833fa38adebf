package leaderboard

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lixenwraith/pinball/parameter"
)

// ConnectRedis parses the URL and verifies the connection
func ConnectRedis(redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// RedisStore keeps the best score per name in a sorted set
type RedisStore struct {
	rdb *redis.Client
	key string
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, key string) *RedisStore {
	if key == "" {
		key = parameter.LeaderboardKey
	}
	return &RedisStore{rdb: rdb, key: key, ttl: parameter.LeaderboardTTL}
}

// Submit adds with GT so a lower score never replaces a name's best, then refreshes expiry
func (s *RedisStore) Submit(ctx context.Context, e Entry) error {
	if err := ValidateScore(e.Score); err != nil {
		return err
	}
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZAddArgs(ctx, s.key, redis.ZAddArgs{
			GT:      true,
			Members: []redis.Z{{Score: float64(e.Score), Member: e.Name}},
		})
		pipe.Expire(ctx, s.key, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis submit: %w", err)
	}
	return nil
}

func (s *RedisStore) Top(ctx context.Context, limit int) ([]Entry, error) {
	zs, err := s.rdb.ZRevRangeWithScores(ctx, s.key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis top: %w", err)
	}
	return entriesFromZ(zs), nil
}

// entriesFromZ converts sorted set members, skipping non-positive scores
func entriesFromZ(zs []redis.Z) []Entry {
	out := make([]Entry, 0, len(zs))
	for _, z := range zs {
		score := int64(math.Floor(z.Score))
		if score <= 0 {
			continue
		}
		var name string
		switch m := z.Member.(type) {
		case string:
			name = m
		default:
			name = fmt.Sprint(m)
		}
		out = append(out, Entry{Name: SanitizeName(name), Score: score})
	}
	return out
}

// RateLimiter is a fixed-window counter per client key
type RateLimiter struct {
	rdb    *redis.Client
	prefix string
	limit  int64
	window time.Duration
	now    func() time.Time
}

func NewRateLimiter(rdb *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		rdb:    rdb,
		prefix: parameter.RateLimitPrefix,
		limit:  int64(limit),
		window: window,
		now:    time.Now,
	}
}

// Allow counts one request for client and reports whether it fits in the current window
func (l *RateLimiter) Allow(ctx context.Context, client string) (bool, error) {
	key := rateKey(l.prefix, client, windowIndex(l.now(), l.window))

	var incr *redis.IntCmd
	_, err := l.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, l.window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("rate limit: %w", err)
	}
	return incr.Val() <= l.limit, nil
}

// windowIndex numbers fixed windows since the Unix epoch
func windowIndex(now time.Time, window time.Duration) int64 {
	if window <= 0 {
		return 0
	}
	return now.UnixNano() / int64(window)
}

func rateKey(prefix, client string, window int64) string {
	return prefix + client + ":" + strconv.FormatInt(window, 10)
}
