package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"ops-agent-backend/internal/auth"
	"ops-agent-backend/internal/logger"
	"ops-agent-backend/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const rateLimiterSweepInterval = 5 * time.Minute

// RateLimiter counts requests per key inside a fixed window
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) RateDecision
	Close() error
}

// RateDecision is the outcome of one Allow call
type RateDecision struct {
	Allowed bool
	Count   int
	ResetAt time.Time
}

// RateLimit rejects callers exceeding limit requests per window with 429.
// Callers are keyed by authenticated user, falling back to client IP.
func RateLimit(limiter RateLimiter, limit int, window time.Duration, m *metrics.HTTP) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil || limit <= 0 {
			c.Next()
			return
		}

		key := "ip:" + c.ClientIP()
		if userID, ok := auth.GetUserID(c); ok && userID != "" {
			key = "user:" + userID
		}

		decision := limiter.Allow(c.Request.Context(), key, limit, window)
		remaining := limit - decision.Count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		if !decision.ResetAt.IsZero() {
			c.Header("X-RateLimit-Reset", strconv.FormatInt(decision.ResetAt.Unix(), 10))
		}

		if !decision.Allowed {
			if m != nil {
				m.RateLimitHits.WithLabelValues(c.FullPath()).Inc()
			}
			retryAfter := int(time.Until(decision.ResetAt).Seconds()) + 1
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":   "Too many requests",
				"message": fmt.Sprintf("rate limit of %d requests per %s exceeded", limit, window),
			})
			return
		}

		c.Next()
	}
}

type memoryRateLimiter struct {
	mu      sync.Mutex
	entries map[string]rateState
	now     func() time.Time
	stopCh  chan struct{}
	once    sync.Once
}

type rateState struct {
	count     int
	windowEnd time.Time
}

// NewMemoryRateLimiter creates a process-local limiter
func NewMemoryRateLimiter() RateLimiter {
	rl := newMemoryRateLimiter(time.Now)
	go rl.sweepLoop()
	return rl
}

func newMemoryRateLimiter(now func() time.Time) *memoryRateLimiter {
	return &memoryRateLimiter{
		entries: make(map[string]rateState),
		now:     now,
		stopCh:  make(chan struct{}),
	}
}

func (rl *memoryRateLimiter) Allow(_ context.Context, key string, limit int, window time.Duration) RateDecision {
	if limit <= 0 {
		return RateDecision{Allowed: true}
	}
	if window <= 0 {
		window = time.Minute
	}
	now := rl.now()
	rl.mu.Lock()
	defer rl.mu.Unlock()

	state, ok := rl.entries[key]
	if !ok || !now.Before(state.windowEnd) {
		state = rateState{count: 1, windowEnd: now.Add(window)}
		rl.entries[key] = state
		return RateDecision{Allowed: true, Count: state.count, ResetAt: state.windowEnd}
	}
	if state.count >= limit {
		return RateDecision{Allowed: false, Count: state.count, ResetAt: state.windowEnd}
	}
	state.count++
	rl.entries[key] = state
	return RateDecision{Allowed: true, Count: state.count, ResetAt: state.windowEnd}
}

func (rl *memoryRateLimiter) sweepLoop() {
	ticker := time.NewTicker(rateLimiterSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.cleanup(rl.now())
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *memoryRateLimiter) cleanup(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for key, state := range rl.entries {
		if !now.Before(state.windowEnd) {
			delete(rl.entries, key)
		}
	}
}

func (rl *memoryRateLimiter) Close() error {
	rl.once.Do(func() {
		close(rl.stopCh)
	})
	return nil
}

// fixedWindowScript counts a hit and returns {count, ttl ms}. A key that has
// lost its expiry is given a fresh window instead of counting forever.
var fixedWindowScript = redis.NewScript(`
local count = redis.call('INCR', KEYS[1])
local ttl = redis.call('PTTL', KEYS[1])
if ttl < 0 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
	ttl = tonumber(ARGV[1])
end
return {count, ttl}
`)

type redisRateLimiter struct {
	client  *redis.Client
	log     *logger.Logger
	prefix  string
	timeout time.Duration
}

// NewRedisRateLimiter creates a limiter shared across replicas through Redis.
// Redis errors after startup let requests through.
func NewRedisRateLimiter(ctx context.Context, addr, password string, db int, log *logger.Logger) (RateLimiter, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to reach redis at %s: %w", addr, err)
	}
	return newRedisRateLimiter(client, log), nil
}

func newRedisRateLimiter(client *redis.Client, log *logger.Logger) *redisRateLimiter {
	return &redisRateLimiter{
		client:  client,
		log:     log,
		prefix:  "ops-agent:ratelimit:",
		timeout: 250 * time.Millisecond,
	}
}

func (rl *redisRateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) RateDecision {
	if limit <= 0 {
		return RateDecision{Allowed: true}
	}
	if window <= 0 {
		window = time.Minute
	}
	ctx, cancel := context.WithTimeout(ctx, rl.timeout)
	defer cancel()

	redisKey := rl.prefix + key
	res, err := fixedWindowScript.Run(ctx, rl.client, []string{redisKey}, window.Milliseconds()).Int64Slice()
	if err != nil || len(res) != 2 {
		rl.log.WithError(err).WithField("key", key).Warn("Redis rate limiter unavailable, allowing request")
		return RateDecision{Allowed: true}
	}
	count, ttl := res[0], time.Duration(res[1])*time.Millisecond

	return RateDecision{
		Allowed: int(count) <= limit,
		Count:   int(count),
		ResetAt: time.Now().Add(ttl),
	}
}

func (rl *redisRateLimiter) Close() error {
	return rl.client.Close()
}
