package feedback

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	limitWindow = time.Minute
	limitMax    = 5
)

// Limiter throttles feedback submissions per client IP using a Redis
// counter with a rolling window. A nil limiter allows everything.
type Limiter struct {
	client *redis.Client
}

// NewLimiter creates a Redis-backed submission limiter.
func NewLimiter(client *redis.Client) *Limiter {
	return &Limiter{client: client}
}

// Allow reports whether the ip may submit another feedback record.
// Redis errors fail open: feedback is never lost to an unavailable
// rate limiter.
func (l *Limiter) Allow(ctx context.Context, ip string) bool {
	if l == nil || l.client == nil {
		return true
	}
	key := "feedback:rate:" + ip
	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return true
	}
	if count == 1 {
		l.client.Expire(ctx, key, limitWindow)
	}
	return count <= limitMax
}
