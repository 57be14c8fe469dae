package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

type RateLimiterConfig struct {
	Rate  rate.Limit
	Burst int
	// TTL controls how long an idle client keeps its limiter state.
	TTL time.Duration
}

// RateLimiter enforces a token-bucket limit per client IP. Limiter state
// for idle clients expires so the map cannot grow without bound.
type RateLimiter struct {
	cfg      RateLimiterConfig
	limiters *gocache.Cache
}

func NewRateLimiter(cfg RateLimiterConfig) *RateLimiter {
	if cfg.TTL == 0 {
		cfg.TTL = 10 * time.Minute
	}
	return &RateLimiter{
		cfg:      cfg,
		limiters: gocache.New(cfg.TTL, 2*cfg.TTL),
	}
}

func (rl *RateLimiter) limiterFor(ip string) *rate.Limiter {
	if v, ok := rl.limiters.Get(ip); ok {
		return v.(*rate.Limiter)
	}
	limiter := rate.NewLimiter(rl.cfg.Rate, rl.cfg.Burst)
	// Add loses the race to a concurrent insert; re-read to converge on
	// one limiter per IP.
	if err := rl.limiters.Add(ip, limiter, gocache.DefaultExpiration); err != nil {
		if v, ok := rl.limiters.Get(ip); ok {
			return v.(*rate.Limiter)
		}
	}
	return limiter
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.limiterFor(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}
