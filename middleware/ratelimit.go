package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/adiwidyanto/clinic-ehr/config"
	"github.com/adiwidyanto/clinic-ehr/util"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	defaultRateLimit  = 5                // attempts
	defaultRateWindow = 15 * time.Minute // per window
)

// RateLimitConfig holds configuration for rate limiting.
type RateLimitConfig struct {
	Limit  int
	Window time.Duration
}

// RateLimiter throttles a route per client IP. It is meant for the login and
// registration forms, where unbounded retries enable credential stuffing.
// When Redis is unavailable the limiter fails open so the clinic stays usable.
func RateLimiter(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.Limit == 0 {
		cfg.Limit = defaultRateLimit
	}
	if cfg.Window == 0 {
		cfg.Window = defaultRateWindow
	}

	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		path := c.Request.URL.Path
		key := fmt.Sprintf("ratelimit:%s:%s", path, clientIP)

		allowed, err := checkRateLimit(key, cfg.Limit, cfg.Window)
		if err != nil {
			// Allow the request rather than locking everyone out on a
			// Redis failure.
			util.Logger().WithError(err).WithField("ip", clientIP).Warn("rate limit check failed")
			c.Next()
			return
		}

		if !allowed {
			util.Logger().WithFields(logrus.Fields{
				"ip":   clientIP,
				"path": path,
			}).Warn("rate limit exceeded")
			util.AddFlash(c, "danger", "Too many attempts. Please try again later.")
			c.Redirect(http.StatusFound, path)
			c.Abort()
			return
		}

		c.Next()
	}
}

// checkRateLimit increments the counter for key and reports whether the
// request is still within the limit. A nil Redis client always allows.
func checkRateLimit(key string, limit int, window time.Duration) (bool, error) {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return true, nil
	}

	ctx := context.Background()

	pipe := rdb.Pipeline()
	incrCmd := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return false, fmt.Errorf("failed to check rate limit: %w", err)
	}

	return incrCmd.Val() <= int64(limit), nil
}
