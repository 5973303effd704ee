package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

// Without a Redis client the limiter must fail open: the clinic stays usable
// even when the rate-limiting backend is down.
func TestRateLimiterFailsOpenWithoutRedis(t *testing.T) {
	r := newSessionRouter()
	r.POST("/login", RateLimiter(RateLimitConfig{Limit: 2, Window: time.Minute}), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	for i := 0; i < 10; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d blocked without redis: %d", i, w.Code)
		}
	}
}
