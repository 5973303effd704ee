package middleware

import (
	"time"

	"github.com/adiwidyanto/clinic-ehr/util"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RequestLogger emits one structured log line per request. The doctor_id
// field is read after the handler chain finishes, so gated routes log the
// identity RequireDoctor resolved.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := util.Logger().WithFields(logrus.Fields{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
			"ip":          c.ClientIP(),
		})
		if id, ok := GetDoctorID(c); ok {
			entry = entry.WithField("doctor_id", id)
		}
		entry.Info("request completed")
	}
}
