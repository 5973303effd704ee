package middleware

import (
	"net/http"

	"github.com/adiwidyanto/clinic-ehr/util"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// RequireDoctor is the session gate: every route behind it needs a doctor id
// bound in the cookie session. The id is resolved once here and exposed to
// handlers through GetDoctorID, so downstream code never reads the session
// directly.
func RequireDoctor() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		id, ok := session.Get(SessionDoctorID).(uint)
		if !ok || id == 0 {
			util.AddFlash(c, "warning", "Please log in first.")
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Set(doctorIDKey, id)
		if name, ok := session.Get(SessionDoctorName).(string); ok {
			c.Set(doctorNameKey, name)
		}
		c.Next()
	}
}
