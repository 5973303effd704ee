package middleware

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Context keys set by the middleware chain.
const (
	dbKey         = "db"
	doctorIDKey   = "doctor_id"
	doctorNameKey = "doctor_name"
)

// Session value keys shared with the authentication endpoints.
const (
	SessionDoctorID   = "doctor_id"
	SessionDoctorName = "doctor_name"
)

// DatabaseMiddleware injects the shared database handle into the request
// context so handlers never touch a package-level global.
func DatabaseMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(dbKey, db)
		c.Next()
	}
}

// GetDB returns the request-scoped database handle, or nil if the middleware
// did not run.
func GetDB(c *gin.Context) *gorm.DB {
	v, ok := c.Get(dbKey)
	if !ok {
		return nil
	}
	db, ok := v.(*gorm.DB)
	if !ok {
		return nil
	}
	return db
}

// GetDoctorID returns the authenticated doctor's id resolved by RequireDoctor.
func GetDoctorID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(doctorIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	if !ok || id == 0 {
		return 0, false
	}
	return id, true
}

// GetDoctorName returns the authenticated doctor's display name, or "".
func GetDoctorName(c *gin.Context) string {
	v, ok := c.Get(doctorNameKey)
	if !ok {
		return ""
	}
	name, _ := v.(string)
	return name
}
