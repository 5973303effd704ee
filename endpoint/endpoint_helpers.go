package endpoint

import (
	"net/http"

	"github.com/adiwidyanto/clinic-ehr/middleware"
	"github.com/adiwidyanto/clinic-ehr/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// render merges the pending flash messages and the signed-in doctor's name
// into every template context.
func render(c *gin.Context, tmpl string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["flashes"] = util.TakeFlashes(c)
	if name := middleware.GetDoctorName(c); name != "" {
		data["doctor_name"] = name
	}
	c.HTML(http.StatusOK, tmpl, data)
}

func getDBOrRedirect(c *gin.Context) (*gorm.DB, bool) {
	db := middleware.GetDB(c)
	if db == nil {
		redirectWithFlash(c, "danger", "Something went wrong. Please try again.", "/")
		return nil, false
	}
	return db, true
}

func redirectWithFlash(c *gin.Context, category, message, location string) {
	util.AddFlash(c, category, message)
	c.Redirect(http.StatusFound, location)
}
