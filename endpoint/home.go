package endpoint

import "github.com/gin-gonic/gin"

// Home renders the landing page. No session required.
func Home(c *gin.Context) {
	render(c, "index.html", nil)
}
