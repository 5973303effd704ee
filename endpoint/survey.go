package endpoint

import "github.com/gin-gonic/gin"

// ShowSurvey renders the satisfaction survey form.
func ShowSurvey(c *gin.Context) {
	render(c, "survey.html", nil)
}

// SubmitSurvey acknowledges a submission without persisting it.
func SubmitSurvey(c *gin.Context) {
	redirectWithFlash(c, "success", "Thank you for completing the survey!", "/dashboard")
}
