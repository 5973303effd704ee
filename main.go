// main.go
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/adiwidyanto/clinic-ehr/config"
	"github.com/adiwidyanto/clinic-ehr/endpoint"
	"github.com/adiwidyanto/clinic-ehr/middleware"
	"github.com/adiwidyanto/clinic-ehr/model"
	"github.com/adiwidyanto/clinic-ehr/util"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func main() {
	// Load the configuration
	cfg := config.LoadConfig()

	db, err := config.ConnectDatabase()
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if err := db.AutoMigrate(&model.Doctor{}, &model.Patient{}); err != nil {
		log.Fatalf("Error running migrations: %v", err)
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatalf("Error creating upload directory: %v", err)
	}

	// Redis is optional; without it the login rate limiter fails open.
	if _, err := config.ConnectRedis(); err != nil {
		util.Logger().WithError(err).Warn("redis unavailable, rate limiting disabled")
	}

	// Set Gin mode from config
	gin.SetMode(cfg.GinMode)

	router := setupRouter(cfg, db)

	// Start server on specified port
	address := fmt.Sprintf(":%d", cfg.AppPort)
	if err := router.Run(address); err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}

func setupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	router := gin.Default()

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	router.Use(sessions.Sessions("clinic_session", store))
	router.Use(middleware.DatabaseMiddleware(db))
	router.Use(middleware.RequestLogger())

	router.LoadHTMLGlob("templates/*.html")

	router.GET("/", endpoint.Home)
	router.GET("/register", endpoint.ShowRegisterForm)
	router.POST("/register", middleware.RateLimiter(middleware.RateLimitConfig{}), endpoint.Register)
	router.GET("/login", endpoint.ShowLoginForm)
	router.POST("/login", middleware.RateLimiter(middleware.RateLimitConfig{}), endpoint.Login)

	// Logout stays outside the gate so it is idempotent for signed-out browsers.
	router.GET("/logout", endpoint.Logout)

	authed := router.Group("/", middleware.RequireDoctor())
	authed.GET("/dashboard", endpoint.Dashboard)
	authed.GET("/patient/new", endpoint.ShowPatientForm)
	authed.POST("/patient/new", endpoint.CreatePatient)
	authed.GET("/patient/:id/edit", endpoint.ShowEditPatientForm)
	authed.POST("/patient/:id/edit", endpoint.UpdatePatient)
	authed.POST("/patient/:id/delete", endpoint.DeletePatient)
	authed.GET("/survey", endpoint.ShowSurvey)
	authed.POST("/survey", endpoint.SubmitSurvey)
	authed.GET("/uploads/:filename", endpoint.ServeUpload)

	return router
}
