package endpoint

import (
	"net/http"
	"strings"

	"github.com/adiwidyanto/clinic-ehr/middleware"
	"github.com/adiwidyanto/clinic-ehr/model"
	"github.com/adiwidyanto/clinic-ehr/util"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ShowRegisterForm renders the registration form.
func ShowRegisterForm(c *gin.Context) {
	render(c, "register.html", nil)
}

// Register creates a new doctor account. The plaintext password is hashed
// with argon2id and a fresh salt; it is never stored or logged.
func Register(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	email := strings.TrimSpace(c.PostForm("email"))
	password := strings.TrimSpace(c.PostForm("password"))
	if name == "" || email == "" || password == "" {
		redirectWithFlash(c, "danger", "Fill all fields", "/register")
		return
	}

	db, ok := getDBOrRedirect(c)
	if !ok {
		return
	}

	if !ensureEmailAvailable(c, db, email) {
		return
	}

	doctor, ok := buildDoctorOrRedirect(c, name, email, password)
	if !ok {
		return
	}

	if err := db.Create(&doctor).Error; err != nil {
		// The unique index arbitrates concurrent registrations with the
		// same email; the loser gets the normal duplicate outcome.
		util.Logger().WithError(err).Warn("doctor registration failed")
		redirectWithFlash(c, "warning", "Email already registered!", "/register")
		return
	}

	redirectWithFlash(c, "success", "Registration successful! Please log in.", "/login")
}

// ShowLoginForm renders the login form.
func ShowLoginForm(c *gin.Context) {
	render(c, "login.html", nil)
}

// Login authenticates a doctor and binds the id and display name into the
// cookie session. Unknown email and wrong password produce the exact same
// user-visible outcome.
func Login(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := strings.TrimSpace(c.PostForm("password"))

	db, ok := getDBOrRedirect(c)
	if !ok {
		return
	}

	doctor, err := loadDoctorByEmail(db, email)
	if err != nil {
		invalidCredentials(c)
		return
	}

	match, err := util.VerifyPassword(password, doctor.Password, doctor.PasswordSalt)
	if err != nil || !match {
		invalidCredentials(c)
		return
	}

	session := sessions.Default(c)
	session.Set(middleware.SessionDoctorID, doctor.ID)
	session.Set(middleware.SessionDoctorName, doctor.Name)
	session.AddFlash(util.Flash{Category: "success", Message: "Logged in successfully!"})
	if err := session.Save(); err != nil {
		util.Logger().WithError(err).Error("failed to save session")
	}
	c.Redirect(http.StatusFound, "/dashboard")
}

// Logout clears the session bindings. Calling it while already logged out is
// not an error, so it sits outside the session gate.
func Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Delete(middleware.SessionDoctorID)
	session.Delete(middleware.SessionDoctorName)
	session.AddFlash(util.Flash{Category: "info", Message: "You have been logged out."})
	if err := session.Save(); err != nil {
		util.Logger().WithError(err).Error("failed to save session")
	}
	c.Redirect(http.StatusFound, "/")
}

// invalidCredentials re-renders the login form with the uniform failure
// message, leaking nothing about whether the account exists.
func invalidCredentials(c *gin.Context) {
	util.AddFlash(c, "danger", "Invalid email or password.")
	render(c, "login.html", nil)
}

// ensureEmailAvailable reports whether no doctor already uses the email,
// responding on the duplicate and error paths.
func ensureEmailAvailable(c *gin.Context, db *gorm.DB, email string) bool {
	var existing model.Doctor
	err := db.First(&existing, "email = ?", email).Error
	if err != gorm.ErrRecordNotFound {
		if err == nil {
			redirectWithFlash(c, "warning", "Email already registered!", "/register")
			return false
		}
		util.Logger().WithError(err).Error("email lookup failed")
		redirectWithFlash(c, "danger", "Something went wrong. Please try again.", "/register")
		return false
	}
	return true
}

// buildDoctorOrRedirect hashes the password and assembles the new Doctor row.
func buildDoctorOrRedirect(c *gin.Context, name, email, password string) (model.Doctor, bool) {
	salt, err := util.GenerateSalt()
	if err != nil {
		util.Logger().WithError(err).Error("failed to generate password salt")
		redirectWithFlash(c, "danger", "Something went wrong. Please try again.", "/register")
		return model.Doctor{}, false
	}
	hashed, err := util.HashPassword(password, salt)
	if err != nil {
		util.Logger().WithError(err).Error("failed to hash password")
		redirectWithFlash(c, "danger", "Something went wrong. Please try again.", "/register")
		return model.Doctor{}, false
	}
	return model.Doctor{Name: name, Email: email, Password: hashed, PasswordSalt: salt}, true
}

func loadDoctorByEmail(db *gorm.DB, email string) (model.Doctor, error) {
	var doctor model.Doctor
	err := db.Where("email = ?", email).First(&doctor).Error
	return doctor, err
}
