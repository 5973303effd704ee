package endpoint

import (
	"bytes"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/adiwidyanto/clinic-ehr/config"
	"github.com/adiwidyanto/clinic-ehr/middleware"
	"github.com/adiwidyanto/clinic-ehr/model"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var testUploadDir string

// TestMain pins the test configuration before the singleton Config is first
// loaded, which prevents test order dependency issues.
func TestMain(m *testing.M) {
	os.Setenv("APPENV", "test")
	os.Setenv("GINMODE", "release")
	os.Setenv("DBDRIVER", "sqlite")
	os.Setenv("SQLITEPATH", "file:clinic_ehr_test?mode=memory&cache=shared")
	os.Setenv("SESSIONSECRET", "test-session-secret")

	dir, err := os.MkdirTemp("", "clinic-ehr-uploads-")
	if err != nil {
		log.Fatalf("create temp upload dir: %v", err)
	}
	testUploadDir = dir
	os.Setenv("UPLOADDIR", dir)

	cfg := config.LoadConfig()
	gin.SetMode(cfg.GinMode)

	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

func setupTestEnv(t *testing.T) (*config.Config, *gorm.DB) {
	t.Helper()
	cfg := config.LoadConfig()
	db, err := config.ConnectDatabase()
	if err != nil {
		t.Fatalf("connect test db: %v", err)
	}
	if err := db.AutoMigrate(&model.Doctor{}, &model.Patient{}); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	cleanupTestData(t, db)
	return cfg, db
}

func cleanupTestData(t *testing.T, db *gorm.DB) {
	t.Helper()
	tables := []interface{}{&model.Patient{}, &model.Doctor{}}
	for _, table := range tables {
		if err := db.Unscoped().Where("1 = 1").Delete(table).Error; err != nil {
			t.Fatalf("cleanup table: %v", err)
		}
	}
}

func setupTestRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	r := gin.Default()
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("clinic_session", store))
	r.Use(middleware.DatabaseMiddleware(db))
	r.LoadHTMLGlob("../templates/*.html")

	r.GET("/", Home)
	r.GET("/register", ShowRegisterForm)
	r.POST("/register", Register)
	r.GET("/login", ShowLoginForm)
	r.POST("/login", Login)
	r.GET("/logout", Logout)

	authed := r.Group("/", middleware.RequireDoctor())
	authed.GET("/dashboard", Dashboard)
	authed.GET("/patient/new", ShowPatientForm)
	authed.POST("/patient/new", CreatePatient)
	authed.GET("/patient/:id/edit", ShowEditPatientForm)
	authed.POST("/patient/:id/edit", UpdatePatient)
	authed.POST("/patient/:id/delete", DeletePatient)
	authed.GET("/survey", ShowSurvey)
	authed.POST("/survey", SubmitSurvey)
	authed.GET("/uploads/:filename", ServeUpload)

	return r
}

// browser replays the session cookie across requests the way a real browser
// would, so login state and flash messages survive redirects.
type browser struct {
	t       *testing.T
	router  *gin.Engine
	cookies map[string]*http.Cookie
}

func newBrowser(t *testing.T, r *gin.Engine) *browser {
	return &browser{t: t, router: r, cookies: map[string]*http.Cookie{}}
}

func (b *browser) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	return b.send(req)
}

func (b *browser) doMultipart(path string, fields url.Values, fileName string, fileContent []byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for key, values := range fields {
		for _, v := range values {
			if err := mw.WriteField(key, v); err != nil {
				b.t.Fatalf("write form field: %v", err)
			}
		}
	}
	if fileName != "" {
		fw, err := mw.CreateFormFile("image", fileName)
		if err != nil {
			b.t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write(fileContent); err != nil {
			b.t.Fatalf("write form file: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		b.t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return b.send(req)
}

func (b *browser) send(req *http.Request) *httptest.ResponseRecorder {
	for _, ck := range b.cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	b.router.ServeHTTP(w, req)

	// Keep only the latest cookie per name; a handler may save the session
	// more than once in a single response.
	resp := http.Response{Header: w.Header()}
	for _, ck := range resp.Cookies() {
		b.cookies[ck.Name] = ck
	}
	return w
}

func assertRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()
	if w.Code != http.StatusFound {
		t.Fatalf("expected 302 redirect, got %d: %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Location"); got != location {
		t.Fatalf("expected redirect to %s, got %s", location, got)
	}
}

func registerDoctor(t *testing.T, b *browser, name, email, password string) {
	t.Helper()
	w := b.do(http.MethodPost, "/register", url.Values{
		"name":     {name},
		"email":    {email},
		"password": {password},
	})
	assertRedirect(t, w, "/login")
}

func loginDoctor(t *testing.T, b *browser, email, password string) {
	t.Helper()
	w := b.do(http.MethodPost, "/login", url.Values{
		"email":    {email},
		"password": {password},
	})
	assertRedirect(t, w, "/dashboard")
}

func signupAndLogin(t *testing.T, b *browser, name, email, password string) {
	t.Helper()
	registerDoctor(t, b, name, email, password)
	loginDoctor(t, b, email, password)
}

func doctorByEmail(t *testing.T, db *gorm.DB, email string) model.Doctor {
	t.Helper()
	var doctor model.Doctor
	if err := db.Where("email = ?", email).First(&doctor).Error; err != nil {
		t.Fatalf("doctor not found: %v", err)
	}
	return doctor
}

func lastPatient(t *testing.T, db *gorm.DB) model.Patient {
	t.Helper()
	var patient model.Patient
	if err := db.Order("id DESC").First(&patient).Error; err != nil {
		t.Fatalf("patient not found: %v", err)
	}
	return patient
}
