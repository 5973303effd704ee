package endpoint

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/adiwidyanto/clinic-ehr/middleware"
	"github.com/adiwidyanto/clinic-ehr/model"
	"github.com/adiwidyanto/clinic-ehr/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// patientForm carries the raw form field contract for create and edit:
// name, age, gender, medical_history, weight, last_visit, allergies[].
type patientForm struct {
	Name           string
	Age            string
	Gender         string
	MedicalHistory string
	Weight         string
	LastVisit      string
	Allergies      []string
}

func parsePatientForm(c *gin.Context) patientForm {
	return patientForm{
		Name:           strings.TrimSpace(c.PostForm("name")),
		Age:            strings.TrimSpace(c.PostForm("age")),
		Gender:         c.PostForm("gender"),
		MedicalHistory: c.PostForm("medical_history"),
		Weight:         strings.TrimSpace(c.PostForm("weight")),
		LastVisit:      c.PostForm("last_visit"),
		Allergies:      c.PostFormArray("allergies"),
	}
}

// Dashboard lists the signed-in doctor's patients in natural store order.
func Dashboard(c *gin.Context) {
	db, ok := getDBOrRedirect(c)
	if !ok {
		return
	}
	doctorID, _ := middleware.GetDoctorID(c)

	patients, err := fetchPatientsForDoctor(db, doctorID)
	if err != nil {
		util.Logger().WithError(err).Error("failed to list patients")
		redirectWithFlash(c, "danger", "Something went wrong. Please try again.", "/")
		return
	}
	render(c, "dashboard.html", gin.H{"patients": patients})
}

func fetchPatientsForDoctor(db *gorm.DB, doctorID uint) ([]model.Patient, error) {
	var patients []model.Patient
	err := db.Where("doctor_id = ?", doctorID).Find(&patients).Error
	return patients, err
}

// ShowPatientForm renders the empty create form.
func ShowPatientForm(c *gin.Context) {
	render(c, "ehr_form.html", gin.H{"patient": nil})
}

// CreatePatient persists a new record for the signed-in doctor. Absent age
// and weight input stores NULL; the edit path stores zero instead, a quirk
// kept on purpose (see DESIGN.md).
func CreatePatient(c *gin.Context) {
	db, ok := getDBOrRedirect(c)
	if !ok {
		return
	}
	doctorID, _ := middleware.GetDoctorID(c)

	form := parsePatientForm(c)
	filename, err := saveImageIfPresent(c)
	if err != nil {
		util.Logger().WithError(err).Error("failed to store uploaded image")
		redirectWithFlash(c, "danger", "Failed to save the uploaded image.", "/patient/new")
		return
	}

	patient := model.Patient{
		DoctorID:       doctorID,
		Name:           form.Name,
		Age:            parseOptionalInt(form.Age),
		Gender:         form.Gender,
		MedicalHistory: form.MedicalHistory,
		Weight:         parseOptionalFloat(form.Weight),
		LastVisit:      form.LastVisit,
		Allergies:      strings.Join(form.Allergies, ","),
		ImageFilename:  filename,
	}
	if err := db.Create(&patient).Error; err != nil {
		util.Logger().WithError(err).Error("failed to create patient")
		redirectWithFlash(c, "danger", "Failed to create patient.", "/patient/new")
		return
	}

	redirectWithFlash(c, "success", "Patient created", "/dashboard")
}

// ShowEditPatientForm renders the edit form pre-filled with the record.
func ShowEditPatientForm(c *gin.Context) {
	db, ok := getDBOrRedirect(c)
	if !ok {
		return
	}
	doctorID, _ := middleware.GetDoctorID(c)

	patient, ok := loadOwnedPatient(c, db, doctorID)
	if !ok {
		return
	}
	render(c, "ehr_form.html", gin.H{"patient": patient})
}

// UpdatePatient overwrites every field of an owned record. This is a full
// overwrite, not a partial patch: empty age/weight become zero here. A newly
// uploaded image replaces the stored filename without deleting the old file.
func UpdatePatient(c *gin.Context) {
	db, ok := getDBOrRedirect(c)
	if !ok {
		return
	}
	doctorID, _ := middleware.GetDoctorID(c)

	patient, ok := loadOwnedPatient(c, db, doctorID)
	if !ok {
		return
	}

	form := parsePatientForm(c)
	age := parseIntOrZero(form.Age)
	weight := parseFloatOrZero(form.Weight)

	patient.Name = form.Name
	patient.Age = &age
	patient.Gender = form.Gender
	patient.MedicalHistory = form.MedicalHistory
	patient.Weight = &weight
	patient.LastVisit = form.LastVisit
	patient.Allergies = strings.Join(form.Allergies, ",")

	filename, err := saveImageIfPresent(c)
	if err != nil {
		util.Logger().WithError(err).Error("failed to store uploaded image")
		redirectWithFlash(c, "danger", "Failed to save the uploaded image.", "/dashboard")
		return
	}
	if filename != "" {
		patient.ImageFilename = filename
	}

	if err := db.Save(&patient).Error; err != nil {
		util.Logger().WithError(err).Error("failed to update patient")
		redirectWithFlash(c, "danger", "Failed to update patient.", "/dashboard")
		return
	}

	redirectWithFlash(c, "success", "Patient updated", "/dashboard")
}

// DeletePatient removes an owned record permanently. The stored image file,
// if any, stays on disk.
func DeletePatient(c *gin.Context) {
	db, ok := getDBOrRedirect(c)
	if !ok {
		return
	}
	doctorID, _ := middleware.GetDoctorID(c)

	patient, ok := loadOwnedPatient(c, db, doctorID)
	if !ok {
		return
	}

	if err := db.Unscoped().Delete(&patient).Error; err != nil {
		util.Logger().WithError(err).Error("failed to delete patient")
		redirectWithFlash(c, "danger", "Failed to delete patient.", "/dashboard")
		return
	}

	redirectWithFlash(c, "success", "Patient deleted", "/dashboard")
}

// loadOwnedPatient resolves the :id route param and enforces the ownership
// invariant. A missing record is a plain 404; a record owned by another
// doctor redirects with a generic message that discloses nothing further.
func loadOwnedPatient(c *gin.Context, db *gorm.DB, doctorID uint) (model.Patient, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.String(http.StatusNotFound, "404 page not found")
		c.Abort()
		return model.Patient{}, false
	}

	var patient model.Patient
	if err := db.First(&patient, id).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			util.Logger().WithError(err).Error("failed to load patient")
		}
		c.String(http.StatusNotFound, "404 page not found")
		c.Abort()
		return model.Patient{}, false
	}

	if patient.DoctorID != doctorID {
		redirectWithFlash(c, "danger", "Not authorized", "/dashboard")
		return model.Patient{}, false
	}
	return patient, true
}

// parseOptionalInt treats empty or unparsable input as "no value".
func parseOptionalInt(s string) *int {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

func parseOptionalFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseIntOrZero(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}

func parseFloatOrZero(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
