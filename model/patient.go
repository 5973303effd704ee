package model

import "gorm.io/gorm"

// Patient is a medical record owned by exactly one doctor.
//
// Age and Weight are pointers so that a record created without them stores
// NULL, while the edit form writes the zero value for empty input. The
// asymmetry is intentional; see DESIGN.md.
type Patient struct {
	gorm.Model
	DoctorID       uint     `json:"doctor_id" gorm:"column:doctor_id;index"`
	Doctor         Doctor   `json:"-" gorm:"foreignKey:DoctorID"`
	Name           string   `json:"name" gorm:"column:name"`
	Age            *int     `json:"age" gorm:"column:age"`
	Gender         string   `json:"gender" gorm:"column:gender"`
	MedicalHistory string   `json:"medical_history" gorm:"column:medical_history;type:text"`
	Weight         *float64 `json:"weight" gorm:"column:weight"`
	LastVisit      string   `json:"last_visit" gorm:"column:last_visit"`
	Allergies      string   `json:"allergies" gorm:"column:allergies"`
	ImageFilename  string   `json:"image_filename" gorm:"column:image_filename"`
}
