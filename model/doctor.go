package model

import "gorm.io/gorm"

// Doctor is an account that owns patient records. Email doubles as the
// login identifier and must be unique.
type Doctor struct {
	gorm.Model
	Name         string `json:"name" gorm:"column:name"`
	Email        string `json:"email" gorm:"column:email;uniqueIndex"`
	Password     string `json:"-" gorm:"column:password"`
	PasswordSalt string `json:"-" gorm:"column:password_salt"`
}
