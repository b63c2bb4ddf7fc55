// internal/models/doctor.go
package models

import (
	"gorm.io/gorm"
)

type Doctor struct {
	gorm.Model
	UserID        uint   `json:"user_id" gorm:"unique"` // Foreign key to User
	User          User   `gorm:"foreignKey:UserID"`     // User association
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Specialty     string `json:"specialty"`
	LicenseNumber string `json:"license_number"`
	Hospital      string `json:"hospital"`
	Available     bool   `json:"available" gorm:"default:true"`
	// DO NOT include Email, Password, or Role here. They are in the User model.
}
