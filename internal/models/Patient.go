// internal/models/patient.go
package models

import (
	"time"

	"gorm.io/gorm"
)

type Patient struct {
	gorm.Model
	UserID           uint       `json:"user_id" gorm:"unique"` // Foreign key to User
	User             User       `gorm:"foreignKey:UserID"`
	Name             string     `json:"name"`
	Phone            string     `json:"phone"`
	DateOfBirth      *time.Time `json:"date_of_birth"`
	BloodType        string     `json:"blood_type"`
	Allergies        string     `json:"allergies"`
	EmergencyContact string     `json:"emergency_contact"`
}
