package models

import (
	"time"

	"gorm.io/gorm"
)

// AppointmentStatus represents the status of a consultation booking.
type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

// Appointment represents a scheduled consultation between a patient and a doctor.
type Appointment struct {
	gorm.Model
	PatientID     uint              `json:"patient_id" gorm:"index"`
	DoctorID      uint              `json:"doctor_id" gorm:"index"`
	Doctor        Doctor            `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	ScheduledTime time.Time         `json:"scheduled_time"`
	Reason        string            `json:"reason"`
	Notes         string            `json:"notes"`
	IsVideo       bool              `json:"is_video" gorm:"default:true"`
	Status        AppointmentStatus `json:"status" gorm:"default:'pending'"`
}
