package models

import (
	"time"

	"gorm.io/gorm"
)

type VitalSign struct {
	gorm.Model
	PatientID       uint      `json:"patient_id" gorm:"index"`
	HeartRate       int       `json:"heart_rate"`   // bpm
	SystolicBP      int       `json:"systolic_bp"`  // mmHg
	DiastolicBP     int       `json:"diastolic_bp"` // mmHg
	Temperature     float64   `json:"temperature"`  // Celsius
	OxygenSat       float64   `json:"oxygen_sat"`   // SpO2 percentage
	RespiratoryRate int       `json:"respiratory_rate"`
	RecordedAt      time.Time `json:"recorded_at"`
}
