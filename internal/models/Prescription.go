package models

import (
	"gorm.io/gorm"
)

// Prescription is issued by a doctor for a patient and carries one or more
// medicine items.
type Prescription struct {
	gorm.Model
	PatientID uint               `json:"patient_id" gorm:"index"`
	DoctorID  uint               `json:"doctor_id" gorm:"index"`
	Doctor    Doctor             `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Diagnosis string             `json:"diagnosis"`
	Notes     string             `json:"notes"`
	Items     []PrescriptionItem `gorm:"foreignKey:PrescriptionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items,omitempty"`
}

// PrescriptionItem is one medicine line on a prescription.
type PrescriptionItem struct {
	gorm.Model
	PrescriptionID uint     `json:"prescription_id" gorm:"index"`
	MedicineID     uint     `json:"medicine_id"`
	Medicine       Medicine `gorm:"foreignKey:MedicineID" json:"medicine,omitempty"`
	Dosage         string   `json:"dosage"`       // e.g. "1 tablet"
	Frequency      string   `json:"frequency"`    // e.g. "twice daily"
	DurationDays   int      `json:"duration_days"`
	Instructions   string   `json:"instructions"`
}
