package models

import (
	"gorm.io/gorm"
)

// Medicine is a catalog entry prescriptions refer to.
type Medicine struct {
	gorm.Model
	Name         string `json:"name" binding:"required"`
	GenericName  string `json:"generic_name"`
	Manufacturer string `json:"manufacturer"`
	Form         string `json:"form"`     // tablet, capsule, syrup, injection
	Strength     string `json:"strength"` // e.g. "500mg"
	Description  string `json:"description"`
}
