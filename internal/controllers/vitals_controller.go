package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"telecare/internal/config"
	"telecare/internal/models"
)

// RecordVitalSign stores a reading for the calling patient.
func RecordVitalSign(c *gin.Context) {
	var input struct {
		HeartRate       int     `json:"heart_rate"`
		SystolicBP      int     `json:"systolic_bp"`
		DiastolicBP     int     `json:"diastolic_bp"`
		Temperature     float64 `json:"temperature"`
		OxygenSat       float64 `json:"oxygen_sat"`
		RespiratoryRate int     `json:"respiratory_rate"`
		RecordedAt      string  `json:"recorded_at"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vital sign input: " + err.Error()})
		return
	}

	recordedAt := time.Now()
	if input.RecordedAt != "" {
		t, err := time.Parse(time.RFC3339, input.RecordedAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "recorded_at must be an RFC3339 timestamp"})
			return
		}
		recordedAt = t
	}

	patientID := uint(c.MustGet("user_id").(float64))

	vital := models.VitalSign{
		PatientID:       patientID,
		HeartRate:       input.HeartRate,
		SystolicBP:      input.SystolicBP,
		DiastolicBP:     input.DiastolicBP,
		Temperature:     input.Temperature,
		OxygenSat:       input.OxygenSat,
		RespiratoryRate: input.RespiratoryRate,
		RecordedAt:      recordedAt,
	}
	if err := config.DB.Create(&vital).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record vital sign: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"vital": vital})
}

// ListMyVitalSigns returns the caller's own readings, newest first.
func ListMyVitalSigns(c *gin.Context) {
	patientID := uint(c.MustGet("user_id").(float64))

	var vitals []models.VitalSign
	if err := config.DB.Where("patient_id = ?", patientID).Order("recorded_at desc").Find(&vitals).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing vital signs: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": vitals})
}

// ListPatientVitalSigns lets a doctor review a patient's readings.
func ListPatientVitalSigns(c *gin.Context) {
	patientID, err := strconv.ParseUint(c.Param("patientId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid patient id"})
		return
	}

	var vitals []models.VitalSign
	if err := config.DB.Where("patient_id = ?", uint(patientID)).Order("recorded_at desc").Find(&vitals).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing vital signs: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": vitals})
}
