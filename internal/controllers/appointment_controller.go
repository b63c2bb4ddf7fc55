package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"telecare/internal/config"
	"telecare/internal/models"
)

// CreateAppointment books a consultation with a doctor for the calling
// patient.
func CreateAppointment(c *gin.Context) {
	var input struct {
		DoctorID      uint   `json:"doctor_id" binding:"required"`
		ScheduledTime string `json:"scheduled_time" binding:"required"`
		Reason        string `json:"reason" binding:"required"`
		Notes         string `json:"notes"`
		IsVideo       *bool  `json:"is_video"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid appointment input: " + err.Error()})
		return
	}

	scheduled, err := time.Parse(time.RFC3339, input.ScheduledTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "scheduled_time must be an RFC3339 timestamp"})
		return
	}

	var doctor models.Doctor
	if err := config.DB.First(&doctor, input.DoctorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "doctor does not exist"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching doctor: " + err.Error()})
		}
		return
	}

	patientID := uint(c.MustGet("user_id").(float64))

	appointment := models.Appointment{
		PatientID:     patientID,
		DoctorID:      doctor.ID,
		ScheduledTime: scheduled,
		Reason:        input.Reason,
		Notes:         input.Notes,
		IsVideo:       input.IsVideo == nil || *input.IsVideo,
		Status:        models.AppointmentPending,
	}
	if err := config.DB.Create(&appointment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create appointment: " + err.Error()})
		return
	}

	logrus.WithFields(logrus.Fields{
		"appointment_id": appointment.ID,
		"patient_id":     patientID,
		"doctor_id":      doctor.ID,
	}).Info("Appointment created.")

	c.JSON(http.StatusCreated, gin.H{"appointment": appointment})
}

// ListMyAppointments returns the caller's appointments; doctors see their own
// schedule, patients their bookings.
func ListMyAppointments(c *gin.Context) {
	userID := uint(c.MustGet("user_id").(float64))
	role := c.MustGet("role").(string)

	query := config.DB.Preload("Doctor").Order("scheduled_time")
	if role == "doctor" {
		var doctor models.Doctor
		if err := config.DB.Where("user_id = ?", userID).First(&doctor).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Doctor profile not found"})
			return
		}
		query = query.Where("doctor_id = ?", doctor.ID)
	} else {
		query = query.Where("patient_id = ?", userID)
	}

	var appointments []models.Appointment
	if err := query.Find(&appointments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing appointments: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": appointments})
}

func GetAppointment(c *gin.Context) {
	id := c.Param("id")

	var appointment models.Appointment
	if err := config.DB.Preload("Doctor").First(&appointment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching appointment: " + err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointment": appointment})
}

// ConfirmAppointment is a doctor accepting a pending booking.
func ConfirmAppointment(c *gin.Context) {
	setAppointmentStatus(c, models.AppointmentPending, models.AppointmentConfirmed)
}

// CompleteAppointment closes out a confirmed consultation.
func CompleteAppointment(c *gin.Context) {
	setAppointmentStatus(c, models.AppointmentConfirmed, models.AppointmentCompleted)
}

// CancelAppointment may be called by either party while not completed.
func CancelAppointment(c *gin.Context) {
	id := c.Param("id")

	var appointment models.Appointment
	if err := config.DB.First(&appointment, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
		return
	}
	if appointment.Status == models.AppointmentCompleted {
		c.JSON(http.StatusBadRequest, gin.H{"error": "completed appointments cannot be cancelled"})
		return
	}

	appointment.Status = models.AppointmentCancelled
	if err := config.DB.Save(&appointment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel appointment: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointment": appointment})
}

func setAppointmentStatus(c *gin.Context, from, to models.AppointmentStatus) {
	id := c.Param("id")

	var appointment models.Appointment
	if err := config.DB.First(&appointment, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
		return
	}
	if appointment.Status != from {
		c.JSON(http.StatusBadRequest, gin.H{"error": "appointment is not " + string(from)})
		return
	}

	appointment.Status = to
	if err := config.DB.Save(&appointment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update appointment: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointment": appointment})
}
