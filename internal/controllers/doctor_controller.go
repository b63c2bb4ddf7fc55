package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"telecare/internal/config"
	"telecare/internal/models"
)

// ListDoctors returns the doctor directory, optionally filtered by specialty.
func ListDoctors(c *gin.Context) {
	query := config.DB.Model(&models.Doctor{})
	if specialty := c.Query("specialty"); specialty != "" {
		query = query.Where("specialty = ?", specialty)
	}
	if c.Query("available") == "true" {
		query = query.Where("available = ?", true)
	}

	var doctors []models.Doctor
	if err := query.Find(&doctors).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing doctors: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": doctors})
}

func GetDoctor(c *gin.Context) {
	id := c.Param("id")

	var doctor models.Doctor
	if err := config.DB.First(&doctor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Doctor not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching doctor: " + err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"doctor": doctor})
}

// SetDoctorAvailability lets a doctor flip their own availability flag.
func SetDoctorAvailability(c *gin.Context) {
	userID := uint(c.MustGet("user_id").(float64))

	var body struct {
		Available *bool `json:"available" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid availability input: " + err.Error()})
		return
	}

	var doctor models.Doctor
	if err := config.DB.Where("user_id = ?", userID).First(&doctor).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Doctor profile not found"})
		return
	}

	doctor.Available = *body.Available
	if err := config.DB.Save(&doctor).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update availability: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"doctor": doctor})
}
