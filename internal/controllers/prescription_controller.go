package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"telecare/internal/config"
	"telecare/internal/models"
)

// --- Medicines (admin-managed catalog) ---

func CreateMedicine(c *gin.Context) {
	var medicine models.Medicine
	if err := c.ShouldBindJSON(&medicine); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid medicine input: " + err.Error()})
		return
	}

	if err := config.DB.Create(&medicine).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create medicine: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"medicine": medicine})
}

func ListMedicines(c *gin.Context) {
	query := config.DB.Model(&models.Medicine{})
	if name := c.Query("name"); name != "" {
		query = query.Where("name ILIKE ?", "%"+name+"%")
	}

	var medicines []models.Medicine
	if err := query.Find(&medicines).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing medicines: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": medicines})
}

func UpdateMedicine(c *gin.Context) {
	id := c.Param("id")

	var medicine models.Medicine
	if err := config.DB.First(&medicine, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Medicine not found"})
		return
	}

	if err := c.ShouldBindJSON(&medicine); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid update"})
		return
	}

	config.DB.Save(&medicine)
	c.JSON(http.StatusOK, gin.H{"medicine": medicine})
}

func DeleteMedicine(c *gin.Context) {
	id := c.Param("id")

	var medicine models.Medicine
	if err := config.DB.First(&medicine, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Medicine not found"})
		return
	}

	config.DB.Delete(&medicine)
	c.JSON(http.StatusOK, gin.H{"message": "Medicine deleted"})
}

// --- Prescriptions ---

// CreatePrescription lets a doctor issue a prescription with medicine items.
func CreatePrescription(c *gin.Context) {
	var input struct {
		PatientID uint   `json:"patient_id" binding:"required"`
		Diagnosis string `json:"diagnosis" binding:"required"`
		Notes     string `json:"notes"`
		Items     []struct {
			MedicineID   uint   `json:"medicine_id" binding:"required"`
			Dosage       string `json:"dosage" binding:"required"`
			Frequency    string `json:"frequency" binding:"required"`
			DurationDays int    `json:"duration_days"`
			Instructions string `json:"instructions"`
		} `json:"items" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prescription input: " + err.Error()})
		return
	}

	userID := uint(c.MustGet("user_id").(float64))
	var doctor models.Doctor
	if err := config.DB.Where("user_id = ?", userID).First(&doctor).Error; err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Doctor profile not found"})
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}

	prescription := models.Prescription{
		PatientID: input.PatientID,
		DoctorID:  doctor.ID,
		Diagnosis: input.Diagnosis,
		Notes:     input.Notes,
	}
	if err := tx.Create(&prescription).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create prescription: " + err.Error()})
		return
	}

	for _, item := range input.Items {
		var medicine models.Medicine
		if err := tx.First(&medicine, item.MedicineID).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "medicine does not exist"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching medicine: " + err.Error()})
			}
			return
		}

		line := models.PrescriptionItem{
			PrescriptionID: prescription.ID,
			MedicineID:     medicine.ID,
			Dosage:         item.Dosage,
			Frequency:      item.Frequency,
			DurationDays:   item.DurationDays,
			Instructions:   item.Instructions,
		}
		if err := tx.Create(&line).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create prescription item: " + err.Error()})
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit prescription: " + err.Error()})
		return
	}

	var created models.Prescription
	if err := config.DB.Preload("Items").Preload("Items.Medicine").First(&created, prescription.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load prescription: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"prescription": created})
}

// ListMyPrescriptions returns prescriptions visible to the caller: issued
// ones for doctors, received ones for patients.
func ListMyPrescriptions(c *gin.Context) {
	userID := uint(c.MustGet("user_id").(float64))
	role := c.MustGet("role").(string)

	query := config.DB.Preload("Items").Preload("Items.Medicine").Preload("Doctor").Order("id desc")
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

	var prescriptions []models.Prescription
	if err := query.Find(&prescriptions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing prescriptions: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": prescriptions})
}

func GetPrescription(c *gin.Context) {
	id := c.Param("id")

	var prescription models.Prescription
	if err := config.DB.Preload("Items").Preload("Items.Medicine").Preload("Doctor").First(&prescription, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Prescription not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching prescription: " + err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"prescription": prescription})
}
