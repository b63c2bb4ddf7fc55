package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"telecare/internal/config"
	"telecare/internal/middleware"
	"telecare/internal/models"
)

type signupInput struct {
	Name             string `json:"name" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	Password         string `json:"password" binding:"required"`
	Phone            string `json:"phone"`
	Role             string `json:"role"`
	DateOfBirth      string `json:"date_of_birth"` // patient role, RFC3339 date
	BloodType        string `json:"blood_type"`
	Allergies        string `json:"allergies"`
	EmergencyContact string `json:"emergency_contact"`
	Specialty        string `json:"specialty"` // doctor role
	LicenseNumber    string `json:"license_number"`
	Hospital         string `json:"hospital"`
}

func SignupUser(c *gin.Context) {
	var input signupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role, err := validateAndNormalizeRole(input.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input.Role = role

	hashedPassword, err := hashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not hash password"})
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start transaction"})
		return
	}

	user, err := createUserRecord(tx, input, hashedPassword)
	if err != nil {
		tx.Rollback()
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already in use"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create user: " + err.Error()})
		return
	}

	err = createActorRecord(tx, &user, input)
	if err != nil {
		tx.Rollback()
		if strings.Contains(err.Error(), "required for doctor role") ||
			strings.Contains(err.Error(), "invalid date_of_birth") {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create actor record: " + err.Error()})
		}
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not commit transaction: " + err.Error()})
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  prepareUserResponse(user),
	})
}

func LoginUser(c *gin.Context) {
	var body struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	query := config.DB.Where("email = ?", body.Email).
		Preload("Patient").
		Preload("Doctor")

	if err := query.First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found or invalid credentials"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error: " + err.Error()})
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "incorrect password"})
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  prepareUserResponse(user),
	})
}

func ListPatients(c *gin.Context) {
	var patients []models.User
	if err := config.DB.Where("role = ?", "patient").Preload("Patient").Find(&patients).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing patients: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": patients})
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505). The gorm postgres driver surfaces errors as
// pgx *pgconn.PgError; the lib/pq form is checked too for direct pq
// connections.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}

func validateAndNormalizeRole(roleInput string) (string, error) {
	role := strings.ToLower(strings.TrimSpace(roleInput))
	if role == "" {
		role = "patient"
	}
	switch role {
	case "patient", "doctor", "admin":
		return role, nil
	default:
		return "", errors.New("invalid role")
	}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func createUserRecord(tx *gorm.DB, input signupInput, hashedPassword string) (models.User, error) {
	user := models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: hashedPassword,
		Phone:    input.Phone,
		Role:     input.Role,
	}
	if err := tx.Create(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func createActorRecord(tx *gorm.DB, user *models.User, input signupInput) error {
	switch user.Role {
	case "patient":
		patient := models.Patient{
			UserID:           user.ID,
			Name:             input.Name,
			Phone:            input.Phone,
			BloodType:        input.BloodType,
			Allergies:        input.Allergies,
			EmergencyContact: input.EmergencyContact,
		}
		if input.DateOfBirth != "" {
			dob, err := time.Parse("2006-01-02", input.DateOfBirth)
			if err != nil {
				return errors.New("invalid date_of_birth, want YYYY-MM-DD")
			}
			patient.DateOfBirth = &dob
		}
		if err := tx.Create(&patient).Error; err != nil {
			return err
		}
		user.Patient = &patient
		if err := tx.Save(user).Error; err != nil {
			return err
		}
	case "doctor":
		if input.LicenseNumber == "" {
			return errors.New("license_number is required for doctor role")
		}
		if input.Specialty == "" {
			return errors.New("specialty is required for doctor role")
		}

		doctor := models.Doctor{
			UserID:        user.ID,
			Name:          input.Name,
			Phone:         input.Phone,
			Specialty:     input.Specialty,
			LicenseNumber: input.LicenseNumber,
			Hospital:      input.Hospital,
			Available:     true,
		}
		if err := tx.Create(&doctor).Error; err != nil {
			return err
		}
		user.Doctor = &doctor
		if err := tx.Save(user).Error; err != nil {
			return err
		}
	}
	return nil
}

func prepareUserResponse(user models.User) gin.H {
	responseUser := gin.H{
		"ID":        user.ID,
		"CreatedAt": user.CreatedAt,
		"UpdatedAt": user.UpdatedAt,
		"name":      user.Name,
		"email":     user.Email,
		"phone":     user.Phone,
		"role":      user.Role,
	}

	if user.Patient != nil {
		responseUser["patient"] = gin.H{
			"ID":                user.Patient.ID,
			"date_of_birth":     user.Patient.DateOfBirth,
			"blood_type":        user.Patient.BloodType,
			"allergies":         user.Patient.Allergies,
			"emergency_contact": user.Patient.EmergencyContact,
		}
	}
	if user.Doctor != nil {
		responseUser["doctor"] = gin.H{
			"ID":             user.Doctor.ID,
			"specialty":      user.Doctor.Specialty,
			"license_number": user.Doctor.LicenseNumber,
			"hospital":       user.Doctor.Hospital,
			"available":      user.Doctor.Available,
		}
	}
	return responseUser
}
