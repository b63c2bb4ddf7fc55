package transport

import (
	"errors"

	"gorm.io/gorm"

	"telecare/internal/models"
)

// GormStore persists transport requests through gorm.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Create(t *models.TransportRequest) error {
	return s.db.Create(t).Error
}

func (s *GormStore) GetByID(id uint) (*models.TransportRequest, error) {
	var t models.TransportRequest
	if err := s.db.First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (s *GormStore) ListByPatient(patientID uint) ([]models.TransportRequest, error) {
	var out []models.TransportRequest
	if err := s.db.Where("patient_id = ?", patientID).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *GormStore) ListActive() ([]models.TransportRequest, error) {
	var out []models.TransportRequest
	if err := s.db.Where("status IN ?", activeStatuses).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *GormStore) Save(t *models.TransportRequest) error {
	res := s.db.Model(&models.TransportRequest{}).Where("id = ?", t.ID).Select(
		"pickup_location", "pickup_coordinates", "destination", "destination_coordinates",
		"reason", "urgency", "vehicle_type", "notes", "assigned_hospital",
		"status", "driver_name", "driver_phone", "estimated_arrival", "assigned_time",
	).Updates(t)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
