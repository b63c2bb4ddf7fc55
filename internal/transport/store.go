package transport

import (
	"telecare/internal/models"
)

// Store is the persistence boundary for transport requests. The platform
// treats it as an interchangeable key-value mapping from id to record: the
// gorm-backed store is used in production and the in-memory store in tests
// and DB-less runs.
//
// GetByID and Save report ErrNotFound for an unknown id. ListActive must
// reflect the store's state at call time; ListByPatient returns records in
// insertion order.
type Store interface {
	Create(t *models.TransportRequest) error
	GetByID(id uint) (*models.TransportRequest, error)
	ListByPatient(patientID uint) ([]models.TransportRequest, error)
	ListActive() ([]models.TransportRequest, error)
	Save(t *models.TransportRequest) error
}

// activeStatuses are the non-terminal lifecycle states ListActive selects.
var activeStatuses = []models.TransportStatus{
	models.TransportRequested,
	models.TransportAssigned,
	models.TransportInProgress,
}
