package transport

import (
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"telecare/internal/models"
)

// Service is the transport state machine. It is the single authority for
// Status, DriverName, DriverPhone, EstimatedArrival and AssignedTime; the
// HTTP layer never writes those fields itself.
type Service struct {
	store  Store
	now    func() time.Time
	jitter func() float64
}

func NewService(store Store) *Service {
	return &Service{
		store: store,
		now:   time.Now,
		// rand's global source is safe for concurrent location reads.
		jitter: func() float64 { return (rand.Float64()*2 - 1) * MaxJitterDegrees },
	}
}

// CreateInput carries the client-settable fields of a new transport request.
type CreateInput struct {
	PatientID              uint                    `json:"patient_id"`
	PickupLocation         string                  `json:"pickup_location"`
	PickupCoordinates      string                  `json:"pickup_coordinates"`
	Destination            string                  `json:"destination"`
	DestinationCoordinates string                  `json:"destination_coordinates"`
	Reason                 string                  `json:"reason"`
	Urgency                models.TransportUrgency `json:"urgency"`
	VehicleType            models.TransportVehicle `json:"vehicle_type"`
	Notes                  string                  `json:"notes"`
	AssignedHospital       string                  `json:"assigned_hospital"`
}

// AssignInput carries driver details for an assignment. EstimatedArrival is
// an RFC3339 timestamp; it is not required to lie in the future.
type AssignInput struct {
	DriverName       string `json:"driver_name"`
	DriverPhone      string `json:"driver_phone"`
	EstimatedArrival string `json:"estimated_arrival"`
}

// UpdateInput carries the descriptive fields a PATCH may merge. Nil means
// "leave unchanged".
type UpdateInput struct {
	PickupLocation         *string                  `json:"pickup_location"`
	PickupCoordinates      *string                  `json:"pickup_coordinates"`
	Destination            *string                  `json:"destination"`
	DestinationCoordinates *string                  `json:"destination_coordinates"`
	Reason                 *string                  `json:"reason"`
	Urgency                *models.TransportUrgency `json:"urgency"`
	VehicleType            *models.TransportVehicle `json:"vehicle_type"`
	Notes                  *string                  `json:"notes"`
	AssignedHospital       *string                  `json:"assigned_hospital"`
}

// canTransition is the one place transition legality lives. Status only ever
// moves forward; cancel is reachable from anywhere, including terminal
// states, so repeated cancels stay idempotent.
func canTransition(from, to models.TransportStatus) bool {
	switch to {
	case models.TransportAssigned:
		// Re-assignment of an already assigned transport is permitted.
		return from == models.TransportRequested || from == models.TransportAssigned
	case models.TransportInProgress:
		return from == models.TransportAssigned
	case models.TransportCompleted:
		return !from.Terminal()
	case models.TransportCanceled:
		return true
	}
	return false
}

func (s *Service) Create(in CreateInput) (*models.TransportRequest, error) {
	errs := fieldErrors{}
	if in.PatientID == 0 {
		errs.add("patient_id", "patient_id is required")
	}
	if in.PickupLocation == "" {
		errs.add("pickup_location", "pickup_location is required")
	}
	if in.Destination == "" {
		errs.add("destination", "destination is required")
	}
	if in.Reason == "" {
		errs.add("reason", "reason is required")
	}
	if !models.ValidUrgency(in.Urgency) {
		errs.add("urgency", "urgency must be one of low, medium, high, critical")
	}
	if !models.ValidVehicleType(in.VehicleType) {
		errs.add("vehicle_type", "vehicle_type must be one of ambulance, wheelchair_van, medical_car, helicopter")
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	t := &models.TransportRequest{
		PatientID:              in.PatientID,
		RequestDate:            s.now(),
		PickupLocation:         in.PickupLocation,
		PickupCoordinates:      in.PickupCoordinates,
		Destination:            in.Destination,
		DestinationCoordinates: in.DestinationCoordinates,
		Reason:                 in.Reason,
		Urgency:                in.Urgency,
		VehicleType:            in.VehicleType,
		Notes:                  in.Notes,
		AssignedHospital:       in.AssignedHospital,
		Status:                 models.TransportRequested,
	}
	if err := s.store.Create(t); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"transport_id": t.ID,
		"patient_id":   t.PatientID,
		"urgency":      t.Urgency,
	}).Info("Transport request created.")
	return t, nil
}

func (s *Service) Get(id uint) (*models.TransportRequest, error) {
	return s.store.GetByID(id)
}

func (s *Service) ListActive() ([]models.TransportRequest, error) {
	return s.store.ListActive()
}

func (s *Service) ListByPatient(patientID uint) ([]models.TransportRequest, error) {
	return s.store.ListByPatient(patientID)
}

// Assign sets the driver fields and moves the request to assigned.
// AssignedTime is stamped with "now" and anchors location interpolation.
func (s *Service) Assign(id uint, in AssignInput) (*models.TransportRequest, error) {
	errs := fieldErrors{}
	if in.DriverName == "" {
		errs.add("driver_name", "driver_name is required")
	}
	if in.DriverPhone == "" {
		errs.add("driver_phone", "driver_phone is required")
	}
	var eta time.Time
	if in.EstimatedArrival == "" {
		errs.add("estimated_arrival", "estimated_arrival is required")
	} else {
		var err error
		eta, err = time.Parse(time.RFC3339, in.EstimatedArrival)
		if err != nil {
			errs.add("estimated_arrival", "estimated_arrival must be an RFC3339 timestamp")
		}
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	t, err := s.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !canTransition(t.Status, models.TransportAssigned) {
		return nil, &ValidationError{Fields: map[string]string{
			"status": "cannot assign a transport in status " + string(t.Status),
		}}
	}

	assignedAt := s.now()
	t.DriverName = &in.DriverName
	t.DriverPhone = &in.DriverPhone
	t.EstimatedArrival = &eta
	t.AssignedTime = &assignedAt
	t.Status = models.TransportAssigned
	if err := s.store.Save(t); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"transport_id": t.ID,
		"driver_name":  in.DriverName,
	}).Info("Driver assigned to transport request.")
	return t, nil
}

// Start moves an assigned transport to in_progress.
func (s *Service) Start(id uint) (*models.TransportRequest, error) {
	return s.transition(id, models.TransportInProgress)
}

// Complete terminates the lifecycle successfully. Legal from any non-terminal
// status; no other field changes.
func (s *Service) Complete(id uint) (*models.TransportRequest, error) {
	return s.transition(id, models.TransportCompleted)
}

// Cancel terminates the lifecycle from any status, terminal ones included, so
// a repeated cancel is a no-op rather than an error. An unknown id is a plain
// not-found: creation always persists through the store, so there is no
// record a caller could legitimately hold that the store cannot return.
func (s *Service) Cancel(id uint) (*models.TransportRequest, error) {
	return s.transition(id, models.TransportCanceled)
}

func (s *Service) transition(id uint, to models.TransportStatus) (*models.TransportRequest, error) {
	t, err := s.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !canTransition(t.Status, to) {
		return nil, &ValidationError{Fields: map[string]string{
			"status": "cannot move transport from " + string(t.Status) + " to " + string(to),
		}}
	}
	if t.Status == to && to == models.TransportCanceled {
		return t, nil
	}
	t.Status = to
	if err := s.store.Save(t); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"transport_id": t.ID,
		"status":       t.Status,
	}).Info("Transport status changed.")
	return t, nil
}

// UpdateDetails merges descriptive fields only. Status and the driver fields
// are out of reach here. Terminal records are frozen.
func (s *Service) UpdateDetails(id uint, in UpdateInput) (*models.TransportRequest, error) {
	errs := fieldErrors{}
	if in.Urgency != nil && !models.ValidUrgency(*in.Urgency) {
		errs.add("urgency", "urgency must be one of low, medium, high, critical")
	}
	if in.VehicleType != nil && !models.ValidVehicleType(*in.VehicleType) {
		errs.add("vehicle_type", "vehicle_type must be one of ambulance, wheelchair_van, medical_car, helicopter")
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	t, err := s.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if t.Status.Terminal() {
		return nil, &ValidationError{Fields: map[string]string{
			"status": "cannot update a transport in status " + string(t.Status),
		}}
	}

	if in.PickupLocation != nil {
		t.PickupLocation = *in.PickupLocation
	}
	if in.PickupCoordinates != nil {
		t.PickupCoordinates = *in.PickupCoordinates
	}
	if in.Destination != nil {
		t.Destination = *in.Destination
	}
	if in.DestinationCoordinates != nil {
		t.DestinationCoordinates = *in.DestinationCoordinates
	}
	if in.Reason != nil {
		t.Reason = *in.Reason
	}
	if in.Urgency != nil {
		t.Urgency = *in.Urgency
	}
	if in.VehicleType != nil {
		t.VehicleType = *in.VehicleType
	}
	if in.Notes != nil {
		t.Notes = *in.Notes
	}
	if in.AssignedHospital != nil {
		t.AssignedHospital = *in.AssignedHospital
	}
	if err := s.store.Save(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Location reports the simulated vehicle position for a transport at the
// current wall-clock time.
func (s *Service) Location(id uint) (*PositionReport, error) {
	t, err := s.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	report := LocationAt(t, s.now(), s.jitter)
	return &report, nil
}
