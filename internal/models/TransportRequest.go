package models

import (
	"time"

	"gorm.io/gorm"
)

// TransportStatus is the lifecycle discriminant of a transport request.
type TransportStatus string

const (
	TransportRequested  TransportStatus = "requested"
	TransportAssigned   TransportStatus = "assigned"
	TransportInProgress TransportStatus = "in_progress"
	TransportCompleted  TransportStatus = "completed"
	TransportCanceled   TransportStatus = "canceled"
)

// Terminal reports whether no further forward transition is possible.
func (s TransportStatus) Terminal() bool {
	return s == TransportCompleted || s == TransportCanceled
}

// TransportUrgency classifies how fast a transport is needed.
type TransportUrgency string

const (
	UrgencyLow      TransportUrgency = "low"
	UrgencyMedium   TransportUrgency = "medium"
	UrgencyHigh     TransportUrgency = "high"
	UrgencyCritical TransportUrgency = "critical"
)

// TransportVehicle enumerates the dispatchable vehicle kinds.
type TransportVehicle string

const (
	VehicleAmbulance     TransportVehicle = "ambulance"
	VehicleWheelchairVan TransportVehicle = "wheelchair_van"
	VehicleMedicalCar    TransportVehicle = "medical_car"
	VehicleHelicopter    TransportVehicle = "helicopter"
)

// TransportRequest is an emergency-transport dispatch record tracked from
// creation to completion/cancellation. Driver fields and AssignedTime stay
// nil until the first assign and persist through the rest of the lifecycle.
type TransportRequest struct {
	gorm.Model
	PatientID              uint             `json:"patient_id" gorm:"index"`
	RequestDate            time.Time        `json:"request_date"`
	PickupLocation         string           `json:"pickup_location"`
	PickupCoordinates      string           `json:"pickup_coordinates"` // "lat,lng"
	Destination            string           `json:"destination"`
	DestinationCoordinates string           `json:"destination_coordinates"`
	Reason                 string           `json:"reason"`
	Urgency                TransportUrgency `json:"urgency"`
	VehicleType            TransportVehicle `json:"vehicle_type"`
	Notes                  string           `json:"notes"`
	AssignedHospital       string           `json:"assigned_hospital"`
	Status                 TransportStatus  `json:"status" gorm:"index"`
	DriverName             *string          `json:"driver_name"`
	DriverPhone            *string          `json:"driver_phone"`
	EstimatedArrival       *time.Time       `json:"estimated_arrival"`
	AssignedTime           *time.Time       `json:"assigned_time"`
}

// ValidUrgency reports whether u is in the closed urgency domain.
func ValidUrgency(u TransportUrgency) bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyCritical:
		return true
	}
	return false
}

// ValidVehicleType reports whether v is in the closed vehicle domain.
func ValidVehicleType(v TransportVehicle) bool {
	switch v {
	case VehicleAmbulance, VehicleWheelchairVan, VehicleMedicalCar, VehicleHelicopter:
		return true
	}
	return false
}
