package transport

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"telecare/internal/models"
)

const (
	// TripDurationMinutes is the assumed pickup-to-destination trip length
	// used to derive progress from elapsed time.
	TripDurationMinutes = 30.0

	// MaxJitterDegrees bounds the random perturbation added to each axis so
	// the simulated vehicle never renders perfectly on the straight line.
	MaxJitterDegrees = 0.00025

	// Platform fallback coordinate used when an endpoint fails to parse.
	DefaultLatitude  = 37.7749
	DefaultLongitude = -122.4194
)

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PositionReport is the simulated state of a transport's vehicle at one
// instant.
type PositionReport struct {
	Location         Coordinates            `json:"location"`
	Status           models.TransportStatus `json:"status"`
	Progress         int                    `json:"progress"`
	EstimatedArrival *time.Time             `json:"estimated_arrival"`
}

// ParseCoordinates parses a "lat,lng" pair.
func ParseCoordinates(s string) (Coordinates, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Coordinates{}, fmt.Errorf("coordinates %q: want \"lat,lng\"", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("coordinates %q: bad latitude: %w", s, err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("coordinates %q: bad longitude: %w", s, err)
	}
	return Coordinates{Lat: lat, Lng: lng}, nil
}

func parseOrDefault(s string) Coordinates {
	c, err := ParseCoordinates(s)
	if err != nil {
		return Coordinates{Lat: DefaultLatitude, Lng: DefaultLongitude}
	}
	return c
}

// LocationAt derives the vehicle position for t at the given instant. There
// is no real GPS telemetry behind it: for an assigned or in-progress
// transport the point is a linear interpolation between pickup and
// destination driven by elapsed time since assignment, plus bounded jitter
// from the supplied source (called once per axis).
//
// The function is pure given (t, now, jitter), but repeated calls at the
// same instant may still differ because of jitter. That is the contract,
// not a bug.
func LocationAt(t *models.TransportRequest, now time.Time, jitter func() float64) PositionReport {
	switch t.Status {
	case models.TransportAssigned, models.TransportInProgress:
		// interpolate below
	case models.TransportCompleted:
		return PositionReport{
			Location:         parseOrDefault(t.DestinationCoordinates),
			Status:           t.Status,
			Progress:         100,
			EstimatedArrival: t.EstimatedArrival,
		}
	default:
		// Not yet moving (or canceled): report the pickup point verbatim.
		return PositionReport{
			Location:         parseOrDefault(t.PickupCoordinates),
			Status:           t.Status,
			Progress:         0,
			EstimatedArrival: nil,
		}
	}

	pickup := parseOrDefault(t.PickupCoordinates)
	dest := parseOrDefault(t.DestinationCoordinates)

	anchor := t.RequestDate
	if t.AssignedTime != nil {
		anchor = *t.AssignedTime
	}
	elapsedMinutes := now.Sub(anchor).Minutes()
	progress := elapsedMinutes / TripDurationMinutes
	if progress < 0 {
		progress = 0
	} else if progress > 1 {
		progress = 1
	}

	return PositionReport{
		Location: Coordinates{
			Lat: pickup.Lat + (dest.Lat-pickup.Lat)*progress + jitter(),
			Lng: pickup.Lng + (dest.Lng-pickup.Lng)*progress + jitter(),
		},
		Status:           t.Status,
		Progress:         int(math.Round(progress * 100)),
		EstimatedArrival: t.EstimatedArrival,
	}
}
