package transport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telecare/internal/models"
)

func noJitter() float64 { return 0 }

func transportFixture(status models.TransportStatus) *models.TransportRequest {
	t := &models.TransportRequest{
		PatientID:              7,
		RequestDate:            testNow,
		PickupCoordinates:      "37.7749,-122.4194",
		DestinationCoordinates: "37.7833,-122.4167",
		Status:                 status,
	}
	if status == models.TransportAssigned || status == models.TransportInProgress {
		assigned := testNow
		eta := testNow.Add(TripDurationMinutes * time.Minute)
		t.AssignedTime = &assigned
		t.EstimatedArrival = &eta
	}
	return t
}

func TestParseCoordinates(t *testing.T) {
	c, err := ParseCoordinates("37.7749,-122.4194")
	require.NoError(t, err)
	assert.InDelta(t, 37.7749, c.Lat, 1e-9)
	assert.InDelta(t, -122.4194, c.Lng, 1e-9)

	c, err = ParseCoordinates(" 1.5 , 2.5 ")
	require.NoError(t, err)
	assert.InDelta(t, 1.5, c.Lat, 1e-9)
	assert.InDelta(t, 2.5, c.Lng, 1e-9)

	for _, bad := range []string{"", "37.7749", "a,b", "1,2,3"} {
		_, err := ParseCoordinates(bad)
		assert.Error(t, err, bad)
	}
}

func TestLocationBeforeAssignmentIsPickup(t *testing.T) {
	tr := transportFixture(models.TransportRequested)

	report := LocationAt(tr, testNow, noJitter)
	assert.Equal(t, models.TransportRequested, report.Status)
	assert.Equal(t, 0, report.Progress)
	assert.Nil(t, report.EstimatedArrival)
	assert.InDelta(t, 37.7749, report.Location.Lat, 1e-9)
	assert.InDelta(t, -122.4194, report.Location.Lng, 1e-9)
}

func TestLocationMidTripIsMidpoint(t *testing.T) {
	tr := transportFixture(models.TransportAssigned)

	report := LocationAt(tr, testNow.Add(15*time.Minute), noJitter)
	assert.Equal(t, 50, report.Progress)
	assert.InDelta(t, (37.7749+37.7833)/2, report.Location.Lat, 1e-9)
	assert.InDelta(t, (-122.4194-122.4167)/2, report.Location.Lng, 1e-9)
	assert.Equal(t, tr.EstimatedArrival, report.EstimatedArrival)
}

func TestLocationProgressIsClamped(t *testing.T) {
	tr := transportFixture(models.TransportInProgress)

	early := LocationAt(tr, testNow.Add(-5*time.Minute), noJitter)
	assert.Equal(t, 0, early.Progress)

	late := LocationAt(tr, testNow.Add(4*time.Hour), noJitter)
	assert.Equal(t, 100, late.Progress)
	assert.InDelta(t, 37.7833, late.Location.Lat, 1e-9)
	assert.InDelta(t, -122.4167, late.Location.Lng, 1e-9)
}

func TestLocationJitterStaysBounded(t *testing.T) {
	tr := transportFixture(models.TransportAssigned)
	svc := NewService(NewMemoryStore())

	for i := 0; i < 200; i++ {
		report := LocationAt(tr, testNow.Add(15*time.Minute), svc.jitter)
		assert.GreaterOrEqual(t, report.Progress, 0)
		assert.LessOrEqual(t, report.Progress, 100)
		assert.InDelta(t, (37.7749+37.7833)/2, report.Location.Lat, MaxJitterDegrees)
		assert.InDelta(t, (-122.4194-122.4167)/2, report.Location.Lng, MaxJitterDegrees)
	}
}

func TestLocationFallsBackToRequestDateWithoutAssignedTime(t *testing.T) {
	tr := transportFixture(models.TransportAssigned)
	tr.AssignedTime = nil

	report := LocationAt(tr, testNow.Add(15*time.Minute), noJitter)
	assert.Equal(t, 50, report.Progress)
}

func TestLocationUnparseableEndpointsUseDefault(t *testing.T) {
	tr := transportFixture(models.TransportAssigned)
	tr.PickupCoordinates = "not coordinates"

	report := LocationAt(tr, testNow, noJitter)
	assert.InDelta(t, DefaultLatitude, report.Location.Lat, 1e-9)
	assert.InDelta(t, DefaultLongitude, report.Location.Lng, 1e-9)

	// Unassigned with absent coordinates reports the platform default too.
	requested := transportFixture(models.TransportRequested)
	requested.PickupCoordinates = ""
	report = LocationAt(requested, testNow, noJitter)
	assert.InDelta(t, DefaultLatitude, report.Location.Lat, 1e-9)
	assert.InDelta(t, DefaultLongitude, report.Location.Lng, 1e-9)
}

func TestLocationCompletedReportsDestination(t *testing.T) {
	tr := transportFixture(models.TransportCompleted)

	report := LocationAt(tr, testNow, noJitter)
	assert.Equal(t, 100, report.Progress)
	assert.InDelta(t, 37.7833, report.Location.Lat, 1e-9)
	assert.InDelta(t, -122.4167, report.Location.Lng, 1e-9)
}
