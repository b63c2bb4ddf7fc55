package transport

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telecare/internal/models"
)

var testNow = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

func newTestService() *Service {
	svc := NewService(NewMemoryStore())
	svc.now = func() time.Time { return testNow }
	svc.jitter = func() float64 { return 0 }
	return svc
}

func validCreateInput() CreateInput {
	return CreateInput{
		PatientID:              7,
		PickupLocation:         "123 Market St, San Francisco",
		PickupCoordinates:      "37.7749,-122.4194",
		Destination:            "SF General Hospital",
		DestinationCoordinates: "37.7833,-122.4167",
		Reason:                 "chest pain",
		Urgency:                models.UrgencyHigh,
		VehicleType:            models.VehicleAmbulance,
	}
}

func validAssignInput() AssignInput {
	return AssignInput{
		DriverName:       "Jordan Kim",
		DriverPhone:      "+1-555-0142",
		EstimatedArrival: testNow.Add(12 * time.Minute).Format(time.RFC3339),
	}
}

func TestCreateSetsInitialState(t *testing.T) {
	svc := newTestService()

	created, err := svc.Create(validCreateInput())
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.Equal(t, models.TransportRequested, created.Status)
	assert.Equal(t, testNow, created.RequestDate)
	assert.Nil(t, created.DriverName)
	assert.Nil(t, created.DriverPhone)
	assert.Nil(t, created.EstimatedArrival)
	assert.Nil(t, created.AssignedTime)
}

func TestCreateEnumeratesAllInvalidFields(t *testing.T) {
	svc := newTestService()

	_, err := svc.Create(CreateInput{
		Urgency:     "extreme",
		VehicleType: "rickshaw",
	})
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "patient_id")
	assert.Contains(t, verr.Fields, "pickup_location")
	assert.Contains(t, verr.Fields, "destination")
	assert.Contains(t, verr.Fields, "reason")
	assert.Contains(t, verr.Fields, "urgency")
	assert.Contains(t, verr.Fields, "vehicle_type")
}

func TestAssignSetsDriverFields(t *testing.T) {
	svc := newTestService()
	created, err := svc.Create(validCreateInput())
	require.NoError(t, err)

	in := validAssignInput()
	assigned, err := svc.Assign(created.ID, in)
	require.NoError(t, err)

	assert.Equal(t, models.TransportAssigned, assigned.Status)
	require.NotNil(t, assigned.DriverName)
	assert.Equal(t, in.DriverName, *assigned.DriverName)
	require.NotNil(t, assigned.DriverPhone)
	assert.Equal(t, in.DriverPhone, *assigned.DriverPhone)
	require.NotNil(t, assigned.EstimatedArrival)
	require.NotNil(t, assigned.AssignedTime)
	assert.Equal(t, testNow, *assigned.AssignedTime)
}

func TestReassignIsPermitted(t *testing.T) {
	svc := newTestService()
	created, _ := svc.Create(validCreateInput())
	_, err := svc.Assign(created.ID, validAssignInput())
	require.NoError(t, err)

	second := validAssignInput()
	second.DriverName = "Amina Hassan"
	reassigned, err := svc.Assign(created.ID, second)
	require.NoError(t, err)
	assert.Equal(t, "Amina Hassan", *reassigned.DriverName)
	assert.Equal(t, models.TransportAssigned, reassigned.Status)
}

func TestAssignValidatesInput(t *testing.T) {
	svc := newTestService()
	created, _ := svc.Create(validCreateInput())

	_, err := svc.Assign(created.ID, AssignInput{EstimatedArrival: "next tuesday"})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "driver_name")
	assert.Contains(t, verr.Fields, "driver_phone")
	assert.Contains(t, verr.Fields, "estimated_arrival")
}

func TestAssignUnknownIDIsNotFound(t *testing.T) {
	svc := newTestService()
	_, err := svc.Assign(999, validAssignInput())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStatusMonotonicity(t *testing.T) {
	svc := newTestService()
	created, _ := svc.Create(validCreateInput())
	_, err := svc.Assign(created.ID, validAssignInput())
	require.NoError(t, err)

	completed, err := svc.Complete(created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TransportCompleted, completed.Status)

	// Once terminal, assign and complete are rejected; status is unchanged.
	_, err = svc.Assign(created.ID, validAssignInput())
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "status")

	_, err = svc.Complete(created.ID)
	require.True(t, errors.As(err, &verr))

	got, err := svc.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TransportCompleted, got.Status)
}

func TestStartMovesAssignedToInProgress(t *testing.T) {
	svc := newTestService()
	created, _ := svc.Create(validCreateInput())

	// Not legal straight from requested.
	_, err := svc.Start(created.ID)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))

	_, err = svc.Assign(created.ID, validAssignInput())
	require.NoError(t, err)
	started, err := svc.Start(created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TransportInProgress, started.Status)
}

func TestCancelIsIdempotentAndAlwaysLegal(t *testing.T) {
	svc := newTestService()
	created, _ := svc.Create(validCreateInput())

	canceled, err := svc.Cancel(created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TransportCanceled, canceled.Status)

	again, err := svc.Cancel(created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TransportCanceled, again.Status)
}

func TestCancelUnknownIDIsNotFound(t *testing.T) {
	svc := newTestService()
	_, err := svc.Cancel(2)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListActiveExcludesTerminalRecords(t *testing.T) {
	svc := newTestService()

	a, _ := svc.Create(validCreateInput())
	b, _ := svc.Create(validCreateInput())
	c, _ := svc.Create(validCreateInput())
	d, _ := svc.Create(validCreateInput())

	_, err := svc.Assign(b.ID, validAssignInput())
	require.NoError(t, err)
	_, err = svc.Cancel(c.ID)
	require.NoError(t, err)
	_, err = svc.Assign(d.ID, validAssignInput())
	require.NoError(t, err)
	_, err = svc.Complete(d.ID)
	require.NoError(t, err)

	active, err := svc.ListActive()
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, a.ID, active[0].ID)
	assert.Equal(t, b.ID, active[1].ID)
}

func TestUpdateDetailsMergesDescriptiveFieldsOnly(t *testing.T) {
	svc := newTestService()
	created, _ := svc.Create(validCreateInput())
	_, err := svc.Assign(created.ID, validAssignInput())
	require.NoError(t, err)

	notes := "patient uses a wheelchair"
	urgency := models.UrgencyCritical
	updated, err := svc.UpdateDetails(created.ID, UpdateInput{
		Notes:   &notes,
		Urgency: &urgency,
	})
	require.NoError(t, err)
	assert.Equal(t, notes, updated.Notes)
	assert.Equal(t, urgency, updated.Urgency)
	// Status and driver fields are untouched by a descriptive update.
	assert.Equal(t, models.TransportAssigned, updated.Status)
	require.NotNil(t, updated.DriverName)
}

func TestUpdateDetailsRejectsBadEnumAndTerminalStatus(t *testing.T) {
	svc := newTestService()
	created, _ := svc.Create(validCreateInput())

	bad := models.TransportUrgency("extreme")
	_, err := svc.UpdateDetails(created.ID, UpdateInput{Urgency: &bad})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "urgency")

	_, err = svc.Cancel(created.ID)
	require.NoError(t, err)
	notes := "too late"
	_, err = svc.UpdateDetails(created.ID, UpdateInput{Notes: &notes})
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "status")
}
