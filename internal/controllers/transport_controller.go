package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"
	"gorm.io/gorm"

	"telecare/internal/config"
	"telecare/internal/dispatch"
	"telecare/internal/models"
	"telecare/internal/transport"
)

// TransportController exposes the emergency-transport dispatch workflow over
// HTTP. The state machine and the dispatch registry are injected so the
// handlers stay thin and the wiring stays visible in the server bootstrap.
type TransportController struct {
	Service  *transport.Service
	Registry *dispatch.Registry
}

func NewTransportController(svc *transport.Service, reg *dispatch.Registry) *TransportController {
	return &TransportController{Service: svc, Registry: reg}
}

// Create handles POST /transport. On success the new request is pushed to
// every connected doctor; notification failures never fail the create.
func (tc *TransportController) Create(c *gin.Context) {
	var input transport.CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid transport input: " + err.Error()})
		return
	}

	t, err := tc.Service.Create(input)
	if err != nil {
		respondTransportError(c, err)
		return
	}

	tc.Registry.NotifyNewRequest(t, tc.patientName(t.PatientID))

	c.JSON(http.StatusCreated, gin.H{"transport": t})
}

// ListActive handles GET /transport: every request whose status is
// requested, assigned or in_progress. This is the dispatch dashboard's
// polling fallback when the websocket event was missed.
func (tc *TransportController) ListActive(c *gin.Context) {
	list, err := tc.Service.ListActive()
	if err != nil {
		respondTransportError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

// ListByPatient handles GET /transport/patient/:patientId (any status).
func (tc *TransportController) ListByPatient(c *gin.Context) {
	patientID, err := strconv.ParseUint(c.Param("patientId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid patient id"})
		return
	}
	list, err := tc.Service.ListByPatient(uint(patientID))
	if err != nil {
		respondTransportError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

// Get handles GET /transport/:id.
func (tc *TransportController) Get(c *gin.Context) {
	id, ok := transportID(c)
	if !ok {
		return
	}
	t, err := tc.Service.Get(id)
	if err != nil {
		respondTransportError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transport": t})
}

// Assign handles PATCH /transport/:id/assign.
func (tc *TransportController) Assign(c *gin.Context) {
	id, ok := transportID(c)
	if !ok {
		return
	}
	var input transport.AssignInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid assign input: " + err.Error()})
		return
	}
	t, err := tc.Service.Assign(id, input)
	if err != nil {
		respondTransportError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transport": t})
}

// Start handles PATCH /transport/:id/start.
func (tc *TransportController) Start(c *gin.Context) {
	tc.applyTransition(c, tc.Service.Start)
}

// Complete handles PATCH /transport/:id/complete.
func (tc *TransportController) Complete(c *gin.Context) {
	tc.applyTransition(c, tc.Service.Complete)
}

// Cancel handles PATCH /transport/:id/cancel.
func (tc *TransportController) Cancel(c *gin.Context) {
	tc.applyTransition(c, tc.Service.Cancel)
}

func (tc *TransportController) applyTransition(c *gin.Context, op func(uint) (*models.TransportRequest, error)) {
	id, ok := transportID(c)
	if !ok {
		return
	}
	t, err := op(id)
	if err != nil {
		respondTransportError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transport": t})
}

// Update handles PATCH /transport/:id: descriptive fields only.
func (tc *TransportController) Update(c *gin.Context) {
	id, ok := transportID(c)
	if !ok {
		return
	}
	var input transport.UpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid update input: " + err.Error()})
		return
	}
	t, err := tc.Service.UpdateDetails(id, input)
	if err != nil {
		respondTransportError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transport": t})
}

// Location handles GET /transport/:id/location: the simulated vehicle
// position derived from elapsed time since assignment.
func (tc *TransportController) Location(c *gin.Context) {
	id, ok := transportID(c)
	if !ok {
		return
	}
	report, err := tc.Service.Location(id)
	if err != nil {
		respondTransportError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Route handles GET /transport/:id/route: the pickup→destination segment as
// a GeoJSON LineString for dashboard map rendering.
func (tc *TransportController) Route(c *gin.Context) {
	id, ok := transportID(c)
	if !ok {
		return
	}
	t, err := tc.Service.Get(id)
	if err != nil {
		respondTransportError(c, err)
		return
	}

	pickup, err := transport.ParseCoordinates(t.PickupCoordinates)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Transport has no parseable pickup coordinates"})
		return
	}
	dest, err := transport.ParseCoordinates(t.DestinationCoordinates)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Transport has no parseable destination coordinates"})
		return
	}

	line := geom.NewLineString(geom.XY).MustSetCoords([]geom.Coord{
		{pickup.Lng, pickup.Lat},
		{dest.Lng, dest.Lat},
	})
	line.SetSRID(4326)
	raw, err := gjson.Marshal(line)
	if err != nil {
		logrus.WithError(err).Error("Failed to encode transport route as GeoJSON.")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transport_id": t.ID,
		"geometry":     string(raw),
	})
}

// patientName resolves a display name for notifications; the placeholder is
// used when the user record is missing or no DB is attached.
func (tc *TransportController) patientName(patientID uint) string {
	if config.DB == nil {
		return ""
	}
	var user models.User
	if err := config.DB.First(&user, patientID).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logrus.WithError(err).WithField("patient_id", patientID).Warn("Could not resolve patient name for notification.")
		}
		return ""
	}
	return user.Name
}

func transportID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid transport id"})
		return 0, false
	}
	return uint(id), true
}

// respondTransportError maps state-machine errors onto the HTTP surface.
// Validation errors enumerate every offending field in one response;
// not-found stays generic.
func respondTransportError(c *gin.Context, err error) {
	var verr *transport.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"message": "validation failed", "errors": verr.Fields})
	case errors.Is(err, transport.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "resource not found"})
	default:
		logrus.WithError(err).Error("Transport operation failed.")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
	}
}
