package dispatch

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"telecare/internal/models"
)

const RoleDoctor = "doctor"

// Conn is the slice of a websocket connection the registry needs.
// *websocket.Conn satisfies it.
type Conn interface {
	WriteJSON(v interface{}) error
}

// Client is one live connection with its negotiated role.
type Client struct {
	conn Conn
	role string
}

// Registry tracks live dispatch connections. It is passed explicitly to the
// server bootstrap and the handlers that need it; there is no package-global
// instance. A single mutex guards add, remove and iterate.
type Registry struct {
	mu      sync.Mutex
	clients map[*Client]bool
}

func NewRegistry() *Registry {
	return &Registry{clients: make(map[*Client]bool)}
}

// Add registers a connection under the given role and returns its handle.
func (r *Registry) Add(conn Conn, role string) *Client {
	c := &Client{conn: conn, role: role}
	r.mu.Lock()
	r.clients[c] = true
	r.mu.Unlock()
	logrus.WithFields(logrus.Fields{
		"role":     role,
		"conn_ptr": fmt.Sprintf("%p", conn),
	}).Info("Client registered with dispatch registry.")
	return c
}

// Remove drops a previously added client. Safe to call twice.
func (r *Registry) Remove(c *Client) {
	r.mu.Lock()
	delete(r.clients, c)
	r.mu.Unlock()
	logrus.WithFields(logrus.Fields{
		"role":     c.role,
		"conn_ptr": fmt.Sprintf("%p", c.conn),
	}).Info("Client unregistered from dispatch registry.")
}

// Count reports the number of live connections.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}

// NewRequestEvent is pushed to doctor clients when a transport request is
// created.
type NewRequestEvent struct {
	Type           string                  `json:"type"`
	TransportID    uint                    `json:"transport_id"`
	PatientID      uint                    `json:"patient_id"`
	PatientName    string                  `json:"patient_name"`
	PickupLocation string                  `json:"pickup_location"`
	Urgency        models.TransportUrgency `json:"urgency"`
	Reason         string                  `json:"reason"`
	CreatedAt      time.Time               `json:"created_at"`
}

// NotifyNewRequest fans the event out to every connected doctor. Delivery is
// best-effort and at-most-once: a send failure is logged and isolated so it
// never breaks the remaining clients or the creating request. Nobody
// listening is not an error; late doctors discover new requests by polling
// the active list.
//
// The registry mutex is held across the whole fan-out. Gorilla websocket
// connections allow only one concurrent writer, so two requests notifying
// at the same time must not interleave WriteJSON calls on a shared
// connection. At tens of connections the coarse lock is fine.
func (r *Registry) NotifyNewRequest(t *models.TransportRequest, patientName string) {
	if patientName == "" {
		patientName = "Unknown patient"
	}
	event := NewRequestEvent{
		Type:           "new_transport_request",
		TransportID:    t.ID,
		PatientID:      t.PatientID,
		PatientName:    patientName,
		PickupLocation: t.PickupLocation,
		Urgency:        t.Urgency,
		Reason:         t.Reason,
		CreatedAt:      t.RequestDate,
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doctors := 0
	for c := range r.clients {
		if c.role != RoleDoctor {
			continue
		}
		doctors++
		if err := c.conn.WriteJSON(event); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"transport_id": t.ID,
				"conn_ptr":     fmt.Sprintf("%p", c.conn),
			}).Warn("Failed to push new-request event to doctor client.")
		}
	}
	logrus.WithFields(logrus.Fields{
		"transport_id": t.ID,
		"doctors":      doctors,
	}).Debug("New-request event fanned out.")
}
