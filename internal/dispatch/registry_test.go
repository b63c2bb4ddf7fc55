package dispatch

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telecare/internal/models"
)

type fakeConn struct {
	events []NewRequestEvent
	fail   bool
}

func (f *fakeConn) WriteJSON(v interface{}) error {
	if f.fail {
		return errors.New("write: broken pipe")
	}
	f.events = append(f.events, v.(NewRequestEvent))
	return nil
}

func sampleTransport() *models.TransportRequest {
	t := &models.TransportRequest{
		PatientID:      7,
		RequestDate:    time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC),
		PickupLocation: "123 Market St",
		Reason:         "chest pain",
		Urgency:        models.UrgencyHigh,
		Status:         models.TransportRequested,
	}
	t.ID = 42
	return t
}

func TestNotifyReachesOnlyDoctors(t *testing.T) {
	reg := NewRegistry()
	doctor := &fakeConn{}
	patient := &fakeConn{}
	reg.Add(doctor, RoleDoctor)
	reg.Add(patient, "patient")

	reg.NotifyNewRequest(sampleTransport(), "Ada Lovelace")

	require.Len(t, doctor.events, 1)
	assert.Empty(t, patient.events)

	event := doctor.events[0]
	assert.Equal(t, "new_transport_request", event.Type)
	assert.Equal(t, uint(42), event.TransportID)
	assert.Equal(t, uint(7), event.PatientID)
	assert.Equal(t, "Ada Lovelace", event.PatientName)
	assert.Equal(t, "123 Market St", event.PickupLocation)
	assert.Equal(t, models.UrgencyHigh, event.Urgency)
}

func TestNotifyUsesPlaceholderWhenNameUnknown(t *testing.T) {
	reg := NewRegistry()
	doctor := &fakeConn{}
	reg.Add(doctor, RoleDoctor)

	reg.NotifyNewRequest(sampleTransport(), "")

	require.Len(t, doctor.events, 1)
	assert.Equal(t, "Unknown patient", doctor.events[0].PatientName)
}

func TestNotifyIsolatesFailingConnections(t *testing.T) {
	reg := NewRegistry()
	broken := &fakeConn{fail: true}
	healthy := &fakeConn{}
	reg.Add(broken, RoleDoctor)
	reg.Add(healthy, RoleDoctor)

	// Must not panic and must still reach the healthy client.
	reg.NotifyNewRequest(sampleTransport(), "Ada Lovelace")

	assert.Len(t, healthy.events, 1)
	assert.Equal(t, 2, reg.Count())
}

func TestNotifyWithNoListenersIsFine(t *testing.T) {
	reg := NewRegistry()
	reg.NotifyNewRequest(sampleTransport(), "Ada Lovelace")
	assert.Equal(t, 0, reg.Count())
}

// singleWriterConn trips when two goroutines enter WriteJSON at once, the
// condition gorilla/websocket forbids on a real connection.
type singleWriterConn struct {
	writers    int32
	overlapped int32
	events     int32
}

func (s *singleWriterConn) WriteJSON(v interface{}) error {
	if atomic.AddInt32(&s.writers, 1) > 1 {
		atomic.StoreInt32(&s.overlapped, 1)
	}
	atomic.AddInt32(&s.events, 1)
	atomic.AddInt32(&s.writers, -1)
	return nil
}

func TestNotifyNeverWritesConcurrentlyToOneConnection(t *testing.T) {
	reg := NewRegistry()
	conn := &singleWriterConn{}
	reg.Add(conn, RoleDoctor)

	const notifiers = 50
	var wg sync.WaitGroup
	wg.Add(notifiers)
	for i := 0; i < notifiers; i++ {
		go func() {
			defer wg.Done()
			reg.NotifyNewRequest(sampleTransport(), "Ada Lovelace")
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(0), atomic.LoadInt32(&conn.overlapped),
		"two notifiers entered WriteJSON on the same connection at once")
	assert.Equal(t, int32(notifiers), atomic.LoadInt32(&conn.events))
}

func TestRemoveIsSafeTwice(t *testing.T) {
	reg := NewRegistry()
	c := reg.Add(&fakeConn{}, RoleDoctor)
	reg.Remove(c)
	reg.Remove(c)
	assert.Equal(t, 0, reg.Count())
}
