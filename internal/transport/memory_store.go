package transport

import (
	"sync"

	"telecare/internal/models"
)

// MemoryStore keeps transport requests in a mutex-guarded map. A coarse lock
// is enough at the expected cardinality and preserves the reference
// last-writer-wins semantics on concurrent mutation.
type MemoryStore struct {
	mu     sync.RWMutex
	nextID uint
	items  map[uint]models.TransportRequest
	order  []uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID: 1,
		items:  make(map[uint]models.TransportRequest),
	}
}

func (s *MemoryStore) Create(t *models.TransportRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.nextID
	s.nextID++
	s.items[t.ID] = *t
	s.order = append(s.order, t.ID)
	return nil
}

func (s *MemoryStore) GetByID(id uint) (*models.TransportRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	// Copy so callers never mutate the stored record directly.
	out := t
	return &out, nil
}

func (s *MemoryStore) ListByPatient(patientID uint) ([]models.TransportRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.TransportRequest
	for _, id := range s.order {
		if t := s.items[id]; t.PatientID == patientID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *MemoryStore) ListActive() ([]models.TransportRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.TransportRequest
	for _, id := range s.order {
		t := s.items[id]
		for _, st := range activeStatuses {
			if t.Status == st {
				out = append(out, t)
				break
			}
		}
	}
	return out, nil
}

func (s *MemoryStore) Save(t *models.TransportRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[t.ID]; !ok {
		return ErrNotFound
	}
	s.items[t.ID] = *t
	return nil
}
