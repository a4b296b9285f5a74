package reservation

import (
	"sync"

	"labrack/internal/models"
)

type MemStore struct {
	mu     sync.RWMutex
	nextID uint
	rows   []models.Reservation
}

func NewMemStore() *MemStore { return &MemStore{nextID: 1} }

func (m *MemStore) ActiveAt(deviceID uint, atMs int64) (*models.Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var best *models.Reservation
	for i := range m.rows {
		r := &m.rows[i]
		if r.DeviceID != deviceID || !r.ActiveAt(atMs) {
			continue
		}
		if best == nil || r.EndTime > best.EndTime {
			best = r
		}
	}
	if best == nil {
		return nil, nil
	}
	cp := *best
	return &cp, nil
}

func (m *MemStore) Create(r *models.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = m.nextID
	m.nextID++
	m.rows = append(m.rows, *r)
	return nil
}

func (m *MemStore) Truncate(id uint, endMs int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows[i].EndTime = endMs
			return nil
		}
	}
	return ErrNoActiveReservation
}

func (m *MemStore) DeleteByDevice(deviceID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.rows[:0]
	for _, r := range m.rows {
		if r.DeviceID != deviceID {
			out = append(out, r)
		}
	}
	m.rows = out
	return nil
}
