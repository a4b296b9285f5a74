package registry

import (
	"sort"
	"sync"

	"labrack/internal/models"
)

// MemStore — потокобезопасное in-memory хранилище. Используется, когда БД
// не сконфигурирована, и в тестах.
type MemStore struct {
	// Purger, when set, is invoked from DeleteDevice so reservations do not
	// outlive their device. Set it once at wiring time, before serving.
	Purger ReservationPurger

	mu      sync.RWMutex
	nextID  uint
	devices map[uint]models.Device
	status  map[uint]models.DeviceStatus
}

func NewMemStore() *MemStore {
	return &MemStore{
		nextID:  1,
		devices: make(map[uint]models.Device),
		status:  make(map[uint]models.DeviceStatus),
	}
}

func (m *MemStore) CreateDevice(d *models.Device) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d.ID = m.nextID
	m.nextID++
	m.devices[d.ID] = *d
	m.status[d.ID] = models.DeviceStatus{DeviceID: d.ID, IsUp: !d.EnablePing}
	return nil
}

func (m *MemStore) GetDevice(id uint) (*models.Device, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.devices[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &d, nil
}

func (m *MemStore) UpdateDevice(d *models.Device) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.devices[d.ID]; !ok {
		return ErrNotFound
	}
	m.devices[d.ID] = *d
	return nil
}

func (m *MemStore) DeleteDevice(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.devices[id]; !ok {
		return ErrNotFound
	}
	delete(m.devices, id)
	delete(m.status, id)
	if m.Purger != nil {
		return m.Purger.DeleteByDevice(id)
	}
	return nil
}

func (m *MemStore) ListDevices() ([]models.Device, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Device, 0, len(m.devices))
	for _, d := range m.devices {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemStore) Status(deviceID uint) (*models.DeviceStatus, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.status[deviceID]
	if !ok {
		return nil, ErrNotFound
	}
	return &st, nil
}

func (m *MemStore) SetUp(deviceID uint, up bool, checkedMs int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.status[deviceID]
	if !ok {
		return ErrNotFound
	}
	st.IsUp = up
	st.LastChecked = checkedMs
	m.status[deviceID] = st
	return nil
}

func (m *MemStore) SetLoginActivity(deviceID uint, active bool, checkedMs int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.status[deviceID]
	if !ok {
		return ErrNotFound
	}
	st.LoginActivity = active
	st.LastChecked = checkedMs
	m.status[deviceID] = st
	return nil
}
