package inventory

import (
	"errors"
	"sort"
	"sync"

	"labrack/internal/models"

	"gorm.io/gorm"
)

// Store — учёт запасных блоков по имени модели.
type Store interface {
	List() ([]models.Inventory, error)
	// Upsert sets the count for device_name, creating the row if needed.
	Upsert(deviceName string, count int) error
}

// ── GORM ───────────────────────────────────────────────────

type GormStore struct{ db *gorm.DB }

func NewGormStore(db *gorm.DB) *GormStore { return &GormStore{db: db} }

func (s *GormStore) List() ([]models.Inventory, error) {
	var out []models.Inventory
	err := s.db.Order("device_name").Find(&out).Error
	return out, err
}

func (s *GormStore) Upsert(deviceName string, count int) error {
	var row models.Inventory
	tx := s.db.Where(&models.Inventory{DeviceName: deviceName}).First(&row)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			row = models.Inventory{DeviceName: deviceName, Count: count}
			return s.db.Create(&row).Error
		}
		return tx.Error
	}
	row.Count = count
	return s.db.Save(&row).Error
}

// ── In-memory ──────────────────────────────────────────────

type MemStore struct {
	mu     sync.RWMutex
	counts map[string]int
}

func NewMemStore() *MemStore { return &MemStore{counts: make(map[string]int)} }

func (m *MemStore) List() ([]models.Inventory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Inventory, 0, len(m.counts))
	for name, c := range m.counts {
		out = append(out, models.Inventory{DeviceName: name, Count: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DeviceName < out[j].DeviceName })
	return out, nil
}

func (m *MemStore) Upsert(deviceName string, count int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[deviceName] = count
	return nil
}
