package reservation

import (
	"errors"

	"labrack/internal/models"

	"gorm.io/gorm"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore { return &GormStore{db: db} }

func (s *GormStore) ActiveAt(deviceID uint, atMs int64) (*models.Reservation, error) {
	var r models.Reservation
	err := s.db.
		Where("device_id = ? AND start_time <= ? AND end_time > ?", deviceID, atMs, atMs).
		Order("end_time DESC").
		First(&r).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &r, nil
}

func (s *GormStore) Create(r *models.Reservation) error { return s.db.Create(r).Error }

func (s *GormStore) Truncate(id uint, endMs int64) error {
	return s.db.Model(&models.Reservation{}).
		Where("id = ?", id).
		Update("end_time", endMs).Error
}

func (s *GormStore) DeleteByDevice(deviceID uint) error {
	return s.db.Unscoped().Where("device_id = ?", deviceID).Delete(&models.Reservation{}).Error
}
