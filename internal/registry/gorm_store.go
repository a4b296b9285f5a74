package registry

import (
	"errors"

	"labrack/internal/models"

	"gorm.io/gorm"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore { return &GormStore{db: db} }

func (s *GormStore) CreateDevice(d *models.Device) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(d).Error; err != nil {
			return err
		}
		st := models.DeviceStatus{
			DeviceID: d.ID,
			IsUp:     !d.EnablePing, // ping-exempt devices are up from the start
		}
		return tx.Create(&st).Error
	})
}

func (s *GormStore) GetDevice(id uint) (*models.Device, error) {
	var d models.Device
	if err := s.db.First(&d, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (s *GormStore) UpdateDevice(d *models.Device) error { return s.db.Save(d).Error }

// DeleteDevice removes the device, its status row and its reservation
// history in one transaction, so a failure rolls back the whole cascade.
func (s *GormStore) DeleteDevice(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Unscoped().Delete(&models.Device{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := tx.Where("device_id = ?", id).Delete(&models.DeviceStatus{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Where("device_id = ?", id).Delete(&models.Reservation{}).Error
	})
}

func (s *GormStore) ListDevices() ([]models.Device, error) {
	var out []models.Device
	err := s.db.Order("id").Find(&out).Error
	return out, err
}

func (s *GormStore) Status(deviceID uint) (*models.DeviceStatus, error) {
	var st models.DeviceStatus
	if err := s.db.First(&st, "device_id = ?", deviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &st, nil
}

func (s *GormStore) SetUp(deviceID uint, up bool, checkedMs int64) error {
	return s.db.Model(&models.DeviceStatus{}).
		Where("device_id = ?", deviceID).
		Updates(map[string]any{"is_up": up, "last_checked": checkedMs}).Error
}

func (s *GormStore) SetLoginActivity(deviceID uint, active bool, checkedMs int64) error {
	return s.db.Model(&models.DeviceStatus{}).
		Where("device_id = ?", deviceID).
		Updates(map[string]any{"login_activity": active, "last_checked": checkedMs}).Error
}
