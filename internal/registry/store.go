package registry

import (
	"errors"

	"labrack/internal/models"
)

var ErrNotFound = errors.New("device not found")

// ReservationPurger drops a device's reservation history when the device
// itself is removed. The GORM store cascades inside its own transaction;
// the in-memory store delegates to this hook.
type ReservationPurger interface {
	DeleteByDevice(deviceID uint) error
}

// Store — контракт хранилища устройств и их liveness-флагов.
// Есть GORM-реализация и in-memory (без БД и для тестов).
type Store interface {
	// CreateDevice also creates the device's status row. New devices that
	// are ping-exempt start Up; probed ones start Down until the first cycle.
	CreateDevice(d *models.Device) error
	GetDevice(id uint) (*models.Device, error)
	UpdateDevice(d *models.Device) error
	// DeleteDevice cascades to the device's status row and reservations.
	DeleteDevice(id uint) error
	// ListDevices returns all devices in creation order (id ASC).
	ListDevices() ([]models.Device, error)

	Status(deviceID uint) (*models.DeviceStatus, error)
	SetUp(deviceID uint, up bool, checkedMs int64) error
	SetLoginActivity(deviceID uint, active bool, checkedMs int64) error
}

// ApplyDefaults normalizes a device before insert.
func ApplyDefaults(d *models.Device) {
	if d.ConsolePort == 0 {
		d.ConsolePort = 23
	}
	if d.Team == "" {
		d.Team = "Development"
	}
}
