package reservation

import (
	"errors"

	"labrack/internal/models"
)

var (
	ErrDeviceNotFound      = errors.New("Device not found")
	ErrDeviceDown          = errors.New("Device is Down")
	ErrAlreadyReserved     = errors.New("Device already reserved")
	ErrZeroDuration        = errors.New("Duration cannot be zero")
	ErrNoActiveReservation = errors.New("No active reservation")
	ErrNotOwner            = errors.New("Only the person who reserved can release")
)

// Store — журнал броней. Реализации: GORM и in-memory.
type Store interface {
	// ActiveAt returns the reservation whose window contains atMs, or nil.
	// Should the invariant ever be violated (concurrent writers before the
	// ledger serialized them), the row with the latest end_time wins.
	ActiveAt(deviceID uint, atMs int64) (*models.Reservation, error)
	Create(r *models.Reservation) error
	// Truncate sets end_time = endMs on the given reservation row.
	Truncate(id uint, endMs int64) error
	// DeleteByDevice removes the device's whole history (device deletion).
	DeleteByDevice(deviceID uint) error
}
