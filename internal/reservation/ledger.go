package reservation

import (
	"errors"
	"sync"

	"labrack/internal/models"
	"labrack/internal/registry"
	"labrack/internal/timeutil"
)

// DeviceStates — то, что журналу нужно знать об устройствах.
// registry.Store satisfies it.
type DeviceStates interface {
	GetDevice(id uint) (*models.Device, error)
	Status(deviceID uint) (*models.DeviceStatus, error)
}

// Ledger enforces the reservation rules on top of a Store. Reserve and
// release on the same device are serialized through a per-device mutex:
// the no-active-reservation check and the insert must not interleave.
type Ledger struct {
	store   Store
	devices DeviceStates
	clock   timeutil.Clock

	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func NewLedger(store Store, devices DeviceStates, clock timeutil.Clock) *Ledger {
	if clock == nil {
		clock = timeutil.System
	}
	return &Ledger{
		store:   store,
		devices: devices,
		clock:   clock,
		locks:   make(map[uint]*sync.Mutex),
	}
}

func (l *Ledger) deviceLock(id uint) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	lk, ok := l.locks[id]
	if !ok {
		lk = &sync.Mutex{}
		l.locks[id] = lk
	}
	return lk
}

// ActiveAt — проксирует журнал (для резолвера и ручек).
func (l *Ledger) ActiveAt(deviceID uint, atMs int64) (*models.Reservation, error) {
	return l.store.ActiveAt(deviceID, atMs)
}

// Reserve places a hold of days/hours/minutes starting now.
func (l *Ledger) Reserve(deviceID uint, userName string, days, hours, minutes int) error {
	lk := l.deviceLock(deviceID)
	lk.Lock()
	defer lk.Unlock()

	d, err := l.devices.GetDevice(deviceID)
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			return ErrDeviceNotFound
		}
		return err
	}

	st, err := l.devices.Status(deviceID)
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			return ErrDeviceNotFound
		}
		return err
	}
	if !models.EffectiveUp(d, st) {
		return ErrDeviceDown
	}

	now := timeutil.NowMs(l.clock)
	active, err := l.store.ActiveAt(deviceID, now)
	if err != nil {
		return err
	}
	if active != nil {
		return ErrAlreadyReserved
	}

	durMs := timeutil.DurationMs(days, hours, minutes)
	if durMs <= 0 {
		return ErrZeroDuration
	}

	return l.store.Create(&models.Reservation{
		DeviceID:  deviceID,
		UserName:  userName,
		StartTime: now,
		EndTime:   now + durMs,
	})
}

// Release truncates the active reservation to now. Only the claimant may
// release; the match is case-sensitive.
func (l *Ledger) Release(deviceID uint, userName string) error {
	lk := l.deviceLock(deviceID)
	lk.Lock()
	defer lk.Unlock()

	now := timeutil.NowMs(l.clock)
	active, err := l.store.ActiveAt(deviceID, now)
	if err != nil {
		return err
	}
	if active == nil {
		return ErrNoActiveReservation
	}
	if active.UserName != userName {
		return ErrNotOwner
	}
	return l.store.Truncate(active.ID, now)
}
