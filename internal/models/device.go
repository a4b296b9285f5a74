package models

import "gorm.io/gorm"

// Device — a shared lab unit reachable over its telnet console.
// Field defaults live in registry.ApplyDefaults, not in column tags:
// a `default` tag makes GORM omit zero values from the INSERT, which
// would silently turn enable_ping=false back into true.
type Device struct {
	gorm.Model
	Name        string `gorm:"not null"`
	DeviceIP    string `gorm:"column:device_ip"`
	ConsoleIP   string `gorm:"column:console_ip"`
	ConsolePort int    `gorm:"column:console_port"`
	EnablePing  bool   `gorm:"column:enable_ping"`
	Description string
	Team        string
	Section     string
	Owner       string
	Location    string
}

// EffectiveUp applies the ping-exempt override: a device with probing
// disabled counts as up no matter what the flag says.
func EffectiveUp(d *Device, st *DeviceStatus) bool {
	if !d.EnablePing {
		return true
	}
	return st != nil && st.IsUp
}

// DeviceStatus — liveness flag, one row per device. Written only by the
// probe loop and the manual login-activity toggle, never by reservations.
type DeviceStatus struct {
	DeviceID      uint  `gorm:"primaryKey"`
	IsUp          bool  `gorm:"column:is_up;not null"`
	LastChecked   int64 `gorm:"column:last_checked;not null;default:0"` // epoch ms
	LoginActivity bool  `gorm:"column:login_activity;not null"`
}

// Reservation — exclusive hold on a device. start/end are epoch ms.
// Released early means EndTime is truncated to the release instant; rows
// are never deleted, history stays.
type Reservation struct {
	gorm.Model
	DeviceID  uint   `gorm:"index;not null"`
	UserName  string `gorm:"column:user_name;not null"`
	StartTime int64  `gorm:"column:start_time;not null"`
	EndTime   int64  `gorm:"column:end_time;not null"`
}

// ActiveAt reports whether the reservation window contains the instant t.
func (r *Reservation) ActiveAt(t int64) bool {
	return r.StartTime <= t && t < r.EndTime
}

// Inventory — spare-unit counts per device model name.
type Inventory struct {
	gorm.Model
	DeviceName string `gorm:"column:device_name;uniqueIndex"`
	Count      int    `gorm:"not null"`
}
