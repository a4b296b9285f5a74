package availability

import (
	"testing"

	"labrack/internal/models"

	"github.com/stretchr/testify/assert"
)

const nowMs = int64(1_700_000_000_000)

func device() *models.Device {
	d := &models.Device{
		Name:        "40-03",
		DeviceIP:    "10.0.0.5",
		ConsoleIP:   "10.0.0.100",
		ConsolePort: 1004,
		EnablePing:  true,
		Team:        "Development",
		Section:     "HiSecOS",
		Location:    "RACK13",
	}
	d.ID = 7
	return d
}

func TestResolve_DownDevice(t *testing.T) {
	d := device()
	st := &models.DeviceStatus{DeviceID: d.ID, IsUp: false}
	// активная бронь не должна пробиваться через down
	res := &models.Reservation{DeviceID: d.ID, UserName: "alice", StartTime: nowMs - 1000, EndTime: nowMs + 60_000}

	row := Resolve(d, st, res, nowMs)

	assert.Equal(t, "Down", row.Status)
	assert.Equal(t, StatusNotAvailable, row.Availability)
	assert.Equal(t, Dash, row.NextAvailableTime)
	assert.Equal(t, Dash, row.ReservedBy)
	assert.Equal(t, Dash, row.LoginActivity)
}

func TestResolve_PingDisabledForcesUp(t *testing.T) {
	d := device()
	d.EnablePing = false
	st := &models.DeviceStatus{DeviceID: d.ID, IsUp: false}

	row := Resolve(d, st, nil, nowMs)

	assert.Equal(t, "Up", row.Status)
	assert.Equal(t, StatusAvailable, row.Availability)
	assert.Equal(t, "Now", row.NextAvailableTime)
}

func TestResolve_InUse(t *testing.T) {
	d := device()
	st := &models.DeviceStatus{DeviceID: d.ID, IsUp: true}
	res := &models.Reservation{DeviceID: d.ID, UserName: "alice", StartTime: nowMs - 1000, EndTime: nowMs + 90*60_000}

	row := Resolve(d, st, res, nowMs)

	assert.Equal(t, StatusInUse, row.Availability)
	assert.Equal(t, "alice", row.ReservedBy)
	assert.Equal(t, "1h 30m", row.NextAvailableTime)
}

func TestResolve_ExpiredReservationIsAvailable(t *testing.T) {
	d := device()
	st := &models.DeviceStatus{DeviceID: d.ID, IsUp: true}
	res := &models.Reservation{DeviceID: d.ID, UserName: "alice", StartTime: nowMs - 2000, EndTime: nowMs}

	// end_time == now: окно полуоткрытое, бронь уже не активна
	row := Resolve(d, st, res, nowMs)

	assert.Equal(t, StatusAvailable, row.Availability)
	assert.Equal(t, "Now", row.NextAvailableTime)
	assert.Equal(t, Dash, row.ReservedBy)
}

func TestResolve_Idempotent(t *testing.T) {
	d := device()
	st := &models.DeviceStatus{DeviceID: d.ID, IsUp: true, LoginActivity: true}
	res := &models.Reservation{DeviceID: d.ID, UserName: "bob", StartTime: nowMs - 1, EndTime: nowMs + 60_000}

	first := Resolve(d, st, res, nowMs)
	second := Resolve(d, st, res, nowMs)
	assert.Equal(t, first, second)
}

func TestResolve_Formatting(t *testing.T) {
	d := device()
	st := &models.DeviceStatus{DeviceID: d.ID, IsUp: true}

	row := Resolve(d, st, nil, nowMs)
	assert.Equal(t, "telnet 10.0.0.100 1004", row.Telnet)
	assert.Equal(t, "10.0.0.5", row.DeviceIP)
	assert.Equal(t, "HiSecOS", row.SectionGroup)
	assert.Equal(t, "No", row.LoginActivity)

	d.ConsoleIP = "  "
	d.DeviceIP = ""
	row = Resolve(d, st, nil, nowMs)
	assert.Equal(t, Dash, row.Telnet)
	assert.Equal(t, Dash, row.DeviceIP)
}
