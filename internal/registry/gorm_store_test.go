package registry

import (
	"testing"

	"labrack/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Device{},
		&models.DeviceStatus{},
		&models.Reservation{},
	))
	return db
}

// enable_ping=false must survive the INSERT: a `default` column tag would
// make GORM drop the zero value and the exemption would flip back to true.
func TestGormCreateDevice_PingDisabledPersists(t *testing.T) {
	s := NewGormStore(newTestDB(t))

	d := &models.Device{Name: "PC (Linux)", EnablePing: false}
	ApplyDefaults(d)
	require.NoError(t, s.CreateDevice(d))

	got, err := s.GetDevice(d.ID)
	require.NoError(t, err)
	assert.False(t, got.EnablePing, "ping exemption lost on insert")

	st, err := s.Status(d.ID)
	require.NoError(t, err)
	assert.True(t, st.IsUp, "ping-exempt devices start up")
}

func TestGormCreateDevice_PingEnabledPersists(t *testing.T) {
	s := NewGormStore(newTestDB(t))

	d := &models.Device{Name: "40-03", EnablePing: true}
	ApplyDefaults(d)
	require.NoError(t, s.CreateDevice(d))

	got, err := s.GetDevice(d.ID)
	require.NoError(t, err)
	assert.True(t, got.EnablePing)
	assert.Equal(t, 23, got.ConsolePort)
	assert.Equal(t, "Development", got.Team)

	st, err := s.Status(d.ID)
	require.NoError(t, err)
	assert.False(t, st.IsUp, "probed devices start down until the first cycle")
}

func TestGormDeleteDevice_CascadesInOneTransaction(t *testing.T) {
	db := newTestDB(t)
	s := NewGormStore(db)

	d := &models.Device{Name: "40-4F", EnablePing: true}
	require.NoError(t, s.CreateDevice(d))
	require.NoError(t, db.Create(&models.Reservation{
		DeviceID: d.ID, UserName: "alice", StartTime: 1000, EndTime: 2000,
	}).Error)
	require.NoError(t, db.Create(&models.Reservation{
		DeviceID: d.ID, UserName: "bob", StartTime: 3000, EndTime: 4000,
	}).Error)

	require.NoError(t, s.DeleteDevice(d.ID))

	_, err := s.GetDevice(d.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Status(d.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var left int64
	require.NoError(t, db.Unscoped().Model(&models.Reservation{}).
		Where("device_id = ?", d.ID).Count(&left).Error)
	assert.Zero(t, left, "reservation history must not outlive the device")

	assert.ErrorIs(t, s.DeleteDevice(d.ID), ErrNotFound)
}
