package probe

import (
	"context"
	"testing"
	"time"

	"labrack/internal/models"
	"labrack/internal/registry"
	"labrack/internal/timeutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nowMs = int64(1_700_000_000_000)

type fakeProber struct {
	alive map[string]bool
	calls []string
}

func (f *fakeProber) Probe(_ context.Context, host string) bool {
	f.calls = append(f.calls, host)
	return f.alive[host]
}

func TestRunOnce(t *testing.T) {
	store := registry.NewMemStore()

	up := &models.Device{Name: "alive", DeviceIP: "10.0.0.1", EnablePing: true}
	down := &models.Device{Name: "dead", DeviceIP: "10.0.0.2", EnablePing: true}
	exempt := &models.Device{Name: "no-ping", DeviceIP: "10.0.0.3", EnablePing: false}
	for _, d := range []*models.Device{up, down, exempt} {
		require.NoError(t, store.CreateDevice(d))
	}
	// exempt стартует up, зароняем флаг вручную, чтобы проверить восстановление
	require.NoError(t, store.SetUp(exempt.ID, false, 0))

	prober := &fakeProber{alive: map[string]bool{"10.0.0.1": true}}
	r := NewRunner(store, prober, timeutil.Static(nowMs), time.Minute)
	r.RunOnce(context.Background())

	st, err := store.Status(up.ID)
	require.NoError(t, err)
	assert.True(t, st.IsUp)
	assert.Equal(t, nowMs, st.LastChecked)

	st, _ = store.Status(down.ID)
	assert.False(t, st.IsUp)

	// ping-exempt: up без обращения к проберу
	st, _ = store.Status(exempt.ID)
	assert.True(t, st.IsUp)
	assert.NotContains(t, prober.calls, "10.0.0.3")
}
