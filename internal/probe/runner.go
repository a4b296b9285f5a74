package probe

import (
	"context"
	"time"

	"labrack/internal/logs"
	"labrack/internal/registry"
	"labrack/internal/timeutil"
)

// Runner — периодический опрос устройств. Пишет только в device_status,
// брони не трогает.
type Runner struct {
	store    registry.Store
	prober   Prober
	clock    timeutil.Clock
	interval time.Duration
}

func NewRunner(store registry.Store, prober Prober, clock timeutil.Clock, interval time.Duration) *Runner {
	if clock == nil {
		clock = timeutil.System
	}
	if interval <= 0 {
		interval = time.Minute
	}
	return &Runner{store: store, prober: prober, clock: clock, interval: interval}
}

// Run probes once immediately, then on every tick until ctx is done.
func (r *Runner) Run(ctx context.Context) {
	r.RunOnce(ctx)

	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.RunOnce(ctx)
		}
	}
}

func (r *Runner) RunOnce(ctx context.Context) {
	devices, err := r.store.ListDevices()
	if err != nil {
		logs.Logger.Errorf("probe: list devices: %v", err)
		return
	}

	for i := range devices {
		d := &devices[i]
		now := timeutil.NowMs(r.clock)

		// ping выключен — устройство всегда up
		if !d.EnablePing {
			if err := r.store.SetUp(d.ID, true, now); err != nil {
				logs.Logger.Warnf("probe: device %d: %v", d.ID, err)
			}
			continue
		}

		up := r.prober.Probe(ctx, d.DeviceIP)
		if err := r.store.SetUp(d.ID, up, now); err != nil {
			logs.Logger.Warnf("probe: device %d: %v", d.ID, err)
		}
	}

	logs.Logger.Debugf("probe: cycle done, %d devices", len(devices))
}
