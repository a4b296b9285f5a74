package server

import (
	"labrack/internal/logs"
	"labrack/internal/models"
	"labrack/internal/registry"
)

// seedDevices наполняет пустой реестр примером стенда.
func seedDevices(store registry.Store) {
	existing, err := store.ListDevices()
	if err != nil {
		logs.Logger.Warnf("seed: list devices: %v", err)
		return
	}
	if len(existing) > 0 {
		logs.Logger.Info("seed: registry not empty, skipping")
		return
	}

	sample := []models.Device{
		{Name: "40-03", ConsoleIP: "10.194.145.60", ConsolePort: 1004, Team: "Development", Section: "HiSecOS", Location: "RACK13"},
		{Name: "40-03_EM", ConsoleIP: "10.194.145.60", ConsolePort: 1014, Team: "Development", Section: "HiSecOS", Location: "RACK13"},
		{Name: "40-07", ConsoleIP: "10.194.145.100", ConsolePort: 1035, Team: "Development", Section: "HiSecOS", Location: "RACK13"},
		{Name: "Train-FW", EnablePing: true, Team: "Development", Section: "HiSecOS", Location: "RACK13"},
		{Name: "40-03 (STRCF)", Team: "Development", Section: "PRISM", Location: "RACK10"},
		{Name: "40-4F (EATON)", Team: "Development", Section: "PRISM", Location: "RACK10"},
		{Name: "40-07", DeviceIP: "10.194.145.8", ConsoleIP: "10.194.145.100", ConsolePort: 10033, Team: "QA", Section: "manual", Location: "RACK11"},
		{Name: "PC (Linux)", Team: "QA", Section: "manual", Location: "RACK11"},
		{Name: "20/30", EnablePing: true, Team: "QA", Section: "regression", Location: "RACK12"},
		{Name: "40-03_EM", DeviceIP: "10.194.145.66", ConsoleIP: "10.194.145.100", ConsolePort: 10006, Team: "QA", Section: "regression", Location: "RACK12"},
	}

	for i := range sample {
		registry.ApplyDefaults(&sample[i])
		if err := store.CreateDevice(&sample[i]); err != nil {
			logs.Logger.Warnf("seed: create %q: %v", sample[i].Name, err)
		}
	}
	logs.Logger.Infof("seed: created %d sample devices", len(sample))
}
