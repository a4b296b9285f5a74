package availability

import (
	"net/http"

	"labrack/internal/models"
	"labrack/internal/registry"
	"labrack/internal/reservation"
	"labrack/internal/timeutil"

	"github.com/gorilla/mux"
)

type HTTP struct {
	devices registry.Store
	res     reservation.Store
	clock   timeutil.Clock
}

func NewHTTP(devices registry.Store, res reservation.Store, clock timeutil.Clock) *HTTP {
	if clock == nil {
		clock = timeutil.System
	}
	return &HTTP{devices: devices, res: res, clock: clock}
}

func (h *HTTP) RegisterRoutes(r *mux.Router) {
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/devices", h.listDevices).Methods(http.MethodGet)
}

// listDevices — все устройства с вычисленным состоянием, id ASC.
func (h *HTTP) listDevices(w http.ResponseWriter, _ *http.Request) {
	devices, err := h.devices.ListDevices()
	if err != nil {
		models.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	now := timeutil.NowMs(h.clock)
	rows := make([]Row, 0, len(devices))
	for i := range devices {
		d := &devices[i]
		st, err := h.devices.Status(d.ID)
		if err != nil {
			st = nil // статус мог ещё не создаться, считаем down
		}
		active, err := h.res.ActiveAt(d.ID, now)
		if err != nil {
			models.WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		rows = append(rows, Resolve(d, st, active, now))
	}

	models.WriteJSON(w, http.StatusOK, rows)
}
