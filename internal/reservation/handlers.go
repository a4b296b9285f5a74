package reservation

import (
	"encoding/json"
	"errors"
	"net/http"

	"labrack/internal/models"

	"github.com/gorilla/mux"
)

type HTTP struct{ ledger *Ledger }

func NewHTTP(l *Ledger) *HTTP { return &HTTP{ledger: l} }

func (h *HTTP) RegisterRoutes(r *mux.Router) {
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/reserve", h.reserve).Methods(http.MethodPost)
	api.HandleFunc("/release", h.release).Methods(http.MethodPost)
}

func (h *HTTP) reserve(w http.ResponseWriter, r *http.Request) {
	var in struct {
		DeviceID uint   `json:"device_id"`
		UserName string `json:"user_name"`
		Days     int    `json:"days"`
		Hours    int    `json:"hours"`
		Minutes  int    `json:"minutes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		models.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.ledger.Reserve(in.DeviceID, in.UserName, in.Days, in.Hours, in.Minutes); err != nil {
		writeLedgerErr(w, err)
		return
	}
	models.WriteOK(w, nil)
}

func (h *HTTP) release(w http.ResponseWriter, r *http.Request) {
	var in struct {
		DeviceID uint   `json:"device_id"`
		UserName string `json:"user_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		models.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.ledger.Release(in.DeviceID, in.UserName); err != nil {
		writeLedgerErr(w, err)
		return
	}
	models.WriteOK(w, nil)
}

func writeLedgerErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrDeviceNotFound):
		models.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrNotOwner):
		models.WriteError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrDeviceDown),
		errors.Is(err, ErrAlreadyReserved),
		errors.Is(err, ErrZeroDuration),
		errors.Is(err, ErrNoActiveReservation):
		models.WriteError(w, http.StatusBadRequest, err.Error())
	default:
		models.WriteError(w, http.StatusInternalServerError, err.Error())
	}
}
