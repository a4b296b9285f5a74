package inventory

import (
	"encoding/json"
	"net/http"
	"strings"

	"labrack/internal/models"

	"github.com/gorilla/mux"
)

type HTTP struct {
	store     Store
	adminCode string
}

func NewHTTP(s Store, adminCode string) *HTTP { return &HTTP{store: s, adminCode: adminCode} }

func (h *HTTP) RegisterRoutes(r *mux.Router) {
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/inventory", h.list).Methods(http.MethodGet)
	api.HandleFunc("/inventory", h.upsert).Methods(http.MethodPost)
}

func (h *HTTP) list(w http.ResponseWriter, _ *http.Request) {
	rows, err := h.store.List()
	if err != nil {
		models.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	type item struct {
		DeviceName string `json:"device_name"`
		Count      int    `json:"count"`
	}
	out := make([]item, 0, len(rows))
	for _, r := range rows {
		out = append(out, item{DeviceName: r.DeviceName, Count: r.Count})
	}
	models.WriteJSON(w, http.StatusOK, out)
}

func (h *HTTP) upsert(w http.ResponseWriter, r *http.Request) {
	if h.adminCode != "" && r.Header.Get("X-Admin-Code") != h.adminCode {
		models.WriteError(w, http.StatusForbidden, "invalid admin code")
		return
	}
	var in struct {
		DeviceName string `json:"device_name"`
		Count      int    `json:"count"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || strings.TrimSpace(in.DeviceName) == "" {
		models.WriteError(w, http.StatusBadRequest, "invalid json or empty device_name")
		return
	}
	if in.Count < 0 {
		models.WriteError(w, http.StatusBadRequest, "count cannot be negative")
		return
	}
	if err := h.store.Upsert(in.DeviceName, in.Count); err != nil {
		models.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	models.WriteOK(w, nil)
}
