package registry

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"labrack/internal/models"
	"labrack/internal/timeutil"

	"github.com/gorilla/mux"
)

type HTTP struct {
	store     Store
	clock     timeutil.Clock
	adminCode string
}

func NewHTTP(s Store, clock timeutil.Clock, adminCode string) *HTTP {
	if clock == nil {
		clock = timeutil.System
	}
	return &HTTP{store: s, clock: clock, adminCode: adminCode}
}

func (h *HTTP) RegisterRoutes(r *mux.Router) {
	api := r.PathPrefix("/api").Subrouter()

	// device CRUD (admin)
	api.HandleFunc("/devices", h.createDevice).Methods(http.MethodPost)
	api.HandleFunc("/devices/{id}", h.updateDevice).Methods(http.MethodPut, http.MethodPatch)
	api.HandleFunc("/devices/{id}", h.deleteDevice).Methods(http.MethodDelete)

	// демо-переключатель login activity
	api.HandleFunc("/login-activity", h.loginActivity).Methods(http.MethodPost)
}

// checkAdmin — статичный shared-secret, как у контроллера.
func (h *HTTP) checkAdmin(w http.ResponseWriter, r *http.Request) bool {
	if h.adminCode == "" {
		return true
	}
	if r.Header.Get("X-Admin-Code") != h.adminCode {
		models.WriteError(w, http.StatusForbidden, "invalid admin code")
		return false
	}
	return true
}

func (h *HTTP) createDevice(w http.ResponseWriter, r *http.Request) {
	if !h.checkAdmin(w, r) {
		return
	}
	var in struct {
		Name        string `json:"name"`
		DeviceIP    string `json:"device_ip"`
		ConsoleIP   string `json:"console_ip"`
		ConsolePort int    `json:"console_port"`
		EnablePing  *bool  `json:"enable_ping"`
		Description string `json:"description"`
		Team        string `json:"team"`
		Section     string `json:"section"`
		Owner       string `json:"owner"`
		Location    string `json:"location"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		models.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(in.Name) == "" {
		models.WriteError(w, http.StatusBadRequest, "Device name is required")
		return
	}

	d := models.Device{
		Name:        in.Name,
		DeviceIP:    in.DeviceIP,
		ConsoleIP:   in.ConsoleIP,
		ConsolePort: in.ConsolePort,
		EnablePing:  in.EnablePing == nil || *in.EnablePing,
		Description: in.Description,
		Team:        in.Team,
		Section:     in.Section,
		Owner:       in.Owner,
		Location:    in.Location,
	}
	ApplyDefaults(&d)

	if err := h.store.CreateDevice(&d); err != nil {
		models.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	models.WriteOK(w, map[string]any{"id": d.ID})
}

func (h *HTTP) updateDevice(w http.ResponseWriter, r *http.Request) {
	if !h.checkAdmin(w, r) {
		return
	}
	id, err := parseID(r)
	if err != nil {
		models.WriteError(w, http.StatusBadRequest, "invalid device id")
		return
	}
	d, err := h.store.GetDevice(id)
	if err != nil {
		h.writeStoreErr(w, err)
		return
	}

	// omitted fields keep their value; fields present with "" clear it
	var in struct {
		Name        *string `json:"name"`
		DeviceIP    *string `json:"device_ip"`
		ConsoleIP   *string `json:"console_ip"`
		ConsolePort *int    `json:"console_port"`
		EnablePing  *bool   `json:"enable_ping"`
		Description *string `json:"description"`
		Team        *string `json:"team"`
		Section     *string `json:"section"`
		Owner       *string `json:"owner"`
		Location    *string `json:"location"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		models.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if in.Name != nil {
		d.Name = *in.Name
	}
	if in.DeviceIP != nil {
		d.DeviceIP = *in.DeviceIP
	}
	if in.ConsoleIP != nil {
		d.ConsoleIP = *in.ConsoleIP
	}
	if in.ConsolePort != nil {
		d.ConsolePort = *in.ConsolePort
		if d.ConsolePort == 0 {
			d.ConsolePort = 23
		}
	}
	if in.EnablePing != nil {
		d.EnablePing = *in.EnablePing
	}
	if in.Description != nil {
		d.Description = *in.Description
	}
	if in.Team != nil {
		d.Team = *in.Team
	}
	if in.Section != nil {
		d.Section = *in.Section
	}
	if in.Owner != nil {
		d.Owner = *in.Owner
	}
	if in.Location != nil {
		d.Location = *in.Location
	}

	if err := h.store.UpdateDevice(d); err != nil {
		h.writeStoreErr(w, err)
		return
	}
	models.WriteOK(w, nil)
}

func (h *HTTP) deleteDevice(w http.ResponseWriter, r *http.Request) {
	if !h.checkAdmin(w, r) {
		return
	}
	id, err := parseID(r)
	if err != nil {
		models.WriteError(w, http.StatusBadRequest, "invalid device id")
		return
	}
	if err := h.store.DeleteDevice(id); err != nil {
		h.writeStoreErr(w, err)
		return
	}
	models.WriteOK(w, nil)
}

func (h *HTTP) loginActivity(w http.ResponseWriter, r *http.Request) {
	var in struct {
		DeviceID uint `json:"device_id"`
		Active   bool `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		models.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.store.SetLoginActivity(in.DeviceID, in.Active, timeutil.NowMs(h.clock)); err != nil {
		h.writeStoreErr(w, err)
		return
	}
	models.WriteOK(w, nil)
}

func (h *HTTP) writeStoreErr(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotFound) {
		models.WriteError(w, http.StatusNotFound, "Device not found")
		return
	}
	models.WriteError(w, http.StatusInternalServerError, err.Error())
}

func parseID(r *http.Request) (uint, error) {
	u, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	return uint(u), err
}
