package reservation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"labrack/internal/models"
	"labrack/internal/registry"
	"labrack/internal/timeutil"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) (*mux.Router, uint) {
	t.Helper()
	devices := registry.NewMemStore()
	d := &models.Device{Name: "40-07", EnablePing: true}
	require.NoError(t, devices.CreateDevice(d))
	require.NoError(t, devices.SetUp(d.ID, true, nowMs))

	ledger := NewLedger(NewMemStore(), devices, timeutil.Static(nowMs))
	r := mux.NewRouter()
	NewHTTP(ledger).RegisterRoutes(r)
	return r, d.ID
}

func do(r *mux.Router, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestReserveEndpoint(t *testing.T) {
	r, id := newServer(t)

	w := do(r, http.MethodPost, "/api/reserve",
		`{"device_id": `+itoa(id)+`, "user_name": "alice", "minutes": 30}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":true`)

	// повторная бронь — конфликт
	w = do(r, http.MethodPost, "/api/reserve",
		`{"device_id": `+itoa(id)+`, "user_name": "bob", "minutes": 30}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already reserved")
}

func TestReserveEndpoint_UnknownDevice(t *testing.T) {
	r, _ := newServer(t)
	w := do(r, http.MethodPost, "/api/reserve", `{"device_id": 404, "user_name": "alice", "minutes": 30}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReserveEndpoint_StoreFailureIs500(t *testing.T) {
	ledger := NewLedger(NewMemStore(),
		brokenDevices{err: errors.New("connection refused")}, timeutil.Static(nowMs))
	r := mux.NewRouter()
	NewHTTP(ledger).RegisterRoutes(r)

	w := do(r, http.MethodPost, "/api/reserve", `{"device_id": 1, "user_name": "alice", "minutes": 30}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestReserveEndpoint_ZeroDuration(t *testing.T) {
	r, id := newServer(t)
	w := do(r, http.MethodPost, "/api/reserve", `{"device_id": `+itoa(id)+`, "user_name": "alice"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Duration cannot be zero")
}

func TestReleaseEndpoint(t *testing.T) {
	r, id := newServer(t)

	// нечего освобождать
	w := do(r, http.MethodPost, "/api/release", `{"device_id": `+itoa(id)+`, "user_name": "alice"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No active reservation")

	do(r, http.MethodPost, "/api/reserve", `{"device_id": `+itoa(id)+`, "user_name": "alice", "minutes": 30}`)

	// чужой пользователь — 403
	w = do(r, http.MethodPost, "/api/release", `{"device_id": `+itoa(id)+`, "user_name": "bob"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(r, http.MethodPost, "/api/release", `{"device_id": `+itoa(id)+`, "user_name": "alice"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func itoa(u uint) string { return strconv.FormatUint(uint64(u), 10) }
