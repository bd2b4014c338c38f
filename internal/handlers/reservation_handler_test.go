package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serenity-studio/yoga-scheduler/internal/config"
	"github.com/serenity-studio/yoga-scheduler/internal/routes"
	"github.com/serenity-studio/yoga-scheduler/internal/schedule"
	"github.com/serenity-studio/yoga-scheduler/internal/store"
	"github.com/serenity-studio/yoga-scheduler/internal/store/kv"
)

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	backend := store.NewLocal(kv.NewMemory(), "UTC")
	cfg := &config.Config{Timezone: "UTC", CreateLatency: 0}

	r := gin.New()
	routes.RegisterRoutes(r, backend, cfg, nil)
	return r
}

// nextClassDate picks the first date at least `after` days out on which the
// class is actually held, so requests pass the weekday rule against the real
// clock.
func nextClassDate(t *testing.T, classType string, after int) string {
	t.Helper()

	class, ok := schedule.ByType(classType)
	require.True(t, ok, "unknown class %q", classType)

	d := time.Now().UTC().AddDate(0, 0, after)
	for i := 0; i < 7; i++ {
		if class.HeldOn(d.Weekday()) {
			return d.Format("2006-01-02")
		}
		d = d.AddDate(0, 0, 1)
	}
	t.Fatalf("no %s session within a week of +%dd", classType, after)
	return ""
}

func bookingBody(email, date string) map[string]string {
	return map[string]string{
		"classType": "hatha",
		"date":      date,
		"time":      "10:00-11:00",
		"name":      "田中太郎",
		"email":     email,
		"phone":     "090-1234-5678",
		"notes":     "",
	}
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Status     string          `json:"status"`
	Code       string          `json:"code"`
	Message    string          `json:"message"`
	Violations []string        `json:"violations"`
	Data       json.RawMessage `json:"data"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	return env
}

func TestCreateReservationEndpoint(t *testing.T) {
	r := newRouter(t)
	date := nextClassDate(t, "hatha", 3)

	w := doJSON(t, r, http.MethodPost, "/api/reservations", bookingBody("alice@example.com", date))
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())

	env := decode(t, w)
	assert.Equal(t, "success", env.Status)

	var created struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.True(t, strings.HasPrefix(created.ID, "BK"), "id = %q", created.ID)
	assert.Equal(t, "confirmed", created.Status)

	// Same (email, date, class) while confirmed: conflict.
	w = doJSON(t, r, http.MethodPost, "/api/reservations", bookingBody("alice@example.com", date))
	require.Equal(t, http.StatusConflict, w.Code)
	env = decode(t, w)
	assert.Equal(t, "error", env.Status)
	assert.Equal(t, "duplicate_reservation", env.Code)
}

func TestCreateReservationRejectsBadInput(t *testing.T) {
	r := newRouter(t)

	// Malformed JSON body.
	req := httptest.NewRequest(http.MethodPost, "/api/reservations", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_request", decode(t, w).Code)

	// Well-formed but empty: every rule reported at once.
	w = doJSON(t, r, http.MethodPost, "/api/reservations", map[string]string{})
	require.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w)
	assert.Equal(t, "validation_failed", env.Code)
	assert.Len(t, env.Violations, 6)
}

func TestSearchAndStatusFilter(t *testing.T) {
	r := newRouter(t)
	date := nextClassDate(t, "hatha", 3)

	w := doJSON(t, r, http.MethodPost, "/api/reservations", bookingBody("carol@example.com", date))
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &created))

	w = doJSON(t, r, http.MethodDelete, "/api/reservations/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	list := func(path string) []map[string]any {
		w := doJSON(t, r, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var out []map[string]any
		require.NoError(t, json.Unmarshal(decode(t, w).Data, &out))
		return out
	}

	// Default view keeps the cancelled booking visible.
	all := list("/api/reservations?email=carol@example.com")
	require.Len(t, all, 1)
	assert.Equal(t, "cancelled", all[0]["status"])

	// The confirmation page asks for confirmed only.
	confirmed := list("/api/reservations?email=carol@example.com&status=confirmed")
	assert.Empty(t, confirmed)
}

func TestCancelEndpointErrors(t *testing.T) {
	r := newRouter(t)

	w := doJSON(t, r, http.MethodDelete, "/api/reservations/BKUNKNOWN", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "reservation_not_found", decode(t, w).Code)
}

func TestExportEndpoint(t *testing.T) {
	r := newRouter(t)
	date := nextClassDate(t, "hatha", 3)

	w := doJSON(t, r, http.MethodPost, "/api/reservations", bookingBody("dave@example.com", date))
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/reservations/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "reservations.csv")

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "id,class,schedule,date"), "header: %s", lines[0])
	assert.Contains(t, lines[1], "dave@example.com")
}

func TestClassEndpoints(t *testing.T) {
	r := newRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/classes", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var classes []map[string]any
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &classes))
	assert.Len(t, classes, 3)

	date := nextClassDate(t, "hatha", 3)
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/classes/hatha/availability?date=%s", date), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var avail struct {
		Capacity  int  `json:"capacity"`
		Remaining int  `json:"remaining"`
		Available bool `json:"available"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &avail))
	assert.Equal(t, 12, avail.Capacity)
	assert.True(t, avail.Available)

	// Date is required.
	w = doJSON(t, r, http.MethodGet, "/api/classes/hatha/availability", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "missing_params", decode(t, w).Code)
}

func TestHealthEndpoint(t *testing.T) {
	r := newRouter(t)

	w := doJSON(t, r, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, "healthy", out["status"])
}
