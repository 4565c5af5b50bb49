package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_CountsByRoutePattern(t *testing.T) {
	m := New()

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/pets/{petID}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, path := range []string{"/pets/1", "/pets/2"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusNotFound, rec.Code)
	}

	got := testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/pets/{petID}", "404"))
	assert.Equal(t, float64(2), got)
}

func TestObserveStore(t *testing.T) {
	m := New()

	m.ObserveStore("get", "absent", time.Millisecond)
	m.ObserveStore("get", "ok", time.Millisecond)
	m.ObserveStore("get", "ok", time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.storeOps.WithLabelValues("get", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.storeOps.WithLabelValues("get", "absent")))
}

func TestHandler_ExposesMetrics(t *testing.T) {
	m := New()
	m.ObserveStore("insert", "ok", time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `pet_registry_store_operations_total{op="insert",result="ok"} 1`)
}
