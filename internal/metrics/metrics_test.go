package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()
	m.Transition("approve", "ok")
	m.Transition("approve", "ok")
	m.Transition("reject", "permission_denied")
	m.Verification(true)
	m.Created("sa")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.transitions.WithLabelValues("approve", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transitions.WithLabelValues("reject", "permission_denied")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.verifications.WithLabelValues("true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.created.WithLabelValues("sa")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.Transition("approve", "ok")
	m.Verification(false)
	m.Created("ppk")
}

func TestHandlerExposesCounters(t *testing.T) {
	m := New()
	m.Created("ppk")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `venuebooking_bookings_created_total{handled_by="ppk"} 1`)
}
