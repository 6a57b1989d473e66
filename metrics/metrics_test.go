package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestOrderMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewOrderMetrics(reg)

	m.Committed(false)
	m.Committed(false)
	m.Committed(true)
	m.Duplicate()
	m.Rejected("empty cart")
	m.SaveFailed()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.committed.WithLabelValues("false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.committed.WithLabelValues("true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.duplicates))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rejected.WithLabelValues("empty cart")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.saveFailure))
}

func TestHandlerServesRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewOrderMetrics(reg).Duplicate()

	w := httptest.NewRecorder()
	Handler(reg).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "southern_spoon_orders_duplicate_total 1")
}
