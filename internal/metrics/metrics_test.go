package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/billbook/internal/metrics"
)

// counter returns the value of the counter sample whose labels include want.
func counter(t *testing.T, m *metrics.Metrics, name string, want map[string]string) float64 {
	t.Helper()

	families, err := m.Registry().Gather()
	require.NoError(t, err)

	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}

	samples:
		for _, metric := range mf.GetMetric() {
			labels := make(map[string]string)
			for _, lp := range metric.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}

			for k, v := range want {
				if labels[k] != v {
					continue samples
				}
			}

			return metric.GetCounter().GetValue()
		}
	}

	return 0
}

func TestMetrics_Counters(t *testing.T) {
	m := metrics.New(metrics.Config{Environment: "test"})

	m.DocumentSaved("bill")
	m.DocumentSaved("bill")
	m.DocumentSaved("invoice")
	m.StockRejected()
	m.ShareResolved("expired")

	assert.Equal(t, 2.0, counter(t, m, "billbook_documents_saved_total", map[string]string{"kind": "bill", "env": "test"}))
	assert.Equal(t, 1.0, counter(t, m, "billbook_documents_saved_total", map[string]string{"kind": "invoice"}))
	assert.Equal(t, 1.0, counter(t, m, "billbook_stock_rejections_total", map[string]string{"service": "billbook"}))
	assert.Equal(t, 1.0, counter(t, m, "billbook_share_resolutions_total", map[string]string{"result": "expired"}))
	assert.Equal(t, 0.0, counter(t, m, "billbook_share_resolutions_total", map[string]string{"result": "ok"}))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *metrics.Metrics

	assert.NotPanics(t, func() {
		m.DocumentSaved("invoice")
		m.StockRejected()
		m.ShareResolved("ok")
	})

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	assert.NotNil(t, m.Middleware(next))
}

func TestMetrics_MiddlewareAndHandler(t *testing.T) {
	m := metrics.New(metrics.Config{})

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/documents/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	r.Handle("/metrics", m.Handler())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/documents/42", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `route="/documents/{id}"`)
	assert.Contains(t, string(body), `status="418"`)
}
