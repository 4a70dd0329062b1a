package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.ItemProcessed("update-sales")
	m.ItemProcessed("update-sales")
	m.ItemSkipped("update-sales")
	m.PriceCorrections("update-sales", 3)
	m.PriceCorrections("update-sales", 0)
	m.UnverifiedPrices("update-sales", 2)
	m.RunFinished("update-sales", OutcomeSuspended, 90*time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.processed.WithLabelValues("update-sales")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.skipped.WithLabelValues("update-sales")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.corrections.WithLabelValues("update-sales")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.unverified.WithLabelValues("update-sales")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues("update-sales", OutcomeSuspended)))
	assert.Equal(t, 90.0, testutil.ToFloat64(m.duration.WithLabelValues("update-sales")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ItemProcessed("sync")
		m.ItemSkipped("sync")
		m.PriceCorrections("sync", 1)
		m.UnverifiedPrices("sync", 1)
		m.RunFinished("sync", OutcomeCompleted, time.Second)
	})
	assert.NoError(t, m.Push(context.Background(), Config{PushgatewayURL: "http://unused"}, "sync"))
}

func TestMetrics_Push(t *testing.T) {
	t.Run("Disabled", func(t *testing.T) {
		assert.NoError(t, New().Push(context.Background(), Config{}, "sync"))
	})

	t.Run("Pushes To Gateway", func(t *testing.T) {
		var gotPath string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		m := New()
		m.ItemProcessed("update-cards")
		err := m.Push(context.Background(), Config{PushgatewayURL: srv.URL, Job: "card-tracker", TimeoutSeconds: 2}, "update-cards")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(gotPath, "/metrics/job/card-tracker"))
		assert.Contains(t, gotPath, "operation/update-cards")
	})

	t.Run("Missing Job", func(t *testing.T) {
		err := New().Push(context.Background(), Config{PushgatewayURL: "http://localhost:9091"}, "sync")
		assert.Error(t, err)
	})
}
