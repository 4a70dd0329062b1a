package fx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestProvider_Rates(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		switch r.URL.Path {
		case "/eth":
			_, _ = w.Write([]byte(`{"ethereum":{"eur":2500.5}}`))
		case "/fiat":
			_, _ = w.Write([]byte(`{"rates":{"USD":1.25,"GBP":0.8}}`))
		}
	}))
	defer srv.Close()

	p := NewProvider(Config{ETHURL: srv.URL + "/eth", FiatURL: srv.URL + "/fiat"}, zap.NewNop())
	r := p.Rates(context.Background())
	assert.Equal(t, 2500.5, r.ETHToEUR)
	assert.InDelta(t, 0.8, r.USDToEUR, 1e-9)
	assert.InDelta(t, 1.25, r.GBPToEUR, 1e-9)

	// Memoized.
	_ = p.Rates(context.Background())
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestProvider_Fallbacks(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"Server Error", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusServiceUnavailable) }},
		{"Malformed", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte(`<html>`)) }},
		{"Missing Fields", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte(`{}`)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			p := NewProvider(Config{ETHURL: srv.URL, FiatURL: srv.URL}, zap.NewNop())
			assert.Equal(t, Fallback(), p.Rates(context.Background()))
		})
	}
}

func TestProvider_PartialFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/eth" {
			_, _ = w.Write([]byte(`{"ethereum":{"eur":1800}}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	r := NewProvider(Config{ETHURL: srv.URL + "/eth", FiatURL: srv.URL + "/fiat"}, zap.NewNop()).Rates(context.Background())
	assert.Equal(t, 1800.0, r.ETHToEUR)
	assert.Equal(t, FallbackUSDToEUR, r.USDToEUR)
	assert.Equal(t, FallbackGBPToEUR, r.GBPToEUR)
}
