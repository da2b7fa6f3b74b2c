//go:build unit
// +build unit

package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/company/:ticker", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", Handler())

	for _, ticker := range []string{"AAPL", "MSFT"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/company/"+ticker, nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}

	TicksTotal.WithLabelValues("AAPL").Inc()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `trade_floor_http_requests_total{method="GET",route="/company/:ticker",status="200"}`)
	assert.Contains(t, w.Body.String(), `trade_floor_ticks_total{symbol="AAPL"}`)
}

func TestCollectorsRegistered(t *testing.T) {
	TradesTotal.WithLabelValues("2", "buy").Inc()
	StreamSubscribers.Set(0)

	mfs, err := prometheus.DefaultGatherer.Gather()
	assert.NoError(t, err)

	names := map[string]bool{}
	for _, mf := range mfs {
		names[mf.GetName()] = true
	}
	assert.True(t, names["trade_floor_trades_total"])
	assert.True(t, names["trade_floor_stream_subscribers"])
}
