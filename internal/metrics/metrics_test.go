package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/logary/checkout-service/internal/domain"
	"github.com/logary/checkout-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewCheckoutMetrics(registry, logger.NewNop()).(*checkoutMetrics)

	m.RecordOutcome(domain.Outcome{Type: domain.OutcomeSuccess, Code: "active|succeeded"})
	m.RecordOutcome(domain.Outcome{Type: domain.OutcomeSuccess, Code: "active|succeeded"})
	m.RecordRejection("Bad e-mail")
	m.RecordFailure(domain.KindProcessor)
	m.ObserveProcessorCall("create_subscription", 120*time.Millisecond, nil)
	m.ObserveProcessorCall("create_subscription", 80*time.Millisecond, errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.outcomes.WithLabelValues("success", "active|succeeded")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rejections.WithLabelValues("Bad e-mail")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.failures.WithLabelValues("processor")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.processorCalls))
}

func TestStatusClass(t *testing.T) {
	assert.Equal(t, "2xx", statusClass(200))
	assert.Equal(t, "4xx", statusClass(400))
	assert.Equal(t, "5xx", statusClass(503))
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	registry := NewRegistry()

	r := gin.New()
	r.Use(Middleware(registry))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", Handler(registry))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.True(t, strings.Contains(body, `checkout_http_requests_total{method="GET",path="/ping",status="2xx"} 1`), body)
	assert.Contains(t, body, "go_goroutines")
}
