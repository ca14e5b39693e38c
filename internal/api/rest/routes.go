package rest

import (
	"time"

	"github.com/logary/checkout-service/internal/api/rest/handlers"
	"github.com/logary/checkout-service/internal/api/rest/middleware"
	"github.com/logary/checkout-service/internal/metrics"
	"github.com/logary/checkout-service/internal/service"
	"github.com/logary/checkout-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// SetupRouter wires the checkout routes, middleware and the metrics endpoint.
func SetupRouter(log *logger.Logger, registry *prometheus.Registry, checkout service.CheckoutService) *gin.Engine {
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.LoggerMiddleware(log))
	r.Use(metrics.Middleware(registry))
	r.Use(gin.Recovery())

	r.GET("/health", handlers.HealthCheck(time.Now()))
	r.GET("/metrics", metrics.Handler(registry))

	chargeHandler := handlers.NewChargeHandler(checkout, log)
	r.POST("/charge", chargeHandler.Charge)

	return r
}
