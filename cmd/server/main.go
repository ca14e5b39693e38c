package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/logary/checkout-service/config"
	"github.com/logary/checkout-service/internal/api/rest"
	"github.com/logary/checkout-service/internal/kafka"
	"github.com/logary/checkout-service/internal/metrics"
	"github.com/logary/checkout-service/internal/pricing"
	"github.com/logary/checkout-service/internal/service"
	"github.com/logary/checkout-service/internal/stripe"
	"github.com/logary/checkout-service/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	bootLog := logger.New(logger.INFO)

	cfg, err := config.Load()
	if err != nil {
		bootLog.Fatal("Failed to load configuration: %v", err)
	}

	log := logger.NewWithFormat(logger.ParseLevel(cfg.Logging.Level), cfg.Logging.Format)
	defer func() { _ = log.Sync() }()

	log.Infow("Checkout service starting up", "port", cfg.Server.Port)

	registry := metrics.NewRegistry()
	checkoutMetrics := metrics.NewCheckoutMetrics(registry, log)

	calculator, err := pricing.NewCalculator(
		cfg.Pricing.Currency,
		cfg.Pricing.CoreYearly,
		cfg.Pricing.DevYearly,
		cfg.Pricing.VATRate,
	)
	if err != nil {
		log.Fatal("Invalid pricing configuration: %v", err)
	}

	stripeClient := stripe.NewInstrumentedClient(
		stripe.NewStripeClient(stripe.Config{
			SecretKey:         cfg.Stripe.SecretKey,
			MaxNetworkRetries: cfg.Stripe.MaxNetworkRetries,
			APIURL:            cfg.Stripe.APIURL,
		}, log),
		checkoutMetrics,
	)

	var publisher service.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		if err := kafka.EnsureTopic(context.Background(), cfg.Kafka.Brokers, cfg.Kafka.Topic, 3, log); err != nil {
			log.Warnw("Could not ensure Kafka topic, relying on broker auto-creation", "error", err)
		}
		producer, err := kafka.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
		if err != nil {
			log.Fatal("Failed to create Kafka producer: %v", err)
		}
		defer func() {
			if err := producer.Close(); err != nil {
				log.Errorw("Failed to close Kafka producer", "error", err)
			}
		}()
		publisher = producer
	} else {
		log.Infow("Kafka brokers not configured, checkout events are disabled")
	}

	catalog := service.NewCatalogResolver(stripeClient, service.ProductNames{
		Cores: cfg.Stripe.CoresProduct,
		Devs:  cfg.Stripe.DevsProduct,
	}, log)
	checkout := service.NewCheckoutService(
		calculator,
		service.NewCustomerReconciler(stripeClient, log),
		service.NewSubscriptionBuilder(stripeClient, catalog, log),
		checkoutMetrics,
		publisher,
		log,
	)

	if cfg.IsRelease() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := rest.SetupRouter(log, registry, checkout)
	server := rest.NewServer(router, cfg.Server, log)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownTimeout := time.Duration(cfg.Server.ShutdownTimeout) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Errorw("Server forced to shutdown", "error", err)
	}

	log.Info("Server stopped gracefully")
}
