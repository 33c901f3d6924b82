package main

import (
	"context"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"

	"github.com/jayaganeshk/shoptrace/internal/chaos"
	"github.com/jayaganeshk/shoptrace/internal/httpapi"
	"github.com/jayaganeshk/shoptrace/internal/order"
	"github.com/jayaganeshk/shoptrace/internal/store"
	"github.com/jayaganeshk/shoptrace/internal/telemetry"
)

const (
	serviceName    = "order-service"
	serviceVersion = "1.0.0"
)

func init() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetLevel(logrus.InfoLevel)
}

func main() {
	ctx := context.Background()

	port := getEnv("PORT", "8083")
	otlpEndpoint := getEnv("OTLP_ENDPOINT", "localhost:4317")
	chaosConfigPath := getEnv("CHAOS_CONFIG_FILE", "")
	couponServiceURL := getEnv("COUPON_SERVICE_URL", "http://localhost:"+port+"/internal/coupon-service")
	couponTimeout := getDurationEnv("COUPON_SERVICE_TIMEOUT", 5*time.Second)

	shutdown, err := telemetry.Init(ctx, serviceName, serviceVersion, otlpEndpoint)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize tracer")
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			logrus.WithError(err).Error("Error shutting down tracer provider")
		}
	}()

	tracer := otel.Tracer(serviceName)

	var chaosSource chaos.Source = chaos.StaticSource{Config: chaos.Disabled()}
	if chaosConfigPath != "" {
		chaosSource = chaos.FileSource{Path: chaosConfigPath}
	}
	injector := chaos.NewInjector(chaosSource, tracer)

	db := store.NewMemory()
	if getEnv("SEED_SAMPLE_DATA", "true") == "true" {
		if err := store.SeedCoupons(ctx, db, time.Now().UTC()); err != nil {
			logrus.WithError(err).Fatal("Failed to seed sample coupons")
		}
	}

	validator := order.NewHTTPValidator(couponServiceURL, couponTimeout, tracer)
	orch := order.NewOrchestrator(db, injector, validator, tracer)

	r := httpapi.NewRouter(httpapi.NewHandler(serviceName, orch, tracer))

	logrus.WithFields(logrus.Fields{
		"service":        serviceName,
		"port":           port,
		"chaos_config":   chaosConfigPath,
		"coupon_service": couponServiceURL,
	}).Info("Starting order service")

	if err := r.Run(":" + port); err != nil {
		logrus.WithError(err).Fatal("Failed to start server")
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
