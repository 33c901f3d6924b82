// Package chaos injects configurable latency and simulated transient
// failures in front of store operations, to exercise the pipeline's
// behavior under a degraded dependency.
package chaos

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Simulated transient store faults. Callers classify these as dependency
// failures, never as client errors.
var (
	ErrThrottling         = errors.New("simulated store throttling: provisioned throughput exceeded")
	ErrTimeout            = errors.New("simulated store request timeout")
	ErrServiceUnavailable = errors.New("simulated store service unavailable")
)

var faultErrors = map[FaultKind]error{
	FaultThrottling:         ErrThrottling,
	FaultTimeout:            ErrTimeout,
	FaultServiceUnavailable: ErrServiceUnavailable,
}

// IsFault reports whether err is a chaos-injected store fault.
func IsFault(err error) bool {
	return errors.Is(err, ErrThrottling) || errors.Is(err, ErrTimeout) || errors.Is(err, ErrServiceUnavailable)
}

var (
	latencyInjections = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "chaos_latency_injections_total",
		Help: "Number of artificial latency injections before store operations",
	})
	faultInjections = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "chaos_fault_injections_total",
		Help: "Number of simulated store faults raised, by kind",
	}, []string{"kind"})
)

func init() {
	prometheus.MustRegister(latencyInjections)
	prometheus.MustRegister(faultInjections)
}

// Injector guards store operations. The config is fetched from the source on
// every Guard call; there is no caching.
type Injector struct {
	source Source
	tracer trace.Tracer
}

func NewInjector(source Source, tracer trace.Tracer) *Injector {
	return &Injector{source: source, tracer: tracer}
}

// Guard is called immediately before a store operation. When injection is
// enabled it either sleeps for a random duration or returns a simulated
// transient fault. Latency takes priority: once the latency branch runs, the
// exception branch is skipped for this call. Disabled or unreachable config
// means no side effect at all.
func (i *Injector) Guard(ctx context.Context) error {
	ctx, span := i.tracer.Start(ctx, "inject_store_chaos")
	defer span.End()

	cfg := i.source.Fetch(ctx)
	span.SetAttributes(attribute.Bool("chaos.enabled", cfg.Enabled))

	if !cfg.Enabled {
		return nil
	}

	if cfg.Latency.Enabled {
		if rand.Float64() < cfg.Latency.Probability {
			delay := time.Duration(cfg.Latency.MinMS) * time.Millisecond
			if spread := cfg.Latency.MaxMS - cfg.Latency.MinMS; spread > 0 {
				delay += time.Duration(rand.Intn(spread+1)) * time.Millisecond
			}
			if err := i.sleep(ctx, delay); err != nil {
				return err
			}
		}
		return nil
	}

	if cfg.Exceptions.Enabled && rand.Float64() < cfg.Exceptions.Probability {
		kind := cfg.Exceptions.Types[rand.Intn(len(cfg.Exceptions.Types))]
		faultInjections.WithLabelValues(string(kind)).Inc()
		span.SetAttributes(attribute.String("chaos.fault_kind", string(kind)))
		return fmt.Errorf("chaos injection: %w", faultErrors[kind])
	}

	return nil
}

// sleep waits for delay but gives up when the caller's deadline expires, so
// an injected stall can never outlive the request.
func (i *Injector) sleep(ctx context.Context, delay time.Duration) error {
	ctx, span := i.tracer.Start(ctx, "inject_latency")
	defer span.End()

	span.SetAttributes(attribute.Int64("chaos.delay_ms", delay.Milliseconds()))
	latencyInjections.Inc()

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
