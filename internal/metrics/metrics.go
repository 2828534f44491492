// Package metrics exposes Prometheus instrumentation for the insights service.
package metrics

import (
	"context"
	"errors"
	"log"
	"time"

	"connectrpc.com/connect"
	"github.com/castlemilk/pfinsight/internal/insights"
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder receives domain events worth counting.
type Recorder interface {
	ObserveRisk(level insights.RiskLevel)
}

// Collector holds the service's Prometheus metrics.
type Collector struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	risk     *prometheus.CounterVec
}

// NewCollector creates a collector whose metric names are prefixed with namespace.
func NewCollector(namespace string) *Collector {
	return &Collector{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rpc_requests_total",
				Help:      "Total number of RPC requests per procedure and result code",
			},
			[]string{"procedure", "code"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "rpc_duration_seconds",
				Help:      "RPC handler latency",
				Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14), // 0.5ms to ~4s
			},
			[]string{"procedure"},
		),
		risk: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "risk_assessments_total",
				Help:      "Total number of risk assessments per resulting level",
			},
			[]string{"level"},
		),
	}
}

// Register registers all metrics with the given registerer.
func (c *Collector) Register(registry prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		c.requests,
		c.duration,
		c.risk,
	}
	for _, collector := range collectors {
		if err := registry.Register(collector); err != nil {
			return err
		}
	}
	return nil
}

// ObserveRisk counts one risk assessment at the given level.
func (c *Collector) ObserveRisk(level insights.RiskLevel) {
	c.risk.WithLabelValues(string(level)).Inc()
}

// Interceptor records request counts and latency for every unary call and logs
// failed calls.
func (c *Collector) Interceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			procedure := req.Spec().Procedure
			start := time.Now()

			resp, err := next(ctx, req)

			elapsed := time.Since(start)
			code := codeLabel(err)
			c.requests.WithLabelValues(procedure, code).Inc()
			c.duration.WithLabelValues(procedure).Observe(elapsed.Seconds())

			if err != nil {
				log.Printf("[RPC] %s failed after %s: code=%s err=%v", procedure, elapsed.Round(time.Microsecond), code, err)
			}
			return resp, err
		}
	}
}

func codeLabel(err error) string {
	if err == nil {
		return "ok"
	}
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr.Code().String()
	}
	return connect.CodeUnknown.String()
}
