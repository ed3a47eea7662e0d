// Package metrics holds the application's OpenTelemetry instruments and the Prometheus
// exporter that serves them.
package metrics

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const meterName = "social-media-app"

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	RegisterTotal       metric.Int64Counter
	LoginTotal          metric.Int64Counter
	PostsCreatedTotal   metric.Int64Counter
	LikesToggledTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// Provider is the installed meter provider with its Prometheus registry.
type Provider struct {
	mp       *sdkmetric.MeterProvider
	registry *prometheus.Registry
}

// Init installs a meter provider exporting to a dedicated Prometheus registry and makes it
// the global provider. Instruments obtained through Get before Init start recording once
// Init has run.
func Init(serviceName string) (*Provider, error) {
	registry := prometheus.NewRegistry()
	exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
		sdkmetric.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(serviceName),
		)),
	)
	otel.SetMeterProvider(mp)

	return &Provider{mp: mp, registry: registry}, nil
}

// Handler serves the registry in the Prometheus text format.
func (p *Provider) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

// Shutdown flushes and stops the meter provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	return p.mp.Shutdown(ctx)
}

// Get returns the application instruments, creating them on first use from the global
// meter provider. Without Init they are no-ops.
func Get() *AppMetrics {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter(meterName)
		m := &AppMetrics{}
		var errs []error
		var err error

		m.RegisterTotal, err = meter.Int64Counter(
			"auth_register_total",
			metric.WithDescription("Total number of completed registrations"),
			metric.WithUnit("{user}"),
		)
		errs = append(errs, err)

		m.LoginTotal, err = meter.Int64Counter(
			"auth_login_total",
			metric.WithDescription("Total number of login attempts by result"),
			metric.WithUnit("{attempt}"),
		)
		errs = append(errs, err)

		m.PostsCreatedTotal, err = meter.Int64Counter(
			"posts_created_total",
			metric.WithDescription("Total number of posts created"),
			metric.WithUnit("{post}"),
		)
		errs = append(errs, err)

		m.LikesToggledTotal, err = meter.Int64Counter(
			"likes_toggled_total",
			metric.WithDescription("Total number of like toggles by resulting state"),
			metric.WithUnit("{toggle}"),
		)
		errs = append(errs, err)

		m.HTTPRequestDuration, err = meter.Float64Histogram(
			"http_request_duration_seconds",
			metric.WithDescription("Duration of HTTP requests in seconds"),
			metric.WithUnit("s"),
		)
		errs = append(errs, err)

		for _, err := range errs {
			if err != nil {
				// Instrument creation only fails on invalid names. The returned
				// instruments are still usable no-ops.
				slog.Error("failed to create metric instrument", "error", err)
			}
		}
		appMetrics = m
	})
	return appMetrics
}

// RecordRegister counts a completed registration.
func RecordRegister() {
	Get().RegisterTotal.Add(context.Background(), 1)
}

// RecordLogin counts a login attempt. result is "success" or "failure".
func RecordLogin(result string) {
	Get().LoginTotal.Add(context.Background(), 1, metric.WithAttributes(attribute.String("result", result)))
}

// RecordPostCreated counts a created post.
func RecordPostCreated() {
	Get().PostsCreatedTotal.Add(context.Background(), 1)
}

// RecordLikeToggled counts a like toggle by its resulting state.
func RecordLikeToggled(liked bool) {
	Get().LikesToggledTotal.Add(context.Background(), 1, metric.WithAttributes(attribute.Bool("liked", liked)))
}

// ObserveRequest records the duration of an HTTP request.
func ObserveRequest(ctx context.Context, method, route string, status int, elapsed time.Duration) {
	Get().HTTPRequestDuration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
		attribute.String("status", strconv.Itoa(status)),
	))
}
