package observability

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.27.0"

	"github.com/yungbote/giftwizard-backend/internal/platform/envutil"
	"github.com/yungbote/giftwizard-backend/internal/platform/logger"
)

const (
	tracerName         = "github.com/yungbote/giftwizard-backend"
	defaultServiceName = "giftwizard"
	defaultSampleRatio = 0.1
)

type OtelConfig struct {
	ServiceName string
	Environment string
	Version     string
}

// traceSettings is the OTEL_* environment, read once per InitOTel.
type traceSettings struct {
	enabled     bool
	endpoint    string
	insecure    bool
	headers     map[string]string
	sampleRatio float64
}

func loadTraceSettings(log *logger.Logger) traceSettings {
	return traceSettings{
		enabled:     envutil.Bool("OTEL_ENABLED", false, log),
		endpoint:    strings.TrimSpace(envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", "", log)),
		insecure:    envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", false, log),
		headers:     parseHeaderList(envutil.List("OTEL_EXPORTER_OTLP_HEADERS", nil, log)),
		sampleRatio: clampRatio(envutil.String("OTEL_SAMPLER_RATIO", "", log)),
	}
}

var (
	otelOnce     sync.Once
	otelShutdown func(context.Context) error
)

// InitOTel installs the global tracer provider when OTEL_ENABLED is set. The
// returned shutdown func is nil when tracing is off.
func InitOTel(ctx context.Context, log *logger.Logger, cfg OtelConfig) func(context.Context) error {
	otelOnce.Do(func() {
		ts := loadTraceSettings(log)
		if !ts.enabled {
			return
		}
		tp := sdktrace.NewTracerProvider(providerOptions(ctx, log, cfg, ts)...)
		otel.SetTracerProvider(tp)
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		))
		otelShutdown = tp.Shutdown
		if log != nil {
			log.Info("Tracing enabled", "service", serviceNameOr(cfg.ServiceName), "endpoint", ts.endpoint, "ratio", ts.sampleRatio)
		}
	})
	return otelShutdown
}

func providerOptions(ctx context.Context, log *logger.Logger, cfg OtelConfig, ts traceSettings) []sdktrace.TracerProviderOption {
	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ts.sampleRatio))),
	}
	res, err := resource.New(ctx, resource.WithAttributes(
		semconv.ServiceNameKey.String(serviceNameOr(cfg.ServiceName)),
		semconv.ServiceVersionKey.String(strings.TrimSpace(cfg.Version)),
		attribute.String("deployment.environment", strings.TrimSpace(cfg.Environment)),
	))
	if err != nil && log != nil {
		log.Warn("Tracing resource incomplete", "error", err)
	}
	if res != nil {
		opts = append(opts, sdktrace.WithResource(res))
	}
	exp, err := newSpanExporter(ctx, log, ts)
	if err != nil {
		if log != nil {
			log.Warn("Span exporter unavailable, spans will be dropped", "error", err)
		}
		return opts
	}
	return append(opts, sdktrace.WithBatcher(exp, sdktrace.WithBatchTimeout(5*time.Second)))
}

// newSpanExporter ships to OTLP/HTTP when an endpoint is set and to stdout
// otherwise.
func newSpanExporter(ctx context.Context, log *logger.Logger, ts traceSettings) (sdktrace.SpanExporter, error) {
	if ts.endpoint == "" {
		if log != nil {
			log.Warn("OTEL_EXPORTER_OTLP_ENDPOINT not set, printing spans to stdout")
		}
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	}
	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(ts.endpoint)}
	if ts.insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	if len(ts.headers) > 0 {
		opts = append(opts, otlptracehttp.WithHeaders(ts.headers))
	}
	return otlptracehttp.New(ctx, opts...)
}

// StartSpan starts a span on the global provider. It is a no-op span when
// tracing was never initialized.
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, func()) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, name)
	if len(attrs) > 0 {
		span.SetAttributes(attrs...)
	}
	return ctx, func() { span.End() }
}

// TracingEnabled reports whether OTEL_ENABLED asks for a tracer provider.
func TracingEnabled() bool { return envutil.Bool("OTEL_ENABLED", false, nil) }

func serviceNameOr(name string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	return defaultServiceName
}

func clampRatio(raw string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	switch {
	case err != nil:
		return defaultSampleRatio
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}

// parseHeaderList turns "k1=v1,k2=v2" entries into a header map, skipping
// malformed pairs.
func parseHeaderList(parts []string) map[string]string {
	headers := map[string]string{}
	for _, part := range parts {
		key, val, ok := strings.Cut(part, "=")
		key, val = strings.TrimSpace(key), strings.TrimSpace(val)
		if !ok || key == "" || val == "" {
			continue
		}
		headers[key] = val
	}
	return headers
}
