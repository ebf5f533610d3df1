package telemetry

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"Stratowave/internal/config"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

const (
	ServiceName    = "stratowave"
	ServiceVersion = "1.0.0"
)

func rotatingFile(dir, name string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   filepath.Join(dir, name),
		MaxSize:    10, // 10 MB
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}
}

// InitLogger initializes structured logging with rotation.
// The returned closer flushes and closes the log file.
func InitLogger(dir string, debug bool) (*slog.Logger, io.Closer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file := rotatingFile(dir, "stratowave.log")

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	// Server logs go to the file and to stderr so container runtimes see them
	handler := slog.NewJSONHandler(io.MultiWriter(os.Stderr, file), &slog.HandlerOptions{
		Level: level,
	})

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger, file, nil
}

// InitTelemetry initializes OpenTelemetry tracing and metrics.
// Traces go to <dir>/stratowave_traces.log and metrics to
// <dir>/stratowave_metrics.log, both rotated like the application log.
// cfg sets the metric export interval, the trace sampling ratio and whether
// records are pretty-printed.
func InitTelemetry(ctx context.Context, dir string, cfg config.TelemetryConfig) (trace.Tracer, metric.Meter, func(), error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(ServiceName),
			semconv.ServiceVersion(ServiceVersion),
		),
	)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create resource: %w", err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	traceFile := rotatingFile(dir, "stratowave_traces.log")
	tp, err := newTracerProvider(traceFile, res, cfg)
	if err != nil {
		traceFile.Close()
		return nil, nil, nil, err
	}

	metricsFile := rotatingFile(dir, "stratowave_metrics.log")
	mp, err := newMeterProvider(metricsFile, res, cfg)
	if err != nil {
		tp.Shutdown(ctx)
		traceFile.Close()
		metricsFile.Close()
		return nil, nil, nil, err
	}

	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			slog.Error("failed to shutdown tracer provider", "error", err)
		}
		if err := mp.Shutdown(ctx); err != nil {
			slog.Error("failed to shutdown meter provider", "error", err)
		}
		for _, f := range []io.Closer{traceFile, metricsFile} {
			if err := f.Close(); err != nil {
				slog.Error("failed to close telemetry file", "error", err)
			}
		}
	}

	return tp.Tracer(ServiceName), mp.Meter(ServiceName), cleanup, nil
}

// newTracerProvider batches spans into w. Root spans are sampled at
// cfg.TraceSampleRatio; child spans follow their parent.
func newTracerProvider(w io.Writer, res *resource.Resource, cfg config.TelemetryConfig) (*sdktrace.TracerProvider, error) {
	opts := []stdouttrace.Option{stdouttrace.WithWriter(w)}
	if cfg.PrettyPrint {
		opts = append(opts, stdouttrace.WithPrettyPrint())
	}
	exporter, err := stdouttrace.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.TraceSampleRatio))),
	), nil
}

// newMeterProvider exports metrics to w every cfg.MetricsInterval
func newMeterProvider(w io.Writer, res *resource.Resource, cfg config.TelemetryConfig) (*sdkmetric.MeterProvider, error) {
	opts := []stdoutmetric.Option{stdoutmetric.WithWriter(w)}
	if cfg.PrettyPrint {
		opts = append(opts, stdoutmetric.WithPrettyPrint())
	}
	exporter, err := stdoutmetric.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create metric exporter: %w", err)
	}

	return sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(
			sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(cfg.MetricsInterval)),
		),
		sdkmetric.WithResource(res),
	), nil
}
