// Package mopentelemetry wires a tracer provider against an OTLP/gRPC
// collector endpoint, the same exporter the teacher's
// common/mopentelemetry package uses for every signal. Metrics and the
// log-exporter bridge are not carried here; see DESIGN.md for why.
package mopentelemetry

import (
	"context"
	"log"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// Telemetry builds and owns the process-wide TracerProvider.
type Telemetry struct {
	ServiceName               string
	ServiceVersion            string
	DeploymentEnv             string
	CollectorExporterEndpoint string
	TracerProvider            *sdktrace.TracerProvider
	shutdown                  func()
}

func (tl *Telemetry) newResource() (*sdkresource.Resource, error) {
	return sdkresource.Merge(
		sdkresource.Default(),
		sdkresource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(tl.ServiceName),
			semconv.ServiceVersion(tl.ServiceVersion),
			semconv.DeploymentEnvironment(tl.DeploymentEnv)),
	)
}

func (tl *Telemetry) newTracerExporter(ctx context.Context) (*otlptrace.Exporter, error) {
	return otlptracegrpc.New(ctx, otlptracegrpc.WithEndpoint(tl.CollectorExporterEndpoint), otlptracegrpc.WithInsecure())
}

// InitializeTelemetry builds the TracerProvider, registers it globally,
// and returns a Tracer callers thread through context.Context via
// common.ContextWithTracer. If no collector endpoint is configured
// (local/dev runs, most test environments) it falls back to the global
// no-op tracer instead of failing startup.
func InitializeTelemetry(serviceName, serviceVersion, deploymentEnv string) (trace.Tracer, func()) {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		return otel.Tracer(serviceName), func() {}
	}

	tl := &Telemetry{
		ServiceName:               serviceName,
		ServiceVersion:            serviceVersion,
		DeploymentEnv:             deploymentEnv,
		CollectorExporterEndpoint: endpoint,
	}

	ctx := context.Background()

	r, err := tl.newResource()
	if err != nil {
		log.Fatalf("can't initialize telemetry resource: %v", err)
	}

	tExp, err := tl.newTracerExporter(ctx)
	if err != nil {
		log.Fatalf("can't initialize tracer exporter: %v", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(tExp),
		sdktrace.WithResource(r),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	tl.TracerProvider = tp
	tl.shutdown = func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("can't shutdown tracer provider: %v", err)
		}
	}

	return tp.Tracer(serviceName), tl.shutdown
}
