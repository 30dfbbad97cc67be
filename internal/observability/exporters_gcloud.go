//go:build gcloud

package observability

import (
	"context"

	mexporter "github.com/GoogleCloudPlatform/opentelemetry-operations-go/exporter/metric"
	texporter "github.com/GoogleCloudPlatform/opentelemetry-operations-go/exporter/trace"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func newTraceExporter(_ context.Context, cfg Config) (sdktrace.SpanExporter, error) {
	exp, err := texporter.New(texporter.WithProjectID(cfg.GCPProjectID))
	if err != nil {
		return nil, err
	}
	return exp, nil
}

func newMetricExporter(_ context.Context, cfg Config) (sdkmetric.Exporter, error) {
	return mexporter.New(mexporter.WithProjectID(cfg.GCPProjectID))
}
