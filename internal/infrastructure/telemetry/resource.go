// Package telemetry wires OpenTelemetry tracing, metrics and logs plus
// Pyroscope profiling for the portfolio service.
package telemetry

import (
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
)

// ServiceVersion is reported on every resource; overridden at link time
var ServiceVersion = "dev"

// ErrMeterNil is returned when an instrument set is built without a meter
var ErrMeterNil = errors.New("meter is required")

func newResource(serviceName string) (*resource.Resource, error) {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(ServiceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return res, nil
}
