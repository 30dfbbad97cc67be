package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	dispatchMeterName = "reminder.dispatch"
)

type DispatchMetrics struct {
	runsTotal        metric.Int64Counter
	usersProcessed   metric.Int64Counter
	remindersDue     metric.Int64Counter
	pushTokens       metric.Int64Counter
	devicesRemoved   metric.Int64Counter
	runDuration      metric.Float64Histogram
	multicastLatency metric.Float64Histogram
}

func NewDispatchMetrics() (*DispatchMetrics, error) {
	meter := otel.Meter(dispatchMeterName)

	runsTotal, err := meter.Int64Counter(
		"reminder_runs_total",
		metric.WithDescription("Total number of dispatch runs"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, err
	}

	usersProcessed, err := meter.Int64Counter(
		"reminder_users_total",
		metric.WithDescription("Users processed per outcome"),
		metric.WithUnit("{user}"),
	)
	if err != nil {
		return nil, err
	}

	remindersDue, err := meter.Int64Counter(
		"reminder_due_total",
		metric.WithDescription("Reminders found due"),
		metric.WithUnit("{reminder}"),
	)
	if err != nil {
		return nil, err
	}

	pushTokens, err := meter.Int64Counter(
		"reminder_push_tokens_total",
		metric.WithDescription("Push deliveries per token outcome"),
		metric.WithUnit("{token}"),
	)
	if err != nil {
		return nil, err
	}

	devicesRemoved, err := meter.Int64Counter(
		"reminder_devices_removed_total",
		metric.WithDescription("Device registrations deleted after permanent push failures"),
		metric.WithUnit("{device}"),
	)
	if err != nil {
		return nil, err
	}

	runDuration, err := meter.Float64Histogram(
		"reminder_run_duration_seconds",
		metric.WithDescription("Dispatch run duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 240,
		),
	)
	if err != nil {
		return nil, err
	}

	multicastLatency, err := meter.Float64Histogram(
		"reminder_multicast_duration_seconds",
		metric.WithDescription("Latency of a single multicast push call"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10,
		),
	)
	if err != nil {
		return nil, err
	}

	return &DispatchMetrics{
		runsTotal:        runsTotal,
		usersProcessed:   usersProcessed,
		remindersDue:     remindersDue,
		pushTokens:       pushTokens,
		devicesRemoved:   devicesRemoved,
		runDuration:      runDuration,
		multicastLatency: multicastLatency,
	}, nil
}

func (m *DispatchMetrics) RecordRun(ctx context.Context, outcome string, duration time.Duration) {
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	m.runsTotal.Add(ctx, 1, attrs)
	m.runDuration.Record(ctx, duration.Seconds(), attrs)
}

func (m *DispatchMetrics) RecordUser(ctx context.Context, outcome string) {
	m.usersProcessed.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}

func (m *DispatchMetrics) RecordRemindersDue(ctx context.Context, count int) {
	m.remindersDue.Add(ctx, int64(count))
}

func (m *DispatchMetrics) RecordPushTokens(ctx context.Context, outcome string, count int) {
	if count == 0 {
		return
	}
	m.pushTokens.Add(ctx, int64(count), metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}

func (m *DispatchMetrics) RecordDevicesRemoved(ctx context.Context, count int) {
	m.devicesRemoved.Add(ctx, int64(count))
}

func (m *DispatchMetrics) RecordMulticastDuration(ctx context.Context, duration time.Duration, failed bool) {
	m.multicastLatency.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.Bool("failed", failed),
	))
}
