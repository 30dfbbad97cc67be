//go:build !gcloud

package runrecorder

import (
	"context"
	"log/slog"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/domain"
)

const (
	runMeasurement         = "reminder_run"
	userFailureMeasurement = "reminder_user_failure"
)

type influxDBRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	bucket   string
	org      string
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.RunResultRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "run result recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.InfluxDBToken == "" || cfg.InfluxDBOrg == "" {
		slog.WarnContext(ctx, "InfluxDB token or org not configured, run result recording disabled",
			slog.String("url", cfg.InfluxDBURL),
		)
		return NewNoopRecorder(), nil
	}

	client := influxdb2.NewClient(cfg.InfluxDBURL, cfg.InfluxDBToken)
	writeAPI := client.WriteAPIBlocking(cfg.InfluxDBOrg, cfg.InfluxDBBucket)

	slog.InfoContext(ctx, "run result recorder initialized",
		slog.String("type", "influxdb"),
		slog.String("url", cfg.InfluxDBURL),
		slog.String("bucket", cfg.InfluxDBBucket),
	)

	return &influxDBRecorder{
		client:   client,
		writeAPI: writeAPI,
		bucket:   cfg.InfluxDBBucket,
		org:      cfg.InfluxDBOrg,
	}, nil
}

// buildPoints renders one run point plus one point per user with dispatch
// failures, all stamped with the run's finish time.
func buildPoints(summary *domain.RunSummary) []*write.Point {
	runID := summary.RunID
	if runID == "" {
		runID = "default"
	}

	fields := map[string]any{
		"users_scanned":    summary.UsersScanned,
		"users_dispatched": summary.UsersDispatched,
		"reminders_sent":   summary.RemindersSent,
		"failure_users":    summary.FailureUsers,
		"devices_removed":  summary.DevicesRemoved,
		"user_errors":      summary.UserErrors,
		"users_abandoned":  summary.UsersAbandoned,
		"duration_seconds": summary.Duration().Seconds(),
	}
	for reason, count := range summary.Skipped {
		fields["skipped_"+string(reason)] = count
	}

	points := make([]*write.Point, 0, 1+len(summary.Failures))
	points = append(points, influxdb2.NewPoint(
		runMeasurement,
		map[string]string{"run_id": runID},
		fields,
		summary.FinishedAt,
	))

	for _, f := range summary.Failures {
		points = append(points, influxdb2.NewPoint(
			userFailureMeasurement,
			map[string]string{
				"run_id": runID,
				"uid":    f.UserID,
			},
			map[string]any{
				"failure_count": f.FailureCount,
			},
			summary.FinishedAt,
		))
	}

	return points
}

func (r *influxDBRecorder) RecordRun(ctx context.Context, summary *domain.RunSummary) error {
	if summary == nil {
		return nil
	}

	points := buildPoints(summary)
	if err := r.writeAPI.WritePoint(ctx, points...); err != nil {
		slog.WarnContext(ctx, "failed to write run result to InfluxDB",
			slog.String("error", err.Error()),
			slog.String("run_id", summary.RunID),
			slog.Int("point_count", len(points)),
		)
	}

	return nil
}

func (r *influxDBRecorder) Close() error {
	if r.client != nil {
		r.client.Close()
	}
	return nil
}
