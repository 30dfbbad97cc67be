//go:build gcloud

package runrecorder

import (
	"context"
	"log/slog"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/domain"
)

type bigQueryFailure struct {
	UserID       string `bigquery:"uid"`
	FailureCount int64  `bigquery:"failure_count"`
}

type bigQueryRecord struct {
	RecordedAt      time.Time         `bigquery:"recorded_at"`
	RunID           string            `bigquery:"run_id"`
	StartedAt       time.Time         `bigquery:"started_at"`
	FinishedAt      time.Time         `bigquery:"finished_at"`
	UsersScanned    int64             `bigquery:"users_scanned"`
	UsersDispatched int64             `bigquery:"users_dispatched"`
	RemindersSent   int64             `bigquery:"reminders_sent"`
	FailureUsers    int64             `bigquery:"failure_users"`
	DevicesRemoved  int64             `bigquery:"devices_removed"`
	UserErrors      int64             `bigquery:"user_errors"`
	UsersAbandoned  int64             `bigquery:"users_abandoned"`
	Failures        []bigQueryFailure `bigquery:"failures"`
}

type bigQueryRecorder struct {
	client   *bigquery.Client
	inserter *bigquery.Inserter
	dataset  string
	table    string
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.RunResultRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "run result recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.BigQueryProjectID == "" {
		slog.WarnContext(ctx, "BigQuery project ID not configured, run result recording disabled")
		return NewNoopRecorder(), nil
	}

	client, err := bigquery.NewClient(ctx, cfg.BigQueryProjectID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create BigQuery client, run result recording disabled",
			slog.String("error", err.Error()),
			slog.String("project_id", cfg.BigQueryProjectID),
		)
		return NewNoopRecorder(), nil
	}

	table := client.Dataset(cfg.BigQueryDataset).Table(cfg.BigQueryTable)
	inserter := table.Inserter()

	slog.InfoContext(ctx, "run result recorder initialized",
		slog.String("type", "bigquery"),
		slog.String("project_id", cfg.BigQueryProjectID),
		slog.String("dataset", cfg.BigQueryDataset),
		slog.String("table", cfg.BigQueryTable),
	)

	return &bigQueryRecorder{
		client:   client,
		inserter: inserter,
		dataset:  cfg.BigQueryDataset,
		table:    cfg.BigQueryTable,
	}, nil
}

func toBigQueryRecord(summary *domain.RunSummary, recordedAt time.Time) *bigQueryRecord {
	failures := make([]bigQueryFailure, 0, len(summary.Failures))
	for _, f := range summary.Failures {
		failures = append(failures, bigQueryFailure{
			UserID:       f.UserID,
			FailureCount: int64(f.FailureCount),
		})
	}

	return &bigQueryRecord{
		RecordedAt:      recordedAt,
		RunID:           summary.RunID,
		StartedAt:       summary.StartedAt,
		FinishedAt:      summary.FinishedAt,
		UsersScanned:    int64(summary.UsersScanned),
		UsersDispatched: int64(summary.UsersDispatched),
		RemindersSent:   int64(summary.RemindersSent),
		FailureUsers:    int64(summary.FailureUsers),
		DevicesRemoved:  int64(summary.DevicesRemoved),
		UserErrors:      int64(summary.UserErrors),
		UsersAbandoned:  int64(summary.UsersAbandoned),
		Failures:        failures,
	}
}

func (r *bigQueryRecorder) RecordRun(ctx context.Context, summary *domain.RunSummary) error {
	if summary == nil {
		return nil
	}

	if err := r.inserter.Put(ctx, toBigQueryRecord(summary, time.Now())); err != nil {
		slog.WarnContext(ctx, "failed to insert run result to BigQuery",
			slog.String("error", err.Error()),
			slog.String("run_id", summary.RunID),
		)
	}

	return nil
}

func (r *bigQueryRecorder) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
