//go:build !gcloud

package runrecorder

import (
	"context"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/domain"
)

func TestBuildPoints(t *testing.T) {
	started := time.Date(2024, 5, 7, 18, 0, 0, 0, time.UTC)
	summary := domain.NewRunSummary("run-1", started)
	summary.FinishedAt = started.Add(3 * time.Second)
	summary.UsersScanned = 4
	summary.RemindersSent = 5
	summary.FailureUsers = 2
	summary.Skipped[domain.SkipNoneDue] = 2
	summary.Failures = []domain.UserFailure{
		{UserID: "user-a", FailureCount: 1},
		{UserID: "user-b", FailureCount: 3},
	}

	points := buildPoints(summary)
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}

	run := points[0]
	if run.Name() != "reminder_run" {
		t.Errorf("expected reminder_run measurement, got %s", run.Name())
	}
	if !run.Time().Equal(summary.FinishedAt) {
		t.Errorf("expected point time %v, got %v", summary.FinishedAt, run.Time())
	}

	fields := make(map[string]interface{})
	for _, f := range run.FieldList() {
		fields[f.Key] = f.Value
	}
	if fields["reminders_sent"] != int64(5) {
		t.Errorf("reminders_sent = %v", fields["reminders_sent"])
	}
	if fields["skipped_none_due"] != int64(2) {
		t.Errorf("skipped_none_due = %v", fields["skipped_none_due"])
	}

	for i, uid := range []string{"user-a", "user-b"} {
		p := points[i+1]
		if p.Name() != "reminder_user_failure" {
			t.Errorf("point %d measurement = %s", i+1, p.Name())
		}
		tags := make(map[string]string)
		for _, tag := range p.TagList() {
			tags[tag.Key] = tag.Value
		}
		if tags["uid"] != uid || tags["run_id"] != "run-1" {
			t.Errorf("point %d tags = %v", i+1, tags)
		}
	}
}

func TestNewRecorder_FallsBackToNoop(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
	}{
		{name: "disabled", cfg: &Config{Disabled: true, InfluxDBToken: "t", InfluxDBOrg: "o"}},
		{name: "missing token", cfg: &Config{InfluxDBOrg: "o"}},
		{name: "missing org", cfg: &Config{InfluxDBToken: "t"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder, err := NewRecorder(context.Background(), tt.cfg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if _, ok := recorder.(*noopRecorder); !ok {
				t.Errorf("expected noop recorder, got %T", recorder)
			}
			if err := recorder.RecordRun(context.Background(), domain.NewRunSummary("run", time.Now())); err != nil {
				t.Errorf("noop RecordRun returned %v", err)
			}
		})
	}
}
