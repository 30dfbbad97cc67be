package domain

import "context"

//go:generate mockgen -source=run_result_recorder.go -destination=run_result_recorder_mock.go -package=domain

type RunResultRecorder interface {
	RecordRun(ctx context.Context, summary *RunSummary) error
	Close() error
}
