package runrecorder

import (
	"context"

	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/domain"
)

type noopRecorder struct{}

func NewNoopRecorder() domain.RunResultRecorder {
	return &noopRecorder{}
}

func (n *noopRecorder) RecordRun(_ context.Context, _ *domain.RunSummary) error {
	return nil
}

func (n *noopRecorder) Close() error {
	return nil
}
