package cleanup

import (
	"context"
	"log/slog"

	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/domain"
	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/observability/metrics"
	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/service/dispatch"
)

// Cleaner removes registrations whose tokens the gateway reported as
// permanently invalid. Retryable failures never trigger deletion.
type Cleaner struct {
	userRepo        domain.UserRepository
	dispatchMetrics *metrics.DispatchMetrics
}

func NewCleaner(userRepo domain.UserRepository, dispatchMetrics *metrics.DispatchMetrics) *Cleaner {
	return &Cleaner{
		userRepo:        userRepo,
		dispatchMetrics: dispatchMetrics,
	}
}

// Clean returns the number of devices removed. A deletion failure is logged
// and reported as zero removals.
func (c *Cleaner) Clean(ctx context.Context, userID string, result *dispatch.Result) int {
	invalid := result.PermanentlyInvalid()
	if len(invalid) == 0 {
		return 0
	}

	seen := make(map[string]struct{}, len(invalid))
	deviceIDs := make([]string, 0, len(invalid))
	for _, d := range invalid {
		if _, ok := seen[d.ID]; ok {
			continue
		}
		seen[d.ID] = struct{}{}
		deviceIDs = append(deviceIDs, d.ID)
	}

	if err := c.userRepo.DeleteDevices(ctx, userID, deviceIDs); err != nil {
		slog.WarnContext(ctx, "failed to delete invalid device registrations",
			slog.String("uid", userID),
			slog.Int("device_count", len(deviceIDs)),
			slog.String("error", err.Error()),
		)
		return 0
	}

	slog.InfoContext(ctx, "removed invalid device registrations",
		slog.String("uid", userID),
		slog.Int("device_count", len(deviceIDs)),
	)

	if c.dispatchMetrics != nil {
		c.dispatchMetrics.RecordDevicesRemoved(ctx, len(deviceIDs))
	}

	return len(deviceIDs)
}
