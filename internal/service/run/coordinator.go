package run

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/domain"
	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/observability/metrics"
	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/observability/tracing"
	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/service/cleanup"
	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/service/compose"
	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/service/dispatch"
	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/service/localtime"
	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/service/matcher"
	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/service/slot"
)

const (
	defaultWorkers = 8

	// Once a send reached the gateway the slot must be committed even if the
	// run deadline passed, otherwise the next tick would send it again.
	commitTimeout = 10 * time.Second
)

type Options struct {
	Workers    int
	RunTimeout time.Duration
}

type Coordinator struct {
	userRepo        domain.UserRepository
	evaluator       *localtime.Evaluator
	matcher         *matcher.Matcher
	deduplicator    *slot.Deduplicator
	composer        *compose.Composer
	dispatcher      *dispatch.Dispatcher
	cleaner         *cleanup.Cleaner
	recorder        domain.RunResultRecorder
	dispatchMetrics *metrics.DispatchMetrics
	workers         int
	runTimeout      time.Duration
	clock           func() time.Time
}

func NewCoordinator(
	userRepo domain.UserRepository,
	evaluator *localtime.Evaluator,
	matcher *matcher.Matcher,
	deduplicator *slot.Deduplicator,
	composer *compose.Composer,
	dispatcher *dispatch.Dispatcher,
	cleaner *cleanup.Cleaner,
	recorder domain.RunResultRecorder,
	dispatchMetrics *metrics.DispatchMetrics,
	opts Options,
) *Coordinator {
	workers := opts.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	return &Coordinator{
		userRepo:        userRepo,
		evaluator:       evaluator,
		matcher:         matcher,
		deduplicator:    deduplicator,
		composer:        composer,
		dispatcher:      dispatcher,
		cleaner:         cleaner,
		recorder:        recorder,
		dispatchMetrics: dispatchMetrics,
		workers:         workers,
		runTimeout:      opts.RunTimeout,
		clock:           time.Now,
	}
}

// Run performs one pass over every user, evaluating reminders at now. Only a
// failure to enumerate users is returned as an error; per-user failures are
// counted in the summary.
func (c *Coordinator) Run(ctx context.Context, runID string, now time.Time) (*domain.RunSummary, error) {
	summary := domain.NewRunSummary(runID, c.clock().UTC())

	if c.runTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.runTimeout)
		defer cancel()
	}

	ctx, span := tracing.StartRunSpan(ctx, runID, now)
	defer span.End()

	slog.InfoContext(ctx, "reminder run started",
		slog.String("event", "run.start"),
		slog.String("run_id", runID),
		slog.Time("now", now.UTC()),
	)

	userIDs, err := c.userRepo.ListUserIDs(ctx)
	if err != nil {
		err = fmt.Errorf("%w: %w", domain.ErrUserEnumeration, err)
		summary.FinishedAt = c.clock().UTC()

		slog.ErrorContext(ctx, "reminder run aborted",
			slog.String("event", "run.abort"),
			slog.String("run_id", runID),
			slog.String("error", err.Error()),
		)
		tracing.RecordRunResult(span, 0, 0, 0, 0, err)
		if c.dispatchMetrics != nil {
			c.dispatchMetrics.RecordRun(ctx, "aborted", summary.Duration())
		}
		return summary, err
	}

	if len(userIDs) > 0 {
		for result := range c.processAll(ctx, runID, now, userIDs) {
			c.aggregate(ctx, summary, result)
		}
	}

	slices.SortFunc(summary.Failures, func(a, b domain.UserFailure) int {
		return strings.Compare(a.UserID, b.UserID)
	})
	summary.FinishedAt = c.clock().UTC()

	// The parent may already be past its deadline; reporting still happens.
	reportCtx := context.WithoutCancel(ctx)

	slog.InfoContext(reportCtx, "reminder run completed",
		slog.String("event", "run.complete"),
		slog.String("run_id", runID),
		slog.Int("remindersSent", summary.RemindersSent),
		slog.Int("failureUsers", summary.FailureUsers),
		slog.Any("failures", summary.Failures),
		slog.Int("users_scanned", summary.UsersScanned),
		slog.Int("users_dispatched", summary.UsersDispatched),
		slog.Int("user_errors", summary.UserErrors),
		slog.Int("users_abandoned", summary.UsersAbandoned),
		slog.Int("devices_removed", summary.DevicesRemoved),
		slog.Duration("duration", summary.Duration()),
	)

	if c.recorder != nil {
		if err := c.recorder.RecordRun(reportCtx, summary); err != nil {
			slog.WarnContext(reportCtx, "failed to record run result",
				slog.String("run_id", runID),
				slog.String("error", err.Error()),
			)
		}
	}

	tracing.RecordRunResult(span, summary.UsersScanned, summary.UsersDispatched, summary.RemindersSent, len(summary.Failures), nil)
	if c.dispatchMetrics != nil {
		c.dispatchMetrics.RecordRun(reportCtx, "completed", summary.Duration())
	}

	return summary, nil
}

func (c *Coordinator) aggregate(ctx context.Context, summary *domain.RunSummary, result UserResult) {
	summary.UsersScanned++

	switch result.Outcome {
	case OutcomeDispatched:
		summary.UsersDispatched++
		summary.RemindersSent += result.SentCount
		summary.DevicesRemoved += result.DevicesRemoved
	case OutcomeSkipped:
		summary.Skipped[result.SkipReason]++
	case OutcomeAbandoned:
		summary.UsersAbandoned++
	}

	if result.FailureCount > 0 {
		summary.FailureUsers++
		summary.Failures = append(summary.Failures, domain.UserFailure{
			UserID:       result.UserID,
			FailureCount: result.FailureCount,
		})
	}

	if result.Err != nil && result.Outcome != OutcomeAbandoned {
		summary.UserErrors++
		slog.ErrorContext(ctx, "failed to process user",
			slog.String("uid", result.UserID),
			slog.String("outcome", result.Outcome.String()),
			slog.String("error", result.Err.Error()),
		)
	}

	if c.dispatchMetrics != nil {
		c.dispatchMetrics.RecordUser(ctx, result.Outcome.String())
	}
}

func (c *Coordinator) processUser(ctx context.Context, runID string, now time.Time, userID string) (result UserResult) {
	ctx, span := tracing.StartUserSpan(ctx, userID)
	defer func() {
		tracing.RecordUserResult(span, result.Outcome.String(), result.SlotKey, result.DueCount, result.Err)
		span.End()
	}()

	profile, err := c.userRepo.GetProfile(ctx, userID)
	if errors.Is(err, domain.ErrProfileNotFound) {
		return skipped(userID, domain.SkipNoProfile)
	}
	if err != nil {
		return failed(userID, fmt.Errorf("failed to load profile: %w", err))
	}

	local := c.evaluator.Evaluate(now, profile.TimeZone)
	due := c.matcher.DueReminders(profile.Reminders, local)
	if len(due) == 0 {
		return skipped(userID, domain.SkipNoneDue)
	}

	if c.dispatchMetrics != nil {
		c.dispatchMetrics.RecordRemindersDue(ctx, len(due))
	}

	slotKey := slot.Key(local)

	sent, err := c.deduplicator.AlreadySent(ctx, userID, slotKey)
	if err != nil {
		return failed(userID, err)
	}
	if sent {
		return skipped(userID, domain.SkipAlreadySent)
	}

	listed, err := c.userRepo.ListPushDevices(ctx, userID)
	if err != nil {
		return failed(userID, fmt.Errorf("failed to list devices: %w", err))
	}
	devices := make([]domain.Device, 0, len(listed))
	for _, d := range listed {
		if d.CanReceivePush() {
			devices = append(devices, d)
		}
	}
	if len(devices) == 0 {
		return skipped(userID, domain.SkipNoDevices)
	}

	// The lease runs on the wall clock; now may be a virtual replay instant.
	claimed, err := c.deduplicator.Claim(ctx, userID, slotKey, runID, c.clock())
	if err != nil {
		return failed(userID, err)
	}
	if !claimed {
		return skipped(userID, domain.SkipClaimedElsewhere)
	}

	result = UserResult{
		UserID:   userID,
		SlotKey:  slotKey,
		DueCount: len(due),
	}

	notification := c.composer.Compose(due, slotKey)
	dispatched, dispatchErr := c.dispatcher.Dispatch(ctx, devices, notification)
	result.SentCount = dispatched.SuccessCount
	result.FailureCount = dispatched.FailureCount

	if !dispatched.Attempted() {
		// The claim lapses after its lease so the next tick can retry.
		if errors.Is(dispatchErr, domain.ErrRunAbandoned) || ctx.Err() != nil {
			result.Outcome = OutcomeAbandoned
			result.SentCount = 0
			result.FailureCount = 0
			result.Err = domain.ErrRunAbandoned
			return result
		}
		result.Outcome = OutcomeFailed
		result.Err = fmt.Errorf("dispatch failed: %w", dispatchErr)
		return result
	}
	if dispatchErr != nil {
		slog.WarnContext(ctx, "dispatch partially failed",
			slog.String("uid", userID),
			slog.String("slot_key", slotKey),
			slog.String("error", dispatchErr.Error()),
		)
	}

	commitCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), commitTimeout)
	defer cancel()

	result.DevicesRemoved = c.cleaner.Clean(commitCtx, userID, dispatched)

	err = c.deduplicator.Commit(commitCtx, userID, &domain.DedupState{
		LastSlotKey: slotKey,
		DueCount:    len(due),
		SentCount:   dispatched.SuccessCount,
		TimeZone:    profile.TimeZone,
		UpdatedAt:   now.UTC(),
	})
	result.Outcome = OutcomeDispatched
	if err != nil {
		result.Err = err
	}

	slog.DebugContext(ctx, "user dispatched",
		slog.String("uid", userID),
		slog.String("slot_key", slotKey),
		slog.Int("due_count", len(due)),
		slog.Int("sent_count", dispatched.SuccessCount),
		slog.Int("failure_count", dispatched.FailureCount),
	)

	return result
}

func failed(userID string, err error) UserResult {
	return UserResult{
		UserID:  userID,
		Outcome: OutcomeFailed,
		Err:     err,
	}
}
