package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/domain"
)

// Runner executes one dispatch run.
type Runner interface {
	Run(ctx context.Context, runID string, now time.Time) (*domain.RunSummary, error)
}

// Scheduler fires a run on a cron cadence evaluated in UTC. A tick is skipped
// while the previous run is still in flight.
type Scheduler struct {
	runner Runner
	spec   string

	mu      sync.Mutex
	c       *cron.Cron
	baseCtx context.Context
	cancel  context.CancelFunc

	clock func() time.Time
	newID func() string
}

func New(runner Runner, spec string) (*Scheduler, error) {
	if _, err := cron.ParseStandard(spec); err != nil {
		return nil, fmt.Errorf("invalid scheduler spec %q: %w", spec, err)
	}

	return &Scheduler{
		runner: runner,
		spec:   spec,
		clock:  time.Now,
		newID:  uuid.NewString,
	}, nil
}

// Start registers the job and starts triggering. Runs derive from ctx but
// are canceled by Stop.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.c != nil {
		return nil
	}

	logger := cronLogger{}
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)

	s.baseCtx, s.cancel = context.WithCancel(ctx)
	if _, err := c.AddFunc(s.spec, func() { s.tick(s.baseCtx) }); err != nil {
		s.cancel()
		return fmt.Errorf("failed to register reminder job: %w", err)
	}

	s.c = c
	c.Start()

	slog.InfoContext(ctx, "scheduler started",
		slog.String("event", "scheduler.start"),
		slog.String("spec", s.spec),
	)

	return nil
}

// Stop halts triggering and waits for an in-flight run until ctx expires,
// after which the run's context is canceled.
func (s *Scheduler) Stop(ctx context.Context) {
	s.mu.Lock()
	c := s.c
	cancel := s.cancel
	s.c = nil
	s.mu.Unlock()

	if c == nil {
		return
	}

	select {
	case <-c.Stop().Done():
	case <-ctx.Done():
		slog.WarnContext(ctx, "scheduler stop timed out, canceling in-flight run",
			slog.String("event", "scheduler.stop_timeout"),
		)
	}
	cancel()

	slog.InfoContext(ctx, "scheduler stopped", slog.String("event", "scheduler.stop"))
}

func (s *Scheduler) tick(ctx context.Context) {
	runID := s.newID()
	now := s.clock()

	summary, err := s.runner.Run(ctx, runID, now)
	if err != nil {
		slog.ErrorContext(ctx, "scheduled reminder run failed",
			slog.String("event", "scheduler.run_failed"),
			slog.String("run_id", runID),
			slog.String("error", err.Error()),
		)
		return
	}

	slog.DebugContext(ctx, "scheduled reminder run finished",
		slog.String("run_id", runID),
		slog.Int("reminders_sent", summary.RemindersSent),
	)
}

// cronLogger routes cron's internal logging to slog.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	slog.Debug(msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	args := append([]interface{}{slog.String("error", err.Error())}, keysAndValues...)
	slog.Error(msg, args...)
}
