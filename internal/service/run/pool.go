package run

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/domain"
)

// processAll fans user ids out to a bounded set of workers. Results arrive on
// the returned channel, which is closed once every user has reported.
func (c *Coordinator) processAll(ctx context.Context, runID string, now time.Time, userIDs []string) <-chan UserResult {
	jobs := make(chan string, len(userIDs))
	for _, id := range userIDs {
		jobs <- id
	}
	close(jobs)

	workers := min(c.workers, len(userIDs))
	results := make(chan UserResult, workers)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for userID := range jobs {
				if ctx.Err() != nil {
					results <- UserResult{
						UserID:  userID,
						Outcome: OutcomeAbandoned,
						Err:     domain.ErrRunAbandoned,
					}
					continue
				}
				results <- c.processUserSafely(ctx, runID, now, userID)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

func (c *Coordinator) processUserSafely(ctx context.Context, runID string, now time.Time, userID string) (result UserResult) {
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "panic while processing user",
				slog.String("uid", userID),
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())),
			)
			result = UserResult{
				UserID:  userID,
				Outcome: OutcomeFailed,
				Err:     fmt.Errorf("panic: %v", r),
			}
		}
	}()

	return c.processUser(ctx, runID, now, userID)
}
