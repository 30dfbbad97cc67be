package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/domain"
)

const runIDHeader = "X-Run-ID"

// Runner executes one dispatch run.
type Runner interface {
	Run(ctx context.Context, runID string, now time.Time) (*domain.RunSummary, error)
}

type DispatchHandler struct {
	runner Runner
	clock  func() time.Time
}

func NewDispatchHandler(runner Runner) *DispatchHandler {
	return &DispatchHandler{
		runner: runner,
		clock:  time.Now,
	}
}

// HandleDispatch runs the reminder pass once. The optional "at" query
// parameter replaces the current time for replays.
func (h *DispatchHandler) HandleDispatch(c *gin.Context) {
	ctx := c.Request.Context()

	runID := c.GetHeader(runIDHeader)
	if runID == "" {
		runID = uuid.NewString()
	}

	now := h.clock()
	if atStr := c.Query("at"); atStr != "" {
		parsed, err := time.Parse(time.RFC3339, atStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "invalid at time format, expected RFC3339",
			})
			return
		}
		now = parsed
		slog.InfoContext(ctx, "using virtual time",
			slog.String("run_id", runID),
			slog.Time("virtual_now", now),
		)
	}

	summary, err := h.runner.Run(ctx, runID, now)
	if err != nil {
		slog.ErrorContext(ctx, "reminder run failed",
			slog.String("run_id", runID),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
			"runId": runID,
		})
		return
	}

	c.JSON(http.StatusOK, summary)
}
