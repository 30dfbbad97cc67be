package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/domain"
)

type fakeRunner struct {
	gotRunID string
	gotNow   time.Time
	calls    int
	err      error
}

func (r *fakeRunner) Run(_ context.Context, runID string, now time.Time) (*domain.RunSummary, error) {
	r.calls++
	r.gotRunID = runID
	r.gotNow = now
	if r.err != nil {
		return nil, r.err
	}
	summary := domain.NewRunSummary(runID, now)
	summary.UsersScanned = 2
	summary.RemindersSent = 1
	return summary, nil
}

func newTestRouter(runner Runner, now time.Time) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewDispatchHandler(runner)
	h.clock = func() time.Time { return now }

	r := gin.New()
	r.POST("/api/v1/reminders/dispatch", h.HandleDispatch)
	return r
}

func TestDispatchHandler_HandleDispatch(t *testing.T) {
	fixedNow := time.Date(2024, 5, 7, 18, 2, 0, 0, time.UTC)

	tests := []struct {
		name       string
		target     string
		runID      string
		runErr     error
		wantCode   int
		wantCalls  int
		wantNow    time.Time
		checkRunID bool
	}{
		{
			name:      "uses clock and generated run id",
			target:    "/api/v1/reminders/dispatch",
			wantCode:  http.StatusOK,
			wantCalls: 1,
			wantNow:   fixedNow,
		},
		{
			name:       "uses header run id and at override",
			target:     "/api/v1/reminders/dispatch?at=2024-05-07T14:02:00-04:00",
			runID:      "run-123",
			wantCode:   http.StatusOK,
			wantCalls:  1,
			wantNow:    time.Date(2024, 5, 7, 18, 2, 0, 0, time.UTC),
			checkRunID: true,
		},
		{
			name:      "rejects malformed at",
			target:    "/api/v1/reminders/dispatch?at=yesterday",
			wantCode:  http.StatusBadRequest,
			wantCalls: 0,
		},
		{
			name:      "run error",
			target:    "/api/v1/reminders/dispatch",
			runID:     "run-err",
			runErr:    domain.ErrUserEnumeration,
			wantCode:  http.StatusInternalServerError,
			wantCalls: 1,
			wantNow:   fixedNow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{err: tt.runErr}
			r := newTestRouter(runner, fixedNow)

			req := httptest.NewRequest(http.MethodPost, tt.target, nil)
			if tt.runID != "" {
				req.Header.Set(runIDHeader, tt.runID)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", w.Code, tt.wantCode)
			}
			if runner.calls != tt.wantCalls {
				t.Fatalf("Run() calls = %d, want %d", runner.calls, tt.wantCalls)
			}
			if tt.wantCalls == 0 {
				return
			}

			if !runner.gotNow.Equal(tt.wantNow) {
				t.Errorf("Run() now = %v, want %v", runner.gotNow, tt.wantNow)
			}
			if runner.gotRunID == "" {
				t.Error("Run() called with empty run id")
			}
			if tt.checkRunID && runner.gotRunID != tt.runID {
				t.Errorf("Run() runID = %q, want %q", runner.gotRunID, tt.runID)
			}

			var body map[string]any
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if body["runId"] != runner.gotRunID {
				t.Errorf("body runId = %v, want %q", body["runId"], runner.gotRunID)
			}
			if tt.runErr != nil {
				if body["error"] == nil {
					t.Error("error body missing error field")
				}
				return
			}
			if body["remindersSent"] != float64(1) {
				t.Errorf("body remindersSent = %v, want 1", body["remindersSent"])
			}
		})
	}
}

func TestDispatchHandler_RunErrorIsNotSwallowed(t *testing.T) {
	runErr := errors.New("firestore unavailable")
	runner := &fakeRunner{err: runErr}
	r := newTestRouter(runner, time.Now())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/reminders/dispatch", nil))

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["error"] != runErr.Error() {
		t.Errorf("body error = %v, want %q", body["error"], runErr.Error())
	}
}
