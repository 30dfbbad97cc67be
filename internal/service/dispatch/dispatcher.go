package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/domain"
	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/observability/metrics"
	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/observability/tracing"
)

// TokenOutcome is the delivery result for one device.
type TokenOutcome struct {
	Device    domain.Device
	Success   bool
	MessageID string
	ErrorCode string
}

type Result struct {
	Outcomes     []TokenOutcome
	SuccessCount int
	FailureCount int
	attempted    bool
}

// Attempted reports whether at least one multicast request reached the
// gateway. Only then may the slot be committed.
func (r *Result) Attempted() bool {
	return r.attempted
}

// PermanentlyInvalid returns devices whose tokens the gateway rejected as
// unregistered or invalid.
func (r *Result) PermanentlyInvalid() []domain.Device {
	devices := make([]domain.Device, 0)
	for _, o := range r.Outcomes {
		if !o.Success && domain.IsPermanentlyInvalid(o.ErrorCode) {
			devices = append(devices, o.Device)
		}
	}
	return devices
}

func (r *Result) add(outcome TokenOutcome) {
	r.Outcomes = append(r.Outcomes, outcome)
	if outcome.Success {
		r.SuccessCount++
	} else {
		r.FailureCount++
	}
}

func (r *Result) failChunk(devices []domain.Device, code string) {
	for _, d := range devices {
		r.add(TokenOutcome{Device: d, ErrorCode: code})
	}
}

// NewLimiter paces multicast calls. A non-positive rate disables pacing.
func NewLimiter(ratePerSecond float64, burst int) *rate.Limiter {
	if burst <= 0 {
		burst = 1
	}
	if ratePerSecond <= 0 {
		return rate.NewLimiter(rate.Inf, burst)
	}
	return rate.NewLimiter(rate.Limit(ratePerSecond), burst)
}

type Dispatcher struct {
	gateway         domain.PushGateway
	limiter         *rate.Limiter
	dispatchMetrics *metrics.DispatchMetrics
}

func NewDispatcher(gateway domain.PushGateway, limiter *rate.Limiter, dispatchMetrics *metrics.DispatchMetrics) *Dispatcher {
	if limiter == nil {
		limiter = NewLimiter(0, 1)
	}
	return &Dispatcher{
		gateway:         gateway,
		limiter:         limiter,
		dispatchMetrics: dispatchMetrics,
	}
}

// Dispatch sends the notification to every device. Token lists above the
// multicast limit are split into chunks; outcomes keep the input order. A
// failed chunk marks its devices with domain.PushErrorGateway and the error is
// returned alongside the partial result. Chunks cut off by ctx before sending
// have no outcomes and the error wraps domain.ErrRunAbandoned.
func (d *Dispatcher) Dispatch(ctx context.Context, devices []domain.Device, notification domain.PushNotification) (*Result, error) {
	result := &Result{
		Outcomes: make([]TokenOutcome, 0, len(devices)),
	}
	if len(devices) == 0 {
		return result, nil
	}

	var errs []error
	for start := 0; start < len(devices); start += domain.MaxMulticastTokens {
		end := min(start+domain.MaxMulticastTokens, len(devices))
		chunk := devices[start:end]

		if err := d.sendChunk(ctx, chunk, notification, result); err != nil {
			errs = append(errs, fmt.Errorf("multicast chunk %d-%d: %w", start, end, err))
		}
	}

	if d.dispatchMetrics != nil {
		d.dispatchMetrics.RecordPushTokens(ctx, "success", result.SuccessCount)
		d.dispatchMetrics.RecordPushTokens(ctx, "failure", result.FailureCount)
	}

	return result, errors.Join(errs...)
}

func (d *Dispatcher) sendChunk(ctx context.Context, chunk []domain.Device, notification domain.PushNotification, result *Result) error {
	// Wait only fails when the run deadline cuts the send off. Devices that
	// were never sent to are not failures.
	if err := d.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrRunAbandoned, err)
	}

	ctx, span := tracing.StartMulticastSpan(ctx, len(chunk))
	defer span.End()

	start := time.Now()
	resp, err := d.gateway.SendMulticast(ctx, &domain.PushMessage{
		Tokens:       domain.DeviceTokens(chunk),
		Notification: notification,
	})
	if d.dispatchMetrics != nil {
		d.dispatchMetrics.RecordMulticastDuration(ctx, time.Since(start), err != nil)
	}

	if err != nil {
		slog.WarnContext(ctx, "multicast request failed",
			slog.Int("token_count", len(chunk)),
			slog.String("error", err.Error()),
		)
		result.failChunk(chunk, domain.PushErrorGateway)
		tracing.RecordMulticastResult(span, 0, len(chunk), err)
		return err
	}

	result.attempted = true

	if len(resp.Responses) != len(chunk) {
		slog.ErrorContext(ctx, "multicast response count mismatch",
			slog.Int("token_count", len(chunk)),
			slog.Int("response_count", len(resp.Responses)),
		)
		result.failChunk(chunk, domain.PushErrorGateway)
		tracing.RecordMulticastResult(span, 0, len(chunk), domain.ErrPushResponseMismatch)
		return domain.ErrPushResponseMismatch
	}

	successCount := 0
	for i, r := range resp.Responses {
		result.add(TokenOutcome{
			Device:    chunk[i],
			Success:   r.Success,
			MessageID: r.MessageID,
			ErrorCode: r.ErrorCode,
		})
		if r.Success {
			successCount++
		}
	}

	tracing.RecordMulticastResult(span, successCount, len(chunk)-successCount, nil)
	return nil
}
