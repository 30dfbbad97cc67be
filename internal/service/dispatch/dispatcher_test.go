package dispatch

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/domain"
	"go.uber.org/mock/gomock"
)

func devicesN(n int) []domain.Device {
	devices := make([]domain.Device, 0, n)
	for i := range n {
		devices = append(devices, domain.Device{
			ID:          fmt.Sprintf("device-%d", i),
			Token:       fmt.Sprintf("token-%d", i),
			PushEnabled: true,
		})
	}
	return devices
}

func successResponses(n int) *domain.BatchResult {
	resp := &domain.BatchResult{SuccessCount: n}
	for i := range n {
		resp.Responses = append(resp.Responses, domain.SendResult{Success: true, MessageID: fmt.Sprintf("msg-%d", i)})
	}
	return resp
}

func TestDispatcher_Dispatch_AllSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gateway := domain.NewMockPushGateway(ctrl)
	notification := domain.PushNotification{Title: "title", Body: "Time for: A"}

	gateway.EXPECT().
		SendMulticast(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msg *domain.PushMessage) (*domain.BatchResult, error) {
			if len(msg.Tokens) != 2 || msg.Tokens[0] != "token-0" || msg.Tokens[1] != "token-1" {
				t.Errorf("unexpected tokens: %v", msg.Tokens)
			}
			if msg.Notification.Body != "Time for: A" {
				t.Errorf("unexpected body: %q", msg.Notification.Body)
			}
			return successResponses(2), nil
		})

	d := NewDispatcher(gateway, nil, nil)
	result, err := d.Dispatch(context.Background(), devicesN(2), notification)
	if err != nil {
		t.Fatalf("Dispatch() unexpected error: %v", err)
	}

	if !result.Attempted() {
		t.Error("Attempted() = false, want true")
	}
	if result.SuccessCount != 2 || result.FailureCount != 0 {
		t.Errorf("counts = %d/%d, want 2/0", result.SuccessCount, result.FailureCount)
	}
	if len(result.PermanentlyInvalid()) != 0 {
		t.Error("PermanentlyInvalid() should be empty")
	}
}

func TestDispatcher_Dispatch_PartialFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gateway := domain.NewMockPushGateway(ctrl)
	gateway.EXPECT().
		SendMulticast(gomock.Any(), gomock.Any()).
		Return(&domain.BatchResult{
			Responses: []domain.SendResult{
				{Success: true, MessageID: "msg-0"},
				{ErrorCode: domain.PushErrorRegistrationTokenNotRegistered},
				{ErrorCode: domain.PushErrorInternal},
				{ErrorCode: domain.PushErrorInvalidRegistrationToken},
			},
			SuccessCount: 1,
			FailureCount: 3,
		}, nil)

	d := NewDispatcher(gateway, NewLimiter(0, 1), nil)
	result, err := d.Dispatch(context.Background(), devicesN(4), domain.PushNotification{})
	if err != nil {
		t.Fatalf("Dispatch() unexpected error: %v", err)
	}

	if result.SuccessCount != 1 || result.FailureCount != 3 {
		t.Errorf("counts = %d/%d, want 1/3", result.SuccessCount, result.FailureCount)
	}

	for i, o := range result.Outcomes {
		if o.Device.ID != fmt.Sprintf("device-%d", i) {
			t.Errorf("outcome[%d] device = %s, order not preserved", i, o.Device.ID)
		}
	}

	invalid := result.PermanentlyInvalid()
	if len(invalid) != 2 || invalid[0].ID != "device-1" || invalid[1].ID != "device-3" {
		t.Errorf("PermanentlyInvalid() = %+v, want device-1 and device-3", invalid)
	}
}

func TestDispatcher_Dispatch_GatewayError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gatewayErr := errors.New("connection reset")
	gateway := domain.NewMockPushGateway(ctrl)
	gateway.EXPECT().SendMulticast(gomock.Any(), gomock.Any()).Return(nil, gatewayErr)

	d := NewDispatcher(gateway, nil, nil)
	result, err := d.Dispatch(context.Background(), devicesN(3), domain.PushNotification{})

	if !errors.Is(err, gatewayErr) {
		t.Errorf("Dispatch() error = %v, want wrapped %v", err, gatewayErr)
	}
	if result.Attempted() {
		t.Error("Attempted() = true after gateway error")
	}
	if result.FailureCount != 3 {
		t.Errorf("FailureCount = %d, want 3", result.FailureCount)
	}
	for _, o := range result.Outcomes {
		if o.ErrorCode != domain.PushErrorGateway {
			t.Errorf("ErrorCode = %q, want %q", o.ErrorCode, domain.PushErrorGateway)
		}
	}
	if len(result.PermanentlyInvalid()) != 0 {
		t.Error("gateway errors must not mark devices invalid")
	}
}

func TestDispatcher_Dispatch_ResponseMismatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gateway := domain.NewMockPushGateway(ctrl)
	gateway.EXPECT().SendMulticast(gomock.Any(), gomock.Any()).Return(successResponses(1), nil)

	d := NewDispatcher(gateway, nil, nil)
	result, err := d.Dispatch(context.Background(), devicesN(2), domain.PushNotification{})

	if !errors.Is(err, domain.ErrPushResponseMismatch) {
		t.Errorf("Dispatch() error = %v, want ErrPushResponseMismatch", err)
	}
	if !result.Attempted() {
		t.Error("Attempted() = false, the request reached the gateway")
	}
	if result.FailureCount != 2 {
		t.Errorf("FailureCount = %d, want 2", result.FailureCount)
	}
}

func TestDispatcher_Dispatch_Chunks(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	total := domain.MaxMulticastTokens + 20
	gateway := domain.NewMockPushGateway(ctrl)

	gomock.InOrder(
		gateway.EXPECT().
			SendMulticast(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, msg *domain.PushMessage) (*domain.BatchResult, error) {
				if len(msg.Tokens) != domain.MaxMulticastTokens {
					t.Errorf("first chunk has %d tokens", len(msg.Tokens))
				}
				return successResponses(len(msg.Tokens)), nil
			}),
		gateway.EXPECT().
			SendMulticast(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, msg *domain.PushMessage) (*domain.BatchResult, error) {
				if len(msg.Tokens) != 20 {
					t.Errorf("second chunk has %d tokens", len(msg.Tokens))
				}
				if msg.Tokens[0] != fmt.Sprintf("token-%d", domain.MaxMulticastTokens) {
					t.Errorf("second chunk starts at %s", msg.Tokens[0])
				}
				return nil, errors.New("unavailable")
			}),
	)

	d := NewDispatcher(gateway, nil, nil)
	result, err := d.Dispatch(context.Background(), devicesN(total), domain.PushNotification{})

	if err == nil {
		t.Error("Dispatch() expected error from second chunk")
	}
	if !result.Attempted() {
		t.Error("Attempted() = false, first chunk was sent")
	}
	if len(result.Outcomes) != total {
		t.Fatalf("len(Outcomes) = %d, want %d", len(result.Outcomes), total)
	}
	if result.SuccessCount != domain.MaxMulticastTokens || result.FailureCount != 20 {
		t.Errorf("counts = %d/%d", result.SuccessCount, result.FailureCount)
	}
}

func TestDispatcher_Dispatch_NoDevices(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gateway := domain.NewMockPushGateway(ctrl)

	d := NewDispatcher(gateway, nil, nil)
	result, err := d.Dispatch(context.Background(), nil, domain.PushNotification{})
	if err != nil {
		t.Fatalf("Dispatch() unexpected error: %v", err)
	}
	if result.Attempted() || len(result.Outcomes) != 0 {
		t.Errorf("unexpected result for empty device list: %+v", result)
	}
}

func TestDispatcher_Dispatch_CanceledContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gateway := domain.NewMockPushGateway(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := NewDispatcher(gateway, NewLimiter(1, 1), nil)
	result, err := d.Dispatch(ctx, devicesN(1), domain.PushNotification{})

	if err == nil {
		t.Error("Dispatch() expected error for canceled context")
	}
	if result.Attempted() {
		t.Error("Attempted() = true for canceled context")
	}
	if !errors.Is(err, domain.ErrRunAbandoned) {
		t.Errorf("Dispatch() error = %v, want ErrRunAbandoned", err)
	}
	if result.FailureCount != 0 || len(result.Outcomes) != 0 {
		t.Errorf("FailureCount/Outcomes = %d/%d, unsent devices are not failures", result.FailureCount, len(result.Outcomes))
	}
}
