package fcm

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"

	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/domain"
)

const urgencyHeader = "Urgency"

type multicastSender interface {
	SendEachForMulticast(ctx context.Context, message *messaging.MulticastMessage) (*messaging.BatchResponse, error)
}

type gateway struct {
	sender multicastSender
}

func NewGateway(client *messaging.Client) domain.PushGateway {
	return &gateway{
		sender: client,
	}
}

func (g *gateway) SendMulticast(ctx context.Context, msg *domain.PushMessage) (*domain.BatchResult, error) {
	if len(msg.Tokens) == 0 {
		return &domain.BatchResult{Responses: []domain.SendResult{}}, nil
	}
	if len(msg.Tokens) > domain.MaxMulticastTokens {
		return nil, fmt.Errorf("%d tokens exceed the multicast limit of %d", len(msg.Tokens), domain.MaxMulticastTokens)
	}

	resp, err := g.sender.SendEachForMulticast(ctx, buildMessage(msg))
	if err != nil {
		return nil, err
	}

	return translateResponse(resp), nil
}

func buildMessage(msg *domain.PushMessage) *messaging.MulticastMessage {
	n := msg.Notification

	webpush := &messaging.WebpushConfig{
		Notification: &messaging.WebpushNotification{
			Title:    n.Title,
			Body:     n.Body,
			Icon:     n.WebPush.Icon,
			Badge:    n.WebPush.Badge,
			Tag:      n.Tag,
			Renotify: n.WebPush.Renotify,
		},
	}
	if n.WebPush.Urgency != "" {
		webpush.Headers = map[string]string{urgencyHeader: n.WebPush.Urgency}
	}
	if n.WebPush.Link != "" {
		webpush.FCMOptions = &messaging.WebpushFCMOptions{Link: n.WebPush.Link}
	}

	return &messaging.MulticastMessage{
		Tokens: msg.Tokens,
		Data:   n.Data,
		Notification: &messaging.Notification{
			Title: n.Title,
			Body:  n.Body,
		},
		Webpush: webpush,
	}
}

func translateResponse(resp *messaging.BatchResponse) *domain.BatchResult {
	result := &domain.BatchResult{
		Responses:    make([]domain.SendResult, 0, len(resp.Responses)),
		SuccessCount: resp.SuccessCount,
		FailureCount: resp.FailureCount,
	}

	for _, r := range resp.Responses {
		if r == nil {
			result.Responses = append(result.Responses, domain.SendResult{ErrorCode: domain.PushErrorUnknown})
			continue
		}
		sr := domain.SendResult{
			Success:   r.Success,
			MessageID: r.MessageID,
		}
		if !r.Success {
			sr.ErrorCode = classifyError(r.Error)
			if sr.ErrorCode == "" {
				sr.ErrorCode = domain.PushErrorUnknown
			}
		}
		result.Responses = append(result.Responses, sr)
	}

	return result
}
