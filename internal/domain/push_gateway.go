package domain

import "context"

//go:generate mockgen -source=push_gateway.go -destination=push_gateway_mock.go -package=domain

type PushGateway interface {
	SendMulticast(ctx context.Context, msg *PushMessage) (*BatchResult, error)
}
