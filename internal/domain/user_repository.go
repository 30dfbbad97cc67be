package domain

import "context"

//go:generate mockgen -source=user_repository.go -destination=user_repository_mock.go -package=domain

type UserRepository interface {
	ListUserIDs(ctx context.Context) ([]string, error)
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	ListPushDevices(ctx context.Context, userID string) ([]Device, error)
	// DeleteDevices removes the given registrations in one atomic batch.
	DeleteDevices(ctx context.Context, userID string, deviceIDs []string) error
}
