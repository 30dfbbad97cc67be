package config

import "errors"

var (
	ErrRedisAddrMissing       = errors.New("REDIS_ADDR is required")
	ErrInvalidRedisDB         = errors.New("REDIS_DB must be a non-negative integer")
	ErrInvalidDedupStore      = errors.New("DEDUP_STORE must be firestore or redis")
	ErrFirebaseProjectMissing = errors.New("FIREBASE_PROJECT_ID or GOOGLE_CLOUD_PROJECT is required")
	ErrInvalidRunTimeout      = errors.New("DISPATCH_RUN_TIMEOUT must be a valid duration")
	ErrInvalidClaimLease      = errors.New("DISPATCH_CLAIM_LEASE must be a valid duration")
	ErrInvalidSchedulerSpec   = errors.New("SCHEDULER_SPEC must not be empty when the scheduler is enabled")
)
