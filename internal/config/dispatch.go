package config

import (
	"os"
	"strconv"
	"time"
)

const (
	dispatchWindowMinutesEnv = "DISPATCH_WINDOW_MINUTES"
	dispatchWorkersEnv       = "DISPATCH_WORKERS"
	dispatchRunTimeoutEnv    = "DISPATCH_RUN_TIMEOUT"
	dispatchClaimLeaseEnv    = "DISPATCH_CLAIM_LEASE"
	dispatchRatePerSecondEnv = "DISPATCH_RATE_PER_SECOND"
	dispatchRateBurstEnv     = "DISPATCH_RATE_BURST"

	defaultDispatchWindowMinutes = 5
	defaultDispatchWorkers       = 8
	defaultDispatchRunTimeout    = 4 * time.Minute
	defaultDispatchClaimLease    = 2 * time.Minute
	defaultDispatchRateBurst     = 1
)

type DispatchConfig struct {
	// WindowMinutes equals the trigger cadence so each firing lands in exactly
	// one tick.
	WindowMinutes int
	Workers       int
	RunTimeout    time.Duration
	ClaimLease    time.Duration
	// RatePerSecond paces multicast calls; 0 disables pacing.
	RatePerSecond float64
	RateBurst     int
}

func LoadDispatchConfig() (*DispatchConfig, error) {
	windowMinutes := defaultDispatchWindowMinutes
	if v := os.Getenv(dispatchWindowMinutesEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			windowMinutes = parsed
		}
	}

	workers := defaultDispatchWorkers
	if v := os.Getenv(dispatchWorkersEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			workers = parsed
		}
	}

	runTimeout := defaultDispatchRunTimeout
	if v := os.Getenv(dispatchRunTimeoutEnv); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil || parsed <= 0 {
			return nil, ErrInvalidRunTimeout
		}
		runTimeout = parsed
	}

	claimLease := defaultDispatchClaimLease
	if v := os.Getenv(dispatchClaimLeaseEnv); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil || parsed <= 0 {
			return nil, ErrInvalidClaimLease
		}
		claimLease = parsed
	}

	var ratePerSecond float64
	if v := os.Getenv(dispatchRatePerSecondEnv); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			ratePerSecond = parsed
		}
	}

	rateBurst := defaultDispatchRateBurst
	if v := os.Getenv(dispatchRateBurstEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			rateBurst = parsed
		}
	}

	return &DispatchConfig{
		WindowMinutes: windowMinutes,
		Workers:       workers,
		RunTimeout:    runTimeout,
		ClaimLease:    claimLease,
		RatePerSecond: ratePerSecond,
		RateBurst:     rateBurst,
	}, nil
}
