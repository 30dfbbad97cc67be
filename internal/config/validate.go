package config

import (
	"errors"
	"fmt"
)

func ValidateForRun(cfg *Config) error {
	var errs []error

	if err := cfg.Firebase.Validate(); err != nil {
		errs = append(errs, err)
	}
	if !cfg.DedupStore.Valid() {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidDedupStore, cfg.DedupStore))
	}
	if cfg.DedupStore == DedupStoreRedis {
		if err := cfg.Redis.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := cfg.Scheduler.Validate(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %w", errors.Join(errs...))
	}

	return nil
}
