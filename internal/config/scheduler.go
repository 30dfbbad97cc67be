package config

import (
	"os"
	"strings"
)

const (
	schedulerEnabledEnv = "SCHEDULER_ENABLED"
	schedulerSpecEnv    = "SCHEDULER_SPEC"

	defaultSchedulerSpec = "*/5 * * * *"
)

type SchedulerConfig struct {
	Enabled bool
	// Spec is a five-field cron expression evaluated in UTC.
	Spec string
}

func LoadSchedulerConfig() *SchedulerConfig {
	enabled := defaultSchedulerEnabled
	if v := os.Getenv(schedulerEnabledEnv); v != "" {
		enabled = strings.EqualFold(v, "true")
	}

	return &SchedulerConfig{
		Enabled: enabled,
		Spec:    getEnvOrDefault(schedulerSpecEnv, defaultSchedulerSpec),
	}
}

func (c *SchedulerConfig) Validate() error {
	if c.Enabled && strings.TrimSpace(c.Spec) == "" {
		return ErrInvalidSchedulerSpec
	}
	return nil
}
