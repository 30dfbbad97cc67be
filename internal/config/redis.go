package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	redisAddrEnv     = "REDIS_ADDR"
	redisPasswordEnv = "REDIS_PASSWORD"
	redisDBEnv       = "REDIS_DB"
	redisTLSEnv      = "REDIS_TLS"

	defaultRedisAddr = "localhost:6379"
)

// RedisConfig locates the Redis instance holding per-user slot state when
// DEDUP_STORE=redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TLS      bool
}

func LoadRedisConfig() (*RedisConfig, error) {
	cfg := &RedisConfig{
		Addr:     strings.TrimSpace(os.Getenv(redisAddrEnv)),
		Password: os.Getenv(redisPasswordEnv),
	}
	if cfg.Addr == "" {
		cfg.Addr = defaultRedisAddr
	}

	if raw := strings.TrimSpace(os.Getenv(redisDBEnv)); raw != "" {
		db, err := strconv.Atoi(raw)
		if err != nil || db < 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidRedisDB, raw)
		}
		cfg.DB = db
	}

	// Managed instances usually require TLS; accept any boolean spelling.
	if raw := os.Getenv(redisTLSEnv); raw != "" {
		cfg.TLS, _ = strconv.ParseBool(strings.TrimSpace(raw))
	}

	return cfg, nil
}

func (c *RedisConfig) Validate() error {
	if c == nil || c.Addr == "" {
		return ErrRedisAddrMissing
	}
	if c.DB < 0 {
		return ErrInvalidRedisDB
	}
	return nil
}
