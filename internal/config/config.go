package config

import (
	"log/slog"
	"os"
	"strings"
)

type DedupStore string

const (
	DedupStoreFirestore DedupStore = "firestore"
	DedupStoreRedis     DedupStore = "redis"

	dedupStoreEnv = "DEDUP_STORE"
	logLevelEnv   = "LOG_LEVEL"
)

// Valid reports whether s names a supported dedup state backend.
func (s DedupStore) Valid() bool {
	return s == DedupStoreFirestore || s == DedupStoreRedis
}

type Config struct {
	Port       string
	LogLevel   slog.Level
	DedupStore DedupStore
	Firebase   *FirebaseConfig
	Redis      *RedisConfig
	Dispatch   *DispatchConfig
	Push       *PushConfig
	Scheduler  *SchedulerConfig
}

func Load() (*Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	dedupStore := DedupStore(strings.ToLower(strings.TrimSpace(os.Getenv(dedupStoreEnv))))
	if dedupStore == "" {
		dedupStore = DedupStoreFirestore
	}

	var redisConfig *RedisConfig
	if dedupStore == DedupStoreRedis {
		var err error
		redisConfig, err = LoadRedisConfig()
		if err != nil {
			return nil, err
		}
	}

	dispatchConfig, err := LoadDispatchConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:       port,
		LogLevel:   LoadLogLevel(),
		DedupStore: dedupStore,
		Firebase:   LoadFirebaseConfig(),
		Redis:      redisConfig,
		Dispatch:   dispatchConfig,
		Push:       LoadPushConfig(),
		Scheduler:  LoadSchedulerConfig(),
	}, nil
}

// LoadLogLevel reads LOG_LEVEL. It is usable before the rest of the
// configuration so the logger can be built first.
func LoadLogLevel() slog.Level {
	return parseLogLevel(os.Getenv(logLevelEnv))
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
