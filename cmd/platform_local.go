//go:build !gcloud

package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/config"
	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/observability"
	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/observability/logging"
)

func initObservability(ctx context.Context) (*observability.Resources, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env file", slog.String("error", err.Error()))
	}

	serviceName := os.Getenv("SERVICE_NAME")
	if serviceName == "" {
		serviceName = "reminder-dispatcher"
	}

	env := logging.EnvDev
	if e := os.Getenv("ENV"); e != "" {
		env = logging.Environment(e)
	}

	obs, err := observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:     serviceName,
			Version:  Version,
			Revision: "",
		},
		Environment:   env,
		GCPProjectID:  "",
		SamplingRate:  1.0,
		DefaultModule: moduleName,
		LogLevel:      config.LoadLogLevel(),
	})
	if err != nil {
		return nil, err
	}

	return obs, nil
}
