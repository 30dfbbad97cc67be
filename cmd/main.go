package main

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"google.golang.org/api/option"

	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/config"
	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/domain"
	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/handler"
	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/health"
	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/infra/docstore"
	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/infra/fcm"
	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/infra/repository"
	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/infra/runrecorder"
	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/observability/logging"
	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/observability/metrics"
	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/observability/middleware"
	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/scheduler"
	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/service/cleanup"
	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/service/compose"
	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/service/dispatch"
	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/service/localtime"
	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/service/matcher"
	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/service/run"
	"github.com/KasumiMercury/primind-reminder-dispatcher/internal/service/slot"
)

// Version is set via ldflags at build time
var Version = "dev"

const moduleName = logging.Module("reminder-dispatcher")

func main() {
	os.Exit(serve())
}

func serve() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	obs, err := initObservability(ctx)
	if err != nil {
		slog.Error("failed to initialize observability", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}()

	slog.SetDefault(obs.Logger())

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		slog.Error("failed to initialize HTTP metrics", slog.String("error", err.Error()))
		return 1
	}

	dispatchMetrics, err := metrics.NewDispatchMetrics()
	if err != nil {
		slog.Error("failed to initialize dispatch metrics", slog.String("error", err.Error()))
		return 1
	}

	// InfluxDB for local, BigQuery for gcloud
	resultRecorder, err := runrecorder.NewRecorder(ctx, runrecorder.LoadConfig())
	if err != nil {
		slog.Error("failed to initialize run result recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := resultRecorder.Close(); err != nil {
			slog.Warn("failed to close run result recorder", slog.String("error", err.Error()))
		}
	}()

	var appOpts []option.ClientOption
	if cfg.Firebase.CredentialsFile != "" {
		appOpts = append(appOpts, option.WithCredentialsFile(cfg.Firebase.CredentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.Firebase.ProjectID}, appOpts...)
	if err != nil {
		slog.Error("failed to initialize firebase app", slog.String("error", err.Error()))
		return 1
	}

	firestoreClient, err := app.Firestore(ctx)
	if err != nil {
		slog.Error("failed to initialize firestore client",
			slog.String("event", "firestore.connect.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}
	defer func() {
		if err := firestoreClient.Close(); err != nil {
			slog.Warn("failed to close firestore client", slog.String("error", err.Error()))
		}
	}()

	messagingClient, err := app.Messaging(ctx)
	if err != nil {
		slog.Error("failed to initialize messaging client", slog.String("error", err.Error()))
		return 1
	}

	var redisClient *redis.Client
	if cfg.DedupStore == config.DedupStoreRedis {
		redisClient, err = newRedisClient(ctx, cfg.Redis)
		if err != nil {
			return 1
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				slog.Warn("failed to close redis client", slog.String("error", err.Error()))
			}
		}()
	}

	userRepo := docstore.NewUserRepository(firestoreClient)
	dedupRepo := newDedupRepository(cfg.DedupStore, firestoreClient, redisClient)

	coordinator := run.NewCoordinator(
		userRepo,
		localtime.NewEvaluator(),
		matcher.NewMatcher(cfg.Dispatch.WindowMinutes),
		slot.NewDeduplicator(dedupRepo, cfg.Dispatch.ClaimLease),
		compose.NewComposer(cfg.Push),
		dispatch.NewDispatcher(
			fcm.NewGateway(messagingClient),
			dispatch.NewLimiter(cfg.Dispatch.RatePerSecond, cfg.Dispatch.RateBurst),
			dispatchMetrics,
		),
		cleanup.NewCleaner(userRepo, dispatchMetrics),
		resultRecorder,
		dispatchMetrics,
		run.Options{
			Workers:    cfg.Dispatch.Workers,
			RunTimeout: cfg.Dispatch.RunTimeout,
		},
	)

	dispatchHandler := handler.NewDispatchHandler(coordinator)

	var cronScheduler *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		cronScheduler, err = scheduler.New(coordinator, cfg.Scheduler.Spec)
		if err != nil {
			slog.Error("failed to create scheduler", slog.String("error", err.Error()))
			return 1
		}
		if err := cronScheduler.Start(ctx); err != nil {
			slog.Error("failed to start scheduler", slog.String("error", err.Error()))
			return 1
		}
	}

	// Setup router with observability middleware
	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:   []string{"/health", "/health/live", "/health/ready", "/metrics"},
		Module:      moduleName,
		TracerName:  "github.com/KasumiMercury/primind-reminder-dispatcher/internal/observability/middleware",
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	healthChecker := health.NewChecker(Version,
		health.FirestoreProbe(firestoreClient, docstore.UsersCollection),
		health.RedisProbe(redisClient),
	)
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())

	v1 := r.Group("/api/v1")
	{
		v1.POST("/reminders/dispatch", dispatchHandler.HandleDispatch)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.String("dedup_store", string(cfg.DedupStore)),
			slog.Int("window_minutes", cfg.Dispatch.WindowMinutes),
			slog.Int("workers", cfg.Dispatch.Workers),
			slog.Bool("scheduler_enabled", cfg.Scheduler.Enabled),
		)
		serverErr <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if cronScheduler != nil {
			cronScheduler.Stop(shutdownCtx)
		}
		cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return 1
		}

		slog.Info("server exited properly")
		return 0

	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return 1
	}
}

func newRedisClient(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	opts := &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	if cfg.TLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	redisClient := redis.NewClient(opts)

	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		slog.Error("failed to instrument redis tracing",
			slog.String("event", "redis.otel.tracing.fail"),
			slog.String("error", err.Error()),
		)
		_ = redisClient.Close()
		return nil, err
	}

	if err := redisotel.InstrumentMetrics(redisClient); err != nil {
		slog.Error("failed to instrument redis metrics",
			slog.String("event", "redis.otel.metrics.fail"),
			slog.String("error", err.Error()),
		)
		_ = redisClient.Close()
		return nil, err
	}

	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.Error("failed to connect redis",
			slog.String("event", "redis.connect.fail"),
			slog.String("error", err.Error()),
		)
		_ = redisClient.Close()
		return nil, err
	}

	slog.Info("redis connected",
		slog.String("addr", cfg.Addr),
	)

	return redisClient, nil
}

func newDedupRepository(store config.DedupStore, firestoreClient *firestore.Client, redisClient *redis.Client) domain.DedupStateRepository {
	if store == config.DedupStoreRedis {
		return repository.NewDedupRepository(redisClient)
	}
	return docstore.NewDedupRepository(firestoreClient)
}
