package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-alarm-scheduler/internal/config"
	"github.com/KasumiMercury/primind-alarm-scheduler/internal/handler"
	"github.com/KasumiMercury/primind-alarm-scheduler/internal/health"
	"github.com/KasumiMercury/primind-alarm-scheduler/internal/infra/repository"
	"github.com/KasumiMercury/primind-alarm-scheduler/internal/infra/ringrecorder"
	"github.com/KasumiMercury/primind-alarm-scheduler/internal/observability"
	"github.com/KasumiMercury/primind-alarm-scheduler/internal/observability/logging"
	"github.com/KasumiMercury/primind-alarm-scheduler/internal/observability/metrics"
	"github.com/KasumiMercury/primind-alarm-scheduler/internal/observability/middleware"
	"github.com/KasumiMercury/primind-alarm-scheduler/internal/service/boot"
	"github.com/KasumiMercury/primind-alarm-scheduler/internal/service/followup"
	"github.com/KasumiMercury/primind-alarm-scheduler/internal/service/lifecycle"
	"github.com/KasumiMercury/primind-alarm-scheduler/internal/service/timecalc"
)

// Version is set via ldflags at build time
var Version = "dev"

const module = logging.Module("alarm-scheduler")

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	obs, err := initObservability(ctx, cfg.LogLevel)
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

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	if err := cfg.Scheduler.Validate(); err != nil {
		slog.Error("scheduler configuration error", slog.String("error", err.Error()))
		return 1
	}

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		slog.Error("failed to initialize HTTP metrics", slog.String("error", err.Error()))
		return 1
	}

	alarmMetrics, err := metrics.NewAlarmMetrics()
	if err != nil {
		slog.Error("failed to initialize alarm metrics", slog.String("error", err.Error()))
		return 1
	}

	// Ring event recorder (InfluxDB for local, BigQuery for gcloud)
	recorder, err := ringrecorder.NewRecorder(ctx, ringrecorder.LoadConfig())
	if err != nil {
		slog.Error("failed to initialize ring event recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer flushCancel()
		if err := recorder.Flush(flushCtx); err != nil {
			slog.Warn("failed to flush ring event recorder", slog.String("error", err.Error()))
		}
		if err := recorder.Close(); err != nil {
			slog.Warn("failed to close ring event recorder", slog.String("error", err.Error()))
		}
	}()

	redisClient := redis.NewClient(cfg.Redis.Options())

	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		slog.Error("failed to instrument redis tracing",
			slog.String("event", "redis.otel.tracing.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := redisotel.InstrumentMetrics(redisClient); err != nil {
		slog.Error("failed to instrument redis metrics",
			slog.String("event", "redis.otel.metrics.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.Error("failed to connect redis",
			slog.String("event", "redis.connect.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Warn("failed to close redis client", slog.String("error", err.Error()))
		}
	}()

	slog.Info("redis connected",
		slog.String("addr", cfg.Redis.Addr),
	)

	store, err := repository.OpenSQLiteStore(ctx, cfg.Database.Path)
	if err != nil {
		slog.Error("failed to open alarm database",
			slog.String("event", "database.open.fail"),
			slog.String("path", cfg.Database.Path),
			slog.String("error", err.Error()),
		)
		return 1
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Warn("failed to close alarm database", slog.String("error", err.Error()))
		}
	}()

	sqlDB, err := store.DB().DB()
	if err != nil {
		slog.Error("failed to access alarm database handle", slog.String("error", err.Error()))
		return 1
	}

	taskIndex := repository.NewTaskIndexRepository(redisClient)
	ringState := repository.NewRingStateRepository(redisClient)

	sched, cleanup, err := initScheduler(ctx, cfg, taskIndex, alarmMetrics)
	if err != nil {
		slog.Error("failed to initialize scheduler", slog.String("error", err.Error()))
		return 1
	}
	if cleanup != nil {
		defer func() {
			if err := cleanup(); err != nil {
				slog.Error("scheduler cleanup error", slog.String("error", err.Error()))
			}
		}()
	}

	calculator := timecalc.NewCalculator()

	lifecycleService := lifecycle.NewService(store, sched, calculator, alarmMetrics)
	if err := lifecycleService.Load(ctx); err != nil {
		return 1
	}

	coordinator := followup.NewCoordinator(
		lifecycleService,
		ringState,
		sched,
		calculator,
		recorder,
		alarmMetrics,
		followup.Config{
			CallbackBaseURL: cfg.Scheduler.CallbackBaseURL,
			DefaultSnooze:   time.Duration(cfg.Alarm.DefaultSnoozeMinutes) * time.Minute,
			ProcessedTTL:    cfg.Alarm.ProcessedEventTTL,
		},
	)

	// Boot reconciliation reads through its own short-lived handle, as a cold start would.
	reconciler := boot.NewReconciler(repository.NewSQLiteOpener(cfg.Database.Path), sched, calculator, alarmMetrics)
	if cfg.Alarm.ReconcileOnBoot && !reconciler.Reconcile(ctx) {
		slog.Warn("boot reconciliation incomplete",
			slog.String("event", "boot.reconcile.partial"),
		)
	}

	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:   []string{"/health", "/health/live", "/health/ready"},
		Module:      module,
		TracerName:  "github.com/KasumiMercury/primind-alarm-scheduler/internal/observability/middleware",
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	health.NewChecker(redisClient, sqlDB, Version).Register(r)

	v1 := r.Group("/api/v1")
	handler.NewAlarmHandler(lifecycleService).Register(v1)
	handler.NewRingHandler(coordinator).Register(v1)
	handler.NewBootHandler(reconciler).Register(v1)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.String("callback_base_url", cfg.Scheduler.CallbackBaseURL),
			slog.String("database_path", cfg.Database.Path),
		)
		serverErr <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return 1
		}

		// Flush whatever the last requests changed.
		if _, err := lifecycleService.SaveAlarms(shutdownCtx); err != nil {
			slog.Warn("final alarm sync failed", slog.String("error", err.Error()))
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

// observabilityConfig fills the fields both platforms share. nameEnv names the
// variable holding the service name on the target platform.
func observabilityConfig(nameEnv string, defaultEnv logging.Environment, level slog.Leveler) observability.Config {
	name := os.Getenv(nameEnv)
	if name == "" {
		name = string(module)
	}

	env := defaultEnv
	if e := os.Getenv("ENV"); e != "" {
		env = logging.Environment(e)
	}

	rate := 1.0
	if v := os.Getenv("TRACE_SAMPLING_RATE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			rate = parsed
		}
	}

	return observability.Config{
		ServiceInfo:   logging.ServiceInfo{Name: name, Version: Version},
		Environment:   env,
		SamplingRate:  rate,
		DefaultModule: module,
		LogLevel:      level,
	}
}
