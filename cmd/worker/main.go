package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/interceptor"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/realtysync/provider-sync/internal/adapter"
	"github.com/realtysync/provider-sync/internal/alert"
	"github.com/realtysync/provider-sync/internal/auth"
	"github.com/realtysync/provider-sync/internal/cache"
	"github.com/realtysync/provider-sync/internal/canonical"
	"github.com/realtysync/provider-sync/internal/config"
	"github.com/realtysync/provider-sync/internal/drift"
	"github.com/realtysync/provider-sync/internal/logger"
	"github.com/realtysync/provider-sync/internal/provider"
	"github.com/realtysync/provider-sync/internal/quality"
	"github.com/realtysync/provider-sync/internal/ratelimit"
	"github.com/realtysync/provider-sync/internal/sanitize"
	"github.com/realtysync/provider-sync/internal/store"
	"github.com/realtysync/provider-sync/internal/syncer"
	"github.com/realtysync/provider-sync/internal/workflows"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadWorkerConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Secrets never reach logs, alerts or stored error messages
	sanitizer, err := sanitize.New(sanitize.Config{
		Patterns:   cfg.Security.RedactPatterns,
		SecretKeys: cfg.Security.SecretKeys,
		MaxLength:  cfg.Security.MaxMessageLength,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to build sanitizer: %v", err))
	}
	sanitize.SetDefault(sanitizer)

	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service":  "sync-worker",
			"provider": cfg.Provider.Name,
		},
		Sanitizer: sanitizer,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting sync worker", zap.String("provider", cfg.Provider.Name))

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	if cfg.Database.AutoMigrate {
		if err := store.AutoMigrate(db); err != nil {
			logger.FatalCtx(ctx, "Failed to migrate database", zap.Error(err))
		}
		logger.InfoCtx(ctx, "Database schema migrated")
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)
	dataStore := store.NewPGStore(db)

	// Initialize adapters
	jsonAdapter := adapter.NewJSON()
	clockAdapter := adapter.NewClock()
	httpClient := adapter.NewHTTPClient(cfg.Provider.FetchTimeout)
	hasher := canonical.NewHasher(jsonAdapter, adapter.NewJCS())

	cipher, err := adapter.NewCipher(cfg.Security.CredentialKey)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to initialize credential cipher", zap.Error(err))
	}

	// Redis is optional; without it the cache lives in Postgres and rate limits are per process
	var redisClient adapter.RedisClient
	var sharedCache cache.Cache
	if cfg.Redis.URL != "" {
		redisClient, err = adapter.NewRedisClientFromURL(cfg.Redis.URL)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to parse redis url", zap.Error(err))
		}
		defer redisClient.Close()
		if err := redisClient.Ping(ctx); err != nil {
			logger.WarnCtx(ctx, "Redis is not reachable, continuing with degraded limiter", zap.Error(err))
		}
		sharedCache = cache.NewRedis(redisClient, cfg.Provider.Name)
		logger.InfoCtx(ctx, "Connected to redis")
	} else {
		sharedCache = cache.NewStore(dataStore, clockAdapter)
		logger.WarnCtx(ctx, "Redis not configured, using database cache")
	}

	limiter, err := ratelimit.NewLimiter(ratelimit.Config{
		RequestsPerSecond: cfg.Provider.RequestsPerSecond,
		Burst:             cfg.Provider.Burst,
		KeyPrefix:         "ratelimit:" + cfg.Provider.Name,
	}, redisClient, clockAdapter)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to initialize rate limiter", zap.Error(err))
	}

	// Session and token management
	issuer := auth.NewHTTPTokenIssuer(adapter.NewHTTPClient(cfg.Provider.TokenTimeout), jsonAdapter, cfg.Provider.BaseURL, cfg.Provider.TokenPath)
	sessions := auth.NewManager(auth.ManagerConfig{
		Provider:     cfg.Provider.Name,
		TokenTTL:     cfg.Provider.TokenTTL,
		TokenTimeout: cfg.Provider.TokenTimeout,
	}, dataStore, issuer, cipher, clockAdapter)
	if _, err := sessions.EnsureSession(ctx); err != nil {
		// The worker still starts; every sync run records the missing session until one is stored
		logger.WarnCtx(ctx, "No usable provider session", zap.Error(err))
	}

	providerClient := provider.NewClient(provider.Config{
		Name:        cfg.Provider.Name,
		BaseURL:     cfg.Provider.BaseURL,
		DefaultCity: cfg.Provider.DefaultCity,
		DefaultLang: cfg.Provider.DefaultLang,
	}, httpClient, sessions, limiter)

	// Sync pipeline
	detector := drift.NewDetector(dataStore, hasher, clockAdapter)
	orchestrator := syncer.NewSyncer(syncer.Config{
		Provider:          cfg.Provider.Name,
		DefaultCity:       cfg.Provider.DefaultCity,
		DefaultLang:       cfg.Provider.DefaultLang,
		MaxPages:          cfg.Sync.MaxPages,
		PageSize:          cfg.Sync.PageSize,
		DetailConcurrency: cfg.Sync.DetailConcurrency,
		MaxErrorLength:    cfg.Security.MaxMessageLength,
		ContentHashDrift:  cfg.Sync.ContentHashDrift,
	}, syncer.DefaultRegistry(), providerClient, dataStore, detector, hasher, jsonAdapter, clockAdapter, sanitizer)
	defer orchestrator.Close()

	qualityRunner := quality.NewRunner(dataStore, jsonAdapter, sanitizer, cfg.Security.MaxMessageLength)

	// Alerts
	notifier := alert.NewTelegramNotifier(alert.TelegramConfig{
		APIURL:   cfg.Alerts.TelegramAPIURL,
		BotToken: cfg.Alerts.TelegramBotToken,
		ChatID:   cfg.Alerts.TelegramChatID,
	}, adapter.NewHTTPClient(10*time.Second), jsonAdapter)
	if !notifier.Configured() {
		logger.WarnCtx(ctx, "Telegram not configured, alerts will only be logged")
	}
	dispatcher, err := alert.NewDispatcher(alert.Config{
		DedupeTTL:        cfg.Alerts.DedupeTTL,
		SuppressionTTL:   cfg.Alerts.SuppressionTTL,
		QuietHours:       cfg.Alerts.QuietHours,
		Timezone:         cfg.Alerts.Timezone,
		MaxMessageLength: cfg.Alerts.MaxMessageLength,
	}, notifier, sharedCache, clockAdapter, sanitizer)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to initialize alert dispatcher", zap.Error(err))
	}
	checker := alert.NewChecker(alert.CheckerConfig{
		Window:     cfg.Alerts.Window,
		StaleAfter: cfg.Alerts.StaleAfter,
	}, dataStore, dispatcher, clockAdapter)

	executor := workflows.NewExecutor(orchestrator, qualityRunner, checker, dataStore, adapter.NewActivity())

	// Connect to Temporal
	temporalClient, err := client.Dial(client.Options{
		HostPort:  cfg.Temporal.HostPort,
		Namespace: cfg.Temporal.Namespace,
		Logger:    workflows.NewZapLoggerAdapter(logger.Default()),
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to Temporal", zap.Error(err), zap.String("host_port", cfg.Temporal.HostPort))
	}
	defer temporalClient.Close()
	logger.InfoCtx(ctx, "Connected to Temporal", zap.String("namespace", cfg.Temporal.Namespace))

	temporalWorker := worker.New(
		temporalClient,
		cfg.Temporal.TaskQueue,
		worker.Options{
			MaxConcurrentActivityExecutionSize: cfg.Temporal.MaxConcurrentActivityExecutionSize,
			WorkerActivitiesPerSecond:          cfg.Temporal.WorkerActivitiesPerSecond,
			MaxConcurrentActivityTaskPollers:   cfg.Temporal.MaxConcurrentActivityTaskPollers,
			Interceptors: []interceptor.WorkerInterceptor{
				workflows.NewSentryActivityInterceptor(adapter.NewActivity()),
			},
		})

	workerCore := workflows.NewWorkerCore(executor, workflows.WorkerCoreConfig{
		Locales:           cfg.Locales(),
		DetailLimit:       cfg.Sync.DetailBatchSize,
		DetailConcurrency: cfg.Sync.DetailConcurrency,
		QualityLimit:      cfg.Quality.Limit,
		QualityCap:        cfg.Quality.Cap,
		StoreRaw:          cfg.Sync.StoreRaw,
	})

	// Register workflows under the names the schedules start
	temporalWorker.RegisterWorkflowWithOptions(workerCore.SyncList, workflow.RegisterOptions{Name: workflows.WorkflowSyncList})
	temporalWorker.RegisterWorkflowWithOptions(workerCore.SyncDetails, workflow.RegisterOptions{Name: workflows.WorkflowSyncDetails})
	temporalWorker.RegisterWorkflowWithOptions(workerCore.RunQuality, workflow.RegisterOptions{Name: workflows.WorkflowRunQuality})
	temporalWorker.RegisterWorkflowWithOptions(workerCore.CheckAlerts, workflow.RegisterOptions{Name: workflows.WorkflowCheckAlerts})
	logger.InfoCtx(ctx, "Registered workflows")

	temporalWorker.RegisterActivity(executor.RunListSync)
	temporalWorker.RegisterActivity(executor.RunDetailSync)
	temporalWorker.RegisterActivity(executor.ListRecentBlockIDs)
	temporalWorker.RegisterActivity(executor.RunQualityChecks)
	temporalWorker.RegisterActivity(executor.CheckAndNotify)
	logger.InfoCtx(ctx, "Registered activities")

	schedules := workflows.DefaultSchedules(cfg.Provider.Name, workflows.ScheduleIntervals{
		List:    cfg.Schedule.ListInterval,
		Detail:  cfg.Schedule.DetailInterval,
		Quality: cfg.Schedule.QualityInterval,
		Alert:   cfg.Schedule.AlertInterval,
	})
	if err := workflows.EnsureSchedules(ctx, temporalClient.ScheduleClient(), cfg.Temporal.TaskQueue, schedules); err != nil {
		logger.FatalCtx(ctx, "Failed to ensure schedules", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Schedules ensured", zap.Int("count", len(schedules)))

	if err := temporalWorker.Start(); err != nil {
		logger.FatalCtx(ctx, "Failed to start worker", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Worker started and listening for tasks", zap.String("task_queue", cfg.Temporal.TaskQueue))

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.InfoCtx(ctx, "Shutting down worker...")
	temporalWorker.Stop()
	logger.InfoCtx(ctx, "Worker stopped")
}
