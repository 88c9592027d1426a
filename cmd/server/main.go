// Command server starts the Wordstake HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/zawlinnphyo/wordstake/internal/adapter/dictionary"
	httpserver "github.com/zawlinnphyo/wordstake/internal/adapter/httpserver"
	"github.com/zawlinnphyo/wordstake/internal/adapter/observability"
	"github.com/zawlinnphyo/wordstake/internal/adapter/oracle"
	"github.com/zawlinnphyo/wordstake/internal/adapter/queue/kafka"
	"github.com/zawlinnphyo/wordstake/internal/adapter/repo/postgres"
	"github.com/zawlinnphyo/wordstake/internal/app"
	"github.com/zawlinnphyo/wordstake/internal/config"
	"github.com/zawlinnphyo/wordstake/internal/editor"
	"github.com/zawlinnphyo/wordstake/internal/repetition"
	"github.com/zawlinnphyo/wordstake/internal/usecase"
	"github.com/zawlinnphyo/wordstake/internal/wordcheck"
)

// redisAdapter narrows *redis.Client to the readiness interface.
type redisAdapter struct{ *redis.Client }

func (r redisAdapter) Ping(ctx context.Context) app.RedisPingResult { return r.Client.Ping(ctx) }

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := observability.SetupLogger(cfg)
	slog.SetDefault(logger)

	// Register all Prometheus metrics once per process so that /metrics
	// exposes HTTP and pipeline instrumentation.
	observability.InitMetrics()

	shutdownTracer, err := observability.SetupTracing(cfg)
	if err != nil {
		slog.Error("failed to setup tracing", slog.Any("error", err))
	}
	defer func() {
		if shutdownTracer != nil {
			_ = shutdownTracer(context.Background())
		}
	}()

	// Infra: DB pool
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DBURL, cfg.DBConnectMaxElapsed)
	if err != nil {
		slog.Error("db connect failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		slog.Error("schema setup failed", slog.Any("error", err))
		os.Exit(1)
	}

	// Repositories
	taskRepo := postgres.NewTaskRepo(pool)
	milestoneRepo := postgres.NewMilestoneRepo(pool)
	contentRepo := postgres.NewContentRepo(pool)
	evalRepo := postgres.NewEvaluationRepo(pool)
	refundRepo := postgres.NewRefundRepo(pool)

	// Redis backs the submit lock and the dictionary cache.
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
	defer func() {
		if err := rdb.Close(); err != nil {
			slog.Error("failed to close redis client", slog.Any("error", err))
		}
	}()

	// Validation policy
	policy := config.DefaultPolicy()
	if cfg.PolicyFile != "" {
		policy, err = config.LoadPolicy(cfg.PolicyFile)
		if err != nil {
			slog.Error("policy load failed", slog.Any("error", err), slog.String("path", cfg.PolicyFile))
			os.Exit(1)
		}
	}

	// Pipeline stages
	dict := dictionary.NewCached(dictionary.New(cfg), rdb, cfg.DictionaryCacheTTL)
	words := wordcheck.NewValidator(dict)
	detector := repetition.NewDetector(policy)
	oracleClient := oracle.New(cfg)

	// Review queue producer (flagged submissions only)
	producer, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.ReviewTopic)
	if err != nil {
		slog.Error("kafka producer connect failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer producer.Close()

	// Usecases
	schedule := usecase.NewMilestoneService(taskRepo, milestoneRepo)
	validation := usecase.ValidationService{
		Words:           words,
		Detector:        detector,
		Oracle:          oracleClient,
		Tasks:           taskRepo,
		Milestones:      milestoneRepo,
		Contents:        contentRepo,
		Evals:           evalRepo,
		Publisher:       producer,
		Guard:           editor.NewRedisGuard(rdb, cfg.SubmitLockTTL),
		Schedule:        schedule,
		Policy:          policy,
		PromptBudget:    cfg.OraclePromptBudget,
		OracleMaxTokens: cfg.OracleMaxTokens,
	}
	refunds := usecase.NewRefundService(taskRepo, milestoneRepo, refundRepo)

	// Readiness checks
	dbCheck, redisCheck := app.BuildReadinessChecks(pool, redisAdapter{rdb})

	// HTTP server
	srv := httpserver.NewServer(cfg, schedule, validation, refunds, evalRepo, dbCheck, redisCheck)
	handler := app.BuildRouter(cfg, srv)

	srvHTTP := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server starting", slog.Int("port", cfg.Port))
		errCh <- srvHTTP.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.Any("error", err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
	defer cancel()
	_ = srvHTTP.Shutdown(shutdownCtx)
}
