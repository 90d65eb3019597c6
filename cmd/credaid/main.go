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

	"github.com/gagankishoreint-glitch/credai/internal/application/usecase"
	"github.com/gagankishoreint-glitch/credai/internal/domain/port"
	"github.com/gagankishoreint-glitch/credai/internal/domain/service"
	"github.com/gagankishoreint-glitch/credai/internal/infrastructure/cache"
	"github.com/gagankishoreint-glitch/credai/internal/infrastructure/config"
	"github.com/gagankishoreint-glitch/credai/internal/infrastructure/kafka"
	"github.com/gagankishoreint-glitch/credai/internal/infrastructure/persistence/memory"
	pgRepo "github.com/gagankishoreint-glitch/credai/internal/infrastructure/persistence/postgres"
	"github.com/gagankishoreint-glitch/credai/internal/infrastructure/telemetry"
	grpcPresentation "github.com/gagankishoreint-glitch/credai/internal/presentation/grpc"
	"github.com/gagankishoreint-glitch/credai/internal/presentation/rest"
	"github.com/gagankishoreint-glitch/credai/pkg/auth"
	pkgkafka "github.com/gagankishoreint-glitch/credai/pkg/kafka"
	"github.com/gagankishoreint-glitch/credai/pkg/observability"
	"github.com/gagankishoreint-glitch/credai/pkg/postgres"
)

const shutdownTimeout = 15 * time.Second

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.ServiceName,
	})

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("credai stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("credai stopped")
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	logger.Info("starting credai",
		"grpc_port", cfg.GRPCPort,
		"http_port", cfg.HTTPPort,
		"store", cfg.Store,
	)

	// --- Telemetry ----------------------------------------------------------
	shutdownTracer, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName:  cfg.ServiceName,
		OTLPEndpoint: cfg.Telemetry.OTLPEndpoint,
		Insecure:     cfg.Telemetry.Insecure,
		SampleRatio:  cfg.Telemetry.SampleRatio,
	})
	if err != nil {
		return fmt.Errorf("init tracer: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracer(sctx); err != nil {
			logger.Error("tracer shutdown error", "error", err)
		}
	}()

	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{})
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}
	defer func() {
		if err := meterProvider.Shutdown(context.Background()); err != nil {
			logger.Error("meter provider shutdown error", "error", err)
		}
	}()

	recorder, err := telemetry.NewAssessmentMetrics(meterProvider)
	if err != nil {
		return fmt.Errorf("init assessment metrics: %w", err)
	}

	// --- Storage ------------------------------------------------------------
	repo, closeRepo, err := openRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeRepo()

	readiness := map[string]rest.Pinger{"store": repo}

	scoreCache, closeCache, err := openScoreCache(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeCache()
	if p, ok := scoreCache.(rest.Pinger); ok {
		readiness["cache"] = p
	}

	// --- Messaging ----------------------------------------------------------
	var publisher port.EventPublisher = kafka.NewLogPublisher(logger)
	if cfg.Kafka.Enabled() {
		producer, err := pkgkafka.NewProducer(cfg.Kafka.Config)
		if err != nil {
			return fmt.Errorf("create kafka producer: %w", err)
		}
		kafkaPublisher := kafka.NewPublisher(producer, logger)
		defer func() {
			if err := kafkaPublisher.Close(); err != nil {
				logger.Error("kafka producer close error", "error", err)
			}
		}()
		publisher = kafkaPublisher
		logger.Info("publishing events to kafka", "brokers", cfg.Kafka.Brokers)
	} else {
		logger.Info("kafka not configured, domain events are logged only")
	}

	// --- Domain and use cases -----------------------------------------------
	model := service.DefaultLogisticModel()
	engine := service.NewCreditEngineWithModel(model)

	submitUC := usecase.NewSubmitApplicationUseCase(repo, publisher, engine, recorder, logger)
	getUC := usecase.NewGetApplicationUseCase(repo, logger)
	listUC := usecase.NewListApplicationsUseCase(repo, logger)
	decideUC := usecase.NewDecideApplicationUseCase(repo, publisher, logger)
	scoreUC := usecase.NewScoreApplicationUseCase(engine, scoreCache, cfg.Redis.CacheTTL, recorder, logger)
	batchUC := usecase.NewScoreBatchUseCase(engine, cfg.BatchWorkers, recorder, logger)
	describeUC := usecase.NewDescribeModelUseCase(model)

	// --- Auth ---------------------------------------------------------------
	jwtService, err := newJWTService(cfg.JWT)
	if err != nil {
		return fmt.Errorf("init JWT service: %w", err)
	}

	// --- Servers ------------------------------------------------------------
	grpcServer, err := grpcPresentation.NewServer(
		grpcPresentation.NewScoringHandler(submitUC, getUC, listUC, decideUC, scoreUC, batchUC, describeUC),
		jwtService,
		grpcPresentation.ServerOptions{
			ServiceName: cfg.ServiceName,
			TLS:         cfg.TLS,
			Reflection:  cfg.GRPCReflection,
		},
		logger,
	)
	if err != nil {
		return fmt.Errorf("create gRPC server: %w", err)
	}

	var limiter *rest.RateLimiter
	if cfg.RateLimitRPS > 0 {
		limiter = rest.NewRateLimiter(cfg.RateLimitRPS)
	}
	httpServer := &http.Server{
		Addr: cfg.HTTPAddr(),
		Handler: rest.NewRouter(rest.RouterConfig{
			API:         rest.NewAPIHandler(submitUC, getUC, listUC, decideUC, scoreUC, batchUC, describeUC, logger),
			Health:      rest.NewHealthHandler(cfg.ServiceName, readiness, logger),
			Metrics:     metricsHandler,
			Validator:   jwtService,
			RateLimiter: limiter,
			Logger:      logger,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 3)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server listening", "addr", cfg.HTTPAddr())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server: %w", err)
		}
	}()

	// --- Scoring request consumer -------------------------------------------
	consumerCtx, stopConsumer := context.WithCancel(ctx)
	defer stopConsumer()
	consumerDone := make(chan struct{})
	if cfg.Kafka.RequestTopic != "" {
		processUC := usecase.NewProcessScoringRequestUseCase(engine, publisher, recorder, logger)
		consumer, err := pkgkafka.NewConsumer(cfg.Kafka.Config, cfg.Kafka.RequestTopic,
			kafka.NewScoringRequestHandler(processUC, logger), logger)
		if err != nil {
			return fmt.Errorf("create scoring request consumer: %w", err)
		}
		go func() {
			defer close(consumerDone)
			defer func() {
				if err := consumer.Close(); err != nil {
					logger.Error("consumer close error", "error", err)
				}
			}()
			if err := consumer.Start(consumerCtx); err != nil {
				errCh <- fmt.Errorf("scoring request consumer: %w", err)
			}
		}()
	} else {
		close(consumerDone)
	}

	// --- Graceful shutdown --------------------------------------------------
	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case runErr = <-errCh:
	}

	stopConsumer()
	<-consumerDone

	grpcServer.GracefulStop()

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(sctx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	return runErr
}

// repository is the store surface the servers need, including readiness.
type repository interface {
	port.ApplicationRepository
	rest.Pinger
}

func openRepository(ctx context.Context, cfg config.Config, logger *slog.Logger) (repository, func(), error) {
	if cfg.Store == config.StoreMemory {
		logger.Warn("using in-memory application store, data is lost on restart")
		return memory.NewApplicationRepo(), func() {}, nil
	}

	if err := postgres.RunMigrations(cfg.DB.DSN(), pgRepo.Migrations, pgRepo.MigrationsDir); err != nil {
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("database migrations applied")

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	logger.Info("connected to database", "host", cfg.DB.Host, "database", cfg.DB.Database)

	return pgRepo.NewApplicationRepo(pool), pool.Close, nil
}

func openScoreCache(ctx context.Context, cfg config.Config, logger *slog.Logger) (port.ScoreCache, func(), error) {
	if cfg.Redis.Addr == "" {
		logger.Info("redis not configured, using in-process score cache")
		return cache.NewMemoryScoreCache(0, cfg.Redis.CacheTTL), func() {}, nil
	}

	rc, err := cache.NewRedisScoreCache(ctx, cache.RedisOptions{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to redis", "addr", cfg.Redis.Addr)

	return rc, func() {
		if err := rc.Close(); err != nil {
			logger.Error("redis close error", "error", err)
		}
	}, nil
}

// newJWTService prefers an RSA private key, then a public key for
// validation only, then the HMAC secret.
func newJWTService(cfg config.JWTConfig) (*auth.JWTService, error) {
	jwtCfg := auth.JWTConfig{
		Issuer:     cfg.Issuer,
		Expiration: cfg.Expiration,
	}

	switch {
	case cfg.PrivateKeyPath != "":
		key, err := auth.LoadKeyFromFile(cfg.PrivateKeyPath)
		if err != nil {
			return nil, err
		}
		jwtCfg.PrivateKeyPEM = string(key)
	case cfg.PublicKeyPath != "":
		key, err := auth.LoadKeyFromFile(cfg.PublicKeyPath)
		if err != nil {
			return nil, err
		}
		jwtCfg.PublicKeyPEM = string(key)
	default:
		jwtCfg.Secret = cfg.Secret
	}

	return auth.NewJWTService(jwtCfg)
}
