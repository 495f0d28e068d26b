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
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"

	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/internal/application/usecase"
	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/internal/domain/service"
	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/internal/infrastructure/cache"
	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/internal/infrastructure/config"
	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/internal/infrastructure/kafka"
	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/internal/infrastructure/metrics"
	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/internal/infrastructure/persistence/postgres"
	grpcPresentation "github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/internal/presentation/grpc"
	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/internal/presentation/rest"
	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/pkg/auth"
	pkgkafka "github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/pkg/kafka"
	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/pkg/observability"
	pkgpostgres "github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/pkg/postgres"
)

func main() {
	if err := run(); err != nil {
		slog.Error("loan-service exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()
	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.Info("starting loan-service",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	shutdownTracer, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName: cfg.ServiceName,
		Endpoint:    cfg.OTLPEndpoint,
		Insecure:    true,
	})
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
	} else {
		defer func() { _ = shutdownTracer(context.Background()) }() //nolint:errcheck // best-effort flush
	}

	meterProvider, metricsHandler, err := observability.InitMetrics()
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}
	otel.SetMeterProvider(meterProvider)
	defer func() { _ = meterProvider.Shutdown(context.Background()) }() //nolint:errcheck

	// Database.
	dbCfg := pkgpostgres.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
		MaxConns: int32(cfg.DB.MaxConns),
	}
	if err := pkgpostgres.RunMigrations(dbCfg.DSN(), postgres.Migrations, postgres.MigrationsDir); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	pool, err := pkgpostgres.NewPool(dbCtx, dbCfg)
	dbCancel()
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()
	logger.Info("connected to database")

	// Schedule cache.
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	scheduleCache := cache.NewScheduleCache(redisClient, cfg.Redis.ScheduleTTL)

	// Events.
	producer, err := pkgkafka.NewProducer(pkgkafka.Config{
		Brokers:       cfg.Kafka.Brokers,
		ClientID:      cfg.Kafka.ClientID,
		TLS:           cfg.Kafka.TLS,
		SASLEnabled:   cfg.Kafka.SASLMechanism != "",
		SASLMechanism: cfg.Kafka.SASLMechanism,
		SASLUsername:  cfg.Kafka.SASLUsername,
		SASLPassword:  cfg.Kafka.SASLPassword,
	})
	if err != nil {
		return fmt.Errorf("kafka producer: %w", err)
	}
	defer producer.Close()
	publisher := kafka.NewEventPublisher(producer, cfg.Kafka.Topic, logger)

	recorder, err := metrics.NewRecorder(meterProvider)
	if err != nil {
		return fmt.Errorf("metrics recorder: %w", err)
	}

	// Use cases.
	loanRepo := postgres.NewLoanRepo(pool)
	analysisRepo := postgres.NewRefinanceAnalysisRepo(pool)
	paymentRepo := postgres.NewPaymentRepo(pool)
	analyzer := service.NewRefinanceAnalyzer(service.RefinancePolicy{
		MinLifetimeSavings: cfg.Refinance.MinLifetimeSavings,
		MaxBreakEvenMonths: cfg.Refinance.MaxBreakEvenMonths,
	})

	handler := grpcPresentation.NewLoanHandler(grpcPresentation.UseCases{
		CreateLoan:            usecase.NewCreateLoanUseCase(loanRepo, publisher, recorder, logger),
		GetLoan:               usecase.NewGetLoanUseCase(loanRepo),
		GenerateSchedule:      usecase.NewGenerateScheduleUseCase(loanRepo, scheduleCache, publisher, recorder, logger),
		GetSchedule:           usecase.NewGetScheduleUseCase(loanRepo, scheduleCache, logger),
		AnalyzeRefinance:      usecase.NewAnalyzeRefinanceUseCase(loanRepo, analysisRepo, analyzer, publisher, recorder, logger),
		ListRefinanceAnalyses: usecase.NewListRefinanceAnalysesUseCase(loanRepo, analysisRepo),
		ApplyPayment:          usecase.NewApplyPaymentUseCase(loanRepo, scheduleCache, publisher, recorder, logger),
		ListPayments:          usecase.NewListPaymentsUseCase(loanRepo, paymentRepo),
	}, logger)

	jwtSvc, err := auth.NewJWTService(auth.JWTConfig{
		Secret:       cfg.JWT.Secret,
		PublicKeyPEM: cfg.JWT.PublicKeyPEM,
		Issuer:       cfg.JWT.Issuer,
	})
	if err != nil {
		return fmt.Errorf("jwt: %w", err)
	}

	grpcServer, err := grpcPresentation.NewServer(handler, logger, jwtSvc, grpcPresentation.ServerConfig{
		TLSCertFile: cfg.TLS.CertFile,
		TLSKeyFile:  cfg.TLS.KeyFile,
		Reflection:  os.Getenv("GRPC_REFLECTION") == "true",
	})
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	rest.NewHealthHandler(cfg.ServiceName, map[string]rest.ReadinessCheck{
		"postgres": func(ctx context.Context) error { return pkgpostgres.HealthCheck(ctx, pool) },
		"redis":    func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
	}, logger).RegisterRoutes(mux, metricsHandler)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return grpcServer.Serve(cfg.GRPCAddr())
	})
	g.Go(func() error {
		logger.Info("HTTP server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		grpcServer.GracefulStop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer shutdownCancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	logger.Info("loan-service stopped")
	return err
}
