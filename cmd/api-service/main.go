package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/handyconnect/handyconnect-be/internal/api/cache"
	"github.com/handyconnect/handyconnect-be/internal/api/handler"
	"github.com/handyconnect/handyconnect-be/internal/api/router"
	"github.com/handyconnect/handyconnect-be/internal/api/service"
	"github.com/handyconnect/handyconnect-be/internal/api/storage"
	"github.com/handyconnect/handyconnect-be/internal/config"
	"github.com/handyconnect/handyconnect-be/internal/notify"
	"github.com/handyconnect/handyconnect-be/shared/logger"
	"github.com/handyconnect/handyconnect-be/shared/postgresql"
	"github.com/handyconnect/handyconnect-be/shared/rabbitmq"
	"github.com/handyconnect/handyconnect-be/shared/redis"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables or flags")
	}

	// Parse command-line flags
	defaultConfigPath := os.Getenv("API_SERVICE_CONFIG_PATH")
	if defaultConfigPath == "" {
		defaultConfigPath = "configs/api-service/config.yaml"
	}
	configPath := flag.String("config", defaultConfigPath, "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.ValidateAPIConfig(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Initialize logger
	appLogger, err := initLogger(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger.Info("Starting API service",
		slog.String("app", cfg.App.Name),
		slog.String("version", cfg.App.Version),
		slog.String("environment", cfg.App.Environment),
	)

	// Initialize PostgreSQL client and apply migrations
	dbClient, err := initPostgreSQL(&cfg.Database, appLogger.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := dbClient.MigrateUp(); err != nil {
		dbClient.Close()
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	appLogger.Info("Database connection established")

	// Initialize the notifier. Without a broker, notifications go to the log.
	var notifier notify.Notifier = notify.NewLogNotifier(appLogger.Logger)
	var rabbitClient *rabbitmq.Client
	if cfg.RabbitMQ.Enabled {
		rabbitClient, err = initRabbitMQ(&cfg.RabbitMQ, appLogger.Logger)
		if err != nil {
			dbClient.Close()
			return fmt.Errorf("failed to initialize RabbitMQ: %w", err)
		}
		notifier = notify.NewAMQPNotifier(rabbitClient, appLogger.Logger)

		appLogger.Info("RabbitMQ connection established")
	}

	// Initialize the optional job status cache
	var statusCache service.StatusCache
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = redis.NewClient(redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, appLogger.Logger)
		if err != nil {
			if rabbitClient != nil {
				rabbitClient.Close()
			}
			dbClient.Close()
			return fmt.Errorf("failed to initialize Redis: %w", err)
		}
		statusCache = cache.NewJobStatusCache(redisClient, appLogger.Logger)
	}

	// Wire storages and services
	jobs := storage.NewJobStorage(dbClient)
	payments := storage.NewPaymentStorage(dbClient)
	providers := storage.NewProviderStorage(dbClient)
	users := storage.NewUserStorage(dbClient)
	reviews := storage.NewReviewStorage(dbClient)

	paymentService := service.NewPaymentService(service.PaymentServiceDeps{
		Logger:          appLogger.Logger,
		Payments:        payments,
		Jobs:            jobs,
		Notifier:        notifier,
		Cache:           statusCache,
		CheckoutBaseURL: cfg.Payments.CheckoutBaseURL,
	})
	jobService := service.NewJobService(service.JobServiceDeps{
		Logger:    appLogger.Logger,
		Jobs:      jobs,
		Providers: providers,
		Users:     users,
		Reviews:   reviews,
		Cache:     statusCache,
		Payments:  paymentService,
		Notifier:  notifier,
	})
	reviewService := service.NewReviewService(appLogger.Logger, reviews, jobs)
	providerService := service.NewProviderService(appLogger.Logger, providers)

	// Initialize router
	deps := &handler.Dependencies{
		Logger:    appLogger.Logger,
		Jobs:      jobService,
		Payments:  paymentService,
		Providers: providerService,
		Reviews:   reviewService,
		DB:        dbClient,
	}
	if rabbitClient != nil {
		deps.Broker = rabbitClient
	}
	r := initRouter(cfg.App.Environment, deps)

	// Create HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed to start",
				slog.Any("error", err),
			)
			os.Exit(1)
		}
	}()

	appLogger.Info("API service is running",
		slog.String("address", addr),
	)

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)

	cleanup := func() {
		cancel()
		if redisClient != nil {
			redisClient.Close()
		}
		if rabbitClient != nil {
			rabbitClient.Close()
		}
		if dbClient != nil {
			dbClient.Close()
		}
	}
	defer cleanup()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown",
			slog.Any("error", err),
		)
		return err
	}

	appLogger.Info("Server shutdown complete")
	return nil
}

// initLogger initializes and configures the application logger
func initLogger(cfg *config.LoggingConfig) (*logger.Logger, error) {
	loggerCfg := &logger.Config{
		Level:        cfg.Level,
		Format:       cfg.Format,
		Output:       cfg.Output,
		EnableSource: cfg.EnableCaller,
		TimeFormat:   time.RFC3339,
	}

	return logger.New(loggerCfg)
}

// initPostgreSQL initializes the PostgreSQL database client
func initPostgreSQL(cfg *config.DatabaseConfig, logger *slog.Logger) (*postgresql.Client, error) {
	dbConfig := &postgresql.Config{
		Host:            cfg.Host,
		Port:            cfg.Port,
		User:            cfg.User,
		Password:        cfg.Password,
		Database:        cfg.Database,
		SSLMode:         cfg.SSLMode,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.ConnMaxIdleTime,
		MigrationsPath:  cfg.MigrationsPath,
	}

	return postgresql.NewClient(dbConfig, logger)
}

// initRabbitMQ initializes the RabbitMQ client
func initRabbitMQ(cfg *config.RabbitMQConfig, logger *slog.Logger) (*rabbitmq.Client, error) {
	rabbitConfig := &rabbitmq.Config{
		Host:               cfg.Host,
		Port:               cfg.Port,
		User:               cfg.User,
		Password:           cfg.Password,
		VHost:              cfg.VHost,
		ExchangeName:       cfg.Exchange.Name,
		ExchangeType:       cfg.Exchange.Type,
		ExchangeDurable:    cfg.Exchange.Durable,
		ExchangeAutoDelete: cfg.Exchange.AutoDelete,
		QueueName:          cfg.Queue.Name,
		QueueDurable:       cfg.Queue.Durable,
		QueueAutoDelete:    cfg.Queue.AutoDelete,
		QueueExclusive:     cfg.Queue.Exclusive,
		RoutingKey:         cfg.RoutingKey,
		RetryAttempts:      cfg.Connection.RetryAttempts,
		RetryInterval:      cfg.Connection.RetryInterval,
		Heartbeat:          cfg.Connection.Heartbeat,
		ConnectionTimeout:  cfg.Connection.ConnectionTimeout,
		PublishRetries:     cfg.Publish.RetryAttempts,
		PublishRetryDelay:  cfg.Publish.RetryInterval,
		PrefetchCount:      cfg.Consumer.PrefetchCount,
	}

	return rabbitmq.NewClient(rabbitConfig, logger)
}

// initRouter initializes the Gin router with all routes and middleware
func initRouter(environment string, deps *handler.Dependencies) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	return router.SetupRouter(deps)
}
