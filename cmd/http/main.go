package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/sweetshop/api/docs"
	"github.com/sweetshop/api/internal/adapters/config"
	"github.com/sweetshop/api/internal/adapters/http"
	"github.com/sweetshop/api/internal/adapters/http/controllers"
	"github.com/sweetshop/api/internal/adapters/mongo"
	"github.com/sweetshop/api/internal/adapters/mongo/repository"
	"github.com/sweetshop/api/internal/adapters/outbox"
	"github.com/sweetshop/api/internal/adapters/rabbitmq"
	"github.com/sweetshop/api/internal/adapters/redis"
	"github.com/sweetshop/api/internal/adapters/token"
	"github.com/sweetshop/api/internal/core/domain"
	"github.com/sweetshop/api/internal/core/logger"
	"github.com/sweetshop/api/internal/core/service"
)

// @title       Sweet Shop API
// @version     1.0
// @description Sweet shop inventory and purchasing API

// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization

// @host     localhost:8080
// @BasePath /

//go:generate swag init -d ../.. -g cmd/http/main.go -o ../../docs --parseInternal

func main() {
	// initialize config and logger
	cfg := config.NewConfig()
	if err := logger.Initialize(cfg.Logger.Endpoint, cfg.Logger.ServiceName, cfg.Logger.IsProduction); err != nil {
		// logger not available yet, fall back to stderr
		fmt.Println("failed to initialize logger: " + err.Error())
		os.Exit(1)
	}

	// cancellable context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// initialize database connection
	mongoClient, err := mongo.NewConnection(cfg.Mongo)
	if err != nil {
		logger.Fatal(ctx, "Failed to connect to MongoDB", err, nil)
	}
	defer mongo.Disconnect(mongoClient)
	logger.Info(ctx, "Connected to MongoDB", map[string]any{"database": cfg.Mongo.Database})

	// initialize redis connection
	redisClient, err := redis.NewConnection(cfg.Redis)
	if err != nil {
		logger.Fatal(ctx, "Failed to connect to Redis", err, nil)
	}
	defer redisClient.Close()
	logger.Info(ctx, "Connected to Redis", nil)

	// initialize rabbitmq connection
	broker, err := rabbitmq.NewRabbitMQAdapter(cfg.RabbitMQ)
	if err != nil {
		logger.Fatal(ctx, "Failed to connect to RabbitMQ", err, nil)
	}
	defer broker.Close()
	logger.Info(ctx, "Connected to RabbitMQ", nil)

	// token issuer
	tokens, err := token.NewJWTIssuer(cfg.JWT)
	if err != nil {
		logger.Fatal(ctx, "Failed to initialize token issuer", err, nil)
	}

	// initialize database and repos
	database := mongoClient.Database(cfg.Mongo.Database)
	outboxRepository := repository.NewOutboxRepository(database)
	sweetRepository := repository.NewSweetRepository(database, outboxRepository)
	userRepository := repository.NewUserRepository(database)
	txManager := mongo.NewTransactionManager(mongoClient)

	// caches and rate limiter
	sweetCache := redis.NewCache[domain.Sweet](redisClient, "sweet-cache")
	idempotencyCache := redis.NewCache[service.IdempotencyEntry[domain.Sweet]](redisClient, "idempotency-cache")
	rateLimiter := redis.NewRateLimiter(redisClient)

	// outbox handler (uses cancellable context)
	outboxHandler := outbox.NewHandler(outboxRepository, broker, cfg.Outbox)
	go outboxHandler.Start(ctx)
	logger.Info(ctx, "Outbox handler started", map[string]any{"interval": cfg.Outbox.Interval.String(), "batch_size": cfg.Outbox.BatchSize})

	// services
	idempotencyService := service.NewIdempotencyService(idempotencyCache, 15*time.Minute, 1*time.Second, 10*time.Second)
	sweetService := service.NewSweetService(sweetRepository, sweetCache, idempotencyService, txManager)
	authService := service.NewAuthService(userRepository, tokens)

	// seed the admin account
	if err := authService.EnsureAdmin(ctx, cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		logger.Fatal(ctx, "Failed to seed admin account", err, nil)
	}

	// controllers
	sweetController := controllers.NewSweetController(sweetService)
	authController := controllers.NewAuthController(authService)
	healthController := controllers.NewHealthController([]controllers.HealthChecker{
		{Name: "mongodb", Check: func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) }},
		{Name: "redis", Check: func(ctx context.Context) error { return redisClient.Ping(ctx) }},
		{Name: "rabbitmq", Check: func(ctx context.Context) error { return broker.HealthCheck() }},
	})

	// router
	router := http.NewRouter(healthController, authController, sweetController, tokens, rateLimiter)

	// graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info(ctx, "Received shutdown signal", map[string]interface{}{"signal": sig.String()})
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := logger.Shutdown(shutdownCtx); err != nil {
			fmt.Println("logger shutdown error: " + err.Error())
		}
	}()

	logger.Info(ctx, "Starting HTTP server", map[string]any{"addr": cfg.HTTP.BindInterface + ":" + cfg.HTTP.Port})
	err = router.ListenAndServe(ctx, cfg.HTTP)
	if err != nil {
		logger.Fatal(ctx, "Failed to start HTTP server", err, nil)
	}
}
