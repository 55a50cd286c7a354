package integration_test

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	adaptconfig "github.com/sweetshop/api/internal/adapters/config"
	adaptmongo "github.com/sweetshop/api/internal/adapters/mongo"
	"github.com/sweetshop/api/internal/adapters/mongo/repository"
	"github.com/sweetshop/api/internal/adapters/outbox"
	adaptrabbitmq "github.com/sweetshop/api/internal/adapters/rabbitmq"
	adaptredis "github.com/sweetshop/api/internal/adapters/redis"
	"github.com/sweetshop/api/internal/adapters/token"
	"github.com/sweetshop/api/internal/core/domain"
	"github.com/sweetshop/api/internal/core/dto"
	"github.com/sweetshop/api/internal/core/service"
	"github.com/sweetshop/api/internal/core/serviceerrors"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	tcrabbit "github.com/testcontainers/testcontainers-go/modules/rabbitmq"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	mongoClient  *mongo.Client
	redisClient  *adaptredis.Client
	broker       *adaptrabbitmq.RabbitMQAdapter
	amqpEndpoint string
)

func TestMain(m *testing.M) {
	ctx := context.Background()

	mongoContainer, err := mongodb.Run(ctx, "mongo:7", mongodb.WithReplicaSet("rs0"))
	if err != nil {
		log.Fatalf("mongodb container: %v", err)
	}
	mongoEndpoint, err := mongoContainer.ConnectionString(ctx)
	if err != nil {
		log.Fatalf("mongodb connection string: %v", err)
	}
	mongoClient, err = mongo.Connect(ctx, options.Client().
		ApplyURI(mongoEndpoint).
		SetDirect(true).
		SetConnectTimeout(30*time.Second).
		SetServerSelectionTimeout(30*time.Second))
	if err != nil {
		log.Fatalf("mongodb connect: %v", err)
	}
	if err := mongoClient.Ping(ctx, nil); err != nil {
		log.Fatalf("mongodb ping: %v", err)
	}

	// --- Redis ---
	redisContainer, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		log.Fatalf("redis container: %v", err)
	}
	redisEndpoint, err := redisContainer.ConnectionString(ctx)
	if err != nil {
		log.Fatalf("redis connection string: %v", err)
	}
	redisClient, err = adaptredis.NewConnection(adaptconfig.RedisConfig{URL: redisEndpoint})
	if err != nil {
		log.Fatalf("redis connect: %v", err)
	}

	// --- RabbitMQ ---
	rabbitContainer, err := tcrabbit.Run(ctx, "rabbitmq:3-management-alpine")
	if err != nil {
		log.Fatalf("rabbitmq container: %v", err)
	}
	amqpEndpoint, err = rabbitContainer.AmqpURL(ctx)
	if err != nil {
		log.Fatalf("rabbitmq amqp url: %v", err)
	}
	broker, err = adaptrabbitmq.NewRabbitMQAdapter(adaptconfig.RabbitMQConfig{
		URL:        amqpEndpoint,
		MaxRetries: 2,
		RetryDelay: 100 * time.Millisecond,
		ExchangeConfigs: []adaptconfig.ExchangeConfig{
			{Name: "exchange.sweet", Type: "direct", Durable: true, AutoDelete: false},
		},
	})
	if err != nil {
		log.Fatalf("rabbitmq adapter: %v", err)
	}

	code := m.Run()

	_ = broker.Close()
	_ = redisClient.Close()
	_ = mongoClient.Disconnect(ctx)
	_ = mongoContainer.Terminate(ctx)
	_ = redisContainer.Terminate(ctx)
	_ = rabbitContainer.Terminate(ctx)

	os.Exit(code)
}

func setupConsumer(t *testing.T, routingKey string) <-chan amqp.Delivery {
	t.Helper()

	conn, err := amqp.Dial(amqpEndpoint)
	if err != nil {
		t.Fatalf("consumer dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	ch, err := conn.Channel()
	if err != nil {
		t.Fatalf("consumer channel: %v", err)
	}
	t.Cleanup(func() { ch.Close() })

	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		t.Fatalf("queue declare: %v", err)
	}
	if err := ch.QueueBind(q.Name, routingKey, "exchange.sweet", false, nil); err != nil {
		t.Fatalf("queue bind: %v", err)
	}

	msgs, err := ch.Consume(q.Name, "", true, false, false, false, nil)
	if err != nil {
		t.Fatalf("consume: %v", err)
	}
	return msgs
}

func buildServices(t *testing.T, dbName string) (
	*service.SweetService,
	*service.AuthService,
	*outbox.Handler,
) {
	t.Helper()
	db := mongoClient.Database(dbName)

	outboxRepo := repository.NewOutboxRepository(db)
	sweetRepo := repository.NewSweetRepository(db, outboxRepo)
	userRepo := repository.NewUserRepository(db)
	txManager := adaptmongo.NewTransactionManager(mongoClient)

	sweetCache := adaptredis.NewCache[domain.Sweet](redisClient, dbName+"-sweet")
	idempotencyCache := adaptredis.NewCache[service.IdempotencyEntry[domain.Sweet]](redisClient, dbName+"-idemp")
	idempotencyService := service.NewIdempotencyService(idempotencyCache, 5*time.Minute, 500*time.Millisecond, 10*time.Second)

	sweetService := service.NewSweetService(sweetRepo, sweetCache, idempotencyService, txManager)

	tokens, err := token.NewJWTIssuer(adaptconfig.JWTConfig{Secret: "integration-secret", TTL: time.Hour})
	if err != nil {
		t.Fatalf("token issuer: %v", err)
	}
	authService := service.NewAuthService(userRepo, tokens)

	outboxHandler := outbox.NewHandler(outboxRepo, broker, adaptconfig.OutboxConfig{
		Interval:  100 * time.Millisecond,
		BatchSize: 50,
	})

	return sweetService, authService, outboxHandler
}

func TestIntegration_PurchaseLifecycle(t *testing.T) {
	msgs := setupConsumer(t, "sweet.purchased")

	sweetSvc, _, outboxHandler := buildServices(t, "int_lifecycle")
	ctx := context.Background()

	handlerCtx, cancelHandler := context.WithCancel(ctx)
	defer cancelHandler()
	go outboxHandler.Start(handlerCtx)

	sweet, err := sweetSvc.CreateSweet(ctx, &dto.CreateSweetRequest{
		Name: "Gummy Bears", Category: "Gummies", Price: 250, Quantity: 5,
	})
	if err != nil {
		t.Fatalf("create sweet: %v", err)
	}

	after, err := sweetSvc.Purchase(ctx, "", sweet.ID, 3, "")
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if after.Quantity != 2 {
		t.Fatalf("expected quantity 2 after purchase, got %d", after.Quantity)
	}

	select {
	case msg := <-msgs:
		var event domain.SweetPurchasedEvent
		if err := json.Unmarshal(msg.Body, &event); err != nil {
			t.Fatalf("unmarshal event: %v", err)
		}
		if event.SweetID != sweet.ID {
			t.Fatalf("event sweet_id: expected %s, got %s", sweet.ID, event.SweetID)
		}
		if event.Quantity != 3 {
			t.Fatalf("event quantity: expected 3, got %d", event.Quantity)
		}
		if event.Remaining != 2 {
			t.Fatalf("event remaining: expected 2, got %d", event.Remaining)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for sweet.purchased event")
	}

	_, err = sweetSvc.Purchase(ctx, "", sweet.ID, 3, "")
	if !serviceerrors.IsOfKind(err, serviceerrors.KindInsufficientStock) {
		t.Fatalf("expected KindInsufficientStock, got %v", err)
	}

	unchanged, _ := sweetSvc.GetByID(ctx, sweet.ID)
	if unchanged.Quantity != 2 {
		t.Fatalf("expected quantity 2 after rejected purchase, got %d", unchanged.Quantity)
	}

	restocked, err := sweetSvc.Restock(ctx, sweet.ID, 10)
	if err != nil {
		t.Fatalf("restock: %v", err)
	}
	if restocked.Quantity != 12 {
		t.Fatalf("expected quantity 12 after restock, got %d", restocked.Quantity)
	}
}

func TestIntegration_RestockEvent(t *testing.T) {
	msgs := setupConsumer(t, "sweet.restocked")

	sweetSvc, _, outboxHandler := buildServices(t, "int_restock_event")
	ctx := context.Background()

	handlerCtx, cancelHandler := context.WithCancel(ctx)
	defer cancelHandler()
	go outboxHandler.Start(handlerCtx)

	sweet, err := sweetSvc.CreateSweet(ctx, &dto.CreateSweetRequest{
		Name: "Toffee Mix", Category: "Toffee", Price: 400, Quantity: 2,
	})
	if err != nil {
		t.Fatalf("create sweet: %v", err)
	}

	if _, err := sweetSvc.Restock(ctx, sweet.ID, 8); err != nil {
		t.Fatalf("restock: %v", err)
	}

	select {
	case msg := <-msgs:
		var event domain.SweetRestockedEvent
		if err := json.Unmarshal(msg.Body, &event); err != nil {
			t.Fatalf("unmarshal event: %v", err)
		}
		if event.SweetID != sweet.ID {
			t.Fatalf("event sweet_id: expected %s, got %s", sweet.ID, event.SweetID)
		}
		if event.Quantity != 8 || event.NewTotal != 10 {
			t.Fatalf("expected quantity 8 / new total 10, got %d / %d", event.Quantity, event.NewTotal)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for sweet.restocked event")
	}
}

func TestIntegration_Purchase_Idempotency(t *testing.T) {
	sweetSvc, _, _ := buildServices(t, "int_idempotency")
	ctx := context.Background()

	sweet, err := sweetSvc.CreateSweet(ctx, &dto.CreateSweetRequest{
		Name: "Idemp Drops", Category: "Drops", Price: 100, Quantity: 100,
	})
	if err != nil {
		t.Fatalf("create sweet: %v", err)
	}

	first, err := sweetSvc.Purchase(ctx, "idemp-key-1", sweet.ID, 2, "")
	if err != nil {
		t.Fatalf("first purchase: %v", err)
	}

	second, err := sweetSvc.Purchase(ctx, "idemp-key-1", sweet.ID, 2, "")
	if err != nil {
		t.Fatalf("second purchase: %v", err)
	}
	if second.Quantity != first.Quantity {
		t.Fatalf("replay should return stored result: %d vs %d", first.Quantity, second.Quantity)
	}

	// Stock deducted only once
	current, _ := sweetSvc.GetByID(ctx, sweet.ID)
	if current.Quantity != 98 {
		t.Fatalf("expected quantity 98 (single deduction), got %d", current.Quantity)
	}
}

func TestIntegration_ConcurrentPurchases(t *testing.T) {
	sweetSvc, _, _ := buildServices(t, "int_concurrent")
	ctx := context.Background()

	sweet, err := sweetSvc.CreateSweet(ctx, &dto.CreateSweetRequest{
		Name: "Contended Caramels", Category: "Caramel", Price: 300, Quantity: 10,
	})
	if err != nil {
		t.Fatalf("create sweet: %v", err)
	}

	const buyers = 2
	errs := make([]error, buyers)
	var wg sync.WaitGroup
	wg.Add(buyers)
	for i := 0; i < buyers; i++ {
		go func(i int) {
			defer wg.Done()
			_, errs[i] = sweetSvc.Purchase(ctx, "", sweet.ID, 6, "")
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else if !serviceerrors.IsOfKind(err, serviceerrors.KindInsufficientStock) {
			t.Fatalf("expected KindInsufficientStock for loser, got %v", err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("expected exactly 1 purchase to succeed, got %d", succeeded)
	}

	final, _ := sweetSvc.GetByID(ctx, sweet.ID)
	if final.Quantity != 4 {
		t.Fatalf("expected quantity 4, got %d", final.Quantity)
	}
}

func TestIntegration_AuthFlow(t *testing.T) {
	_, authSvc, _ := buildServices(t, "int_auth")
	ctx := context.Background()

	registerToken, user, err := authSvc.Register(ctx, &dto.RegisterRequest{
		Name: "Alice", Email: "alice@example.com", Password: "secret123",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if registerToken == "" {
		t.Fatal("expected token on register")
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected role USER, got %q", user.Role)
	}

	_, _, err = authSvc.Register(ctx, &dto.RegisterRequest{
		Name: "Alice Again", Email: "alice@example.com", Password: "secret456",
	})
	if !serviceerrors.IsOfKind(err, serviceerrors.KindConflict) {
		t.Fatalf("expected KindConflict for duplicate email, got %v", err)
	}

	loginToken, logged, err := authSvc.Login(ctx, &dto.LoginRequest{
		Email: "alice@example.com", Password: "secret123",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if loginToken == "" {
		t.Fatal("expected token on login")
	}
	if logged.ID != user.ID {
		t.Fatalf("expected user %s, got %s", user.ID, logged.ID)
	}

	_, _, err = authSvc.Login(ctx, &dto.LoginRequest{
		Email: "alice@example.com", Password: "wrong",
	})
	if !serviceerrors.IsOfKind(err, serviceerrors.KindUnauthorized) {
		t.Fatalf("expected KindUnauthorized for wrong password, got %v", err)
	}
}

func TestIntegration_GetByID_Cache(t *testing.T) {
	sweetSvc, _, _ := buildServices(t, "int_cache")
	ctx := context.Background()

	sweet, err := sweetSvc.CreateSweet(ctx, &dto.CreateSweetRequest{
		Name: "Cached Mints", Category: "Mints", Price: 150, Quantity: 20,
	})
	if err != nil {
		t.Fatalf("create sweet: %v", err)
	}

	f1, err := sweetSvc.GetByID(ctx, sweet.ID)
	if err != nil {
		t.Fatalf("first get: %v", err)
	}

	// Second fetch → cache hit
	f2, err := sweetSvc.GetByID(ctx, sweet.ID)
	if err != nil {
		t.Fatalf("second get: %v", err)
	}

	if f1.ID != f2.ID || f1.Quantity != f2.Quantity || f1.Price != f2.Price {
		t.Fatal("cached sweet should match original")
	}
}
