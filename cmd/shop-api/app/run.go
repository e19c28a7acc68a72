package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/MUHMMADSALEH/E-Commeerce-app/configs"
	"github.com/MUHMMADSALEH/E-Commeerce-app/internal/adapter/cache"
	"github.com/MUHMMADSALEH/E-Commeerce-app/internal/adapter/http"
	"github.com/MUHMMADSALEH/E-Commeerce-app/internal/adapter/http/middleware"
	"github.com/MUHMMADSALEH/E-Commeerce-app/internal/adapter/kafka"
	"github.com/MUHMMADSALEH/E-Commeerce-app/internal/adapter/observ"
	"github.com/MUHMMADSALEH/E-Commeerce-app/internal/adapter/queue"
	"github.com/MUHMMADSALEH/E-Commeerce-app/internal/adapter/repo"
	"github.com/MUHMMADSALEH/E-Commeerce-app/internal/logging"
	"github.com/MUHMMADSALEH/E-Commeerce-app/internal/security"
	"github.com/MUHMMADSALEH/E-Commeerce-app/internal/usecase"
	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

type App struct {
	Router *gin.Engine
}

// InitWithConfig wires stores, brokers and HTTP. Background consumers stop when ctx is done.
func InitWithConfig(ctx context.Context, cfg configs.Config) (*App, func(), error) {
	log := logging.New("bootstrap")
	log.Info("shop-api: Starting up...")

	tolerance, err := cfg.PriceTolerance()
	if err != nil {
		return nil, nil, err
	}

	// init mongo
	client, err := repo.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.ConnectTimeout)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo: %w", err)
	}
	db := client.Database(cfg.Mongo.Database)
	if err := repo.EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo indexes: %w", err)
	}

	productRepo := repo.NewMongoProductRepo(db)
	orderRepo := repo.NewMongoOrderRepo(db)
	accountRepo := repo.NewMongoAccountRepo(db)

	if cfg.Catalog.Seed {
		n, err := repo.SeedIfEmpty(ctx, productRepo)
		if err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, err
		}
		if n > 0 {
			log.Info("seeded catalog", "products", n)
		}
	}

	// init redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("redis: %w", err)
	}
	idem := cache.NewRedisIdempotencyStore(rdb, cfg.Idempotency.TTL)
	redisCache := cache.NewRedisCache(rdb, cfg.Cache.TTL)

	metrics := observ.NewOrderMetrics(nil)

	cleanups := []func(){
		func() { _ = client.Disconnect(context.Background()) },
		func() { _ = rdb.Close() },
	}
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	// init rabbitmq; the API keeps serving without events when the broker is down
	var events usecase.EventPublisher
	conn, producer, err := setupRabbit(cfg, orderRepo, tolerance, metrics)
	if err != nil {
		log.Warn("rabbitmq unavailable, order events disabled", "err", err)
	} else {
		events = producer
		cleanups = append(cleanups, func() { _ = conn.Close() })
	}

	// use cases
	hasher := security.NewBcryptHasher(cfg.Security.BcryptCost)
	tokens := security.NewTokenManager(cfg.Security.JWTSecret, cfg.Security.Issuer, cfg.Security.Audience, cfg.Security.TTL)
	accountsUC := usecase.NewAccounts(accountRepo, hasher, tokens, cfg.Security.AdminCode)
	catalogUC := usecase.NewCatalog(productRepo, cfg.Catalog.DefaultLimit, cfg.Catalog.MaxLimit)
	submitUC := usecase.NewSubmitOrder(productRepo, orderRepo, idem, events, redisCache, metrics, tolerance)
	statusUC := usecase.NewUpdateOrderStatus(orderRepo, redisCache, events)
	queriesUC := usecase.NewOrderQueries(orderRepo, redisCache)

	// register kafka-listener
	if cfg.Kafka.Enabled {
		closeKafka, err := setupKafkaListener(ctx, cfg, statusUC)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("kafka: %w", err)
		}
		cleanups = append(cleanups, closeKafka)
	}

	// init handlers + routers + middleware
	router := http.NewRouter(http.Handlers{
		Accounts: http.NewAccountHandler(accountsUC),
		Catalog:  http.NewCatalogHandler(catalogUC),
		Orders:   http.NewOrderHandler(submitUC, statusUC, queriesUC),
	}, middleware.NewAuthz(tokens, accountsUC), logging.New("http"), cfg.HTTP.RequestTimeout)

	return &App{Router: router}, cleanup, nil
}

// setupRabbit opens one channel for publishing and one for the audit consumer.
func setupRabbit(cfg configs.Config, orders *repo.MongoOrderRepo, tolerance decimal.Decimal,
	metrics *observ.OrderMetrics) (*amqp.Connection, *queue.RabbitProducer, error) {
	if cfg.Rabbit.URL == "" {
		return nil, nil, errors.New("rabbitmq.url not set")
	}
	conn, err := amqp.Dial(cfg.Rabbit.URL)
	if err != nil {
		return nil, nil, err
	}

	pubCh, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	producer, err := queue.NewRabbitProducer(pubCh, cfg.Rabbit.Exchange)
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}

	subCh, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	audit := queue.NewOrderAuditHandler(orders, tolerance, metrics)
	router := queue.NewRouter(subCh, queue.WithPrefetch(cfg.Rabbit.Prefetch))
	router.Register(queue.AuditQueue, queue.JSONHandler[usecase.OrderPlacedMsg]{
		Validate:   queue.ValidatePlaced,
		HandleFunc: audit.HandlePlaced,
	})
	if err := router.Start(); err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	return conn, producer, nil
}

func setupKafkaListener(ctx context.Context, cfg configs.Config, statusUC *usecase.UpdateOrderStatus) (func(), error) {
	grp, err := kafka.NewGroup(kafka.GroupConfig{
		Brokers:       cfg.Kafka.Brokers,
		GroupID:       cfg.Kafka.GroupID,
		ClientID:      cfg.App.Name,
		Version:       cfg.Kafka.Version,
		InitialOffset: cfg.Kafka.InitialOffset,
	})
	if err != nil {
		return nil, err
	}

	h := kafka.NewFulfillmentStatusHandler(statusUC)
	consumer := kafka.NewConsumer(grp, []string{cfg.Kafka.FulfillmentTopic}, h.Handle)

	log := logging.New("kafka")
	go func() {
		if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("fulfillment consumer stopped", "err", err)
		}
	}()
	return func() { _ = grp.Close() }, nil
}
