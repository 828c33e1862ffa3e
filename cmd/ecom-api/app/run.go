package app

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/Dpak2002/go-ecommerce-api/configs"
	"github.com/Dpak2002/go-ecommerce-api/internal/adapter/cache"
	httpadapter "github.com/Dpak2002/go-ecommerce-api/internal/adapter/http"
	"github.com/Dpak2002/go-ecommerce-api/internal/adapter/http/middleware"
	"github.com/Dpak2002/go-ecommerce-api/internal/adapter/kafka"
	"github.com/Dpak2002/go-ecommerce-api/internal/adapter/repo"
	"github.com/Dpak2002/go-ecommerce-api/internal/logging"
	"github.com/Dpak2002/go-ecommerce-api/internal/notify"
	"github.com/Dpak2002/go-ecommerce-api/internal/usecase"
	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

type App struct {
	Router *gin.Engine
}

// InitWithConfig wires the whole application: stores, cache, hub,
// services, handlers. Collaborators are injected explicitly; nothing
// reaches for process globals except the logger.
func InitWithConfig(cfg configs.Config) (*App, func(), error) {
	logging.Init(cfg.App.Name, cfg.App.LogFile)
	log := logging.New("app")

	// database
	db, err := sql.Open("mysql", cfg.MySQL.DSN)
	if err != nil {
		return nil, nil, err
	}
	db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)
	db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, nil, err
	}

	// redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, nil, err
	}
	redisCache := cache.NewRedis(rdb, cfg.Cache.TTL, logging.New("cache"))

	// notification hub, optionally mirrored onto rabbitmq
	var mirrors []notify.Mirror
	var amqpConn *amqp.Connection
	if cfg.Rabbit.URL != "" {
		amqpConn, err = amqp.Dial(cfg.Rabbit.URL)
		if err != nil {
			return nil, nil, err
		}
		ch, err := amqpConn.Channel()
		if err != nil {
			return nil, nil, err
		}
		mirror, err := notify.NewRabbitMirror(ch)
		if err != nil {
			return nil, nil, err
		}
		mirrors = append(mirrors, mirror)
	}
	hub := notify.NewHub(logging.New("notify"), cfg.Notify.QueueSize, mirrors...)

	hubCtx, stopHub := context.WithCancel(context.Background())
	go hub.Run(hubCtx)

	// stores
	productRepo := repo.NewMySQLProductRepo(db)
	categoryRepo := repo.NewMySQLCategoryRepo(db)
	cartRepo := repo.NewMySQLCartRepo(db)
	orderRepo := repo.NewMySQLOrderRepo(db)

	// services
	cartSvc := usecase.NewCartService(cartRepo, productRepo)
	orderSvc := usecase.NewOrderService(orderRepo, cartRepo, redisCache, hub)
	catalogSvc := usecase.NewCatalogService(productRepo, categoryRepo, redisCache)

	// fulfillment listener
	if len(cfg.Kafka.Brokers) > 0 {
		if err := startFulfillmentListener(hubCtx, cfg, orderSvc); err != nil {
			stopHub()
			return nil, nil, err
		}
	}

	// http
	authz := middleware.NewAuthz(cfg)
	router := httpadapter.NewRouter(httpadapter.Handlers{
		Cart:    httpadapter.NewCartHandler(cartSvc),
		Order:   httpadapter.NewOrderHandler(orderSvc, redisCache),
		Catalog: httpadapter.NewCatalogHandler(catalogSvc, redisCache),
		Cache:   httpadapter.NewCacheHandler(redisCache),
		WS:      httpadapter.NewWSHandler(hub),
	}, authz)

	cleanup := func() {
		stopHub()
		_ = db.Close()
		_ = rdb.Close()
		if amqpConn != nil {
			_ = amqpConn.Close()
		}
	}

	log.Info("ecom-api wired", "rabbit", cfg.Rabbit.URL != "", "kafka", len(cfg.Kafka.Brokers) > 0)
	return &App{Router: router}, cleanup, nil
}

// NewHTTPServer builds the listener with the configured timeouts; the
// router alone would serve with no deadlines at all.
func NewHTTPServer(cfg configs.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:         cfg.App.HTTPAddr,
		Handler:      h,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}
}

func startFulfillmentListener(ctx context.Context, cfg configs.Config, orders *usecase.OrderService) error {
	grp, err := kafka.NewGroup(cfg.Kafka.Brokers, cfg.Kafka.GroupID)
	if err != nil {
		return err
	}
	h := kafka.NewFulfillmentHandler(orders, logging.New("kafka"))
	consumer := kafka.NewConsumer(grp, []string{cfg.Kafka.Topic}, h.Handle, logging.New("kafka"))

	go func() {
		if err := consumer.Start(ctx); err != nil && ctx.Err() == nil {
			logging.New("kafka").Error("fulfillment consumer stopped", "error", err)
		}
	}()
	return nil
}
