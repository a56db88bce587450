package main

import (
	"context"
	"net/http"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	cartapp "github.com/stocktech/marketplace/application/cart"
	orderapp "github.com/stocktech/marketplace/application/order"
	returnapp "github.com/stocktech/marketplace/application/returns"
	stockapp "github.com/stocktech/marketplace/application/stock"
	"github.com/stocktech/marketplace/cmd/config"
	redisclient "github.com/stocktech/marketplace/cmd/redis"
	_ "github.com/stocktech/marketplace/docs"
	addressRepo "github.com/stocktech/marketplace/repository/address"
	cartRepo "github.com/stocktech/marketplace/repository/cart"
	orderRepo "github.com/stocktech/marketplace/repository/order"
	productRepo "github.com/stocktech/marketplace/repository/product"
	redisRepo "github.com/stocktech/marketplace/repository/redis"
	returnRepo "github.com/stocktech/marketplace/repository/returns"
	stockRepo "github.com/stocktech/marketplace/repository/stock"
	transactionRepo "github.com/stocktech/marketplace/repository/transaction"
	txRepo "github.com/stocktech/marketplace/repository/tx"
	"github.com/stocktech/marketplace/thirdparty/avadmin"
	"github.com/stocktech/marketplace/thirdparty/cep"
	"github.com/stocktech/marketplace/thirdparty/rabbitmq"
	"github.com/stocktech/marketplace/transport"
	"github.com/stocktech/marketplace/utils/logger"
	"go.uber.org/zap"
)

// @title MARKETPLACE API
// @version 1.0
// @description Multi-seller marketplace order and inventory API Documentation
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables
	cfg := config.Load()

	// Initialize global logger
	if err := logger.Init(cfg.Environment); err != nil {
		// fallback to standard log if zap init fails
		panic(err)
	}
	defer logger.Close()

	logger.Info("Starting server", zap.String("env", cfg.Environment))

	// Connect to database
	db, err := sqlx.Connect("mysql", cfg.GetDSN())
	if err != nil {
		logger.Fatal("err connect db", zap.Error(err))
	}

	// Initialize Redis client
	if err := redisclient.New(cfg); err != nil {
		logger.Fatal("err connect redis", zap.Error(err))
	}
	defer func() {
		_ = redisclient.Close()
	}()

	// Set database connection pool settings
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// Connect to RabbitMQ for notifications
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password)
	if err != nil {
		logger.Fatal("err connect rabbitmq", zap.Error(err))
	}
	defer publisher.Close()

	// Initialize repositories
	TxRepo := txRepo.NewTxRepository(db)
	ProductRepo := productRepo.NewProductRepository(db)
	StockRepo := stockRepo.NewStockRepository(db)
	CartRepo := cartRepo.NewCartRepository(db)
	OrderRepo := orderRepo.NewOrderRepository(db)
	TransactionRepo := transactionRepo.NewTransactionRepository(db)
	ReturnRepo := returnRepo.NewReturnRepository(db)
	AddressRepo := addressRepo.NewAddressRepository(db)
	RedisRepo := redisRepo.NewRepository()

	// External services
	avAdminClient := avadmin.NewClient(cfg)
	freightEstimator := cep.NewEstimator(cfg)

	// Initialize application layers
	CartApp := cartapp.NewCartApp(cfg, CartRepo, ProductRepo, publisher)
	OrderApp := orderapp.NewOrderApp(cfg, TxRepo, OrderRepo, ProductRepo, StockRepo, CartRepo,
		TransactionRepo, AddressRepo, avAdminClient, publisher, freightEstimator)
	ReturnApp := returnapp.NewReturnApp(TxRepo, ReturnRepo, OrderRepo, ProductRepo, StockRepo,
		TransactionRepo, publisher)
	StockApp := stockapp.NewStockApp(TxRepo, ProductRepo, StockRepo)

	httpTransport := transport.NewTransport(cfg, avAdminClient, RedisRepo, CartApp, OrderApp, ReturnApp, StockApp)

	// Sweep expired cart reservations on a fixed interval
	go sweepLoop(cfg.Cart.SweepInterval, CartApp)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
	err = server.ListenAndServe()
	if err != nil {
		logger.Fatal("failed server", zap.Error(err))
	}
}

func sweepLoop(interval time.Duration, app cartapp.CartApp) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if _, err := app.PurgeExpired(ctx); err != nil {
			logger.Error("cart sweep failed", zap.String("error", err.Error()))
		}
		cancel()
	}
}
