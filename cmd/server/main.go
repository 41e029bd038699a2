package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	catalogapp "github.com/logichain/backend/internal/application/catalog"
	identityapp "github.com/logichain/backend/internal/application/identity"
	inventoryapp "github.com/logichain/backend/internal/application/inventory"
	logisticsapp "github.com/logichain/backend/internal/application/logistics"
	orderapp "github.com/logichain/backend/internal/application/order"
	returnsapp "github.com/logichain/backend/internal/application/returns"
	"github.com/logichain/backend/internal/infrastructure/auth"
	"github.com/logichain/backend/internal/infrastructure/config"
	"github.com/logichain/backend/internal/infrastructure/event"
	"github.com/logichain/backend/internal/infrastructure/logger"
	"github.com/logichain/backend/internal/infrastructure/persistence"
	"github.com/logichain/backend/internal/interfaces/http/handler"
	"github.com/logichain/backend/internal/interfaces/http/router"
)

const serverVersion = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting logichain backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	returnRepo := persistence.NewGormReturnRepository(db.DB)
	inventoryRepo := persistence.NewGormInventoryRepository(db.DB)
	inventoryTxRepo := persistence.NewGormInventoryTransactionRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	warehouseRepo := persistence.NewGormWarehouseRepository(db.DB)
	carrierRepo := persistence.NewGormCarrierRepository(db.DB)
	shipmentRepo := persistence.NewGormShipmentRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Token blacklist backed by Redis, with in-memory fallback for
	// single-node deployments without Redis
	var (
		blacklist   auth.TokenBlacklist
		redisClient *redis.Client
	)
	redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = redisBlacklist
		redisClient = redisBlacklist.GetClient()
		defer func() {
			if err := redisBlacklist.Close(); err != nil {
				log.Error("Error closing Redis connection", zap.Error(err))
			}
		}()
		log.Info("Redis token blacklist connected")
	}

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	userService := identityapp.NewUserService(userRepo)
	orderService := orderapp.NewService(orderRepo, txScope)
	returnService := returnsapp.NewService(returnRepo, orderRepo, txScope)
	inventoryService := inventoryapp.NewService(inventoryRepo, inventoryTxRepo, cfg.Inventory.LowStockThreshold)
	productService := catalogapp.NewProductService(productRepo)
	warehouseService := logisticsapp.NewWarehouseService(warehouseRepo)
	carrierService := logisticsapp.NewCarrierService(carrierRepo)
	shipmentService := logisticsapp.NewShipmentService(shipmentRepo, carrierRepo, orderRepo)

	// Event bus wiring
	eventBus := event.NewInMemoryEventBus(log)

	lowStockHandler := inventoryapp.NewLowStockHandler(inventoryRepo, cfg.Inventory.LowStockThreshold, log)
	eventBus.Subscribe(lowStockHandler)
	log.Info("Event handlers registered",
		zap.Strings("low_stock_events", lowStockHandler.EventTypes()),
	)

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	orderService.SetEventPublisher(eventBus)
	returnService.SetEventPublisher(eventBus)
	inventoryService.SetEventPublisher(eventBus)

	// Health check pingers
	dbPinger := handler.PingerFunc(func(ctx context.Context) error {
		return db.Ping()
	})
	var cachePinger handler.Pinger
	if redisClient != nil {
		cachePinger = handler.PingerFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}

	engine := router.New(router.Dependencies{
		Config:     cfg,
		Logger:     log,
		JWTService: jwtService,
		Blacklist:  blacklist,
		Handlers: router.Handlers{
			System:    handler.NewSystemHandler(cfg.App.Name, serverVersion, cfg.App.Env, dbPinger, cachePinger),
			Auth:      handler.NewAuthHandler(authService, userService),
			User:      handler.NewUserHandler(userService),
			Order:     handler.NewOrderHandler(orderService),
			Return:    handler.NewReturnHandler(returnService),
			Inventory: handler.NewInventoryHandler(inventoryService),
			Product:   handler.NewProductHandler(productService),
			Warehouse: handler.NewWarehouseHandler(warehouseService),
			Carrier:   handler.NewCarrierHandler(carrierService),
			Shipment:  handler.NewShipmentHandler(shipmentService),
		},
	})

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
