package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/logichain/backend/internal/domain/identity"
	"github.com/logichain/backend/internal/infrastructure/auth"
	"github.com/logichain/backend/internal/infrastructure/config"
	"github.com/logichain/backend/internal/infrastructure/logger"
	"github.com/logichain/backend/internal/interfaces/http/handler"
	"github.com/logichain/backend/internal/interfaces/http/middleware"
)

const (
	rateLimitRequests = 300
	rateLimitWindow   = time.Minute
)

// Handlers bundles the HTTP handlers wired into the router
type Handlers struct {
	System    *handler.SystemHandler
	Auth      *handler.AuthHandler
	User      *handler.UserHandler
	Order     *handler.OrderHandler
	Return    *handler.ReturnHandler
	Inventory *handler.InventoryHandler
	Product   *handler.ProductHandler
	Warehouse *handler.WarehouseHandler
	Carrier   *handler.CarrierHandler
	Shipment  *handler.ShipmentHandler
}

// Dependencies holds everything the router needs besides the handlers
type Dependencies struct {
	Config     *config.Config
	Logger     *zap.Logger
	JWTService *auth.JWTService
	Blacklist  auth.TokenBlacklist
	Handlers   Handlers
}

// New builds the gin engine with the full middleware chain and all routes
func New(deps Dependencies) *gin.Engine {
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(logger.Recovery(deps.Logger))
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(deps.Logger))
	engine.Use(middleware.CORSWithConfig(corsConfig(deps.Config)))
	engine.Use(middleware.Secure())
	engine.Use(middleware.BodyLimit(deps.Config.HTTP.MaxBodySize))

	limiter := middleware.NewRateLimiter(rateLimitRequests, rateLimitWindow)
	engine.Use(middleware.RateLimit(limiter))

	jwtCfg := middleware.DefaultJWTConfig(deps.JWTService)
	jwtCfg.TokenBlacklist = deps.Blacklist
	jwtCfg.Logger = deps.Logger
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(jwtCfg))

	registerRoutes(engine, deps.Handlers)
	return engine
}

func registerRoutes(engine *gin.Engine, h Handlers) {
	v1 := engine.Group("/api/v1")

	system := v1.Group("/system")
	{
		system.GET("/health", h.System.Health)
		system.GET("/info", h.System.Info)
	}

	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/refresh", h.Auth.Refresh)
		authGroup.POST("/logout", h.Auth.Logout)
		authGroup.POST("/logout-all", h.Auth.LogoutAll)
		authGroup.GET("/me", h.Auth.Me)
	}

	users := v1.Group("/users")
	users.Use(middleware.RequireRoles(identity.RoleAdmin))
	{
		users.GET("", h.User.List)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id", h.User.Update)
		users.DELETE("/:id", h.User.Delete)
	}

	orders := v1.Group("/orders")
	{
		orders.GET("", h.Order.List)
		orders.GET("/stats/summary", h.Order.StatusSummary)
		orders.GET("/number/:orderNumber", h.Order.GetByNumber)
		orders.GET("/customer/:customerId", h.Order.ListByCustomer)
		orders.GET("/:id", h.Order.Get)
		orders.POST("", h.Order.Create)
		orders.PATCH("/:id/status",
			middleware.RequireRoles(identity.RoleWarehouseManager, identity.RoleSupport),
			h.Order.UpdateStatus)
	}

	returnsGroup := v1.Group("/returns")
	{
		returnsGroup.GET("", h.Return.List)
		returnsGroup.GET("/stats/summary", h.Return.StatusSummary)
		returnsGroup.GET("/number/:returnNumber", h.Return.GetByNumber)
		returnsGroup.GET("/order/:orderId", h.Return.ListByOrder)
		returnsGroup.GET("/:id", h.Return.Get)
		returnsGroup.POST("",
			middleware.RequireRoles(identity.RoleCustomer),
			h.Return.Create)
		returnsGroup.PATCH("/:id/status",
			middleware.RequireRoles(identity.RoleSupport),
			h.Return.UpdateStatus)
	}

	inventoryGroup := v1.Group("/inventory")
	{
		inventoryGroup.GET("", h.Inventory.List)
		inventoryGroup.GET("/low-stock", h.Inventory.LowStock)
		inventoryGroup.GET("/product/:productId", h.Inventory.StockForProduct)
		inventoryGroup.GET("/product/:productId/transactions", h.Inventory.Transactions)
		inventoryGroup.GET("/:id", h.Inventory.Get)

		mutate := inventoryGroup.Group("")
		mutate.Use(middleware.RequireRoles(identity.RoleWarehouseManager))
		{
			mutate.POST("", h.Inventory.Create)
			mutate.POST("/receive", h.Inventory.Receive)
			mutate.PUT("/:id", h.Inventory.Adjust)
			mutate.DELETE("/:id", h.Inventory.Delete)
		}
	}

	products := v1.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/sku/:sku", h.Product.GetBySKU)
		products.GET("/:id", h.Product.Get)

		mutate := products.Group("")
		mutate.Use(middleware.RequireRoles(identity.RoleProductManager))
		{
			mutate.POST("", h.Product.Create)
			mutate.PUT("/:id", h.Product.Update)
			mutate.DELETE("/:id", h.Product.Delete)
		}
	}

	warehouses := v1.Group("/warehouses")
	{
		warehouses.GET("", h.Warehouse.List)
		warehouses.GET("/:id", h.Warehouse.Get)

		mutate := warehouses.Group("")
		mutate.Use(middleware.RequireRoles(identity.RoleWarehouseManager))
		{
			mutate.POST("", h.Warehouse.Create)
			mutate.PUT("/:id", h.Warehouse.Update)
			mutate.DELETE("/:id", h.Warehouse.Delete)
		}
	}

	carriers := v1.Group("/carriers")
	{
		carriers.GET("", h.Carrier.List)
		carriers.GET("/:id", h.Carrier.Get)

		mutate := carriers.Group("")
		mutate.Use(middleware.RequireRoles(identity.RoleWarehouseManager))
		{
			mutate.POST("", h.Carrier.Create)
			mutate.PUT("/:id", h.Carrier.Update)
			mutate.DELETE("/:id", h.Carrier.Delete)
		}
	}

	shipments := v1.Group("/shipments")
	{
		shipments.GET("", h.Shipment.List)
		shipments.GET("/track/:trackingNumber", h.Shipment.Track)
		shipments.GET("/order/:orderId", h.Shipment.GetByOrder)
		shipments.GET("/:id", h.Shipment.Get)

		mutate := shipments.Group("")
		mutate.Use(middleware.RequireRoles(identity.RoleWarehouseManager))
		{
			mutate.POST("", h.Shipment.Create)
			mutate.PATCH("/:id/status", h.Shipment.UpdateStatus)
		}
	}
}

func corsConfig(cfg *config.Config) middleware.CORSConfig {
	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	return corsCfg
}
