package router

import (
	"time"

	"saribill/internal/config"
	"saribill/internal/handler"
	"saribill/internal/infra"
	"saribill/internal/middleware"
	"saribill/internal/repository"
	"saribill/internal/service"
	"saribill/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// New wires repositories, services, workers and handlers into the gin engine.
// This is the only place concrete implementations meet each other.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*gin.Engine, *worker.Handlers) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Repositories
	billRepo := repository.NewBillRepository(db)
	trashRepo := repository.NewTrashRepository(db)
	oldBillRepo := repository.NewOldBillRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	shopRepo := repository.NewShopRepository(db)
	userRepo := repository.NewUserRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	// Outbound infrastructure
	dispatcher := worker.NewDispatcher(rdb)
	waClient := infra.NewWhatsAppClient(cfg.WhatsAppAPIURL, cfg.WhatsAppToken, cfg.CountryCode)
	waBreaker := infra.NewCircuitBreaker("whatsapp", 5, time.Minute)
	mailer := infra.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPUser)
	workerHandlers := &worker.Handlers{
		Share: worker.NewShareWorker(waClient, waBreaker, mailer, rdb, dispatcher),
	}

	// Services
	billSvc := service.NewBillService(billRepo, trashRepo, customerRepo, shopRepo, dispatcher, cfg.PublicBaseURL)
	publicSvc := service.NewPublicService(billRepo, oldBillRepo, shopRepo, rdb, cfg.PublicBaseURL)
	analyticsSvc := service.NewAnalyticsService(analyticsRepo)
	authSvc := service.NewAuthService(userRepo, cfg)

	// Handlers
	billHandler := handler.NewBillHandler(billSvc)
	trashHandler := handler.NewTrashHandler(billSvc)
	customerHandler := handler.NewCustomerHandler(customerRepo, billSvc)
	shopHandler := handler.NewShopHandler(shopRepo, rdb)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsSvc)
	authHandler := handler.NewAuthHandler(authSvc)
	publicHandler := handler.NewPublicHandler(publicSvc)
	healthHandler := handler.NewHealthHandler(db, rdb)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.CORS(),
		middleware.ErrorHandler(),
	)

	r.GET("/health", healthHandler.Check)

	// Unauthenticated viewer surface
	public := r.Group("/", middleware.PublicRateLimiter())
	{
		public.GET("/public/bills/*identifier", publicHandler.Resolve)
		public.Static("/view", "./web/viewer")
	}

	auth := r.Group("/v1/auth", middleware.RateLimiter())
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
	}

	v1 := r.Group("/v1", middleware.RateLimiter(), middleware.JWTAuth(cfg.JWTSecret))
	{
		bills := v1.Group("/bills")
		{
			bills.POST("", billHandler.Create)
			bills.GET("", billHandler.List)
			bills.GET("/:id", billHandler.Get)
			bills.PUT("/:id", billHandler.Update)
			bills.DELETE("/:id", billHandler.Delete)
			bills.POST("/:id/share", billHandler.Share)
		}

		trash := v1.Group("/trash")
		{
			trash.GET("", trashHandler.List)
			trash.POST("/:id/restore", trashHandler.Restore)
			trash.DELETE("/:id", middleware.RequireRole("owner"), trashHandler.Purge)
		}

		customers := v1.Group("/customers")
		{
			customers.GET("", customerHandler.List)
			customers.GET("/search", customerHandler.Search)
			customers.GET("/:phone/bills", customerHandler.Bills)
		}

		shop := v1.Group("/shop")
		{
			shop.GET("", shopHandler.Get)
			shop.PUT("", middleware.RequireRole("owner"), shopHandler.Put)
		}

		v1.GET("/analytics/summary", middleware.RequireRole("owner"), analyticsHandler.Summary)
	}

	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r, workerHandlers
}
