package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/quotation-api/internal/config"
	"github.com/sangkips/quotation-api/internal/domain/entity"
	domainRepo "github.com/sangkips/quotation-api/internal/domain/repository"
	"github.com/sangkips/quotation-api/internal/presentation/http/handler"
	"github.com/sangkips/quotation-api/internal/presentation/http/middleware"
	"github.com/sangkips/quotation-api/pkg/metrics"
	"github.com/sangkips/quotation-api/pkg/utils"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Client    *handler.ClientHandler
	Service   *handler.ServiceHandler
	Quote     *handler.QuoteHandler
	Dashboard *handler.DashboardHandler
	User      *handler.UserHandler
}

// Deps holds shared dependencies needed by the routes.
// RateLimiter and Metrics may be nil.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	RateLimiter     *middleware.RateLimiter
	Metrics         *metrics.Metrics
	Logger          *zap.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.MetricsMiddleware(deps.Metrics))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	v1 := router.Group("/api/v1")
	{
		registerAuthRoutes(v1, h, deps)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		if deps.RateLimiter != nil {
			protected.Use(deps.RateLimiter.Middleware())
		}

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	auth := v1.Group("/auth")
	if deps.RateLimiter != nil {
		auth.Use(deps.RateLimiter.Middleware())
	}
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Profile
	protected.GET("/profile", h.Auth.Profile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	registerUserRoutes(protected, h)

	// Dashboard
	protected.GET("/dashboard", middleware.RequirePermission(entity.PermissionViewDashboard), h.Dashboard.GetStats)

	registerClientRoutes(protected, h)
	registerServiceRoutes(protected, h)
	registerQuoteRoutes(protected, h, deps)
}

func registerUserRoutes(protected *gin.RouterGroup, h *Handlers) {
	admin := protected.Group("")
	admin.Use(middleware.RequireRole(entity.RoleAdmin))
	{
		admin.GET("/users", h.User.List)
		admin.POST("/users", h.Auth.CreateUser)
		admin.GET("/users/:id", h.User.Get)
		admin.PUT("/users/:id", h.User.Update)
		admin.GET("/roles", h.User.ListRoles)
	}
}

func registerClientRoutes(protected *gin.RouterGroup, h *Handlers) {
	clients := protected.Group("/clients")
	clients.Use(middleware.RequirePermission(entity.PermissionManageClients))
	{
		clients.GET("", h.Client.List)
		clients.POST("", h.Client.Create)
		clients.GET("/:id", h.Client.Get)
		clients.PUT("/:id", h.Client.Update)
		clients.DELETE("/:id", h.Client.Delete)
	}
}

func registerServiceRoutes(protected *gin.RouterGroup, h *Handlers) {
	services := protected.Group("/services")
	{
		// Quote editors need to read the catalog and look up rates.
		read := middleware.RequirePermission(entity.PermissionManageQuotes)
		services.GET("", read, h.Service.List)
		services.GET("/:id", read, h.Service.Get)
		services.GET("/:id/rate", read, h.Service.Rate)

		manage := middleware.RequirePermission(entity.PermissionManageServices)
		services.POST("", manage, h.Service.Create)
		services.PUT("/:id", manage, h.Service.Update)
		services.DELETE("/:id", manage, h.Service.Delete)
	}
}

func registerQuoteRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	quotes := protected.Group("/quotes")
	{
		export := middleware.RequirePermission(entity.PermissionExportQuotes)
		quotes.GET("/export", export, h.Quote.Export)
		quotes.GET("/:id/pdf", export, h.Quote.PDF)

		manage := quotes.Group("")
		manage.Use(middleware.RequirePermission(entity.PermissionManageQuotes))
		manage.GET("", h.Quote.List)
		manage.POST("", middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo}), h.Quote.Create)
		manage.GET("/:id", h.Quote.Get)
		manage.PUT("/:id", h.Quote.Update)
		manage.DELETE("/:id", h.Quote.Delete)
		manage.PUT("/:id/status", h.Quote.UpdateStatus)
		manage.POST("/:id/recalculate", h.Quote.Recalculate)
		manage.POST("/:id/items", h.Quote.AddItem)
		manage.PUT("/:id/items", h.Quote.ReplaceItems)
		manage.PUT("/:id/items/:item_id", h.Quote.UpdateItem)
		manage.DELETE("/:id/items/:item_id", h.Quote.RemoveItem)
	}
}
