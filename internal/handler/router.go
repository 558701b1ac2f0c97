package handler

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/orchid-haven/orchid-backend/internal/audit"
	"github.com/orchid-haven/orchid-backend/internal/config"
	"github.com/orchid-haven/orchid-backend/internal/events"
	"github.com/orchid-haven/orchid-backend/internal/middleware"
	"github.com/orchid-haven/orchid-backend/internal/service"
	"github.com/orchid-haven/orchid-backend/internal/validation"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Dependencies is everything the HTTP layer needs. Redis may be nil, in
// which case no rate limits apply.
type Dependencies struct {
	Config      *config.Config
	Logger      *zap.Logger
	AuthService *service.AuthService
	Properties  *service.PropertyService
	Jobs        *service.JobService
	Executives  *service.ExecutiveService
	Images      *service.ImageService
	Validator   *validation.Validator
	Journal     *audit.Journal
	Hub         *events.Hub
	Events      events.Sink
	Redis       *redis.Client
}

// NewRouter builds the gin engine with every route of the API.
func NewRouter(deps Dependencies) *gin.Engine {
	cfg := deps.Config
	isProduction := cfg.IsProduction()

	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	sink := deps.Events
	if sink == nil {
		sink = events.Discard
	}

	// Handlers
	authHandler := NewAuthHandler(deps.AuthService, deps.Validator)
	propertyHandler := NewPropertyHandler(deps.Properties, isProduction)
	jobHandler := NewJobHandler(deps.Jobs, isProduction)
	executiveHandler := NewExecutiveHandler(deps.Executives, isProduction)
	uploadHandler := NewUploadHandler(deps.Images, cfg.PublicBaseURL, isProduction)
	activityHandler := NewActivityHandler(deps.Journal, isProduction)
	eventsHandler := NewEventsHandler(deps.Hub, deps.Journal, allowedOrigins(cfg))
	systemHandler := NewSystemHandler(cfg.Environment)

	router := gin.New()
	router.MaxMultipartMemory = 8 << 20

	router.Use(middleware.Recovery(log, sink, isProduction))
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.HSTSMiddleware(isProduction))
	router.Use(cors.New(corsConfig(cfg)))

	// Rate limiters (Redis-backed, optional)
	apiLimit, authLimit, uploadLimit := passThrough, passThrough, passThrough
	if cfg.RateLimitEnabled && deps.Redis != nil {
		apiLimit = middleware.NewRateLimiter(deps.Redis, middleware.RateLimiterConfig{
			Name:        "api",
			MaxRequests: cfg.APIRateLimit.Max,
			Window:      cfg.APIRateLimit.Window,
		}).Middleware()
		authLimit = middleware.NewRateLimiter(deps.Redis, middleware.RateLimiterConfig{
			Name:        "auth",
			MaxRequests: cfg.AuthRateLimit.Max,
			Window:      cfg.AuthRateLimit.Window,
			Message:     "Too many login attempts, please try again later.",
		}).Middleware()
		uploadLimit = middleware.NewRateLimiter(deps.Redis, middleware.RateLimiterConfig{
			Name:        "upload",
			MaxRequests: cfg.UploadRateLimit.Max,
			Window:      cfg.UploadRateLimit.Window,
			Message:     "Too many uploads, please try again later.",
		}).Middleware()
	}

	requireAuth := middleware.AuthMiddleware(deps.AuthService, sink)
	requireAdmin := middleware.AdminMiddleware()

	// Public routes
	router.GET("/health", systemHandler.Health)
	router.Static("/uploads", deps.Images.Dir())

	api := router.Group("/api")
	api.Use(apiLimit)
	{
		api.GET("", systemHandler.Index)

		api.POST("/auth/login", authLimit, authHandler.Login)
		api.GET("/auth/me", requireAuth, authHandler.Me)

		api.GET("/properties", propertyHandler.List)
		api.GET("/properties/:id", propertyHandler.Get)
		api.GET("/jobs", jobHandler.List)
		api.GET("/jobs/:id", jobHandler.Get)
		api.GET("/executive-team", executiveHandler.List)
		api.GET("/executive-team/:id", executiveHandler.Get)
		api.GET("/images", uploadHandler.List)

		// The feed takes ?token= since browsers cannot set headers on websockets
		api.GET("/events", middleware.QueryTokenAuthMiddleware(deps.AuthService, sink), requireAdmin, eventsHandler.Stream)
	}

	// Protected routes (require JWT)
	admin := api.Group("")
	admin.Use(requireAuth, requireAdmin)
	{
		admin.GET("/properties/all", propertyHandler.ListAll)
		admin.POST("/properties", propertyHandler.Create)
		admin.PUT("/properties/:id", propertyHandler.Update)
		admin.DELETE("/properties/:id", propertyHandler.Delete)

		admin.POST("/jobs", jobHandler.Create)
		admin.PUT("/jobs/:id", jobHandler.Update)
		admin.DELETE("/jobs/:id", jobHandler.Delete)

		admin.POST("/executive-team", executiveHandler.Create)
		admin.PUT("/executive-team/:id", executiveHandler.Update)
		admin.DELETE("/executive-team/:id", executiveHandler.Delete)

		admin.POST("/upload", uploadLimit, uploadHandler.Upload)
		admin.DELETE("/images/:filename", uploadHandler.Delete)

		admin.GET("/activity", activityHandler.List)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Route not found",
		})
	})

	return router
}

func passThrough(c *gin.Context) {
	c.Next()
}

func allowedOrigins(cfg *config.Config) []string {
	if len(cfg.AllowedOrigins) > 0 {
		return cfg.AllowedOrigins
	}
	if cfg.FrontendURL != "" {
		return []string{cfg.FrontendURL}
	}
	return nil
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Retry-After", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	origins := allowedOrigins(cfg)
	if len(origins) == 0 {
		c.AllowAllOrigins = true
		c.AllowCredentials = false
		return c
	}
	c.AllowOrigins = origins
	return c
}
