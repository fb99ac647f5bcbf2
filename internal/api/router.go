package api

import (
	"fmt"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/quickblog/blog-api/internal/api/handler"
	"github.com/quickblog/blog-api/internal/api/middleware"
	"github.com/quickblog/blog-api/internal/auth"
	"github.com/quickblog/blog-api/internal/core/ports"
	"github.com/quickblog/blog-api/internal/core/service"
	mongodb "github.com/quickblog/blog-api/internal/infrastructure/db/mongo"
	redisdb "github.com/quickblog/blog-api/internal/infrastructure/db/redis"
	"github.com/quickblog/blog-api/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// audit may be nil, in which case auth outcomes are not recorded.
func NewRouter(
	cfg *config.Config,
	db *mongo.Database,
	rdb *redis.Client,
	audit ports.AuthAudit,
	log zerolog.Logger,
) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("blog"))

	// --- Dependencies ---
	codec, err := auth.NewCodec(cfg.JWT.Secret, cfg.JWT.Algorithm)
	if err != nil {
		return nil, fmt.Errorf("router: %w", err)
	}

	userRepo := mongodb.NewUserRepository(db)
	postRepo := mongodb.NewPostRepository(db)
	postCache := redisdb.NewPostCache(rdb, log)

	authService := service.NewAuthService(userRepo, codec, cfg.JWT.AccessTTL(), cfg.JWT.RefreshTTL(), audit, log)
	userService := service.NewUserService(userRepo, log)
	postService := service.NewPostService(postRepo, postCache, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	postHandler := handler.NewPostHandler(postService)
	guard := middleware.Auth(codec, userRepo)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/refresh", authHandler.Refresh)

	// --- User routes ---
	e.POST("/users", userHandler.Create)
	e.GET("/users/:id", userHandler.Get, guard)

	// --- Post routes (all protected) ---
	posts := e.Group("/posts", guard)
	posts.GET("", postHandler.List)
	posts.POST("", postHandler.Create)
	posts.GET("/:id", postHandler.Get)
	posts.PUT("/:id", postHandler.Update)
	posts.DELETE("/:id", postHandler.Delete)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e, nil
}
