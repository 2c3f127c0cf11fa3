package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/afoninsb/api-yamdb/docs"
	"github.com/afoninsb/api-yamdb/internal/api/handler"
	"github.com/afoninsb/api-yamdb/internal/api/middleware"
	"github.com/afoninsb/api-yamdb/internal/core/domain"
	"github.com/afoninsb/api-yamdb/internal/core/ports"
	"github.com/afoninsb/api-yamdb/internal/core/service"
	mongodb "github.com/afoninsb/api-yamdb/internal/infrastructure/db/mongo"
	redisdb "github.com/afoninsb/api-yamdb/internal/infrastructure/db/redis"
	"github.com/afoninsb/api-yamdb/internal/infrastructure/http/handlers"
	"github.com/afoninsb/api-yamdb/pkg/logger"
)

// RouterConfig carries the secrets and knobs the HTTP layer needs.
type RouterConfig struct {
	JWTSecret  string
	CodeSecret string
	TokenTTL   time.Duration
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, mail ports.NotificationChannel, cfg RouterConfig) *echo.Echo {
	log := logger.Get()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("yamdb"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	categoryRepo := mongodb.NewCategoryRepository(db)
	genreRepo := mongodb.NewGenreRepository(db)
	titleRepo := mongodb.NewTitleRepository(db)
	reviewRepo := mongodb.NewReviewRepository(db)
	commentRepo := mongodb.NewCommentRepository(db)
	ratingCache := redisdb.NewRatingCache(rdb)

	codes := service.NewCodeIssuer(cfg.CodeSecret)
	tokens := service.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)

	authService := service.NewAuthService(userRepo, codes, tokens, mail, log)
	userService := service.NewUserService(userRepo, log)
	catalogService := service.NewCatalogService(categoryRepo, genreRepo, titleRepo, reviewRepo, ratingCache, log)
	reviewService := service.NewReviewService(titleRepo, reviewRepo, commentRepo, ratingCache, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	titleHandler := handler.NewTitleHandler(catalogService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	commentHandler := handler.NewCommentHandler(reviewService)

	authenticate := middleware.Authenticate(tokens)
	requireAuth := middleware.RequireAuth()
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	v1 := e.Group("/api/v1", authenticate)

	// --- Auth ---
	v1.POST("/auth/signup", authHandler.Signup)
	v1.POST("/auth/token", authHandler.IssueToken)

	// --- Self profile ---
	v1.GET("/users/me", userHandler.Me, requireAuth)
	v1.PATCH("/users/me", userHandler.UpdateMe, requireAuth)

	// --- User administration ---
	users := v1.Group("/users", adminOnly)
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)
	users.GET("/:username", userHandler.Get)
	users.PATCH("/:username", userHandler.Update)
	users.DELETE("/:username", userHandler.Delete)

	// --- Catalog ---
	v1.GET("/categories", catalogHandler.ListCategories)
	v1.POST("/categories", catalogHandler.CreateCategory, adminOnly)
	v1.DELETE("/categories/:slug", catalogHandler.DeleteCategory, adminOnly)

	v1.GET("/genres", catalogHandler.ListGenres)
	v1.POST("/genres", catalogHandler.CreateGenre, adminOnly)
	v1.DELETE("/genres/:slug", catalogHandler.DeleteGenre, adminOnly)

	v1.GET("/titles", titleHandler.List)
	v1.POST("/titles", titleHandler.Create, adminOnly)
	v1.GET("/titles/:id", titleHandler.Get)
	v1.PATCH("/titles/:id", titleHandler.Update, adminOnly)
	v1.DELETE("/titles/:id", titleHandler.Delete, adminOnly)

	// --- Reviews and comments ---
	v1.GET("/titles/:title_id/reviews", reviewHandler.List)
	v1.POST("/titles/:title_id/reviews", reviewHandler.Create, requireAuth)
	v1.GET("/titles/:title_id/reviews/:review_id", reviewHandler.Get)
	v1.PATCH("/titles/:title_id/reviews/:review_id", reviewHandler.Update, requireAuth)
	v1.DELETE("/titles/:title_id/reviews/:review_id", reviewHandler.Delete, requireAuth)

	v1.GET("/titles/:title_id/reviews/:review_id/comments", commentHandler.List)
	v1.POST("/titles/:title_id/reviews/:review_id/comments", commentHandler.Create, requireAuth)
	v1.GET("/titles/:title_id/reviews/:review_id/comments/:comment_id", commentHandler.Get)
	v1.PATCH("/titles/:title_id/reviews/:review_id/comments/:comment_id", commentHandler.Update, requireAuth)
	v1.DELETE("/titles/:title_id/reviews/:review_id/comments/:comment_id", commentHandler.Delete, requireAuth)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
