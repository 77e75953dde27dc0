// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"stylmou/internal/cache"
	"stylmou/internal/config"
	"stylmou/internal/database"
	"stylmou/internal/featureflags"
	"stylmou/internal/middleware"
	"stylmou/internal/models"
	"stylmou/internal/notifications"
	"stylmou/internal/repository"
	"stylmou/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	shutdownCtx    context.Context
	shutdownFn     context.CancelFunc
	notifier       *notifications.Notifier
	featureFlags   *featureflags.Manager

	authService    *service.AuthService
	profileService *service.ProfileService
	postService    *service.PostService
	accountService *service.AccountService
	feedService    *service.FeedService
	contentService *service.ContentService
}

// repositories is the persistence layer the services are built from.
type repositories struct {
	users         repository.UserRepository
	verifications repository.VerificationRepository
	posts         repository.PostRepository
	cascade       repository.CascadeRepository
	catalog       repository.CatalogRepository
	content       repository.ContentRepository
	uow           repository.UnitOfWork
}

func newRepositories(db *gorm.DB) repositories {
	return repositories{
		users:         repository.NewUserRepository(db),
		verifications: repository.NewVerificationRepository(db),
		posts:         repository.NewPostRepository(db),
		cascade:       repository.NewCascadeRepository(db),
		catalog:       repository.NewCatalogRepository(db),
		content:       repository.NewContentRepository(db),
		uow:           repository.NewUnitOfWork(db),
	}
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	return NewServerWithDeps(cfg, db, cache.InitRedis(cfg.RedisURL))
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis and
// performs explicit seeding.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	s := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("stylmou-api"),
		featureFlags:   featureflags.NewManager(cfg.FeatureFlags),
	}
	if redisClient != nil {
		s.notifier = notifications.NewNotifier(redisClient)
	}
	s.initServices(newRepositories(db))
	return s, nil
}

func (s *Server) initServices(r repositories) {
	c := cache.New(s.redis)
	writes := service.NewWriteCoordinator(r.uow, s.featureFlags, service.FanoutOptions{
		Parallelism:         s.config.FanoutParallelism,
		Transactional:       s.config.FanoutTransactional,
		AbortOnVideoFailure: s.config.FanoutAbortOnVideoFailure,
	})

	var events service.EventPublisher
	if s.notifier != nil {
		events = s.notifier
	}

	verifications := service.NewVerificationService(r.verifications, s.config.OTPTTL(), s.config.TokenLength)
	s.authService = service.NewAuthService(r.users, verifications)
	s.profileService = service.NewProfileService(r.users, r.catalog, c)
	s.postService = service.NewPostService(r.posts, r.cascade, writes, events, c)
	s.accountService = service.NewAccountService(r.cascade, writes, events, c)
	s.feedService = service.NewFeedService(r.posts, r.catalog, c)
	s.contentService = service.NewContentService(r.content)
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(middleware.TracingMiddleware())

	// Context Middleware to propagate Request ID and trace ID
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	// CORS runs before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:3000,http://127.0.0.1:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		MaxAge:       86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	v1 := app.Group("/v1")

	user := v1.Group("/user")
	user.Post("/signUp", middleware.RateLimit(s.redis, 3, 10*time.Minute, "signup"), s.SignUp)
	user.Post("/login", middleware.RateLimit(s.redis, 10, 5*time.Minute, "login"), s.Login)
	user.Post("/getByEmailOrMobile", s.GetByEmailOrMobile)

	otpLimit := middleware.RateLimit(s.redis, 5, 10*time.Minute, "otp_issue")
	verifyLimit := middleware.RateLimit(s.redis, 10, 5*time.Minute, "otp_verify")
	user.Post("/createOtp", otpLimit, s.CreateOTP)
	user.Post("/resendOtp", otpLimit, s.ResendOTP)
	user.Post("/verifyOtp", verifyLimit, s.VerifyOTP)
	user.Post("/forgotPassword", otpLimit, s.ForgotPassword)
	user.Post("/verifyForgotPasswordOtp", verifyLimit, s.VerifyForgotPasswordOTP)
	user.Post("/changePassword", s.ChangePassword)
	user.Post("/updatePassword", s.UpdatePassword)

	user.Get("/languages", s.GetLanguages)
	user.Post("/setLanguage", s.SetLanguage)

	user.Post("/profile", s.GetProfile)
	user.Post("/otherUserProfile", s.GetOtherUserProfile)
	user.Post("/edit-profile", s.EditProfile)
	user.Post("/logout", s.Logout)
	user.Post("/deleteAccount", s.DeleteAccount)
	user.Post("/post/createPost", s.CreatePost)

	post := v1.Group("/post")
	post.Get("/post-style", s.GetPostStyles)
	post.Get("/post-categories", s.GetCategories)
	post.Get("/allPosts", s.GetAllPosts)
	post.Post("/postByStyle", s.GetPostsByStyle)
	post.Post("/saved", s.GetSavedPosts)
	post.Post("/images/rating", s.GetImageRatings)
	post.Get("/trending", s.GetTrendingPosts)
	post.Post("/new", s.GetNewPosts)
	post.Post("/following", s.GetFollowingPosts)
	post.Post("/expiring", s.GetExpiringPosts)
	post.Post("/category", s.GetPostsByCategory)
	post.Get("/stylCompare", s.GetStylComparePosts)
	post.Get("/stylVideo", s.GetStylVideoPosts)
	post.Post("/delete", s.DeletePost)

	appGroup := v1.Group("/app")
	appGroup.Post("/blogs", s.CreateBlog)
	appGroup.Post("/contactUs", s.CreateContactMessage)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	if s.db == nil {
		dbStatus = "unavailable"
	} else if sqlDB, err := s.db.DB(); err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis == nil {
		redisStatus = "unavailable"
	} else if err := s.redis.Ping(ctx).Err(); err != nil {
		redisStatus = "unhealthy"
	}

	// Redis only backs caching, rate limiting and events; the API degrades without it.
	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	} else if redisStatus != "healthy" {
		overallStatus = "degraded"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start starts the server
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.shutdownCtx = ctx
	s.shutdownFn = cancel

	app := fiber.New(fiber.Config{
		AppName: "stylmou API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if fe, ok := err.(*fiber.Error); ok {
				return c.Status(fe.Code).JSON(models.ErrorResponse{Error: fe.Message})
			}
			middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", slog.String("error", err.Error()))
			return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewOperationError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	if s.notifier != nil {
		err := s.notifier.StartEventSubscriber(s.shutdownCtx, func(e notifications.Event) {
			middleware.Logger.DebugContext(s.shutdownCtx, "domain event",
				slog.String("type", e.Type),
				slog.Uint64("user_id", uint64(e.UserID)),
				slog.Uint64("post_id", uint64(e.PostID)),
			)
		})
		if err != nil {
			middleware.Logger.Warn("event subscriber not started", slog.String("error", err.Error()))
		}
	}

	middleware.Logger.Info("server starting", slog.String("port", s.config.Port))
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.shutdownFn != nil {
		s.shutdownFn()
	}

	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", slog.String("error", err.Error()))
		}
	}

	if s.db != nil {
		if sqlDB, err := s.db.DB(); err == nil {
			if cerr := sqlDB.Close(); cerr != nil {
				middleware.Logger.Error("error closing sql DB", slog.String("error", cerr.Error()))
			}
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis", slog.String("error", rerr.Error()))
		}
	}

	middleware.Logger.Info("server shutdown complete")
	return nil
}
