// Package app assembles the Fiber application: middleware chain, routes, health and
// metrics endpoints.
package app

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fatemaakther1/Social-Media-App/internal/apperror"
	"github.com/fatemaakther1/Social-Media-App/internal/config"
	"github.com/fatemaakther1/Social-Media-App/internal/database"
	"github.com/fatemaakther1/Social-Media-App/internal/events"
	"github.com/fatemaakther1/Social-Media-App/internal/handlers"
	"github.com/fatemaakther1/Social-Media-App/internal/metrics"
	"github.com/fatemaakther1/Social-Media-App/internal/middleware"
	"github.com/fatemaakther1/Social-Media-App/internal/repositories"
	"github.com/fatemaakther1/Social-Media-App/internal/services"
	"github.com/fatemaakther1/Social-Media-App/internal/session"
	"github.com/fatemaakther1/Social-Media-App/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"
)

// Deps are the collaborators the application is built from.
type Deps struct {
	Config *config.Config
	DB     *gorm.DB
	Logger *slog.Logger
	// Broker publishes feed events. Nil disables events.
	Broker *rabbitmq.Client
	// Metrics serves /metrics. Nil disables the endpoint.
	Metrics *metrics.Provider
	// AccessLog receives the request log. Defaults to stdout.
	AccessLog io.Writer
}

// New builds the Fiber application.
func New(d Deps) *fiber.App {
	cfg := d.Config
	log := d.Logger
	if log == nil {
		log = slog.Default()
	}

	var publisher events.Publisher
	if d.Broker != nil {
		publisher = d.Broker
	}

	// --- Initialize Repositories ---
	userRepo := repositories.NewGORMUserRepository(d.DB)
	postRepo := repositories.NewGORMPostRepository(d.DB)
	likeRepo := repositories.NewGORMLikeRepository(d.DB)
	commentRepo := repositories.NewGORMCommentRepository(d.DB)

	// --- Initialize Services ---
	authService := services.NewAuthService(userRepo, publisher, log)
	postService := services.NewPostService(postRepo, publisher, log)
	likeService := services.NewLikeService(likeRepo, postRepo, publisher, log)
	commentService := services.NewCommentService(commentRepo, postRepo, publisher, log)

	sessions := session.NewManager(cfg.SessionSecret, cfg.SessionTTL, session.CookieOptions{
		HTTPOnly: cfg.CookieHTTPOnly,
		Secure:   cfg.CookieSecure,
		SameSite: strings.ToLower(cfg.CookieSameSite),
	})

	// --- Initialize Handlers ---
	authHandler := handlers.NewAuthHandler(authService, sessions, log)
	postHandler := handlers.NewPostHandler(postService, log)
	likeHandler := handlers.NewLikeHandler(likeService, log)
	commentHandler := handlers.NewCommentHandler(commentService, log)

	// --- Initialize Fiber App ---
	app := fiber.New(fiber.Config{
		AppName:      "social-media-app",
		ErrorHandler: handlers.ErrorHandler(log),
	})

	// --- Middleware ---
	accessLog := d.AccessLog
	if accessLog == nil {
		accessLog = os.Stdout
	}
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		Output: accessLog,
	}))
	app.Use(middleware.RequestMetrics())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.AllowedOrigins(), ","),
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowCredentials: true,
	}))
	app.Use(encryptcookie.New(encryptcookie.Config{
		Key: cookieKey(cfg, log),
	}))

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")
	requireSession := middleware.SessionRequired(sessions)

	authHandler.RegisterRoutes(apiV1, requireSession, loginLimiter(cfg))
	postHandler.RegisterRoutes(apiV1, requireSession)
	likeHandler.RegisterRoutes(apiV1, requireSession)
	commentHandler.RegisterRoutes(apiV1, requireSession)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		status, code := "healthy", fiber.StatusOK
		dbState := "connected"
		if err := database.Ping(d.DB); err != nil {
			log.Error("health check: database unreachable", "error", err)
			status, code, dbState = "unhealthy", fiber.StatusServiceUnavailable, "unreachable"
		}
		return c.Status(code).JSON(fiber.Map{
			"status":   status,
			"time":     time.Now().Format(time.RFC3339),
			"database": dbState,
			"rabbitMQ": brokerState(d.Broker),
		})
	})

	if d.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(d.Metrics.Handler()))
	}

	return app
}

// loginLimiter counts failed logins per client IP. Successful logins are not counted.
func loginLimiter(cfg *config.Config) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:                    cfg.LoginRateLimit,
		Expiration:             cfg.LoginRateWindow,
		SkipSuccessfulRequests: true,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			appErr := apperror.TooManyAttempts()
			return c.Status(appErr.Status).JSON(fiber.Map{
				"success": false,
				"message": appErr.Message,
				"error":   appErr.Code,
			})
		},
	})
}

func cookieKey(cfg *config.Config, log *slog.Logger) string {
	if cfg.CookieEncryptionKey != "" {
		return cfg.CookieEncryptionKey
	}
	// Sessions do not survive a restart with a generated key.
	log.Warn("COOKIE_ENCRYPTION_KEY not set, using a random key")
	return encryptcookie.GenerateKey()
}

func brokerState(broker *rabbitmq.Client) string {
	switch {
	case broker == nil:
		return "disabled"
	case broker.Connected():
		return "connected"
	default:
		return "disconnected"
	}
}
