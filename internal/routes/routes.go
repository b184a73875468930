package routes

import (
	"time"

	"github.com/Balu143865/AI-Placement-Predict/internal/config"
	"github.com/Balu143865/AI-Placement-Predict/internal/handlers"
	"github.com/Balu143865/AI-Placement-Predict/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	predictionHandler *handlers.PredictionHandler,
	historyHandler *handlers.HistoryHandler,
	analyticsHandler *handlers.AnalyticsHandler,
) {
	app.Get("/", healthHandler.Root)

	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth is public but gets a stricter rate limit: 10 req/min per IP
	authLimiter := limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
	api.Post("/register", authLimiter, authHandler.Register)
	api.Post("/login", authLimiter, authHandler.Login)

	// Public pass-through analysis, no persistence
	api.Post("/analyze", predictionHandler.Analyze)

	// Protected routes (JWT required) - apply middleware to individual routes
	// so it never affects the public ones
	jwt := middleware.JWTProtected(cfg)
	api.Get("/profile", jwt, authHandler.Profile)
	api.Post("/predict", jwt, predictionHandler.Predict)
	api.Get("/history", jwt, historyHandler.List)
	api.Get("/history/:id", jwt, historyHandler.Get)
	api.Delete("/history/:id", jwt, historyHandler.Delete)
	api.Get("/analytics", jwt, analyticsHandler.Overview)
	api.Get("/analytics/summary", jwt, analyticsHandler.Summary)
}
