package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/discipulado/internal/apps"
	"github.com/ahmetcoskunkizilkaya/discipulado/internal/config"
	"github.com/ahmetcoskunkizilkaya/discipulado/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/discipulado/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

// Handlers groups the core handlers mounted outside of plugins.
type Handlers struct {
	Auth       *handlers.AuthHandler
	Health     *handlers.HealthHandler
	User       *handlers.UserHandler
	Moderation *handlers.ModerationHandler
	Seed       *handlers.SeedHandler
}

func Setup(app *fiber.App, cfg *config.Config, db *gorm.DB, h Handlers, plugins []apps.Plugin) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", h.Health.Check)

	// Auth-specific rate limit: 10 req/min per IP (stricter)
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/refresh", h.Auth.Refresh)

	// JWT is applied per route so it does not leak onto the public ones.
	api.Post("/auth/logout", middleware.JWTProtected(cfg), h.Auth.Logout)
	api.Delete("/auth/account", middleware.JWTProtected(cfg), h.Auth.DeleteAccount)

	api.Get("/me", middleware.JWTProtected(cfg), h.User.GetMe)
	api.Put("/me", middleware.JWTProtected(cfg), h.User.UpdateMe)

	api.Post("/reports", middleware.JWTProtected(cfg), h.Moderation.CreateReport)
	api.Post("/blocks", middleware.JWTProtected(cfg), h.Moderation.BlockUser)
	api.Delete("/blocks/:id", middleware.JWTProtected(cfg), h.Moderation.UnblockUser)

	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg))
	admin.Get("/users", h.User.List)
	admin.Put("/users/:id/role", h.User.UpdateRole)
	admin.Put("/users/:id/group", h.User.AssignGroup)
	admin.Delete("/users/:id", h.User.Delete)
	admin.Get("/moderation/reports", h.Moderation.ListReports)
	admin.Put("/moderation/reports/:id", h.Moderation.ActionReport)
	admin.Post("/seed", h.Seed.Run)

	protected := api.Group("/p", middleware.JWTProtected(cfg), middleware.LoadRole(db))
	for _, p := range plugins {
		p.RegisterRoutes(protected, db, cfg)
		if ap, ok := p.(apps.AdminPlugin); ok {
			ap.RegisterAdminRoutes(admin, db, cfg)
		}
	}
}
