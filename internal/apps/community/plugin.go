package community

import (
	"github.com/ahmetcoskunkizilkaya/discipulado/internal/config"
	"github.com/ahmetcoskunkizilkaya/discipulado/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Plugin serves the mural: prayer requests and testimonies.
type Plugin struct {
	moderationService *services.ModerationService
}

func New(moderationService *services.ModerationService) *Plugin {
	return &Plugin{moderationService: moderationService}
}

func (p *Plugin) ID() string { return "community" }

func (p *Plugin) Models() []interface{} {
	return []interface{}{
		&Post{},
		&PostComment{},
		&PostPrayer{},
	}
}

func (p *Plugin) RegisterRoutes(router fiber.Router, db *gorm.DB, _ *config.Config) {
	h := NewFeedHandler(NewFeedService(db, p.moderationService))

	router.Get("/feed", h.GetFeed)
	router.Post("/feed", h.Create)
	router.Delete("/feed/:id", h.Delete)
	router.Post("/feed/:id/pray", h.Pray)
	router.Get("/feed/:id/comments", h.GetComments)
	router.Post("/feed/:id/comments", h.AddComment)
}

func (p *Plugin) RegisterAdminRoutes(router fiber.Router, db *gorm.DB, _ *config.Config) {
	h := NewFeedHandler(NewFeedService(db, p.moderationService))

	router.Delete("/feed/:id", h.Delete)
}
