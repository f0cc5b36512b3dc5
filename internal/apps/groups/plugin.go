package groups

import (
	"github.com/ahmetcoskunkizilkaya/discipulado/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Plugin serves the células. The grupos table is a shared model because
// the seed workflow writes it too.
type Plugin struct{}

func New() *Plugin {
	return &Plugin{}
}

func (p *Plugin) ID() string { return "groups" }

func (p *Plugin) Models() []interface{} { return nil }

func (p *Plugin) RegisterRoutes(router fiber.Router, db *gorm.DB, _ *config.Config) {
	h := NewGroupHandler(NewGroupService(db))

	router.Get("/groups", h.List)
	router.Get("/groups/mine", h.Mine)
	router.Get("/groups/:id", h.Get)
	router.Put("/groups/:id", h.Update)
}

func (p *Plugin) RegisterAdminRoutes(router fiber.Router, db *gorm.DB, _ *config.Config) {
	h := NewGroupHandler(NewGroupService(db))

	router.Post("/groups", h.Create)
	router.Put("/groups/:id", h.Update)
	router.Delete("/groups/:id", h.Delete)
}
