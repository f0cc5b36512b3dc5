package growthplans

import (
	"github.com/ahmetcoskunkizilkaya/discipulado/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Plugin struct{}

func New() *Plugin {
	return &Plugin{}
}

func (p *Plugin) ID() string { return "growthplans" }

func (p *Plugin) Models() []interface{} {
	return []interface{}{&GrowthPlan{}}
}

func (p *Plugin) RegisterRoutes(router fiber.Router, db *gorm.DB, _ *config.Config) {
	h := NewPlanHandler(NewPlanService(db))

	router.Get("/growth-plans", h.List)
	router.Post("/growth-plans", h.Create)
	router.Get("/growth-plans/:id", h.Get)
	router.Put("/growth-plans/:id", h.Update)
	router.Post("/growth-plans/:id/steps/:index/toggle", h.ToggleStep)
	router.Delete("/growth-plans/:id", h.Delete)
}
