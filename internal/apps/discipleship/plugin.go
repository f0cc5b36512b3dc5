package discipleship

import (
	"github.com/ahmetcoskunkizilkaya/discipulado/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Plugin serves discipulados and their encontros. Both tables are shared
// models written by the seed workflow as well.
type Plugin struct{}

func New() *Plugin {
	return &Plugin{}
}

func (p *Plugin) ID() string { return "discipleship" }

func (p *Plugin) Models() []interface{} { return nil }

func (p *Plugin) RegisterRoutes(router fiber.Router, db *gorm.DB, _ *config.Config) {
	h := NewDiscipleshipHandler(NewDiscipleshipService(db))

	router.Get("/discipleships", h.List)
	router.Post("/discipleships", h.Create)
	router.Delete("/discipleships/:id", h.Delete)

	router.Get("/discipleships/:id/meetings", h.ListMeetings)
	router.Post("/discipleships/:id/meetings", h.LogMeeting)
	router.Delete("/discipleships/:id/meetings/:meetingId", h.DeleteMeeting)
}
