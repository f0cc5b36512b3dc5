package apps

import (
	"github.com/ahmetcoskunkizilkaya/discipulado/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Plugin is a feature module of the API.
type Plugin interface {
	// ID returns the module name used in logs.
	ID() string

	// Models returns the GORM models the module owns, for AutoMigrate.
	// Modules working on shared tables return nil.
	Models() []interface{}

	// RegisterRoutes mounts module routes on the given Fiber group.
	// The group is prefixed with /api/p and already requires a JWT with a
	// resolved role.
	RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config)
}

// AdminPlugin extends Plugin with admin-only routes.
type AdminPlugin interface {
	Plugin

	// RegisterAdminRoutes mounts admin-only routes on the given Fiber group.
	// The group has both JWT and Admin middleware applied.
	RegisterAdminRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config)
}
