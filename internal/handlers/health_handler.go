package handlers

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/discipulado/internal/database"
	"github.com/ahmetcoskunkizilkaya/discipulado/internal/dto"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db      *gorm.DB
	modules int
}

func NewHealthHandler(db *gorm.DB, modules int) *HealthHandler {
	return &HealthHandler{db: db, modules: modules}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "ok"
	if err := database.Ping(h.db); err != nil {
		dbStatus = "unhealthy: " + err.Error()
	}

	return c.JSON(dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
		Modules:   h.modules,
	})
}
