package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/discipulado/internal/config"
	"github.com/ahmetcoskunkizilkaya/discipulado/internal/dto"
	"github.com/ahmetcoskunkizilkaya/discipulado/internal/seed"
	"github.com/ahmetcoskunkizilkaya/discipulado/internal/services"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SeedResponse carries the demo credentials of a finished run. Credentials
// is null when the run stopped early because no groups exist.
type SeedResponse struct {
	Error         bool                `json:"error,omitempty"`
	Message       string              `json:"message,omitempty"`
	Credentials   *seed.Credentials   `json:"credentials"`
	Notifications []seed.Notification `json:"notifications"`
}

// SeedHandler lets an administrator generate demo data from the API.
type SeedHandler struct {
	db   *gorm.DB
	cfg  *config.Config
	auth *services.AuthService
}

func NewSeedHandler(db *gorm.DB, cfg *config.Config, auth *services.AuthService) *SeedHandler {
	return &SeedHandler{db: db, cfg: cfg, auth: auth}
}

func (h *SeedHandler) Run(c *fiber.Ctx) error {
	if !h.cfg.SeedEnabled {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Seeding is disabled on this server",
		})
	}

	var req dto.SeedRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid request body",
			})
		}
	}

	profile, err := seed.ProfileFromConfig(h.cfg)
	if err != nil {
		slog.Error("seed profile unreadable", "stage", "seed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Seed profile is invalid",
		})
	}
	applySeedRequest(&profile, &req)
	if err := profile.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	notes := &seed.Collector{}
	logger := slog.Default().With("request_id", requestID(c))
	seeder := seed.New(seed.NewGormStore(h.db, h.auth), profile,
		seed.WithNotifier(notes),
		seed.WithLogger(logger),
	)

	creds, err := seeder.Run()
	if err != nil {
		if hub := sentryfiber.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
		status := fiber.StatusInternalServerError
		if errors.Is(err, seed.ErrEmptyLeaderPool) {
			status = fiber.StatusUnprocessableEntity
		}
		return c.Status(status).JSON(SeedResponse{
			Error:         true,
			Message:       err.Error(),
			Notifications: notes.All(),
		})
	}

	return c.JSON(SeedResponse{
		Credentials:   creds,
		Notifications: notes.All(),
	})
}

func applySeedRequest(p *seed.Profile, req *dto.SeedRequest) {
	set := func(dst *int, v *int) {
		if v != nil {
			*dst = *v
		}
	}
	set(&p.Counts.Admin, req.Admins)
	set(&p.Counts.Pastor, req.Pastors)
	set(&p.Counts.Leader, req.Leaders)
	set(&p.Counts.Member, req.Members)
	set(&p.Locations, req.Locations)
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals("requestid").(string)
	return id
}
