package discipleship

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/discipulado/internal/access"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type DiscipleshipHandler struct {
	service *DiscipleshipService
}

func NewDiscipleshipHandler(service *DiscipleshipService) *DiscipleshipHandler {
	return &DiscipleshipHandler{service: service}
}

func (h *DiscipleshipHandler) List(c *fiber.Ctx) error {
	v, err := access.GetViewer(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": true, "message": "Unauthorized"})
	}
	views, err := h.service.List(v)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": true, "message": "Failed to fetch discipleships"})
	}
	return c.JSON(fiber.Map{"data": views})
}

func (h *DiscipleshipHandler) Create(c *fiber.Ctx) error {
	v, err := access.GetViewer(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": true, "message": "Unauthorized"})
	}

	var req CreateDiscipleshipRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": true, "message": "Invalid request"})
	}

	d, err := h.service.Create(v, &req)
	if err != nil {
		return discipleshipError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(d)
}

func (h *DiscipleshipHandler) Delete(c *fiber.Ctx) error {
	v, err := access.GetViewer(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": true, "message": "Unauthorized"})
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": true, "message": "Invalid discipleship ID"})
	}

	if err := h.service.Delete(v, id); err != nil {
		return discipleshipError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *DiscipleshipHandler) ListMeetings(c *fiber.Ctx) error {
	v, err := access.GetViewer(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": true, "message": "Unauthorized"})
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": true, "message": "Invalid discipleship ID"})
	}

	meetings, err := h.service.ListMeetings(v, id)
	if err != nil {
		return discipleshipError(c, err)
	}
	return c.JSON(fiber.Map{"data": meetings})
}

func (h *DiscipleshipHandler) LogMeeting(c *fiber.Ctx) error {
	v, err := access.GetViewer(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": true, "message": "Unauthorized"})
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": true, "message": "Invalid discipleship ID"})
	}

	var req LogMeetingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": true, "message": "Invalid request"})
	}

	m, err := h.service.LogMeeting(v, id, &req)
	if err != nil {
		return discipleshipError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(m)
}

func (h *DiscipleshipHandler) DeleteMeeting(c *fiber.Ctx) error {
	v, err := access.GetViewer(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": true, "message": "Unauthorized"})
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": true, "message": "Invalid discipleship ID"})
	}
	meetingID, err := uuid.Parse(c.Params("meetingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": true, "message": "Invalid meeting ID"})
	}

	if err := h.service.DeleteMeeting(v, id, meetingID); err != nil {
		return discipleshipError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

func discipleshipError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrMeetingNotFound), errors.Is(err, ErrDiscipleNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": true, "message": err.Error()})
	case errors.Is(err, ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": true, "message": err.Error()})
	case errors.Is(err, ErrAlreadyLinked):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": true, "message": err.Error()})
	case errors.Is(err, ErrSelfLink), errors.Is(err, ErrInvalidLeader), errors.Is(err, ErrTopicRequired):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": true, "message": err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": true, "message": "Internal server error"})
}
