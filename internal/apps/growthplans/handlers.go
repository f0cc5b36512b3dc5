package growthplans

import (
	"errors"
	"strconv"

	"github.com/ahmetcoskunkizilkaya/discipulado/internal/access"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type PlanHandler struct {
	service *PlanService
}

func NewPlanHandler(service *PlanService) *PlanHandler {
	return &PlanHandler{service: service}
}

func (h *PlanHandler) List(c *fiber.Ctx) error {
	v, err := access.GetViewer(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": true, "message": "Unauthorized"})
	}
	plans, err := h.service.List(v, c.Query("status"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": true, "message": "Failed to fetch growth plans"})
	}
	return c.JSON(fiber.Map{"data": plans})
}

func (h *PlanHandler) Get(c *fiber.Ctx) error {
	v, err := access.GetViewer(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": true, "message": "Unauthorized"})
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": true, "message": "Invalid plan ID"})
	}
	plan, err := h.service.Get(v, id)
	if err != nil {
		return planError(c, err)
	}
	return c.JSON(plan)
}

func (h *PlanHandler) Create(c *fiber.Ctx) error {
	v, err := access.GetViewer(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": true, "message": "Unauthorized"})
	}

	var req CreatePlanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": true, "message": "Invalid request"})
	}

	plan, err := h.service.Create(v, &req)
	if err != nil {
		return planError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(plan)
}

func (h *PlanHandler) Update(c *fiber.Ctx) error {
	v, err := access.GetViewer(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": true, "message": "Unauthorized"})
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": true, "message": "Invalid plan ID"})
	}

	var req UpdatePlanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": true, "message": "Invalid request"})
	}

	plan, err := h.service.Update(v, id, &req)
	if err != nil {
		return planError(c, err)
	}
	return c.JSON(plan)
}

func (h *PlanHandler) ToggleStep(c *fiber.Ctx) error {
	v, err := access.GetViewer(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": true, "message": "Unauthorized"})
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": true, "message": "Invalid plan ID"})
	}
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": true, "message": "Invalid step index"})
	}

	plan, err := h.service.ToggleStep(v, id, index)
	if err != nil {
		return planError(c, err)
	}
	return c.JSON(plan)
}

func (h *PlanHandler) Delete(c *fiber.Ctx) error {
	v, err := access.GetViewer(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": true, "message": "Unauthorized"})
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": true, "message": "Invalid plan ID"})
	}

	if err := h.service.Delete(v, id); err != nil {
		return planError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

func planError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": true, "message": err.Error()})
	case errors.Is(err, ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": true, "message": err.Error()})
	case errors.Is(err, ErrTitleRequired), errors.Is(err, ErrInvalidStep):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": true, "message": err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": true, "message": "Internal server error"})
}
