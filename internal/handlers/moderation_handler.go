package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/ahmetcoskunkizilkaya/discipulado/internal/access"
	"github.com/ahmetcoskunkizilkaya/discipulado/internal/dto"
	"github.com/ahmetcoskunkizilkaya/discipulado/internal/models"
	"github.com/ahmetcoskunkizilkaya/discipulado/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ModerationHandler serves mural reports and member blocks. Filtering of
// new posts happens inside the community module.
type ModerationHandler struct {
	moderationService *services.ModerationService
}

func NewModerationHandler(moderationService *services.ModerationService) *ModerationHandler {
	return &ModerationHandler{moderationService: moderationService}
}

func moderationError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: msg})
}

// CreateReport flags a mural post or comment for the admin queue.
func (h *ModerationHandler) CreateReport(c *fiber.Ctx) error {
	userID, err := access.GetUserID(c)
	if err != nil {
		return moderationError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.CreateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return moderationError(c, fiber.StatusBadRequest, "Invalid report: content_id must be a mural post or comment ID")
	}

	report, err := h.moderationService.CreateReport(userID, &req)
	switch {
	case errors.Is(err, services.ErrInvalidContentType),
		errors.Is(err, services.ErrMissingContentID),
		errors.Is(err, services.ErrReasonRequired):
		return moderationError(c, fiber.StatusBadRequest, err.Error())
	case err != nil:
		return moderationError(c, fiber.StatusInternalServerError, "Failed to file report")
	}

	return c.Status(fiber.StatusCreated).JSON(toReportResponse(report))
}

// BlockUser hides the target member's mural activity from the caller.
func (h *ModerationHandler) BlockUser(c *fiber.Ctx) error {
	blockerID, err := access.GetUserID(c)
	if err != nil {
		return moderationError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.BlockUserRequest
	if err := c.BodyParser(&req); err != nil || req.BlockedID == uuid.Nil {
		return moderationError(c, fiber.StatusBadRequest, "blocked_id must be a member ID")
	}

	if err := h.moderationService.BlockUser(blockerID, req.BlockedID); err != nil {
		if errors.Is(err, services.ErrSelfBlock) || errors.Is(err, services.ErrAlreadyBlocked) {
			return moderationError(c, fiber.StatusConflict, err.Error())
		}
		return moderationError(c, fiber.StatusInternalServerError, "Failed to block member")
	}

	return c.JSON(fiber.Map{"message": "Member hidden from your mural"})
}

func (h *ModerationHandler) UnblockUser(c *fiber.Ctx) error {
	blockerID, err := access.GetUserID(c)
	if err != nil {
		return moderationError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	blockedID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return moderationError(c, fiber.StatusBadRequest, "Invalid member ID")
	}

	if err := h.moderationService.UnblockUser(blockerID, blockedID); err != nil {
		return moderationError(c, fiber.StatusInternalServerError, "Failed to unblock member")
	}

	return c.JSON(fiber.Map{"message": "Member visible on your mural again"})
}

// ListReports pages through the report queue, newest first. An empty
// status lists every report.
func (h *ModerationHandler) ListReports(c *fiber.Ctx) error {
	status := c.Query("status", "")
	if status != "" && !services.ValidReportStatus(status) {
		return moderationError(c, fiber.StatusBadRequest, "status must be pending, reviewed, actioned or dismissed")
	}

	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	reports, total, err := h.moderationService.ListReports(status, limit, offset)
	if err != nil {
		return moderationError(c, fiber.StatusInternalServerError, "Failed to fetch reports")
	}

	resp := dto.ReportListResponse{
		Reports: make([]dto.ReportResponse, 0, len(reports)),
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	}
	for i := range reports {
		resp.Reports = append(resp.Reports, toReportResponse(&reports[i]))
	}
	return c.JSON(resp)
}

func (h *ModerationHandler) ActionReport(c *fiber.Ctx) error {
	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return moderationError(c, fiber.StatusBadRequest, "Invalid report ID")
	}

	var req dto.ActionReportRequest
	if err := c.BodyParser(&req); err != nil {
		return moderationError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.moderationService.ActionReport(reportID, &req); err != nil {
		switch {
		case errors.Is(err, services.ErrReportNotFound):
			return moderationError(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrInvalidReportStatus):
			return moderationError(c, fiber.StatusBadRequest, err.Error())
		}
		return moderationError(c, fiber.StatusInternalServerError, "Failed to update report")
	}

	return c.JSON(fiber.Map{"message": "Report " + req.Status})
}

func toReportResponse(r *models.Report) dto.ReportResponse {
	return dto.ReportResponse{
		ID:          r.ID,
		ReporterID:  r.ReporterID,
		ContentType: r.ContentType,
		ContentID:   r.ContentID,
		Reason:      r.Reason,
		Status:      r.Status,
		AdminNote:   r.AdminNote,
		CreatedAt:   r.CreatedAt.Format(time.RFC3339),
	}
}
