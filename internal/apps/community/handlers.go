package community

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/discipulado/internal/access"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type FeedHandler struct {
	service *FeedService
}

func NewFeedHandler(service *FeedService) *FeedHandler {
	return &FeedHandler{service: service}
}

type CreatePostRequest struct {
	Kind    string `json:"kind"`
	Content string `json:"content"`
}

type AddCommentRequest struct {
	Content string `json:"content"`
}

func pageParams(c *fiber.Ctx, maxLimit int) (int, int) {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > maxLimit {
		limit = 20
	}
	return page, limit
}

func (h *FeedHandler) GetFeed(c *fiber.Ctx) error {
	v, err := access.GetViewer(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": true, "message": "Unauthorized"})
	}
	page, limit := pageParams(c, 50)
	kind := c.Query("kind")
	if kind != "" && kind != KindPrayerRequest && kind != KindTestimony {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": true, "message": ErrInvalidKind.Error()})
	}

	posts, total, err := h.service.Feed(v, kind, page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": true, "message": "Failed to fetch feed"})
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"posts": posts,
			"pagination": fiber.Map{
				"page":        page,
				"limit":       limit,
				"total":       total,
				"total_pages": (total + int64(limit) - 1) / int64(limit),
			},
		},
	})
}

func (h *FeedHandler) Create(c *fiber.Ctx) error {
	userID, err := access.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": true, "message": "Unauthorized"})
	}

	var req CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": true, "message": "Invalid request"})
	}

	post, err := h.service.Create(userID, req.Kind, req.Content)
	if err != nil {
		return feedError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

func (h *FeedHandler) Pray(c *fiber.Ctx) error {
	userID, err := access.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": true, "message": "Unauthorized"})
	}
	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": true, "message": "Invalid post ID"})
	}

	praying, count, err := h.service.TogglePrayer(userID, postID)
	if err != nil {
		return feedError(c, err)
	}
	return c.JSON(fiber.Map{"praying": praying, "prayer_count": count})
}

func (h *FeedHandler) AddComment(c *fiber.Ctx) error {
	userID, err := access.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": true, "message": "Unauthorized"})
	}
	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": true, "message": "Invalid post ID"})
	}

	var req AddCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": true, "message": "Invalid request"})
	}

	comment, err := h.service.AddComment(userID, postID, req.Content)
	if err != nil {
		return feedError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

func (h *FeedHandler) GetComments(c *fiber.Ctx) error {
	v, err := access.GetViewer(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": true, "message": "Unauthorized"})
	}
	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": true, "message": "Invalid post ID"})
	}
	page, limit := pageParams(c, 100)

	comments, err := h.service.Comments(v, postID, page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": true, "message": "Failed to fetch comments"})
	}
	return c.JSON(fiber.Map{"data": comments})
}

func (h *FeedHandler) Delete(c *fiber.Ctx) error {
	v, err := access.GetViewer(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": true, "message": "Unauthorized"})
	}
	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": true, "message": "Invalid post ID"})
	}

	if err := h.service.Delete(v, postID); err != nil {
		return feedError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

func feedError(c *fiber.Ctx, err error) error {
	var rejected *RejectedError
	switch {
	case errors.As(err, &rejected):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": true, "message": rejected.Message, "reason": rejected.Reason,
		})
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": true, "message": err.Error()})
	case errors.Is(err, ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": true, "message": err.Error()})
	case errors.Is(err, ErrInvalidKind):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": true, "message": err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": true, "message": "Internal server error"})
}
