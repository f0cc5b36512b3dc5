package middleware

import (
	"slices"
	"strings"

	"github.com/ahmetcoskunkizilkaya/discipulado/internal/access"
	"github.com/ahmetcoskunkizilkaya/discipulado/internal/config"
	"github.com/ahmetcoskunkizilkaya/discipulado/internal/dto"
	"github.com/ahmetcoskunkizilkaya/discipulado/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// LoadRole resolves the caller's current role from the users table and
// stores it in Locals("role"). The role claim in the token may be stale
// after an admin changes it, so the database wins. Callers without a
// profile are rejected.
func LoadRole(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := access.GetUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		var user models.User
		if err := db.Select("id", "role").First(&user, "id = ?", userID).Error; err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Account not found",
			})
		}

		c.Locals("role", user.Role)
		return c.Next()
	}
}

// RequireRole lets the request through when the role resolved by LoadRole
// is one of roles.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if slices.Contains(roles, access.GetRole(c)) {
			return c.Next()
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Insufficient permissions",
		})
	}
}

// AdminRequired accepts, in order: the X-Admin-Token header, a token whose
// email or subject is listed in ADMIN_EMAILS / ADMIN_USER_IDS, or a user
// whose stored role is admin.
func AdminRequired(db *gorm.DB, cfg *config.Config) fiber.Handler {
	adminEmails := parseCSV(cfg.AdminEmails)
	adminUserIDs := parseCSV(cfg.AdminUserIDs)

	return func(c *fiber.Ctx) error {
		if cfg.AdminToken != "" && c.Get("X-Admin-Token") == cfg.AdminToken {
			c.Locals("role", models.RoleAdmin)
			return c.Next()
		}

		userID, err := access.GetUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		if contains(adminEmails, access.GetEmail(c)) || contains(adminUserIDs, userID.String()) {
			c.Locals("role", models.RoleAdmin)
			return c.Next()
		}

		var user models.User
		if err := db.Select("id", "role").First(&user, "id = ?", userID).Error; err == nil && user.Role == models.RoleAdmin {
			c.Locals("role", models.RoleAdmin)
			return c.Next()
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Admin access required",
		})
	}
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if strings.EqualFold(item, val) && val != "" {
			return true
		}
	}
	return false
}
