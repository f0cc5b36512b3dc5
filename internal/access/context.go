package access

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Viewer is the authenticated caller a request acts on behalf of.
type Viewer struct {
	UserID uuid.UUID
	Role   string
}

// GetUserID extracts the user UUID from JWT claims in context.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	claims, err := claimsFrom(c)
	if err != nil {
		return uuid.Nil, err
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing sub claim")
	}

	return uuid.Parse(sub)
}

// GetRole returns the role resolved by the role middleware, falling back to
// the role claim carried by the access token.
func GetRole(c *fiber.Ctx) string {
	if role, ok := c.Locals("role").(string); ok && role != "" {
		return role
	}
	claims, err := claimsFrom(c)
	if err != nil {
		return ""
	}
	role, _ := claims["role"].(string)
	return role
}

// GetEmail returns the email claim, or "" when absent.
func GetEmail(c *fiber.Ctx) string {
	claims, err := claimsFrom(c)
	if err != nil {
		return ""
	}
	email, _ := claims["email"].(string)
	return email
}

// GetViewer combines GetUserID and GetRole.
func GetViewer(c *fiber.Ctx) (Viewer, error) {
	id, err := GetUserID(c)
	if err != nil {
		return Viewer{}, err
	}
	return Viewer{UserID: id, Role: GetRole(c)}, nil
}

func claimsFrom(c *fiber.Ctx) (jwt.MapClaims, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return nil, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	return claims, nil
}
