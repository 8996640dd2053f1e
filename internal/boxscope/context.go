package boxscope

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// GetUserID extracts the provider uid from JWT claims in context.
func GetUserID(c *fiber.Ctx) (string, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return "", errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("missing sub claim")
	}
	return sub, nil
}

// GetEmail extracts the identity email from JWT claims, "" for anonymous.
func GetEmail(c *fiber.Ctx) string {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return ""
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	email, _ := claims["email"].(string)
	return email
}

// GetBoxID extracts the :box_id route param.
func GetBoxID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("box_id"))
}

// GetRole returns the box role resolved by RequireRole, "" if not set.
func GetRole(c *fiber.Ctx) string {
	role, _ := c.Locals("box_role").(string)
	return role
}
