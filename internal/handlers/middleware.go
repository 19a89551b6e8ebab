package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"collab-service/internal/auth"
	"collab-service/internal/domain"
	"collab-service/internal/models"
)

const localsUserKey = "currentUser"

// RequireAuth resolves the Bearer token to a user and stores it in the
// request locals. Requests without a valid token never reach the membership
// or access logic.
func RequireAuth(users domain.UserStore, jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return unauthenticated(c)
		}

		userID, err := auth.ParseToken(token, jwtSecret)
		if err != nil {
			return unauthenticated(c)
		}
		user, err := users.GetUserByID(userID)
		if err != nil {
			return unauthenticated(c)
		}

		c.Locals(localsUserKey, user)
		return c.Next()
	}
}

// currentUser returns the authenticated actor stored by RequireAuth.
func currentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(localsUserKey).(*models.User)
	return user
}

func unauthenticated(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error":   true,
		"message": "Unauthenticated.",
	})
}
