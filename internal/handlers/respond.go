package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"collab-service/internal/domain"
)

// respondError translates service-layer errors to the API's status
// conventions: 422 per-field validation, 403 authorization, 404 not-found or
// mismatched parent, 409 conflicting membership transition, 401 bad
// credentials, 500 for anything unexpected.
func respondError(c *fiber.Ctx, err error) error {
	var ve domain.ValidationErrors
	if errors.As(err, &ve) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"errors": ve,
		})
	}

	switch {
	case errors.Is(err, domain.ErrProjectNotFound),
		errors.Is(err, domain.ErrTodoNotFound),
		errors.Is(err, domain.ErrNoteNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrNoPendingRequest),
		errors.Is(err, domain.ErrNotMember):
		return respondStatus(c, fiber.StatusNotFound, err)

	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrNotOwner),
		errors.Is(err, domain.ErrOwnerLeave):
		return respondStatus(c, fiber.StatusForbidden, err)

	case errors.Is(err, domain.ErrAlreadyMember),
		errors.Is(err, domain.ErrRequestPending),
		errors.Is(err, domain.ErrOwnerJoin),
		errors.Is(err, domain.ErrDuplicateJoin):
		return respondStatus(c, fiber.StatusConflict, err)

	case errors.Is(err, domain.ErrBadCredentials):
		return respondStatus(c, fiber.StatusUnauthorized, err)
	}

	log.Printf("Unexpected error handling %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   true,
		"message": "Internal server error",
	})
}

func respondStatus(c *fiber.Ctx, status int, err error) error {
	return c.Status(status).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

// badRequest reports a malformed request body or path parameter.
func badRequest(c *fiber.Ctx, message string, err error) error {
	log.Printf("Bad request on %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":   true,
		"message": message,
		"details": err.Error(),
	})
}

// paginated wraps a page of results in the list envelope.
func paginated(c *fiber.Ctx, data interface{}, page, perPage int, total int64) error {
	return c.JSON(fiber.Map{
		"data":     data,
		"page":     page,
		"per_page": perPage,
		"total":    total,
	})
}

// pageParam reads the 1-based page number from the query string.
func pageParam(c *fiber.Ctx) int {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	return page
}
