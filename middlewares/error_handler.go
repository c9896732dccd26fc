package middlewares

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/RKPROGRAMMING10K/ecommerce-backend/apperrors"
	"github.com/RKPROGRAMMING10K/ecommerce-backend/responses"
)

// NotFoundHandler terminates the chain for requests no route matched.
func NotFoundHandler(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(responses.ErrorResponse{
		Message: "Route not found",
	})
}

// ErrorHandler is the single boundary mapping errors returned by handlers
// to HTTP responses. Validation and not-found are the only classified
// failures; everything else is a 500 with the raw error detail.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var validationErr *apperrors.ValidationError
	var notFoundErr *apperrors.NotFoundError
	var fiberErr *fiber.Error

	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(responses.ErrorResponse{
			Message: validationErr.Message,
			Errors:  validationErr.Errors,
		})
	case errors.As(err, &notFoundErr):
		return c.Status(fiber.StatusNotFound).JSON(responses.ErrorResponse{
			Message: notFoundErr.Message,
		})
	case errors.As(err, &fiberErr):
		return c.Status(fiberErr.Code).JSON(responses.ErrorResponse{
			Message: fiberErr.Message,
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ErrorResponse{
			Message: "Server error",
			Error:   err.Error(),
		})
	}
}
