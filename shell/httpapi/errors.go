package httpapi

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/AntonStoeckl/school-library-lending/core"
	"github.com/AntonStoeckl/school-library-lending/inventory"
)

// StatusFor maps an error to its HTTP status code.
//
// An over-release is a capacity error by category but signals a broken invariant,
// so it is checked first and reported as an internal error.
func StatusFor(err error) int {
	var fiberErr *fiber.Error
	var validationErrs validator.ValidationErrors

	switch {
	case err == nil:
		return fiber.StatusOK
	case core.IsFatal(err), errors.Is(err, inventory.ErrUnbalancedTransaction):
		return fiber.StatusInternalServerError
	case errors.Is(err, core.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, core.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, core.ErrCapacity):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, core.ErrInvalidInput), errors.As(err, &validationErrs):
		return fiber.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return fiber.StatusServiceUnavailable
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	default:
		return fiber.StatusInternalServerError
	}
}

// errorHandler renders every error returned by a route as an error envelope.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	status := StatusFor(err)

	message := err.Error()
	if status == fiber.StatusInternalServerError {
		s.logError(logMsgInternalError, logAttrPath, c.Path(), logAttrReason, err.Error())
		message = "internal error"
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := make(map[string]string, len(validationErrs))
		for _, fieldErr := range validationErrs {
			details[fieldErr.Field()] = fieldErr.Tag()
		}

		return c.Status(status).JSON(envelope{Code: status, Status: statusError, Message: "validation failed", Errors: details})
	}

	return c.Status(status).JSON(envelope{Code: status, Status: statusError, Message: message})
}
