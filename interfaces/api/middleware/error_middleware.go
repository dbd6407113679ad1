package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"taskboard/pkg/apperror"
	"taskboard/pkg/logger"
	"taskboard/pkg/utils"
)

// ErrorHandler renders errors that escape handlers in the standard envelope.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var appErr *apperror.Error
		if errors.As(err, &appErr) {
			logger.WarnContext(c.UserContext(), "Unhandled service error", "error", err)
			return utils.ServiceErrorResponse(c, err)
		}

		code := fiber.StatusInternalServerError
		errCode := utils.ErrCodeInternalError
		message := "Internal server error"

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
			message = fiberErr.Message
			switch code {
			case fiber.StatusBadRequest:
				errCode = utils.ErrCodeBadRequest
			case fiber.StatusUnauthorized:
				errCode = utils.ErrCodeUnauthorized
			case fiber.StatusForbidden:
				errCode = utils.ErrCodeForbidden
			case fiber.StatusNotFound:
				errCode = utils.ErrCodeNotFound
			case fiber.StatusConflict:
				errCode = utils.ErrCodeConflict
			default:
				if code < fiber.StatusInternalServerError {
					errCode = utils.ErrCodeBadRequest
				}
			}
		}

		if code >= fiber.StatusInternalServerError {
			logger.ErrorContext(c.UserContext(), "Request failed", "error", err)
		} else {
			logger.WarnContext(c.UserContext(), "Request rejected", "status", code, "error", err)
		}

		return utils.ErrorResponse(c, code, errCode, message, nil)
	}
}
