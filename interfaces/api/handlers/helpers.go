package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"taskboard/domain/models"
	"taskboard/pkg/logger"
	"taskboard/pkg/utils"
)

// currentActor builds the permission actor from the JWT user set by Protected.
func currentActor(c *fiber.Ctx) (*models.Actor, error) {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return nil, err
	}
	return &models.Actor{ID: user.ID, Role: user.Role}, nil
}

// uuidParam parses a route parameter, writing a 400 response when it is malformed.
func uuidParam(c *fiber.Ctx, name, label string) (uuid.UUID, bool, error) {
	raw := c.Params(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		logger.WarnContext(c.UserContext(), "Invalid "+label+" ID", name, raw)
		return uuid.Nil, false, utils.BadRequestResponse(c, "Invalid "+label+" ID")
	}
	return id, true, nil
}

func unauthorized(c *fiber.Ctx) error {
	logger.WarnContext(c.UserContext(), "Unauthorized access attempt")
	return utils.UnauthorizedResponse(c, "")
}

func parseAndValidate(c *fiber.Ctx, req any) (bool, error) {
	ctx := c.UserContext()
	if err := c.BodyParser(req); err != nil {
		logger.WarnContext(ctx, "Invalid request body", "error", err)
		return false, utils.BadRequestResponse(c, "Invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		errors := utils.GetValidationErrors(err)
		logger.WarnContext(ctx, "Validation failed", "errors", errors)
		return false, utils.ValidationErrorResponse(c, errors)
	}
	return true, nil
}

func parseQuery(c *fiber.Ctx, req any) (bool, error) {
	ctx := c.UserContext()
	if err := c.QueryParser(req); err != nil {
		logger.WarnContext(ctx, "Invalid query parameters", "error", err)
		return false, utils.BadRequestResponse(c, "Invalid query parameters")
	}
	if err := utils.ValidateStruct(req); err != nil {
		errors := utils.GetValidationErrors(err)
		logger.WarnContext(ctx, "Validation failed", "errors", errors)
		return false, utils.ValidationErrorResponse(c, errors)
	}
	return true, nil
}
