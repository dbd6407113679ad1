package handlers

import (
	"github.com/gofiber/fiber/v2"

	"taskboard/domain/dto"
	"taskboard/domain/services"
	"taskboard/pkg/logger"
	"taskboard/pkg/utils"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.UpdateUserRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}

	logger.InfoContext(ctx, "Profile update attempt", "user_id", user.ID)

	updated, err := h.userService.UpdateProfile(ctx, user.ID, &req)
	if err != nil {
		logger.ErrorContext(ctx, "Profile update failed", "user_id", user.ID, "error", err)
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, dto.UserToUserResponse(updated))
}

func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.ChangePasswordRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}

	if err := h.userService.ChangePassword(ctx, user.ID, &req); err != nil {
		logger.WarnContext(ctx, "Password change failed", "user_id", user.ID, "error", err)
		return utils.ServiceErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Password changed", "user_id", user.ID)

	return utils.MessageResponse(c, "Password changed successfully")
}

func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.PaginationRequest
	if ok, err := parseQuery(c, &req); !ok {
		return err
	}

	page, limit, offset := dto.Normalize(req.Page, req.Limit)
	users, total, err := h.userService.ListUsers(ctx, offset, limit)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to retrieve users", "error", err)
		return utils.ServiceErrorResponse(c, err)
	}

	responses := make([]dto.UserResponse, len(users))
	for i, user := range users {
		responses[i] = *dto.UserToUserResponse(user)
	}

	return utils.PaginatedSuccessResponse(c, responses, total, page, limit)
}
