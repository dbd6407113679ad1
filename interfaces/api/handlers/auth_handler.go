package handlers

import (
	"github.com/gofiber/fiber/v2"

	"taskboard/domain/dto"
	"taskboard/domain/services"
	"taskboard/pkg/apperror"
	"taskboard/pkg/logger"
	"taskboard/pkg/utils"
)

type AuthHandler struct {
	userService services.UserService
}

func NewAuthHandler(userService services.UserService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
	}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.RegisterRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}

	logger.InfoContext(ctx, "Registration attempt", "email", req.Email, "username", req.Username)

	user, err := h.userService.Register(ctx, &req)
	if err != nil {
		logger.WarnContext(ctx, "Registration failed", "email", req.Email, "error", err)
		return utils.ServiceErrorResponse(c, err)
	}

	token, err := h.userService.GenerateJWT(user)
	if err != nil {
		logger.ErrorContext(ctx, "Token generation failed", "user_id", user.ID, "error", err)
		return utils.InternalServerErrorResponse(c)
	}

	logger.InfoContext(ctx, "User registered", "user_id", user.ID, "email", user.Email)

	return utils.CreatedResponse(c, &dto.RegisterResponse{
		Token: token,
		User:  *dto.UserToUserResponse(user),
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.LoginRequest
	if ok, err := parseAndValidate(c, &req); !ok {
		return err
	}

	logger.InfoContext(ctx, "Login attempt", "email", req.Email)

	token, user, err := h.userService.Login(ctx, &req)
	if err != nil {
		logger.WarnContext(ctx, "Login failed", "email", req.Email, "reason", err.Error())
		if apperror.KindOf(err) == apperror.KindInternal {
			return utils.InternalServerErrorResponse(c)
		}
		return utils.UnauthorizedResponse(c, "Invalid credentials")
	}

	logger.InfoContext(ctx, "Login successful", "user_id", user.ID, "email", user.Email)

	return utils.SuccessResponse(c, &dto.LoginResponse{
		Token: token,
		User:  *dto.UserToUserResponse(user),
	})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	profile, err := h.userService.GetProfile(ctx, user.ID)
	if err != nil {
		logger.WarnContext(ctx, "Profile not found", "user_id", user.ID)
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, dto.UserToUserResponse(profile))
}
