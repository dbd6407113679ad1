package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"taskboard/pkg/logger"
	"taskboard/pkg/utils"
)

// Protected middleware validates JWT tokens and sets user context
func Protected(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return utils.UnauthorizedResponse(c, "Missing authorization header")
		}

		token := utils.ExtractTokenFromHeader(authHeader)
		if token == "" {
			return utils.UnauthorizedResponse(c, "Invalid authorization header format")
		}

		userCtx, err := utils.ValidateTokenStringToUUID(token, jwtSecret)
		if err != nil {
			logger.WarnContext(c.UserContext(), "Token validation failed", "error", err)
			switch {
			case errors.Is(err, utils.ErrExpiredToken):
				return utils.UnauthorizedResponse(c, "Token has expired")
			case errors.Is(err, utils.ErrInvalidToken):
				return utils.UnauthorizedResponse(c, "Invalid token")
			case errors.Is(err, utils.ErrMissingToken):
				return utils.UnauthorizedResponse(c, "Missing token")
			default:
				return utils.UnauthorizedResponse(c, "Token validation failed")
			}
		}

		utils.SetUserInContext(c, userCtx)
		return c.Next()
	}
}

// RequireRole lets the request through when the user holds any of roles.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := utils.GetUserFromContext(c)
		if err != nil {
			return utils.UnauthorizedResponse(c, "User not authenticated")
		}

		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}
		return utils.ForbiddenResponse(c, "Insufficient permissions")
	}
}

// Optional sets the user context when a valid token is present and never rejects.
// Browsers cannot set headers on websocket upgrades, so a "token" query value is accepted too.
func Optional(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := utils.ExtractTokenFromHeader(c.Get("Authorization"))
		if token == "" {
			token = c.Query("token")
		}
		if token == "" {
			return c.Next()
		}

		userCtx, err := utils.ValidateTokenStringToUUID(token, jwtSecret)
		if err != nil {
			return c.Next()
		}

		utils.SetUserInContext(c, userCtx)
		return c.Next()
	}
}
