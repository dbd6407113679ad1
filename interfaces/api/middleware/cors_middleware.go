package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

const defaultAllowedOrigin = "http://localhost:3000"

// CorsMiddleware answers CORS only for the configured origins; a wildcard is never emitted.
// Requests from any other origin get no Access-Control headers, and their preflight
// is answered with a bare 204.
func CorsMiddleware(allowedOrigins []string) fiber.Handler {
	origins := make([]string, 0, len(allowedOrigins))
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		if origin = strings.TrimSpace(origin); origin != "" && origin != "*" && !allowed[origin] {
			origins = append(origins, origin)
			allowed[origin] = true
		}
	}
	if len(origins) == 0 {
		origins = append(origins, defaultAllowedOrigin)
		allowed[defaultAllowedOrigin] = true
	}

	handler := cors.New(cors.Config{
		Next: func(c *fiber.Ctx) bool {
			return !allowed[c.Get(fiber.HeaderOrigin)]
		},
		AllowOrigins:     strings.Join(origins, ","),
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization,X-Requested-With," + RequestIDHeader,
		ExposeHeaders:    "Content-Length,Content-Type," + RequestIDHeader,
		AllowCredentials: true,
		MaxAge:           3600,
	})

	return func(c *fiber.Ctx) error {
		if allowed[c.Get(fiber.HeaderOrigin)] {
			return handler(c)
		}
		c.Vary(fiber.HeaderOrigin)
		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.Next()
	}
}
