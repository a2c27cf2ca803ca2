package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/recipebox/recipe-api/domain"
	"github.com/recipebox/recipe-api/internal/api/presenters"
	"github.com/recipebox/recipe-api/pkg/auth"
)

type (
	Middleware interface {
		CORSMiddleware() fiber.Handler
		AuthMiddleware(authService auth.AuthService) fiber.Handler
		StaffMiddleware() fiber.Handler
	}

	middleware struct{}
)

func NewMiddleware() Middleware {
	return &middleware{}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	})
}

// AuthMiddleware resolves the bearer token from the Authorization header
// to a user and stores the identity in the request locals.
func (m *middleware) AuthMiddleware(authService auth.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetToken, domain.ErrTokenNotFound)
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, domain.ErrTokenInvalid)
		}

		user, err := authService.ResolveToken(c.Context(), parts[1])
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, err)
		}

		c.Locals("user_id", user.ID.String())
		c.Locals("is_staff", user.IsStaff)
		return c.Next()
	}
}

func (m *middleware) StaffMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		isStaff, ok := c.Locals("is_staff").(bool)
		if !ok || !isStaff {
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageUserNotAllowed, domain.ErrUserNotAllowed)
		}
		return c.Next()
	}
}
