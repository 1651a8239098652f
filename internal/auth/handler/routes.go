package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/danieltanr/webauth/internal/auth/domain"
)

func RegisterRoutes(app *fiber.App, h *AuthHandler) {
	users := app.Group("/api/v1/users")

	users.Post("/signup", h.Signup)
	users.Post("/login", h.Login)
	users.Post("/forgotPassword", h.ForgotPassword)
	users.Patch("/resetPassword/:token", h.ResetPassword)

	users.Get("/me", h.Protect, h.Me)
	users.Patch("/updatePassword", h.Protect, h.UpdatePassword)

	// Admin-only endpoints
	users.Get("/", h.Protect, h.RequireRole(domain.RoleAdmin), h.ListUsers)
}
