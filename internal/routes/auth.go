package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/koperasi-tentera/authapi/internal/auth"
)

// RegisterAuthRoutes wires the registration, verification, login-challenge
// and PIN endpoints.
func RegisterAuthRoutes(r fiber.Router, h *auth.Handler) {
	group := r.Group("/auth")
	group.Post("/register", h.Register)
	group.Post("/verify-email", h.VerifyEmail)
	group.Post("/verify-phone", h.VerifyPhone)
	group.Post("/login", h.Login)
	group.Post("/pin", h.CreatePIN)
	group.Put("/pin", h.UpdatePIN)
	group.Get("/users/:id", h.Profile)
}
