package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/congo-pay/accounts/internal/account"
)

// RegisterAccountRoutes wires account listing and closure.
func RegisterAccountRoutes(r fiber.Router, h *account.Handler) {
	r.Get("/accounts", h.List)
	r.Delete("/accounts", h.Close)
}
