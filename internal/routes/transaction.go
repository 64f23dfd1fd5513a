package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/congo-pay/accounts/internal/transaction"
)

// RegisterTransactionRoutes wires balance use, cancel and lookup.
func RegisterTransactionRoutes(r fiber.Router, h *transaction.Handler) {
	g := r.Group("/transaction")
	g.Post("/use", h.Use)
	g.Post("/cancel", h.Cancel)
	g.Get("/:transactionId", h.Get)
}
