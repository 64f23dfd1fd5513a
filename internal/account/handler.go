package account

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/congo-pay/accounts/internal/apperr"
)

// Handler exposes account HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds an account HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type closeRequest struct {
	UserID        int64  `json:"user_id"`
	AccountNumber string `json:"account_number"`
}

type accountResponse struct {
	UserID        int64      `json:"user_id"`
	AccountNumber string     `json:"account_number"`
	Status        Status     `json:"status"`
	Balance       int64      `json:"balance"`
	RegisteredAt  time.Time  `json:"registered_at"`
	ClosedAt      *time.Time `json:"closed_at,omitempty"`
}

func toResponse(a Account) accountResponse {
	return accountResponse{
		UserID:        a.UserID,
		AccountNumber: a.Number,
		Status:        a.Status,
		Balance:       a.Balance,
		RegisteredAt:  a.RegisteredAt,
		ClosedAt:      a.ClosedAt,
	}
}

// Close handles account closure.
func (h *Handler) Close(c *fiber.Ctx) error {
	var req closeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Wrap(apperr.InvalidRequest, err)
	}
	if req.UserID < 1 || len(req.AccountNumber) != 10 {
		return apperr.Newf(apperr.InvalidRequest, "user_id must be positive and account_number must have 10 digits")
	}
	acct, err := h.service.Close(c.UserContext(), req.UserID, req.AccountNumber)
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(toResponse(acct))
}

// List returns the accounts owned by the user_id query parameter.
func (h *Handler) List(c *fiber.Ctx) error {
	userID := int64(c.QueryInt("user_id"))
	if userID < 1 {
		return apperr.Newf(apperr.InvalidRequest, "user_id query parameter must be positive")
	}
	accounts, err := h.service.ListByUser(c.UserContext(), userID)
	if err != nil {
		return err
	}
	out := make([]accountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, toResponse(a))
	}
	return c.Status(http.StatusOK).JSON(out)
}
