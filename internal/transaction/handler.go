package transaction

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/congo-pay/accounts/internal/apperr"
)

// Handler exposes transaction HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a transaction HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Use handles balance debits.
func (h *Handler) Use(c *fiber.Ctx) error {
	var req UseBalanceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Wrap(apperr.InvalidRequest, err)
	}
	if req.UserID < 1 {
		return apperr.Newf(apperr.InvalidRequest, "user_id must be positive")
	}
	if err := validateAccountAndAmount(req.AccountNumber, req.Amount); err != nil {
		return err
	}
	res, err := h.service.UseBalance(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(res)
}

// Cancel handles reversals of prior debits.
func (h *Handler) Cancel(c *fiber.Ctx) error {
	var req CancelBalanceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Wrap(apperr.InvalidRequest, err)
	}
	req.TransactionID = strings.TrimSpace(req.TransactionID)
	if req.TransactionID == "" {
		return apperr.Newf(apperr.InvalidRequest, "transaction_id is required")
	}
	if err := validateAccountAndAmount(req.AccountNumber, req.Amount); err != nil {
		return err
	}
	res, err := h.service.CancelBalance(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(res)
}

// Get returns a single transaction by its public id.
func (h *Handler) Get(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("transactionId"))
	if id == "" {
		return apperr.Newf(apperr.InvalidRequest, "transaction id is required")
	}
	res, err := h.service.QueryTransaction(c.UserContext(), QueryTransactionRequest{TransactionID: id})
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(res)
}

func validateAccountAndAmount(number string, amount int64) error {
	if len(number) != accountNumberLength {
		return apperr.Newf(apperr.InvalidRequest, "account_number must have %d digits", accountNumberLength)
	}
	if amount < minAmount || amount > maxAmount {
		return apperr.Newf(apperr.InvalidRequest, "amount must be between %d and %d", minAmount, maxAmount)
	}
	return nil
}
