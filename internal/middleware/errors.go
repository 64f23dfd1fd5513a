package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/congo-pay/accounts/internal/apperr"
)

type errorBody struct {
	Code    string `json:"error_code"`
	Message string `json:"error_message"`
}

var kindStatus = map[apperr.Kind]int{
	apperr.UserNotFound:               http.StatusNotFound,
	apperr.AccountNotFound:            http.StatusNotFound,
	apperr.TransactionNotFound:        http.StatusNotFound,
	apperr.OwnerMismatch:              http.StatusForbidden,
	apperr.TransactionAccountMismatch: http.StatusForbidden,
	apperr.AccountAlreadyClosed:       http.StatusUnprocessableEntity,
	apperr.AmountExceedsBalance:       http.StatusUnprocessableEntity,
	apperr.CancelMustBeFull:           http.StatusUnprocessableEntity,
	apperr.TooOldToCancel:             http.StatusUnprocessableEntity,
	apperr.BalanceNotEmpty:            http.StatusUnprocessableEntity,
	apperr.LockUnavailable:            http.StatusServiceUnavailable,
	apperr.InvalidRequest:             http.StatusBadRequest,
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind apperr.Kind) int {
	if status, ok := kindStatus[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// ErrorHandler renders domain errors as {"error_code","error_message"}.
// Anything unclassified is logged and reported as INTERNAL_ERROR.
func ErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			return c.Status(StatusFor(appErr.Kind)).JSON(errorBody{
				Code:    string(appErr.Kind),
				Message: appErr.Message,
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(errorBody{
				Code:    strings.ToUpper(strings.ReplaceAll(http.StatusText(fiberErr.Code), " ", "_")),
				Message: fiberErr.Message,
			})
		}

		requestID, _ := c.Locals(requestIDHeader).(string)
		logger.Error("unhandled error",
			slog.String("path", c.Path()),
			slog.String("request_id", requestID),
			slog.Any("error", err),
		)
		return c.Status(http.StatusInternalServerError).JSON(errorBody{
			Code:    "INTERNAL_ERROR",
			Message: "internal server error",
		})
	}
}
