package middleware

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/congo-pay/accounts/internal/apperr"
	"github.com/congo-pay/accounts/internal/logging"
)

func TestErrorHandlerRendersKinds(t *testing.T) {
	tests := []struct {
		err      error
		status   int
		wantCode string
	}{
		{apperr.Newf(apperr.AccountNotFound, "account 1 not found"), fiber.StatusNotFound, "ACCOUNT_NOT_FOUND"},
		{apperr.New(apperr.OwnerMismatch), fiber.StatusForbidden, "OWNER_MISMATCH"},
		{apperr.New(apperr.CancelMustBeFull), fiber.StatusUnprocessableEntity, "CANCEL_MUST_BE_FULL"},
		{apperr.New(apperr.LockUnavailable), fiber.StatusServiceUnavailable, "LOCK_UNAVAILABLE"},
		{apperr.New(apperr.InvalidRequest), fiber.StatusBadRequest, "INVALID_REQUEST"},
		{fiber.NewError(fiber.StatusConflict, "dup"), fiber.StatusConflict, "CONFLICT"},
		{errors.New("boom"), fiber.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tc := range tests {
		t.Run(tc.wantCode, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(logging.Discard())})
			app.Get("/", func(*fiber.Ctx) error { return tc.err })

			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tc.status {
				t.Fatalf("expected %d got %d", tc.status, resp.StatusCode)
			}
			var body errorBody
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Code != tc.wantCode || body.Message == "" {
				t.Fatalf("unexpected body %+v", body)
			}
		})
	}
}
