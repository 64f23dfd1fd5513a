package transaction

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/congo-pay/accounts/internal/apperr"
	"github.com/congo-pay/accounts/internal/lock"
)

func newHandlerApp(t *testing.T) *fiber.App {
	t.Helper()
	svc, _ := newTestService(t, lock.NewLocalLocker(time.Second), nil)
	h := NewHandler(svc)

	// Reports the error kind as a header so assertions do not depend on
	// the production error renderer.
	app := fiber.New(fiber.Config{ErrorHandler: func(c *fiber.Ctx, err error) error {
		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			c.Set("X-Error-Kind", string(appErr.Kind))
			return c.SendStatus(fiber.StatusBadRequest)
		}
		return c.SendStatus(fiber.StatusInternalServerError)
	}})
	app.Post("/use", h.Use)
	app.Post("/cancel", h.Cancel)
	app.Get("/:transactionId", h.Get)
	return app
}

func send(t *testing.T, app *fiber.App, path string, body any) (int, string, Result) {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(fiber.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	var res Result
	if resp.StatusCode == fiber.StatusCreated {
		if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
			t.Fatalf("decode: %v", err)
		}
	}
	return resp.StatusCode, resp.Header.Get("X-Error-Kind"), res
}

func TestHandlerUseValidation(t *testing.T) {
	app := newHandlerApp(t)

	tests := []struct {
		name string
		body UseBalanceRequest
	}{
		{"zero user", UseBalanceRequest{UserID: 0, AccountNumber: "1000000012", Amount: 100}},
		{"long account number", UseBalanceRequest{UserID: 1, AccountNumber: "10000000120", Amount: 100}},
		{"amount too small", UseBalanceRequest{UserID: 1, AccountNumber: "1000000012", Amount: 9}},
		{"amount too large", UseBalanceRequest{UserID: 1, AccountNumber: "1000000012", Amount: 1_000_000_001}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, kind, _ := send(t, app, "/use", tc.body)
			if status != fiber.StatusBadRequest || kind != string(apperr.InvalidRequest) {
				t.Fatalf("expected INVALID_REQUEST, got %d %q", status, kind)
			}
		})
	}
}

func TestHandlerUseAndCancel(t *testing.T) {
	app := newHandlerApp(t)

	status, kind, used := send(t, app, "/use", UseBalanceRequest{UserID: 1, AccountNumber: "1000000012", Amount: 10})
	if status != fiber.StatusCreated {
		t.Fatalf("use: %d %q", status, kind)
	}
	if used.TransactionType != "USE" || used.BalanceSnapshot != 9990 {
		t.Fatalf("unexpected result %+v", used)
	}

	status, kind, _ = send(t, app, "/cancel", CancelBalanceRequest{TransactionID: "  ", AccountNumber: "1000000012", Amount: 10})
	if status != fiber.StatusBadRequest || kind != string(apperr.InvalidRequest) {
		t.Fatalf("expected blank transaction id to be rejected, got %d %q", status, kind)
	}

	status, kind, cancelled := send(t, app, "/cancel", CancelBalanceRequest{TransactionID: used.TransactionID, AccountNumber: "1000000012", Amount: 10})
	if status != fiber.StatusCreated {
		t.Fatalf("cancel: %d %q", status, kind)
	}
	if cancelled.TransactionType != "CANCEL" || cancelled.BalanceSnapshot != 10000 {
		t.Fatalf("unexpected result %+v", cancelled)
	}

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/"+used.TransactionID, nil), -1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("get: expected 200, got %d", resp.StatusCode)
	}
}
