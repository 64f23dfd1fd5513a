package middleware

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/congo-pay/accounts/internal/apperr"
)

// Audit emits one structured log line per request. Rejections carrying a
// domain error kind are logged at warn, everything else that fails at error.
func Audit(logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		attrs := []any{
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Duration("duration", time.Since(start)),
		}
		if requestID := RequestIDFrom(c); requestID != "" {
			attrs = append(attrs, slog.String("request_id", requestID))
		}
		if err == nil {
			attrs = append(attrs, slog.Int("status", c.Response().StatusCode()))
			logger.Info("request completed", attrs...)
			return nil
		}

		// The error handler has not run yet, so derive the status it will write.
		if kind, ok := apperr.KindOf(err); ok {
			attrs = append(attrs, slog.Int("status", StatusFor(kind)), slog.String("error_code", string(kind)))
			logger.Warn("request rejected", attrs...)
			return err
		}
		attrs = append(attrs, slog.Any("error", err))
		logger.Error("request failed", attrs...)
		return err
	}
}
