package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/carehub/patient-portal/internal/api/metrics"
)

// IdempotencyHeader names the request header carrying the submission key.
const IdempotencyHeader = "Idempotency-Key"

// SubmissionGuard records submission keys that have already been processed.
type SubmissionGuard interface {
	Claim(ctx context.Context, scope, key string) (bool, error)
	Release(ctx context.Context, scope, key string) error
}

// Idempotency rejects a repeated Idempotency-Key for scope with 409. Requests
// without the header pass through untouched. When the guard itself fails the
// request is served anyway. A claim is released again if the handler fails
// or panics, so the client can retry with the same key.
func Idempotency(guard SubmissionGuard, scope string, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			key := c.Request().Header.Get(IdempotencyHeader)
			if key == "" {
				return next(c)
			}

			ctx := c.Request().Context()
			first, err := guard.Claim(ctx, scope, key)
			if err != nil {
				log.Warn().Err(err).Str("scope", scope).Msg("submission guard unavailable")
				return next(c)
			}
			if !first {
				metrics.DuplicateSubmissionsTotal.WithLabelValues(scope).Inc()
				return c.JSON(http.StatusConflict, map[string]string{"error": "duplicate submission"})
			}

			completed := false
			defer func() {
				if completed && err == nil && c.Response().Status < http.StatusBadRequest {
					return
				}
				if relErr := guard.Release(context.WithoutCancel(ctx), scope, key); relErr != nil {
					log.Warn().Err(relErr).Str("scope", scope).Msg("release submission key")
				}
			}()

			err = next(c)
			completed = true
			return err
		}
	}
}
