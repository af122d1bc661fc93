package logger

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type ContextKey string

const (
	RequestIDKey ContextKey = "requestID"
	KindKey      ContextKey = "kind"
)

// WithContext returns an entry carrying the request fields stored in ctx.
func WithContext(ctx context.Context) *logrus.Entry {
	entry := GetAppLogger().WithContext(ctx)
	if id := ctx.Value(RequestIDKey); id != nil {
		entry = entry.WithField("request_id", id)
	}
	if kind := ctx.Value(KindKey); kind != nil {
		entry = entry.WithField("kind", kind)
	}
	return entry
}

// Middleware copies the echo request id into the request context so that
// services logging via WithContext tag their lines with it. It must run
// after middleware.RequestID.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Response().Header().Get(echo.HeaderXRequestID)
			if id == "" {
				id = c.Request().Header.Get(echo.HeaderXRequestID)
			}
			if id != "" {
				ctx := context.WithValue(c.Request().Context(), RequestIDKey, id)
				c.SetRequest(c.Request().WithContext(ctx))
			}
			return next(c)
		}
	}
}
