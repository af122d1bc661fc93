package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"eyewear.GO/core/catalog"
	"eyewear.GO/core/logger"
	catalogService "eyewear.GO/service/catalog"
)

// StatusOf maps service errors to HTTP status codes. Anything unknown is
// treated as an upstream catalog source failure.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, catalogService.ErrUnknownKind), errors.Is(err, catalogService.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrInvalidPageSize):
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

// Error writes err as {"error": ...} with the status from StatusOf.
func Error(c echo.Context, err error) error {
	status := StatusOf(err)
	if status >= http.StatusInternalServerError {
		logger.WithContext(c.Request().Context()).WithError(err).WithField("path", c.Path()).Error("catalog request failed")
	}
	return c.JSON(status, echo.Map{"error": err.Error()})
}

// BadRequest writes err as a 400 response.
func BadRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
}
