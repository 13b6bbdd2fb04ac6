package handler // handler defines http handlers

import (
	"context" // context provides request-scoped deadlines for service calls
	"errors"  // errors classifies service failures by kind
	"net/http"
	"strconv" // strconv parses path parameters into numeric ids
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/music-licensing/internal/licensing"
)

// Handler bundles the licensing service for all registry endpoints.
type Handler struct {
	Svc *licensing.Service
}

// NewHandler constructs a Handler and panics if the service is nil.
func NewHandler(svc *licensing.Service) *Handler {
	if svc == nil {
		panic("nil service passed to NewHandler")
	}
	return &Handler{Svc: svc}
}

// reqCtx derives a deadline-bound context from the incoming request.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

// idParam parses the :id path parameter as an unsigned integer.
func idParam(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

// respondError translates a service error into the matching HTTP
// response.  Every service failure wraps one of the licensing error
// kinds; anything else is an internal error.
func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, licensing.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not_found", "message": err.Error()})
	case errors.Is(err, licensing.ErrInvalidPayload):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_payload", "message": err.Error()})
	case errors.Is(err, licensing.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized", "message": err.Error()})
	case errors.Is(err, licensing.ErrAlreadyApproved):
		return c.JSON(http.StatusConflict, echo.Map{"error": "already_approved", "message": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal_error", "message": err.Error()})
	}
}
