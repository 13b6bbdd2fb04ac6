package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/music-licensing/internal/licensing"
)

// CreateOwner registers a new rights-holder.  The auth key supplied
// here is the shared secret later required on protected mutations.
func (h *Handler) CreateOwner(c echo.Context) error {
	var p licensing.OwnerPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_payload", "message": "invalid body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	owner, err := h.Svc.CreateOwner(ctx, p)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, owner)
}

// GetOwnerLicenseRequests lists every license, approved or pending,
// where the owner is the rights-holder.
func (h *Handler) GetOwnerLicenseRequests(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_payload", "message": "invalid owner id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	licenses, err := h.Svc.OwnerLicenseRequests(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, licenses)
}
