package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/music-licensing/internal/licensing"
)

// GetLicensee returns a licensee by id, including its license list.
func (h *Handler) GetLicensee(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_payload", "message": "invalid licensee id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	licensee, err := h.Svc.Licensee(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, licensee)
}

// GetLicenseeLicenses lists every license referencing the licensee.
func (h *Handler) GetLicenseeLicenses(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_payload", "message": "invalid licensee id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	licenses, err := h.Svc.LicenseeLicenses(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, licenses)
}

// CreateLicensee registers a new licensee.
func (h *Handler) CreateLicensee(c echo.Context) error {
	var p licensing.LicenseePayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_payload", "message": "invalid body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	licensee, err := h.Svc.CreateLicensee(ctx, p)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, licensee)
}
