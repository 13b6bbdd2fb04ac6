package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/music-licensing/internal/licensing"
	q "github.com/iliyamo/music-licensing/internal/queue"
	queue_publisher "github.com/iliyamo/music-licensing/internal/service"
)

// GetLicense returns a license agreement by id.
func (h *Handler) GetLicense(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_payload", "message": "invalid license id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	license, err := h.Svc.License(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, license)
}

// CreateLicenseRequest records a new unapproved license request.  Any
// caller may request a license; there is no authorization check.
func (h *Handler) CreateLicenseRequest(c echo.Context) error {
	var p licensing.LicensePayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_payload", "message": "invalid body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	license, err := h.Svc.CreateLicenseRequest(ctx, p)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, license)
}

// ApproveLicense approves a pending license at the supplied cost.  On
// success a license.approved event is published; publish failures are
// logged by the publisher and never fail the request.
func (h *Handler) ApproveLicense(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_payload", "message": "invalid license id"})
	}

	var p licensing.ApprovePayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_payload", "message": "invalid body"})
	}
	p.LicenseID = id

	ctx, cancel := reqCtx(c)
	defer cancel()

	license, err := h.Svc.ApproveLicense(ctx, p)
	if err != nil {
		return respondError(c, err)
	}

	_ = queue_publisher.PublishLicenseApproved(ctx, q.LicenseApprovedEvent{
		LicenseID:  license.ID,
		SongID:     license.SongID,
		OwnerID:    license.OwnerID,
		LicenseeID: license.LicenseeID,
		Price:      license.Price,
		StartDate:  license.StartDate,
		EndDate:    license.EndDate,
		ApprovedAt: time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, license)
}

// RevokeLicense returns an approved license to the requested state.
func (h *Handler) RevokeLicense(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_payload", "message": "invalid license id"})
	}

	var p licensing.RevokePayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_payload", "message": "invalid body"})
	}
	p.LicenseID = id

	ctx, cancel := reqCtx(c)
	defer cancel()

	license, err := h.Svc.RevokeLicense(ctx, p)
	if err != nil {
		return respondError(c, err)
	}

	_ = queue_publisher.PublishLicenseRevoked(ctx, q.LicenseRevokedEvent{
		LicenseID:  license.ID,
		SongID:     license.SongID,
		OwnerID:    license.OwnerID,
		LicenseeID: license.LicenseeID,
		RevokedAt:  time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, license)
}
