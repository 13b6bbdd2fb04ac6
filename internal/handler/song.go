package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/music-licensing/internal/licensing"
)

// CreateSong registers a new song under an existing owner.
func (h *Handler) CreateSong(c echo.Context) error {
	var p licensing.SongPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_payload", "message": "invalid body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	song, err := h.Svc.CreateSong(ctx, p)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, song)
}

// UpdateSong replaces a song's fields wholesale.  The auth key in the
// body must match the owning rights-holder's secret.
func (h *Handler) UpdateSong(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_payload", "message": "invalid song id"})
	}

	var p licensing.UpdateSongPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_payload", "message": "invalid body"})
	}
	p.ID = id // the path wins over any id in the body

	ctx, cancel := reqCtx(c)
	defer cancel()

	song, err := h.Svc.UpdateSong(ctx, p)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, song)
}

// DeleteSong removes a song and repairs every back-reference pointing
// at it.  The owner's auth key is read from the X-Auth-Key header since
// DELETE requests carry no body.
func (h *Handler) DeleteSong(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_payload", "message": "invalid song id"})
	}
	authKey := c.Request().Header.Get("X-Auth-Key")

	ctx, cancel := reqCtx(c)
	defer cancel()

	song, err := h.Svc.DeleteSong(ctx, authKey, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, song)
}
