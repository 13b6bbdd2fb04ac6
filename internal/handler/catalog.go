package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// GetAllSongs returns every licensable song in the registry.  An empty
// registry yields 404 rather than an empty list.
func (h *Handler) GetAllSongs(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	songs, err := h.Svc.AllSongs(ctx)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, songs)
}

// GetSong returns a single song by id.
func (h *Handler) GetSong(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_payload", "message": "invalid song id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	song, err := h.Svc.Song(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, song)
}

// GetSongOwner returns the public projection (id, name, email) of the
// owner controlling the song.
func (h *Handler) GetSongOwner(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_payload", "message": "invalid song id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	owner, err := h.Svc.SongOwner(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, owner)
}

// SearchSongs matches ?q= case-insensitively against song title, genre
// and decimal year.
func (h *Handler) SearchSongs(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))

	ctx, cancel := reqCtx(c)
	defer cancel()

	songs, err := h.Svc.SearchSongs(ctx, q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, songs)
}
