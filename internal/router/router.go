// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/music-licensing/internal/handler" // import the handlers that implement business logic
)

// RegisterRoutes registers routes that do not belong to the registry
// API on the provided Echo instance.  Currently it exposes only a
// health check, used by load balancers and monitoring systems.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterRegistry registers the full registry API under /v1.  Reads
// are open; mutations carry their own shared-secret authorization in
// the payload, so no authentication middleware applies here.
func RegisterRegistry(e *echo.Echo, h *handler.Handler) {
	v1 := e.Group("/v1")

	// Song catalog: list, search and single-song lookups.  The search
	// endpoint is registered before the :id routes so the literal
	// segment wins.
	v1.GET("/songs", h.GetAllSongs)
	v1.GET("/songs/search", h.SearchSongs)
	v1.GET("/songs/:id", h.GetSong)
	v1.GET("/songs/:id/owner", h.GetSongOwner)

	// Song lifecycle: create requires an existing owner; update and
	// delete check the owner's auth key inside the service.
	v1.POST("/songs", h.CreateSong)
	v1.PUT("/songs/:id", h.UpdateSong)
	v1.DELETE("/songs/:id", h.DeleteSong)

	// Owners: creation and reverse lookup of their license requests.
	// Owners have no delete endpoint; removing one would orphan its
	// dependent songs and licenses.
	v1.POST("/owners", h.CreateOwner)
	v1.GET("/owners/:id/licenses", h.GetOwnerLicenseRequests)

	// License lifecycle: request, approve, revoke.
	v1.GET("/licenses/:id", h.GetLicense)
	v1.POST("/licenses", h.CreateLicenseRequest)
	v1.POST("/licenses/:id/approve", h.ApproveLicense)
	v1.POST("/licenses/:id/revoke", h.RevokeLicense)

	// Licensees: creation and license lookups.  Like owners, licensees
	// cannot be deleted.
	v1.POST("/licensees", h.CreateLicensee)
	v1.GET("/licensees/:id", h.GetLicensee)
	v1.GET("/licensees/:id/licenses", h.GetLicenseeLicenses)
}
