// The test lives in an external package because it wires routes via
// the router package, which itself imports handler.
package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/music-licensing/internal/database"
	"github.com/iliyamo/music-licensing/internal/handler"
	"github.com/iliyamo/music-licensing/internal/licensing"
	"github.com/iliyamo/music-licensing/internal/repository"
	"github.com/iliyamo/music-licensing/internal/router"
)

// newTestServer wires a full echo instance over an in-memory database.
func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	db, err := database.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(context.Background(), db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	svc := licensing.NewService(
		repository.NewSongRepo(db),
		repository.NewOwnerRepo(db),
		repository.NewLicenseRepo(db),
		repository.NewLicenseeRepo(db),
		repository.NewIDRepo(db),
		nil,
	)

	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e)
	router.RegisterRegistry(e, handler.NewHandler(svc))
	return e
}

// do performs a request against the test server and decodes the JSON
// response body into out (when out is non-nil).
func do(t *testing.T, e *echo.Echo, method, path, body string, header map[string]string, out any) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if out != nil && rec.Code < 300 {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec
}

type idResponse struct {
	ID uint64 `json:"id"`
}

type errResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func TestHealthz(t *testing.T) {
	e := newTestServer(t)
	rec := do(t, e, http.MethodGet, "/healthz", "", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestSongEndpoints(t *testing.T) {
	e := newTestServer(t)

	var owner idResponse
	rec := do(t, e, http.MethodPost, "/v1/owners",
		`{"name":"Blue Note","email":"bn@test","auth_key":"k1"}`, nil, &owner)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create owner: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	t.Run("EmptyRegistryIs404", func(t *testing.T) {
		rec := do(t, e, http.MethodGet, "/v1/songs", "", nil, nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404 for empty registry, got %d", rec.Code)
		}
	})

	var song struct {
		idResponse
		Title   string `json:"title"`
		OwnerID uint64 `json:"owner_id"`
	}
	rec = do(t, e, http.MethodPost, "/v1/songs",
		`{"title":"So What","artist":"Miles Davis","owner_id":`+jsonID(owner.ID)+`,"year":1959,"genre":"Jazz","price":50}`,
		nil, &song)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create song: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if song.OwnerID != owner.ID {
		t.Fatalf("song not bound to owner: %+v", song)
	}

	t.Run("GetByID", func(t *testing.T) {
		var got struct {
			Title string `json:"title"`
		}
		rec := do(t, e, http.MethodGet, "/v1/songs/"+jsonID(song.ID), "", nil, &got)
		if rec.Code != http.StatusOK || got.Title != "So What" {
			t.Errorf("expected So What with 200, got %d %+v", rec.Code, got)
		}
	})

	t.Run("GetMissingIs404", func(t *testing.T) {
		var e4 errResponse
		rec := do(t, e, http.MethodGet, "/v1/songs/9999", "", nil, nil)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &e4); err != nil || e4.Error != "not_found" {
			t.Errorf("expected not_found error body, got %s", rec.Body.String())
		}
	})

	t.Run("SearchIsNotShadowedByIDRoute", func(t *testing.T) {
		var songs []struct {
			Title string `json:"title"`
		}
		rec := do(t, e, http.MethodGet, "/v1/songs/search?q=jazz", "", nil, &songs)
		if rec.Code != http.StatusOK || len(songs) != 1 {
			t.Errorf("expected one match via search route, got %d %+v", rec.Code, songs)
		}
	})

	t.Run("Owner", func(t *testing.T) {
		var got struct {
			ID      uint64 `json:"id"`
			Name    string `json:"name"`
			AuthKey string `json:"auth_key"`
		}
		rec := do(t, e, http.MethodGet, "/v1/songs/"+jsonID(song.ID)+"/owner", "", nil, &got)
		if rec.Code != http.StatusOK || got.ID != owner.ID {
			t.Fatalf("expected owner %d, got %d %+v", owner.ID, rec.Code, got)
		}
		// The owner projection must not leak the auth key.
		if got.AuthKey != "" {
			t.Error("owner projection leaked the auth key")
		}
	})

	t.Run("UpdateWrongKeyIs401", func(t *testing.T) {
		rec := do(t, e, http.MethodPut, "/v1/songs/"+jsonID(song.ID),
			`{"auth_key":"bad","title":"Renamed","artist":"X","year":1,"genre":"g","price":1}`, nil, nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("DeleteWrongKeyIs400", func(t *testing.T) {
		rec := do(t, e, http.MethodDelete, "/v1/songs/"+jsonID(song.ID), "",
			map[string]string{"X-Auth-Key": "bad"}, nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("Delete", func(t *testing.T) {
		rec := do(t, e, http.MethodDelete, "/v1/songs/"+jsonID(song.ID), "",
			map[string]string{"X-Auth-Key": "k1"}, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		rec = do(t, e, http.MethodGet, "/v1/songs/"+jsonID(song.ID), "", nil, nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404 after delete, got %d", rec.Code)
		}
	})
}

func TestLicenseeAndLicenseEndpoints(t *testing.T) {
	e := newTestServer(t)

	var owner, licensee idResponse
	do(t, e, http.MethodPost, "/v1/owners",
		`{"name":"Blue Note","email":"bn@test","auth_key":"k1"}`, nil, &owner)
	var song idResponse
	do(t, e, http.MethodPost, "/v1/songs",
		`{"title":"Naima","artist":"John Coltrane","owner_id":`+jsonID(owner.ID)+`,"year":1960,"genre":"Jazz","price":50}`,
		nil, &song)

	rec := do(t, e, http.MethodPost, "/v1/licensees",
		`{"name":"Radio One","email":"r1@test"}`, nil, &licensee)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create licensee: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var license struct {
		idResponse
		Approved bool `json:"approved"`
	}
	rec = do(t, e, http.MethodPost, "/v1/licenses",
		`{"song_id":`+jsonID(song.ID)+`,"licensee_id":`+jsonID(licensee.ID)+`,"start_date":"2026-01-01","end_date":"2026-12-31"}`,
		nil, &license)
	if rec.Code != http.StatusCreated || license.Approved {
		t.Fatalf("create license: expected 201 unapproved, got %d: %s", rec.Code, rec.Body.String())
	}

	t.Run("GetLicense", func(t *testing.T) {
		rec := do(t, e, http.MethodGet, "/v1/licenses/"+jsonID(license.ID), "", nil, nil)
		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("OwnerListing", func(t *testing.T) {
		var licenses []idResponse
		rec := do(t, e, http.MethodGet, "/v1/owners/"+jsonID(owner.ID)+"/licenses", "", nil, &licenses)
		if rec.Code != http.StatusOK || len(licenses) != 1 {
			t.Errorf("expected one pending license, got %d %+v", rec.Code, licenses)
		}
	})

	t.Run("LicenseeListing", func(t *testing.T) {
		var licenses []idResponse
		rec := do(t, e, http.MethodGet, "/v1/licensees/"+jsonID(licensee.ID)+"/licenses", "", nil, &licenses)
		if rec.Code != http.StatusOK || len(licenses) != 1 {
			t.Errorf("expected one pending license, got %d %+v", rec.Code, licenses)
		}
	})

	t.Run("UnknownLicenseeIs404", func(t *testing.T) {
		rec := do(t, e, http.MethodPost, "/v1/licenses",
			`{"song_id":`+jsonID(song.ID)+`,"licensee_id":9999}`, nil, nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("MalformedBodyIs400", func(t *testing.T) {
		rec := do(t, e, http.MethodPost, "/v1/licensees", `{"name":`, nil, nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})
}

func jsonID(id uint64) string {
	return strconv.FormatUint(id, 10)
}
