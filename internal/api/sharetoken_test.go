package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// mintShareLink creates a share link for layout-1 and returns the token.
func mintShareLink(t *testing.T, router http.Handler) string {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/layouts/layout-1/share", nil)
	w := doRequest(t, router, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("share status = %d, want %d; body: %s", w.Code, http.StatusCreated, w.Body.String())
	}

	resp := decodeJSON(t, w)
	token, _ := resp["token"].(string)
	if token == "" {
		t.Fatal("expected token to be non-empty")
	}
	return token
}

// ─── Share Link Tests ──────────────────────────────────────────────

func TestCreateShareLink(t *testing.T) {
	srv, layouts := testServer(t)
	router := srv.buildRouter()

	seedLayout(t, layouts)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/layouts/layout-1/share", nil)
	w := doRequest(t, router, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, http.StatusCreated, w.Body.String())
	}

	resp := decodeJSON(t, w)
	if resp["token"] == "" {
		t.Error("expected token to be non-empty")
	}
	if resp["expires_at"] == "" {
		t.Error("expected expires_at to be set")
	}
	if path, _ := resp["path"].(string); path == "" {
		t.Error("expected path to be set")
	}
}

func TestCreateShareLink_LayoutNotFound(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/layouts/nonexistent/share", nil)
	w := doRequest(t, router, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestSharedReport(t *testing.T) {
	srv, layouts := testServer(t)
	router := srv.buildRouter()

	seedLayout(t, layouts)
	seedPlacements(t, layouts)
	token := mintShareLink(t, router)

	w := doRequest(t, router, httptest.NewRequest(http.MethodGet, "/api/v1/shared/"+token, nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
	}

	resp := decodeJSON(t, w)
	l, ok := resp["layout"].(map[string]any)
	if !ok {
		t.Fatalf("layout is not an object: %T", resp["layout"])
	}
	if l["id"] != "layout-1" {
		t.Errorf("layout id = %v, want layout-1", l["id"])
	}

	// One overlay per floor
	overlays, _ := resp["overlays"].([]any)
	if len(overlays) != 2 {
		t.Errorf("overlays = %d, want 2", len(overlays))
	}

	summary, _ := resp["summary"].(map[string]any)
	if int(summary["total_cameras"].(float64)) != 1 {
		t.Errorf("total_cameras = %v, want 1", summary["total_cameras"])
	}
}

func TestSharedReport_InvalidToken(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	w := doRequest(t, router, httptest.NewRequest(http.MethodGet, "/api/v1/shared/not-a-token", nil))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestSharedReport_ExpiredToken(t *testing.T) {
	srv, layouts := testServer(t)
	router := srv.buildRouter()

	seedLayout(t, layouts)

	// Sign an already-expired token with the server's secret
	claims := shareClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "layout-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
		LayoutID: "layout-1",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(srv.secCfg.ShareToken.Secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	w := doRequest(t, router, httptest.NewRequest(http.MethodGet, "/api/v1/shared/"+token, nil))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestSharedReport_WrongSigningKey(t *testing.T) {
	srv, layouts := testServer(t)
	router := srv.buildRouter()

	seedLayout(t, layouts)

	claims := shareClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "layout-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		LayoutID: "layout-1",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("some-other-secret-that-is-not-ours"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	w := doRequest(t, router, httptest.NewRequest(http.MethodGet, "/api/v1/shared/"+token, nil))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestSharedReport_DeletedLayout(t *testing.T) {
	srv, layouts := testServer(t)
	router := srv.buildRouter()

	seedLayout(t, layouts)
	token := mintShareLink(t, router)

	// Token outlives the layout
	w := doRequest(t, router, httptest.NewRequest(http.MethodDelete, "/api/v1/layouts/layout-1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d, want %d", w.Code, http.StatusOK)
	}

	w = doRequest(t, router, httptest.NewRequest(http.MethodGet, "/api/v1/shared/"+token, nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}
