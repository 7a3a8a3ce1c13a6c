package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hearthwatch/planner-core/internal/layout"
)

// ─── Layout CRUD Tests ─────────────────────────────────────────────

func TestListLayouts_Empty(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	w := doRequest(t, router, httptest.NewRequest(http.MethodGet, "/api/v1/layouts", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
	}

	resp := decodeJSON(t, w)
	if int(resp["count"].(float64)) != 0 {
		t.Errorf("count = %v, want 0", resp["count"])
	}
}

func TestCreateAndGetLayout(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	body := `{
		"name": "Maple Street",
		"floors": [
			{
				"label": "Ground Floor",
				"rooms": [
					{
						"name": "Living Room",
						"bounds": {"x": 0, "y": 0, "width": 120, "height": 100},
						"doors": [{"wall": "south", "offset": 0.2, "exterior": true, "label": "Front door"}]
					}
				]
			}
		]
	}`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/layouts", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := doRequest(t, router, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want %d; body: %s", w.Code, http.StatusCreated, w.Body.String())
	}

	created := decodeJSON(t, w)
	id, _ := created["id"].(string)
	if id == "" {
		t.Fatal("expected layout id to be auto-generated")
	}

	w = doRequest(t, router, httptest.NewRequest(http.MethodGet, "/api/v1/layouts/"+id, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d, want %d", w.Code, http.StatusOK)
	}

	resp := decodeJSON(t, w)
	got, ok := resp["layout"].(map[string]any)
	if !ok {
		t.Fatalf("layout is not an object: %T", resp["layout"])
	}
	if got["name"] != "Maple Street" {
		t.Errorf("name = %v, want Maple Street", got["name"])
	}
	floors, _ := got["floors"].([]any)
	if len(floors) != 1 {
		t.Fatalf("floors = %d, want 1", len(floors))
	}
}

func TestCreateLayout_InvalidJSON(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/layouts", strings.NewReader("not json"))
	req.Header.Set("Content-Type", "application/json")
	w := doRequest(t, router, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestCreateLayout_ValidationError(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	// Room with negative bounds fails validation
	body := `{
		"name": "Bad Layout",
		"floors": [
			{"label": "GF", "rooms": [{"name": "Broken", "bounds": {"x": 0, "y": 0, "width": -10, "height": 100}}]}
		]
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/layouts", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := doRequest(t, router, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d; body: %s", w.Code, http.StatusBadRequest, w.Body.String())
	}
}

func TestCreateLayout_Conflict(t *testing.T) {
	srv, layouts := testServer(t)
	router := srv.buildRouter()

	seedLayout(t, layouts)

	body := `{"id": "layout-1", "name": "Duplicate", "floors": [{"label": "GF", "rooms": []}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/layouts", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := doRequest(t, router, req)

	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d; body: %s", w.Code, http.StatusConflict, w.Body.String())
	}
}

func TestGetLayout_NotFound(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	w := doRequest(t, router, httptest.NewRequest(http.MethodGet, "/api/v1/layouts/nonexistent", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestUpdateLayout(t *testing.T) {
	srv, layouts := testServer(t)
	router := srv.buildRouter()

	seedLayout(t, layouts)

	body := `{
		"name": "Maple Street Renamed",
		"floors": [
			{"id": "floor-gf", "label": "Ground Floor", "rooms": [
				{"id": "room-living", "name": "Living Room", "bounds": {"x": 0, "y": 0, "width": 120, "height": 100}}
			]}
		]
	}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/layouts/layout-1", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := doRequest(t, router, req)

	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
	}

	updated := decodeJSON(t, w)
	if updated["name"] != "Maple Street Renamed" {
		t.Errorf("name = %v, want Maple Street Renamed", updated["name"])
	}
}

func TestUpdateLayout_NotFound(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	body := `{"name": "Ghost", "floors": [{"label": "GF", "rooms": []}]}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/layouts/nonexistent", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := doRequest(t, router, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestDeleteLayout(t *testing.T) {
	srv, layouts := testServer(t)
	router := srv.buildRouter()

	seedLayout(t, layouts)

	w := doRequest(t, router, httptest.NewRequest(http.MethodDelete, "/api/v1/layouts/layout-1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d, want %d", w.Code, http.StatusOK)
	}

	// Confirm gone
	w = doRequest(t, router, httptest.NewRequest(http.MethodGet, "/api/v1/layouts/layout-1", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestDeleteLayout_NotFound(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	w := doRequest(t, router, httptest.NewRequest(http.MethodDelete, "/api/v1/layouts/nonexistent", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

// ─── Placement Tests ───────────────────────────────────────────────

func TestReplaceAndListPlacements(t *testing.T) {
	srv, layouts := testServer(t)
	router := srv.buildRouter()

	seedLayout(t, layouts)

	body := `{
		"placements": [
			{"kind": "indoor_camera", "floor_id": "floor-gf", "position": {"x": 60, "y": 50}},
			{"kind": "motion_sensor", "floor_id": "floor-ff", "position": {"x": 50, "y": 50}}
		]
	}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/layouts/layout-1/placements", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := doRequest(t, router, req)

	if w.Code != http.StatusOK {
		t.Fatalf("replace status = %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
	}

	resp := decodeJSON(t, w)
	if int(resp["count"].(float64)) != 2 {
		t.Errorf("count = %v, want 2", resp["count"])
	}

	// Ids and provenance are filled in
	placements, _ := resp["placements"].([]any)
	for _, raw := range placements {
		p, _ := raw.(map[string]any)
		if p["id"] == "" {
			t.Error("expected placement id to be auto-generated")
		}
		if p["provenance"] != string(layout.ProvenanceUser) {
			t.Errorf("provenance = %v, want user", p["provenance"])
		}
	}

	// Floor filter returns only the ground-floor placement
	w = doRequest(t, router, httptest.NewRequest(http.MethodGet, "/api/v1/layouts/layout-1/placements?floor_id=floor-gf", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d, want %d", w.Code, http.StatusOK)
	}

	resp = decodeJSON(t, w)
	if int(resp["count"].(float64)) != 1 {
		t.Errorf("filtered count = %v, want 1", resp["count"])
	}
}

func TestReplacePlacements_UnknownFloor(t *testing.T) {
	srv, layouts := testServer(t)
	router := srv.buildRouter()

	seedLayout(t, layouts)

	body := `{"placements": [{"kind": "motion_sensor", "floor_id": "floor-missing", "position": {"x": 1, "y": 1}}]}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/layouts/layout-1/placements", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := doRequest(t, router, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d; body: %s", w.Code, http.StatusBadRequest, w.Body.String())
	}
}

func TestReplacePlacements_LayoutNotFound(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.buildRouter()

	body := `{"placements": []}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/layouts/nonexistent/placements", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := doRequest(t, router, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}
