package layout

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hearthwatch/planner-core/internal/device"
	"github.com/hearthwatch/planner-core/internal/geometry"
)

// setupTestDB creates an in-memory SQLite database with the layout tables.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	schema := `
		PRAGMA foreign_keys = ON;

		CREATE TABLE layouts (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		) STRICT;

		CREATE TABLE floors (
			id TEXT PRIMARY KEY,
			layout_id TEXT NOT NULL,
			label TEXT NOT NULL DEFAULT '',
			sort_order INTEGER NOT NULL DEFAULT 0,
			FOREIGN KEY (layout_id) REFERENCES layouts(id) ON DELETE CASCADE
		) STRICT;

		CREATE TABLE rooms (
			id TEXT PRIMARY KEY,
			floor_id TEXT NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			x REAL NOT NULL,
			y REAL NOT NULL,
			width REAL NOT NULL,
			height REAL NOT NULL,
			doors TEXT NOT NULL DEFAULT '[]',
			windows TEXT NOT NULL DEFAULT '[]',
			sort_order INTEGER NOT NULL DEFAULT 0,
			FOREIGN KEY (floor_id) REFERENCES floors(id) ON DELETE CASCADE
		) STRICT;

		CREATE TABLE placements (
			id TEXT PRIMARY KEY,
			layout_id TEXT NOT NULL,
			floor_id TEXT NOT NULL,
			room_id TEXT,
			kind TEXT NOT NULL,
			x REAL NOT NULL,
			y REAL NOT NULL,
			wall TEXT,
			wall_offset REAL,
			rotation REAL,
			required INTEGER NOT NULL DEFAULT 0,
			provenance TEXT NOT NULL DEFAULT 'user',
			sort_order INTEGER NOT NULL DEFAULT 0,
			FOREIGN KEY (layout_id) REFERENCES layouts(id) ON DELETE CASCADE
		) STRICT;
	`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		t.Fatalf("failed to create test schema: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	return NewSQLiteRepository(setupTestDB(t))
}

func sampleLayout() *Layout {
	return &Layout{
		ID:   "layout-1",
		Name: "Maple Street",
		Floors: []Floor{
			{
				ID:    "floor-gf",
				Label: "Ground Floor",
				Rooms: []Room{
					{
						ID:     "room-living",
						Name:   "Living Room",
						Bounds: geometry.Rect{X: 0, Y: 0, Width: 120, Height: 100},
						Doors: []Door{
							{Wall: geometry.WallSouth, Offset: 0.2, Exterior: true, Label: "Front door"},
						},
						Windows: []Window{
							{Wall: geometry.WallWest, Offset: 0.5},
						},
					},
					{
						ID:     "room-kitchen",
						Name:   "Kitchen",
						Bounds: geometry.Rect{X: 120, Y: 0, Width: 80, Height: 100},
					},
				},
			},
			{
				ID:    "floor-ff",
				Label: "First Floor",
				Rooms: []Room{
					{ID: "room-master", Name: "Master Bedroom", Bounds: geometry.Rect{X: 0, Y: 0, Width: 100, Height: 100}},
				},
			},
		},
	}
}

func TestSQLiteRepository_CreateAndGetLayout(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	if err := repo.CreateLayout(ctx, sampleLayout()); err != nil {
		t.Fatalf("CreateLayout: %v", err)
	}

	got, err := repo.GetLayout(ctx, "layout-1")
	if err != nil {
		t.Fatalf("GetLayout: %v", err)
	}

	if got.Name != "Maple Street" {
		t.Errorf("name = %q, want %q", got.Name, "Maple Street")
	}
	if len(got.Floors) != 2 {
		t.Fatalf("floors = %d, want 2", len(got.Floors))
	}
	if got.Floors[0].ID != "floor-gf" || got.Floors[1].ID != "floor-ff" {
		t.Errorf("floor order = [%s, %s], want [floor-gf, floor-ff]", got.Floors[0].ID, got.Floors[1].ID)
	}

	living := got.Floors[0].RoomByID("room-living")
	if living == nil {
		t.Fatal("room-living missing after round trip")
	}
	if living.Bounds.Width != 120 {
		t.Errorf("room width = %v, want 120", living.Bounds.Width)
	}
	if len(living.Doors) != 1 || !living.Doors[0].Exterior || living.Doors[0].Label != "Front door" {
		t.Errorf("doors = %+v, want one exterior front door", living.Doors)
	}
	if len(living.Windows) != 1 || living.Windows[0].Wall != geometry.WallWest {
		t.Errorf("windows = %+v, want one west window", living.Windows)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Error("timestamps not populated")
	}
}

func TestSQLiteRepository_CreateLayout_Duplicate(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	if err := repo.CreateLayout(ctx, sampleLayout()); err != nil {
		t.Fatalf("CreateLayout: %v", err)
	}
	err := repo.CreateLayout(ctx, sampleLayout())
	if !errors.Is(err, ErrLayoutExists) {
		t.Errorf("duplicate create = %v, want ErrLayoutExists", err)
	}
}

func TestSQLiteRepository_GetLayout_NotFound(t *testing.T) {
	repo := setupRepo(t)

	_, err := repo.GetLayout(context.Background(), "nope")
	if !errors.Is(err, ErrLayoutNotFound) {
		t.Errorf("GetLayout = %v, want ErrLayoutNotFound", err)
	}
}

func TestSQLiteRepository_UpdateLayout_ReplacesFloors(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	l := sampleLayout()
	if err := repo.CreateLayout(ctx, l); err != nil {
		t.Fatalf("CreateLayout: %v", err)
	}

	l.Name = "Maple Street (renamed)"
	l.Floors = l.Floors[:1] // Drop the first floor
	l.Floors[0].Rooms = append(l.Floors[0].Rooms, Room{
		ID:     "room-office",
		Name:   "Office",
		Bounds: geometry.Rect{X: 0, Y: 100, Width: 60, Height: 60},
	})

	if err := repo.UpdateLayout(ctx, l); err != nil {
		t.Fatalf("UpdateLayout: %v", err)
	}

	got, err := repo.GetLayout(ctx, "layout-1")
	if err != nil {
		t.Fatalf("GetLayout: %v", err)
	}
	if got.Name != "Maple Street (renamed)" {
		t.Errorf("name = %q", got.Name)
	}
	if len(got.Floors) != 1 {
		t.Fatalf("floors = %d, want 1", len(got.Floors))
	}
	if len(got.Floors[0].Rooms) != 3 {
		t.Errorf("rooms = %d, want 3", len(got.Floors[0].Rooms))
	}
}

func TestSQLiteRepository_UpdateLayout_NotFound(t *testing.T) {
	repo := setupRepo(t)

	err := repo.UpdateLayout(context.Background(), sampleLayout())
	if !errors.Is(err, ErrLayoutNotFound) {
		t.Errorf("UpdateLayout = %v, want ErrLayoutNotFound", err)
	}
}

func TestSQLiteRepository_DeleteLayout(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	if err := repo.CreateLayout(ctx, sampleLayout()); err != nil {
		t.Fatalf("CreateLayout: %v", err)
	}
	if err := repo.DeleteLayout(ctx, "layout-1"); err != nil {
		t.Fatalf("DeleteLayout: %v", err)
	}
	if _, err := repo.GetLayout(ctx, "layout-1"); !errors.Is(err, ErrLayoutNotFound) {
		t.Errorf("layout still present after delete: %v", err)
	}
	if err := repo.DeleteLayout(ctx, "layout-1"); !errors.Is(err, ErrLayoutNotFound) {
		t.Errorf("second delete = %v, want ErrLayoutNotFound", err)
	}
}

func TestSQLiteRepository_Placements_RoundTrip(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	if err := repo.CreateLayout(ctx, sampleLayout()); err != nil {
		t.Fatalf("CreateLayout: %v", err)
	}

	roomID := "room-living"
	rotation := 135.0
	placements := []Placement{
		{
			ID:         "p-doorbell",
			Kind:       device.KindVideoDoorbell,
			FloorID:    "floor-gf",
			RoomID:     &roomID,
			Position:   geometry.Point{X: 24, Y: 100},
			WallSnap:   &WallSnap{Wall: geometry.WallSouth, Offset: 0.2},
			Required:   true,
			Provenance: ProvenanceSuggested,
		},
		{
			ID:          "p-cam",
			Kind:        device.KindIndoorCamera,
			FloorID:     "floor-gf",
			Position:    geometry.Point{X: 60, Y: 50},
			RotationDeg: &rotation,
			Provenance:  ProvenanceUser,
		},
		{
			ID:         "p-motion-up",
			Kind:       device.KindMotionSensor,
			FloorID:    "floor-ff",
			Position:   geometry.Point{X: 50, Y: 50},
			Provenance: ProvenanceUser,
		},
	}

	if err := repo.ReplacePlacements(ctx, "layout-1", placements); err != nil {
		t.Fatalf("ReplacePlacements: %v", err)
	}

	got, err := repo.ListPlacements(ctx, "layout-1")
	if err != nil {
		t.Fatalf("ListPlacements: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("placements = %d, want 3", len(got))
	}
	if got[0].ID != "p-doorbell" || got[1].ID != "p-cam" || got[2].ID != "p-motion-up" {
		t.Errorf("placement order = [%s %s %s]", got[0].ID, got[1].ID, got[2].ID)
	}

	doorbell := got[0]
	if doorbell.RoomID == nil || *doorbell.RoomID != "room-living" {
		t.Errorf("doorbell room id = %v, want room-living", doorbell.RoomID)
	}
	if doorbell.WallSnap == nil || doorbell.WallSnap.Wall != geometry.WallSouth || doorbell.WallSnap.Offset != 0.2 {
		t.Errorf("doorbell wall snap = %+v", doorbell.WallSnap)
	}
	if !doorbell.Required || doorbell.Provenance != ProvenanceSuggested {
		t.Errorf("doorbell flags = required=%v provenance=%s", doorbell.Required, doorbell.Provenance)
	}

	cam := got[1]
	if cam.RotationDeg == nil || *cam.RotationDeg != 135 {
		t.Errorf("camera rotation = %v, want 135", cam.RotationDeg)
	}
	if cam.WallSnap != nil || cam.RoomID != nil {
		t.Errorf("camera should have no wall snap or room id, got %+v %+v", cam.WallSnap, cam.RoomID)
	}

	// Floor-scoped listing
	gf, err := repo.ListPlacementsByFloor(ctx, "layout-1", "floor-gf")
	if err != nil {
		t.Fatalf("ListPlacementsByFloor: %v", err)
	}
	if len(gf) != 2 {
		t.Errorf("ground-floor placements = %d, want 2", len(gf))
	}
}

func TestSQLiteRepository_ReplacePlacements_Replaces(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	if err := repo.CreateLayout(ctx, sampleLayout()); err != nil {
		t.Fatalf("CreateLayout: %v", err)
	}

	first := []Placement{
		{ID: "p1", Kind: device.KindSiren, FloorID: "floor-gf", Provenance: ProvenanceUser},
	}
	if err := repo.ReplacePlacements(ctx, "layout-1", first); err != nil {
		t.Fatalf("first ReplacePlacements: %v", err)
	}

	second := []Placement{
		{ID: "p2", Kind: device.KindSecurityHub, FloorID: "floor-gf", Provenance: ProvenanceUser},
	}
	if err := repo.ReplacePlacements(ctx, "layout-1", second); err != nil {
		t.Fatalf("second ReplacePlacements: %v", err)
	}

	got, err := repo.ListPlacements(ctx, "layout-1")
	if err != nil {
		t.Fatalf("ListPlacements: %v", err)
	}
	if len(got) != 1 || got[0].ID != "p2" {
		t.Errorf("placements after replace = %+v, want only p2", got)
	}
}

func TestSQLiteRepository_ReplacePlacements_UnknownLayout(t *testing.T) {
	repo := setupRepo(t)

	err := repo.ReplacePlacements(context.Background(), "missing", nil)
	if !errors.Is(err, ErrLayoutNotFound) {
		t.Errorf("ReplacePlacements = %v, want ErrLayoutNotFound", err)
	}
}

func TestSQLiteRepository_ListLayouts(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	if err := repo.CreateLayout(ctx, sampleLayout()); err != nil {
		t.Fatalf("CreateLayout: %v", err)
	}
	second := &Layout{
		ID:     "layout-2",
		Name:   "Oak Avenue",
		Floors: []Floor{{ID: "f2", Label: "Only Floor"}},
	}
	if err := repo.CreateLayout(ctx, second); err != nil {
		t.Fatalf("CreateLayout second: %v", err)
	}

	summaries, err := repo.ListLayouts(ctx)
	if err != nil {
		t.Fatalf("ListLayouts: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("summaries = %d, want 2", len(summaries))
	}
	byID := make(map[string]Summary, len(summaries))
	for _, s := range summaries {
		byID[s.ID] = s
	}
	if byID["layout-1"].FloorCount != 2 {
		t.Errorf("layout-1 floor count = %d, want 2", byID["layout-1"].FloorCount)
	}
	if byID["layout-2"].FloorCount != 1 {
		t.Errorf("layout-2 floor count = %d, want 1", byID["layout-2"].FloorCount)
	}
}
