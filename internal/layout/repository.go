package layout

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hearthwatch/planner-core/internal/device"
	"github.com/hearthwatch/planner-core/internal/geometry"
)

// Repository defines the interface for layout persistence operations.
type Repository interface {
	CreateLayout(ctx context.Context, l *Layout) error
	GetLayout(ctx context.Context, id string) (*Layout, error)
	ListLayouts(ctx context.Context) ([]Summary, error)
	UpdateLayout(ctx context.Context, l *Layout) error
	DeleteLayout(ctx context.Context, id string) error

	// ReplacePlacements swaps the full placement set for a layout in one
	// transaction. The editor always saves whole documents, so partial
	// placement updates are not part of the contract.
	ReplacePlacements(ctx context.Context, layoutID string, placements []Placement) error
	ListPlacements(ctx context.Context, layoutID string) ([]Placement, error)
	ListPlacementsByFloor(ctx context.Context, layoutID, floorID string) ([]Placement, error)
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed layout repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// CreateLayout inserts a layout together with its floors and rooms.
func (r *SQLiteRepository) CreateLayout(ctx context.Context, l *Layout) error {
	existing, err := r.layoutExists(ctx, l.ID)
	if err != nil {
		return err
	}
	if existing {
		return fmt.Errorf("%w: %s", ErrLayoutExists, l.ID)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op if committed

	now := time.Now().UTC()
	const query = `INSERT INTO layouts (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, query, l.ID, l.Name, now.Format(time.RFC3339), now.Format(time.RFC3339)); err != nil {
		return fmt.Errorf("inserting layout %s: %w", l.ID, err)
	}

	if err := insertFloors(ctx, tx, l); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing layout %s: %w", l.ID, err)
	}

	l.CreatedAt = now
	l.UpdatedAt = now
	return nil
}

// UpdateLayout replaces a layout's name, floors, and rooms. Placements are
// untouched: floors are replaced wholesale on every save, so placements
// deliberately carry no foreign key to them. A placement whose floor no
// longer exists resolves to no room and contributes no coverage.
func (r *SQLiteRepository) UpdateLayout(ctx context.Context, l *Layout) error {
	existing, err := r.layoutExists(ctx, l.ID)
	if err != nil {
		return err
	}
	if !existing {
		return fmt.Errorf("%w: %s", ErrLayoutNotFound, l.ID)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op if committed

	now := time.Now().UTC()
	const query = `UPDATE layouts SET name = ?, updated_at = ? WHERE id = ?`
	if _, err := tx.ExecContext(ctx, query, l.Name, now.Format(time.RFC3339), l.ID); err != nil {
		return fmt.Errorf("updating layout %s: %w", l.ID, err)
	}

	// Full replace: the editor saves the whole document.
	if _, err := tx.ExecContext(ctx, `DELETE FROM floors WHERE layout_id = ?`, l.ID); err != nil {
		return fmt.Errorf("clearing floors for layout %s: %w", l.ID, err)
	}
	if err := insertFloors(ctx, tx, l); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing layout %s: %w", l.ID, err)
	}

	l.UpdatedAt = now
	return nil
}

// insertFloors writes all floors and rooms of a layout inside tx.
func insertFloors(ctx context.Context, tx *sql.Tx, l *Layout) error {
	const floorQuery = `INSERT INTO floors (id, layout_id, label, sort_order) VALUES (?, ?, ?, ?)`
	const roomQuery = `INSERT INTO rooms
		(id, floor_id, name, x, y, width, height, doors, windows, sort_order)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	for fi := range l.Floors {
		f := &l.Floors[fi]
		if _, err := tx.ExecContext(ctx, floorQuery, f.ID, l.ID, f.Label, fi); err != nil {
			return fmt.Errorf("inserting floor %s: %w", f.ID, err)
		}
		for ri := range f.Rooms {
			room := &f.Rooms[ri]
			doors, err := marshalMarkers(room.Doors)
			if err != nil {
				return fmt.Errorf("encoding doors for room %s: %w", room.ID, err)
			}
			windows, err := marshalMarkers(room.Windows)
			if err != nil {
				return fmt.Errorf("encoding windows for room %s: %w", room.ID, err)
			}
			if _, err := tx.ExecContext(ctx, roomQuery,
				room.ID, f.ID, room.Name,
				room.Bounds.X, room.Bounds.Y, room.Bounds.Width, room.Bounds.Height,
				doors, windows, ri); err != nil {
				return fmt.Errorf("inserting room %s: %w", room.ID, err)
			}
		}
	}
	return nil
}

// marshalMarkers encodes door/window marker slices as JSON for storage.
// Nil slices store as "[]" so scans never produce null.
func marshalMarkers(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	if string(b) == "null" {
		return "[]", nil
	}
	return string(b), nil
}

// GetLayout returns a layout with all floors and rooms populated.
func (r *SQLiteRepository) GetLayout(ctx context.Context, id string) (*Layout, error) {
	const query = `SELECT id, name, created_at, updated_at FROM layouts WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var l Layout
	var createdAt, updatedAt string
	if err := row.Scan(&l.ID, &l.Name, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrLayoutNotFound, id)
		}
		return nil, fmt.Errorf("scanning layout %s: %w", id, err)
	}
	l.CreatedAt = parseTimestamp(createdAt)
	l.UpdatedAt = parseTimestamp(updatedAt)

	floors, err := r.queryFloors(ctx, id)
	if err != nil {
		return nil, err
	}
	l.Floors = floors
	return &l, nil
}

// queryFloors loads the floors and rooms of a layout in sort order.
func (r *SQLiteRepository) queryFloors(ctx context.Context, layoutID string) ([]Floor, error) {
	const floorQuery = `SELECT id, label FROM floors WHERE layout_id = ? ORDER BY sort_order`
	rows, err := r.db.QueryContext(ctx, floorQuery, layoutID)
	if err != nil {
		return nil, fmt.Errorf("querying floors for layout %s: %w", layoutID, err)
	}
	defer rows.Close() //nolint:errcheck // Read-only rows

	var floors []Floor
	for rows.Next() {
		var f Floor
		if err := rows.Scan(&f.ID, &f.Label); err != nil {
			return nil, fmt.Errorf("scanning floor: %w", err)
		}
		floors = append(floors, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating floors: %w", err)
	}

	for i := range floors {
		rooms, err := r.queryRooms(ctx, floors[i].ID)
		if err != nil {
			return nil, err
		}
		floors[i].Rooms = rooms
	}
	return floors, nil
}

// queryRooms loads the rooms of one floor in sort order.
func (r *SQLiteRepository) queryRooms(ctx context.Context, floorID string) ([]Room, error) {
	const query = `SELECT id, name, x, y, width, height, doors, windows
		FROM rooms WHERE floor_id = ? ORDER BY sort_order`
	rows, err := r.db.QueryContext(ctx, query, floorID)
	if err != nil {
		return nil, fmt.Errorf("querying rooms for floor %s: %w", floorID, err)
	}
	defer rows.Close() //nolint:errcheck // Read-only rows

	var rooms []Room
	for rows.Next() {
		var room Room
		var doors, windows string
		if err := rows.Scan(&room.ID, &room.Name,
			&room.Bounds.X, &room.Bounds.Y, &room.Bounds.Width, &room.Bounds.Height,
			&doors, &windows); err != nil {
			return nil, fmt.Errorf("scanning room: %w", err)
		}
		if err := json.Unmarshal([]byte(doors), &room.Doors); err != nil {
			return nil, fmt.Errorf("decoding doors for room %s: %w", room.ID, err)
		}
		if err := json.Unmarshal([]byte(windows), &room.Windows); err != nil {
			return nil, fmt.Errorf("decoding windows for room %s: %w", room.ID, err)
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rooms: %w", err)
	}
	return rooms, nil
}

// ListLayouts returns summaries for all layouts, most recently updated first.
func (r *SQLiteRepository) ListLayouts(ctx context.Context) ([]Summary, error) {
	const query = `SELECT l.id, l.name, l.updated_at,
		(SELECT COUNT(*) FROM floors f WHERE f.layout_id = l.id) AS floor_count
		FROM layouts l ORDER BY l.updated_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying layouts: %w", err)
	}
	defer rows.Close() //nolint:errcheck // Read-only rows

	var summaries []Summary
	for rows.Next() {
		var s Summary
		var updatedAt string
		if err := rows.Scan(&s.ID, &s.Name, &updatedAt, &s.FloorCount); err != nil {
			return nil, fmt.Errorf("scanning layout summary: %w", err)
		}
		s.UpdatedAt = parseTimestamp(updatedAt)
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating layouts: %w", err)
	}
	return summaries, nil
}

// DeleteLayout removes a layout; floors, rooms, and placements cascade.
func (r *SQLiteRepository) DeleteLayout(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM layouts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting layout %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrLayoutNotFound, id)
	}
	return nil
}

// ReplacePlacements swaps the full placement set for a layout.
func (r *SQLiteRepository) ReplacePlacements(ctx context.Context, layoutID string, placements []Placement) error {
	existing, err := r.layoutExists(ctx, layoutID)
	if err != nil {
		return err
	}
	if !existing {
		return fmt.Errorf("%w: %s", ErrLayoutNotFound, layoutID)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op if committed

	if _, err := tx.ExecContext(ctx, `DELETE FROM placements WHERE layout_id = ?`, layoutID); err != nil {
		return fmt.Errorf("clearing placements for layout %s: %w", layoutID, err)
	}

	const query = `INSERT INTO placements
		(id, layout_id, floor_id, room_id, kind, x, y, wall, wall_offset, rotation, required, provenance, sort_order)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for i := range placements {
		p := &placements[i]
		var wall sql.NullString
		var wallOffset sql.NullFloat64
		if p.WallSnap != nil {
			wall = sql.NullString{String: string(p.WallSnap.Wall), Valid: true}
			wallOffset = sql.NullFloat64{Float64: p.WallSnap.Offset, Valid: true}
		}
		var rotation sql.NullFloat64
		if p.RotationDeg != nil {
			rotation = sql.NullFloat64{Float64: *p.RotationDeg, Valid: true}
		}
		if _, err := tx.ExecContext(ctx, query,
			p.ID, layoutID, p.FloorID, nullStr(p.RoomID), string(p.Kind),
			p.Position.X, p.Position.Y,
			wall, wallOffset, rotation,
			p.Required, string(p.Provenance), i); err != nil {
			return fmt.Errorf("inserting placement %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing placements for layout %s: %w", layoutID, err)
	}
	return nil
}

// ListPlacements returns all placements for a layout in save order.
func (r *SQLiteRepository) ListPlacements(ctx context.Context, layoutID string) ([]Placement, error) {
	const query = `SELECT id, floor_id, room_id, kind, x, y, wall, wall_offset, rotation, required, provenance
		FROM placements WHERE layout_id = ? ORDER BY sort_order`
	return r.queryPlacements(ctx, query, layoutID)
}

// ListPlacementsByFloor returns the placements scoped to one floor.
func (r *SQLiteRepository) ListPlacementsByFloor(ctx context.Context, layoutID, floorID string) ([]Placement, error) {
	const query = `SELECT id, floor_id, room_id, kind, x, y, wall, wall_offset, rotation, required, provenance
		FROM placements WHERE layout_id = ? AND floor_id = ? ORDER BY sort_order`
	return r.queryPlacements(ctx, query, layoutID, floorID)
}

// queryPlacements runs a placement query and scans the result set.
func (r *SQLiteRepository) queryPlacements(ctx context.Context, query string, args ...any) ([]Placement, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying placements: %w", err)
	}
	defer rows.Close() //nolint:errcheck // Read-only rows

	var placements []Placement
	for rows.Next() {
		var p Placement
		var roomID sql.NullString
		var kind, provenance string
		var wall sql.NullString
		var wallOffset, rotation sql.NullFloat64
		if err := rows.Scan(&p.ID, &p.FloorID, &roomID, &kind,
			&p.Position.X, &p.Position.Y,
			&wall, &wallOffset, &rotation,
			&p.Required, &provenance); err != nil {
			return nil, fmt.Errorf("scanning placement: %w", err)
		}
		p.Kind = device.Kind(kind)
		p.Provenance = Provenance(provenance)
		if roomID.Valid {
			p.RoomID = &roomID.String
		}
		if wall.Valid {
			p.WallSnap = &WallSnap{Wall: geometry.WallSide(wall.String), Offset: wallOffset.Float64}
		}
		if rotation.Valid {
			rot := rotation.Float64
			p.RotationDeg = &rot
		}
		placements = append(placements, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating placements: %w", err)
	}
	return placements, nil
}

// layoutExists reports whether a layout row exists.
func (r *SQLiteRepository) layoutExists(ctx context.Context, id string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM layouts WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking layout %s: %w", id, err)
	}
	return true, nil
}

// nullStr converts a *string to a sql.NullString for nullable columns.
func nullStr(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// parseTimestamp parses an RFC3339 timestamp stored as TEXT. Unparseable
// values return the zero time rather than failing the whole scan.
func parseTimestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
