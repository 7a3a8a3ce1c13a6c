package layout

import (
	"time"

	"github.com/hearthwatch/planner-core/internal/device"
	"github.com/hearthwatch/planner-core/internal/geometry"
)

// Door is a door marker on a room wall. Offset runs along the wall from its
// top or left end; values are clamped to [0,1] when the position is derived.
type Door struct {
	Wall     geometry.WallSide `json:"wall"`
	Offset   float64           `json:"offset"`
	Exterior bool              `json:"exterior"`
	Label    string            `json:"label,omitempty"`
}

// Window is a window marker on a room wall.
type Window struct {
	Wall   geometry.WallSide `json:"wall"`
	Offset float64           `json:"offset"`
}

// Room is a rectangular space on a floor. Rooms are not required to be
// disjoint; the engine only reads bounds and never enforces non-overlap.
type Room struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	Bounds  geometry.Rect `json:"bounds"`
	Doors   []Door        `json:"doors,omitempty"`
	Windows []Window      `json:"windows,omitempty"`
}

// Position returns the absolute position of the door on its room's wall.
func (d Door) Position(room Room) geometry.Point {
	return geometry.WallPoint(room.Bounds, d.Wall, d.Offset)
}

// Floor is one storey of a layout with its ordered rooms.
type Floor struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Rooms []Room `json:"rooms"`
}

// RoomByID returns the room with the given id, or nil if absent.
func (f *Floor) RoomByID(id string) *Room {
	for i := range f.Rooms {
		if f.Rooms[i].ID == id {
			return &f.Rooms[i]
		}
	}
	return nil
}

// RoomAt returns the first room whose bounds contain p, or nil if none do.
// This is the implicit room-resolution fallback for placements without an
// explicit room id.
func (f *Floor) RoomAt(p geometry.Point) *Room {
	for i := range f.Rooms {
		if f.Rooms[i].Bounds.Contains(p) {
			return &f.Rooms[i]
		}
	}
	return nil
}

// Layout is a complete floor plan: one or more floors plus metadata.
// It is the unit of persistence and of share links.
type Layout struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Floors    []Floor   `json:"floors"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FloorByID returns the floor with the given id, or nil if absent.
func (l *Layout) FloorByID(id string) *Floor {
	for i := range l.Floors {
		if l.Floors[i].ID == id {
			return &l.Floors[i]
		}
	}
	return nil
}

// Summary is the listing shape for layouts (no floor detail).
type Summary struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	FloorCount int       `json:"floor_count"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Provenance records whether a placement came from the recommendation
// engine or was added by the user.
type Provenance string

// Provenance constants.
const (
	ProvenanceSuggested Provenance = "suggested"
	ProvenanceUser      Provenance = "user"
)

// WallSnap anchors a placement to a wall of its room.
type WallSnap struct {
	Wall   geometry.WallSide `json:"wall"`
	Offset float64           `json:"offset"`
}

// Placement is one security device positioned on a floor.
//
// RoomID is optional: when nil, the owning room is resolved by
// point-in-rectangle lookup against the floor's rooms. WallSnap is only
// meaningful for wall-anchored kinds and RotationDeg only for directional
// kinds; both are ignored otherwise.
type Placement struct {
	ID          string         `json:"id"`
	Kind        device.Kind    `json:"kind"`
	FloorID     string         `json:"floor_id"`
	RoomID      *string        `json:"room_id,omitempty"`
	Position    geometry.Point `json:"position"`
	WallSnap    *WallSnap      `json:"wall_snap,omitempty"`
	RotationDeg *float64       `json:"rotation_deg,omitempty"`
	Required    bool           `json:"required"`
	Provenance  Provenance     `json:"provenance"`
}

// ResolveRoom returns the room this placement belongs to on the given
// floor: the explicit RoomID when it names a room on the floor, otherwise
// the first room containing the position. Returns nil when neither
// resolves — an unresolved placement simply contributes no room-scoped
// coverage.
func (p *Placement) ResolveRoom(floor *Floor) *Room {
	if floor == nil {
		return nil
	}
	if p.RoomID != nil {
		if room := floor.RoomByID(*p.RoomID); room != nil {
			return room
		}
	}
	return floor.RoomAt(p.Position)
}

// OnFloor reports whether the placement belongs to the given floor.
func (p *Placement) OnFloor(floorID string) bool {
	return p.FloorID == floorID
}
