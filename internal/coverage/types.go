package coverage

import (
	"github.com/hearthwatch/planner-core/internal/device"
	"github.com/hearthwatch/planner-core/internal/geometry"
)

// RoomState classifies how well a room is covered.
type RoomState string

// Room state constants, ordered strongest first.
const (
	StateGreen  RoomState = "green"
	StateYellow RoomState = "yellow"
	StateRed    RoomState = "red"
)

// AllRoomStates returns the room states in reporting order.
func AllRoomStates() []RoomState {
	return []RoomState{StateGreen, StateYellow, StateRed}
}

// CameraCone is a camera's modeled field of view: a circular sector with
// its apex at the device position. FacingDeg follows the layout compass
// (0 south, 90 east, 180 north, 270 west).
type CameraCone struct {
	PlacementID  string             `json:"placement_id"`
	Class        device.CameraClass `json:"class"`
	Origin       geometry.Point     `json:"origin"`
	Radius       float64            `json:"radius"`
	HalfAngleDeg float64            `json:"half_angle_deg"`
	FacingDeg    float64            `json:"facing_deg"`
}

// Covers reports whether p lies inside the cone, with the radius extended
// by tolerance. The apex itself always counts as covered. The angular test
// applies regardless of tolerance, so a point behind the camera is never
// covered however close it sits.
func (c CameraCone) Covers(p geometry.Point, tolerance float64) bool {
	dist := geometry.Distance(c.Origin, p)
	if dist == 0 {
		return true
	}
	if dist > c.Radius+tolerance {
		return false
	}
	dir := geometry.DirectionDegrees(c.Origin, p)
	return geometry.AngularDelta(c.FacingDeg, dir) <= c.HalfAngleDeg
}

// MotionZone is a motion sensor's detection circle. RoomID is the resolved
// owning room; a zone with an empty RoomID clips to nothing and contributes
// no coverage.
type MotionZone struct {
	PlacementID string         `json:"placement_id"`
	Center      geometry.Point `json:"center"`
	Radius      float64        `json:"radius"`
	RoomID      string         `json:"room_id,omitempty"`
}

// Covers reports whether the zone covers point p in the given room. Motion
// coverage never leaks into a neighbouring room, so the room id must match
// the zone's owner.
func (z MotionZone) Covers(roomID string, p geometry.Point) bool {
	if z.RoomID == "" || z.RoomID != roomID {
		return false
	}
	return geometry.Distance(z.Center, p) <= z.Radius
}

// RoomCoverage is the derived coverage state of one room.
type RoomCoverage struct {
	RoomID         string    `json:"room_id"`
	RoomName       string    `json:"room_name"`
	State          RoomState `json:"state"`
	Ratio          float64   `json:"ratio"`
	HasEntrySensor bool      `json:"has_entry_sensor"`
}

// DoorException is an exterior door that no camera cone watches. Label is
// the door's own label and may be empty; reporting substitutes a default.
type DoorException struct {
	RoomID   string         `json:"room_id"`
	Label    string         `json:"label,omitempty"`
	Position geometry.Point `json:"position"`
}

// Overlay is the full coverage picture for one floor, shaped for direct
// rendering by the editor and for the export rollup.
type Overlay struct {
	FloorID        string          `json:"floor_id"`
	Cones          []CameraCone    `json:"cones"`
	Zones          []MotionZone    `json:"zones"`
	Rooms          []RoomCoverage  `json:"rooms"`
	DoorExceptions []DoorException `json:"door_exceptions"`
}
