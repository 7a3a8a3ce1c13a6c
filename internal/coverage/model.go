package coverage

import (
	"math"

	"github.com/hearthwatch/planner-core/internal/device"
	"github.com/hearthwatch/planner-core/internal/geometry"
	"github.com/hearthwatch/planner-core/internal/layout"
)

// Sampling and classification constants. These are frozen: downstream
// snapshot tests assert on exact ratios and states.
const (
	// gridSize is the number of sample cells per room axis.
	gridSize = 5

	// sampleCount is the total number of sample points per room.
	sampleCount = gridSize * gridSize

	// greenThreshold is the minimum covered ratio for a green room.
	greenThreshold = 0.60

	// yellowThreshold is the minimum covered ratio for a yellow room.
	yellowThreshold = 0.30

	// doorProximityTolerance extends a cone's radius when testing whether
	// an exterior door is watched, in layout units.
	doorProximityTolerance = 22.0
)

// CameraCones derives view cones for every camera-class placement on the
// floor. Non-camera placements produce no cone. The facing direction is the
// placement's explicit rotation when set and finite, else the outward
// normal of its wall snap, else 0 (south).
func CameraCones(floor *layout.Floor, placements []layout.Placement) []CameraCone {
	if floor == nil {
		return nil
	}

	var cones []CameraCone
	for i := range placements {
		p := &placements[i]
		if !p.OnFloor(floor.ID) {
			continue
		}
		spec, ok := device.CameraSpecFor(p.Kind)
		if !ok {
			continue
		}
		cones = append(cones, CameraCone{
			PlacementID:  p.ID,
			Class:        spec.Class,
			Origin:       p.Position,
			Radius:       spec.Radius,
			HalfAngleDeg: spec.HalfAngleDeg,
			FacingDeg:    facingDegrees(p),
		})
	}
	return cones
}

// facingDegrees resolves a placement's effective facing direction.
// A malformed rotation (NaN or infinite) is treated as absent.
func facingDegrees(p *layout.Placement) float64 {
	if p.RotationDeg != nil && !math.IsNaN(*p.RotationDeg) && !math.IsInf(*p.RotationDeg, 0) {
		return geometry.NormalizeDegrees(*p.RotationDeg)
	}
	if p.WallSnap != nil {
		return geometry.OutwardNormalDegrees(p.WallSnap.Wall)
	}
	return 0
}

// MotionZones derives detection circles for every motion sensor on the
// floor. Each zone records its resolved owning room; an unresolved sensor
// still yields a zone, but one that clips to no room and so covers nothing.
func MotionZones(floor *layout.Floor, placements []layout.Placement) []MotionZone {
	if floor == nil {
		return nil
	}

	var zones []MotionZone
	for i := range placements {
		p := &placements[i]
		if !p.OnFloor(floor.ID) || p.Kind != device.KindMotionSensor {
			continue
		}
		zone := MotionZone{
			PlacementID: p.ID,
			Center:      p.Position,
			Radius:      device.MotionRadius,
		}
		if room := p.ResolveRoom(floor); room != nil {
			zone.RoomID = room.ID
		}
		zones = append(zones, zone)
	}
	return zones
}

// RoomStates classifies every room on the floor. Pass precomputed cones and
// zones to reuse them across calls; nil slices are computed from the
// placements.
//
// Each room is sampled on a fixed 5x5 grid of cell-center points. A point
// counts as covered when it lies in any camera cone or in a motion zone
// owned by the room. Ratio >= 0.60 is green; ratio >= 0.30 or an entry
// sensor in the room is yellow; anything else is red.
func RoomStates(floor *layout.Floor, placements []layout.Placement, cones []CameraCone, zones []MotionZone) []RoomCoverage {
	if floor == nil {
		return nil
	}
	if cones == nil {
		cones = CameraCones(floor, placements)
	}
	if zones == nil {
		zones = MotionZones(floor, placements)
	}

	entryRooms := roomsWithEntrySensors(floor, placements)

	states := make([]RoomCoverage, 0, len(floor.Rooms))
	for i := range floor.Rooms {
		room := &floor.Rooms[i]
		ratio := sampleRoom(room, cones, zones)
		hasEntry := entryRooms[room.ID]

		state := StateRed
		switch {
		case ratio >= greenThreshold:
			state = StateGreen
		case ratio >= yellowThreshold || hasEntry:
			state = StateYellow
		}

		states = append(states, RoomCoverage{
			RoomID:         room.ID,
			RoomName:       room.Name,
			State:          state,
			Ratio:          ratio,
			HasEntrySensor: hasEntry,
		})
	}
	return states
}

// sampleRoom returns the fraction of the room's sample grid covered by a
// cone or by a motion zone owned by the room. Degenerate rooms still sample
// a full grid (every point collapses onto the same spot) so the ratio is
// always defined.
func sampleRoom(room *layout.Room, cones []CameraCone, zones []MotionZone) float64 {
	covered := 0
	for row := 0; row < gridSize; row++ {
		for col := 0; col < gridSize; col++ {
			p := geometry.Point{
				X: room.Bounds.X + room.Bounds.Width*(2*float64(col)+1)/(2*gridSize),
				Y: room.Bounds.Y + room.Bounds.Height*(2*float64(row)+1)/(2*gridSize),
			}
			if pointCovered(room.ID, p, cones, zones) {
				covered++
			}
		}
	}
	return float64(covered) / sampleCount
}

func pointCovered(roomID string, p geometry.Point, cones []CameraCone, zones []MotionZone) bool {
	for _, c := range cones {
		if c.Covers(p, 0) {
			return true
		}
	}
	for _, z := range zones {
		if z.Covers(roomID, p) {
			return true
		}
	}
	return false
}

// roomsWithEntrySensors returns the ids of rooms that resolve at least one
// door or window contact sensor.
func roomsWithEntrySensors(floor *layout.Floor, placements []layout.Placement) map[string]bool {
	rooms := make(map[string]bool)
	for i := range placements {
		p := &placements[i]
		if !p.OnFloor(floor.ID) || !device.IsEntrySensor(p.Kind) {
			continue
		}
		if room := p.ResolveRoom(floor); room != nil {
			rooms[room.ID] = true
		}
	}
	return rooms
}

// DoorExceptions returns every exterior door on the floor that no camera
// cone watches. The test extends each cone's radius by a small tolerance
// but keeps the angular check, so a door just past a camera's reach still
// counts as covered while one behind the camera never does. Pass nil cones
// to compute them from the placements.
func DoorExceptions(floor *layout.Floor, placements []layout.Placement, cones []CameraCone) []DoorException {
	if floor == nil {
		return nil
	}
	if cones == nil {
		cones = CameraCones(floor, placements)
	}

	var exceptions []DoorException
	for i := range floor.Rooms {
		room := &floor.Rooms[i]
		for _, door := range room.Doors {
			if !door.Exterior {
				continue
			}
			pos := door.Position(*room)
			if doorWatched(pos, cones) {
				continue
			}
			exceptions = append(exceptions, DoorException{
				RoomID:   room.ID,
				Label:    door.Label,
				Position: pos,
			})
		}
	}
	return exceptions
}

func doorWatched(pos geometry.Point, cones []CameraCone) bool {
	for _, c := range cones {
		if c.Covers(pos, doorProximityTolerance) {
			return true
		}
	}
	return false
}

// BuildOverlay composes cones, zones, room states, and door exceptions for
// one floor into the overlay the editor renders. An empty or nil floor
// yields an overlay with empty collections; absence of devices is never an
// error, just no coverage.
func BuildOverlay(floor *layout.Floor, placements []layout.Placement) Overlay {
	if floor == nil {
		return Overlay{}
	}
	cones := CameraCones(floor, placements)
	zones := MotionZones(floor, placements)
	return Overlay{
		FloorID:        floor.ID,
		Cones:          cones,
		Zones:          zones,
		Rooms:          RoomStates(floor, placements, cones, zones),
		DoorExceptions: DoorExceptions(floor, placements, cones),
	}
}
