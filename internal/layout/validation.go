package layout

import (
	"fmt"

	"github.com/hearthwatch/planner-core/internal/device"
	"github.com/hearthwatch/planner-core/internal/geometry"
)

// Validation constants.
const (
	maxNameLength      = 100
	maxLabelLength     = 60
	maxRoomsPerFloor   = 50
	maxFloorsPerLayout = 10

	minRotation = 0.0
	maxRotation = 360.0
)

// validWallSides is the pre-computed set for O(1) wall-side validation.
var validWallSides map[geometry.WallSide]struct{}

func init() {
	validWallSides = make(map[geometry.WallSide]struct{}, len(geometry.AllWallSides()))
	for _, s := range geometry.AllWallSides() {
		validWallSides[s] = struct{}{}
	}
}

// ValidateLayout checks a layout and all nested floors and rooms before a
// save. The coverage engine itself is total over malformed data; validation
// exists so the editor gets an actionable error instead of silently storing
// a plan that renders incorrectly.
func ValidateLayout(l *Layout) error {
	if l == nil {
		return fmt.Errorf("%w: nil layout", ErrInvalidLayout)
	}
	if l.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidLayout)
	}
	if l.Name == "" || len(l.Name) > maxNameLength {
		return fmt.Errorf("%w: name must be 1-%d characters", ErrInvalidLayout, maxNameLength)
	}
	if len(l.Floors) == 0 {
		return fmt.Errorf("%w: at least one floor is required", ErrInvalidLayout)
	}
	if len(l.Floors) > maxFloorsPerLayout {
		return fmt.Errorf("%w: at most %d floors", ErrInvalidLayout, maxFloorsPerLayout)
	}

	seenFloors := make(map[string]struct{}, len(l.Floors))
	for i := range l.Floors {
		f := &l.Floors[i]
		if f.ID == "" {
			return fmt.Errorf("%w: floor %d has no id", ErrInvalidLayout, i)
		}
		if _, dup := seenFloors[f.ID]; dup {
			return fmt.Errorf("%w: duplicate floor id %q", ErrInvalidLayout, f.ID)
		}
		seenFloors[f.ID] = struct{}{}
		if len(f.Label) > maxLabelLength {
			return fmt.Errorf("%w: floor %q label too long", ErrInvalidLayout, f.ID)
		}
		if err := validateRooms(f); err != nil {
			return err
		}
	}
	return nil
}

// validateRooms checks the rooms of a single floor.
func validateRooms(f *Floor) error {
	if len(f.Rooms) > maxRoomsPerFloor {
		return fmt.Errorf("%w: floor %q has more than %d rooms", ErrInvalidRoom, f.ID, maxRoomsPerFloor)
	}

	seen := make(map[string]struct{}, len(f.Rooms))
	for i := range f.Rooms {
		room := &f.Rooms[i]
		if room.ID == "" {
			return fmt.Errorf("%w: room %d on floor %q has no id", ErrInvalidRoom, i, f.ID)
		}
		if _, dup := seen[room.ID]; dup {
			return fmt.Errorf("%w: duplicate room id %q", ErrInvalidRoom, room.ID)
		}
		seen[room.ID] = struct{}{}
		if len(room.Name) > maxNameLength {
			return fmt.Errorf("%w: room %q name too long", ErrInvalidRoom, room.ID)
		}
		if room.Bounds.Width < 0 || room.Bounds.Height < 0 {
			return fmt.Errorf("%w: room %q has negative bounds", ErrInvalidRoom, room.ID)
		}
		for _, d := range room.Doors {
			if _, ok := validWallSides[d.Wall]; !ok {
				return fmt.Errorf("%w: room %q door on unknown wall %q", ErrInvalidRoom, room.ID, d.Wall)
			}
		}
		for _, win := range room.Windows {
			if _, ok := validWallSides[win.Wall]; !ok {
				return fmt.Errorf("%w: room %q window on unknown wall %q", ErrInvalidRoom, room.ID, win.Wall)
			}
		}
	}
	return nil
}

// ValidatePlacement checks a single placement against the layout it is
// being saved into. Optional fields are not required to be present — a
// missing rotation or wall snap is the documented default, not an error —
// but present values must be well-formed.
func ValidatePlacement(l *Layout, p *Placement) error {
	if p == nil {
		return fmt.Errorf("%w: nil placement", ErrInvalidPlacement)
	}
	if p.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidPlacement)
	}
	if !device.IsValidKind(p.Kind) {
		return fmt.Errorf("%w: unknown device kind %q", ErrInvalidPlacement, p.Kind)
	}
	if l.FloorByID(p.FloorID) == nil {
		return fmt.Errorf("%w: placement %q names floor %q", ErrUnknownFloor, p.ID, p.FloorID)
	}
	if p.WallSnap != nil {
		if _, ok := validWallSides[p.WallSnap.Wall]; !ok {
			return fmt.Errorf("%w: placement %q wall snap on unknown wall %q", ErrInvalidPlacement, p.ID, p.WallSnap.Wall)
		}
	}
	if p.RotationDeg != nil {
		if *p.RotationDeg < minRotation || *p.RotationDeg > maxRotation {
			return fmt.Errorf("%w: placement %q rotation %v out of range", ErrInvalidPlacement, p.ID, *p.RotationDeg)
		}
	}
	switch p.Provenance {
	case ProvenanceSuggested, ProvenanceUser, "":
		// Empty provenance defaults to user at the API layer.
	default:
		return fmt.Errorf("%w: placement %q unknown provenance %q", ErrInvalidPlacement, p.ID, p.Provenance)
	}
	return nil
}

// ValidatePlacements checks a whole placement set for a layout, including
// duplicate id detection.
func ValidatePlacements(l *Layout, placements []Placement) error {
	seen := make(map[string]struct{}, len(placements))
	for i := range placements {
		p := &placements[i]
		if err := ValidatePlacement(l, p); err != nil {
			return err
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("%w: duplicate placement id %q", ErrInvalidPlacement, p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return nil
}
