package coverage

import (
	"fmt"
	"sort"

	"github.com/hearthwatch/planner-core/internal/device"
	"github.com/hearthwatch/planner-core/internal/layout"
)

// defaultDoorLabel substitutes for an unlabeled exterior door in reports.
const defaultDoorLabel = "Exterior door"

// DeviceSummary tallies the placements that matter for the export header.
// TotalCameras is always the sum of the three camera classes.
type DeviceSummary struct {
	DoorbellCameras int `json:"doorbell_cameras"`
	IndoorCameras   int `json:"indoor_cameras"`
	OutdoorCameras  int `json:"outdoor_cameras"`
	TotalCameras    int `json:"total_cameras"`
	MotionSensors   int `json:"motion_sensors"`
	EntrySensors    int `json:"entry_sensors"`
}

// Summarize counts cameras by class plus motion and entry sensors across
// the given placements. It uses the same kind-to-class table as the
// coverage model, so the summary never disagrees with the overlay.
func Summarize(placements []layout.Placement) DeviceSummary {
	var s DeviceSummary
	for i := range placements {
		kind := placements[i].Kind
		if spec, ok := device.CameraSpecFor(kind); ok {
			switch spec.Class {
			case device.CameraClassDoorbell:
				s.DoorbellCameras++
			case device.CameraClassIndoor:
				s.IndoorCameras++
			case device.CameraClassOutdoor:
				s.OutdoorCameras++
			}
			continue
		}
		switch {
		case kind == device.KindMotionSensor:
			s.MotionSensors++
		case device.IsEntrySensor(kind):
			s.EntrySensors++
		}
	}
	s.TotalCameras = s.DoorbellCameras + s.IndoorCameras + s.OutdoorCameras
	return s
}

// CoverageNotes is the plain-text rollup the export layer prints under the
// floor plan.
type CoverageNotes struct {
	Rollup     []string `json:"rollup"`
	Exceptions []string `json:"exceptions"`
}

// Notes reduces room states and door exceptions to deterministic report
// lines. The rollup always lists green, yellow, then red, including zero
// counts, and exceptions are sorted lexicographically by their formatted
// label.
func Notes(rooms []RoomCoverage, exceptions []DoorException) CoverageNotes {
	counts := make(map[RoomState]int, 3)
	for _, r := range rooms {
		counts[r.State]++
	}

	var notes CoverageNotes
	for _, state := range AllRoomStates() {
		notes.Rollup = append(notes.Rollup, fmt.Sprintf("%d room(s) %s", counts[state], state))
	}

	for _, e := range exceptions {
		label := e.Label
		if label == "" {
			label = defaultDoorLabel
		}
		notes.Exceptions = append(notes.Exceptions, fmt.Sprintf("%s (no camera coverage)", label))
	}
	sort.Strings(notes.Exceptions)

	return notes
}
