// Package effort estimates installation effort for a device mix: an hour
// range sized by camera and floor demands, plus descriptive badges for the
// quote and export pages. The estimator is a pure rule table over counts;
// badges and the range are derived independently from the same mix.
package effort

import (
	"github.com/hearthwatch/planner-core/internal/device"
	"github.com/hearthwatch/planner-core/internal/layout"
)

// Range sizes the installation effort.
type Range string

// Range constants, smallest first.
const (
	RangeS  Range = "S"
	RangeM  Range = "M"
	RangeL  Range = "L"
	RangeXL Range = "XL"
)

// Hours is an estimated installation window.
type Hours struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// rangeHours maps each range to its fixed hour window.
var rangeHours = map[Range]Hours{
	RangeS:  {Min: 2, Max: 3},
	RangeM:  {Min: 3, Max: 5},
	RangeL:  {Min: 5, Max: 8},
	RangeXL: {Min: 8, Max: 12},
}

// Install badges, in the order they are appended.
const (
	BadgeWiFiDevices   = "Wi-Fi devices"
	BadgePoECableRuns  = "PoE cable runs"
	BadgeExteriorMount = "Exterior mounting"
	BadgeDoorbellPower = "Doorbell power check"
	BadgeDrillLadders  = "Drilling/ladders"
)

// Mix is the device-count input to the estimator.
type Mix struct {
	DoorbellCameras   int `json:"doorbell_cameras"`
	IndoorCameras     int `json:"indoor_cameras"`
	OutdoorCameras    int `json:"outdoor_cameras"`
	EntrySensors      int `json:"entry_sensors"`
	GlassBreakSensors int `json:"glass_break_sensors"`
	MotionSensors     int `json:"motion_sensors"`
	LeakSensors       int `json:"leak_sensors"`
}

func (m Mix) cameras() int {
	return m.DoorbellCameras + m.IndoorCameras + m.OutdoorCameras
}

func (m Mix) sensors() int {
	return m.EntrySensors + m.GlassBreakSensors + m.MotionSensors + m.LeakSensors
}

// Estimate is the derived installation effort.
type Estimate struct {
	Range  Range    `json:"range"`
	Hours  Hours    `json:"hours"`
	Badges []string `json:"badges,omitempty"`
}

// MixFromPlacements tallies placements into a Mix using the shared device
// kind tables.
func MixFromPlacements(placements []layout.Placement) Mix {
	var m Mix
	for i := range placements {
		switch kind := placements[i].Kind; {
		case kind == device.KindVideoDoorbell:
			m.DoorbellCameras++
		case kind == device.KindIndoorCamera:
			m.IndoorCameras++
		case kind == device.KindOutdoorCamera:
			m.OutdoorCameras++
		case device.IsEntrySensor(kind):
			m.EntrySensors++
		case kind == device.KindGlassBreak:
			m.GlassBreakSensors++
		case kind == device.KindMotionSensor:
			m.MotionSensors++
		case kind == device.KindLeakSensor:
			m.LeakSensors++
		}
	}
	return m
}

// EstimateInstall sizes the installation for a device mix and floor count.
//
// The baseline range is M. A camera-free mix with at most six sensors
// drops to S. Any outdoor PoE camera lifts the range to L, and two or more
// outdoor cameras or a multi-storey home lifts it to XL. Badges are
// appended from the raw mix independently of the chosen range.
func EstimateInstall(mix Mix, floors int) Estimate {
	if floors < 1 {
		floors = 1
	}

	r := RangeM
	if mix.cameras() == 0 && mix.sensors() <= 6 {
		r = RangeS
	}
	if mix.OutdoorCameras >= 1 {
		r = RangeL
	}
	if mix.OutdoorCameras >= 2 || floors >= 2 {
		r = RangeXL
	}

	var badges []string
	if mix.IndoorCameras > 0 || mix.DoorbellCameras > 0 {
		badges = append(badges, BadgeWiFiDevices)
	}
	if mix.OutdoorCameras > 0 {
		badges = append(badges, BadgePoECableRuns)
	}
	if mix.OutdoorCameras > 0 || mix.DoorbellCameras > 0 {
		badges = append(badges, BadgeExteriorMount)
	}
	if mix.DoorbellCameras > 0 {
		badges = append(badges, BadgeDoorbellPower)
	}
	if mix.OutdoorCameras > 0 || floors >= 2 {
		badges = append(badges, BadgeDrillLadders)
	}

	return Estimate{Range: r, Hours: rangeHours[r], Badges: badges}
}
