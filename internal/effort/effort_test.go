package effort

import (
	"reflect"
	"testing"

	"github.com/hearthwatch/planner-core/internal/device"
	"github.com/hearthwatch/planner-core/internal/layout"
)

func TestEstimateInstall_Ranges(t *testing.T) {
	tests := []struct {
		name   string
		mix    Mix
		floors int
		want   Range
	}{
		{
			name:   "small camera-free mix drops to S",
			mix:    Mix{EntrySensors: 4, MotionSensors: 2},
			floors: 1,
			want:   RangeS,
		},
		{
			name:   "seven sensors stay at M",
			mix:    Mix{EntrySensors: 4, MotionSensors: 2, LeakSensors: 1},
			floors: 1,
			want:   RangeM,
		},
		{
			name:   "any camera keeps the baseline",
			mix:    Mix{IndoorCameras: 1},
			floors: 1,
			want:   RangeM,
		},
		{
			name:   "one outdoor camera lifts to L",
			mix:    Mix{OutdoorCameras: 1},
			floors: 1,
			want:   RangeL,
		},
		{
			name:   "two outdoor cameras lift to XL",
			mix:    Mix{OutdoorCameras: 2},
			floors: 1,
			want:   RangeXL,
		},
		{
			name:   "second storey lifts to XL",
			mix:    Mix{OutdoorCameras: 1},
			floors: 2,
			want:   RangeXL,
		},
		{
			name:   "multi-storey wins even without outdoor cameras",
			mix:    Mix{EntrySensors: 2},
			floors: 2,
			want:   RangeXL,
		},
		{
			name:   "empty mix on one floor is S",
			mix:    Mix{},
			floors: 1,
			want:   RangeS,
		},
		{
			name:   "zero floors treated as one",
			mix:    Mix{IndoorCameras: 1},
			floors: 0,
			want:   RangeM,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateInstall(tt.mix, tt.floors)
			if got.Range != tt.want {
				t.Errorf("range = %s, want %s", got.Range, tt.want)
			}
			if got.Hours != rangeHours[tt.want] {
				t.Errorf("hours = %+v, want %+v", got.Hours, rangeHours[tt.want])
			}
		})
	}
}

func TestEstimateInstall_SingleOutdoorCamera(t *testing.T) {
	got := EstimateInstall(Mix{OutdoorCameras: 1}, 1)

	if got.Range != RangeL {
		t.Errorf("range = %s, want L", got.Range)
	}
	if got.Hours != (Hours{Min: 5, Max: 8}) {
		t.Errorf("hours = %+v, want 5-8", got.Hours)
	}
	want := []string{BadgePoECableRuns, BadgeExteriorMount, BadgeDrillLadders}
	if !reflect.DeepEqual(got.Badges, want) {
		t.Errorf("badges = %v, want %v", got.Badges, want)
	}
}

func TestEstimateInstall_Badges(t *testing.T) {
	tests := []struct {
		name   string
		mix    Mix
		floors int
		want   []string
	}{
		{
			name:   "no devices on one floor",
			mix:    Mix{},
			floors: 1,
			want:   nil,
		},
		{
			name:   "indoor camera only",
			mix:    Mix{IndoorCameras: 2},
			floors: 1,
			want:   []string{BadgeWiFiDevices},
		},
		{
			name:   "doorbell pulls wifi, mounting, and power check",
			mix:    Mix{DoorbellCameras: 1},
			floors: 1,
			want:   []string{BadgeWiFiDevices, BadgeExteriorMount, BadgeDoorbellPower},
		},
		{
			name:   "second storey alone needs ladders",
			mix:    Mix{EntrySensors: 1},
			floors: 2,
			want:   []string{BadgeDrillLadders},
		},
		{
			name:   "full mix collects every badge",
			mix:    Mix{DoorbellCameras: 1, IndoorCameras: 1, OutdoorCameras: 1},
			floors: 2,
			want: []string{
				BadgeWiFiDevices, BadgePoECableRuns, BadgeExteriorMount,
				BadgeDoorbellPower, BadgeDrillLadders,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateInstall(tt.mix, tt.floors)
			if !reflect.DeepEqual(got.Badges, tt.want) {
				t.Errorf("badges = %v, want %v", got.Badges, tt.want)
			}
		})
	}
}

func TestMixFromPlacements(t *testing.T) {
	placements := []layout.Placement{
		{ID: "1", Kind: device.KindVideoDoorbell},
		{ID: "2", Kind: device.KindOutdoorCamera},
		{ID: "3", Kind: device.KindDoorSensor},
		{ID: "4", Kind: device.KindWindowSensor},
		{ID: "5", Kind: device.KindGlassBreak},
		{ID: "6", Kind: device.KindMotionSensor},
		{ID: "7", Kind: device.KindLeakSensor},
		{ID: "8", Kind: device.KindSecurityHub},
	}

	got := MixFromPlacements(placements)
	want := Mix{
		DoorbellCameras:   1,
		OutdoorCameras:    1,
		EntrySensors:      2,
		GlassBreakSensors: 1,
		MotionSensors:     1,
		LeakSensors:       1,
	}
	if got != want {
		t.Errorf("MixFromPlacements = %+v, want %+v", got, want)
	}
}
