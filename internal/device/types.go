package device

// Kind represents the specific kind of security device a placement refers to.
type Kind string

// Sensor kinds.
const (
	KindDoorSensor   Kind = "door_sensor"
	KindWindowSensor Kind = "window_sensor"
	KindGlassBreak   Kind = "glass_break_sensor"
	KindMotionSensor Kind = "motion_sensor"
	KindLeakSensor   Kind = "leak_sensor"
)

// Camera kinds.
const (
	KindIndoorCamera  Kind = "indoor_camera"
	KindVideoDoorbell Kind = "video_doorbell"
	KindOutdoorCamera Kind = "outdoor_camera"
)

// Hub and accessory kinds.
const (
	KindSiren         Kind = "siren"
	KindSecurityHub   Kind = "security_hub"
	KindRecordingHost Kind = "recording_host"
)

// AllKinds returns all valid device kind values.
func AllKinds() []Kind {
	return []Kind{
		KindDoorSensor, KindWindowSensor, KindGlassBreak,
		KindMotionSensor, KindLeakSensor,
		KindIndoorCamera, KindVideoDoorbell, KindOutdoorCamera,
		KindSiren, KindSecurityHub, KindRecordingHost,
	}
}

// CameraClass groups camera-capable kinds into the three classes the
// coverage model and device summary report on.
type CameraClass string

// CameraClass constants.
const (
	CameraClassDoorbell CameraClass = "doorbell"
	CameraClassIndoor   CameraClass = "indoor"
	CameraClassOutdoor  CameraClass = "outdoor_poe"
)

// CameraSpec holds the fixed detection-zone parameters for a camera class.
// Radius is in layout units; HalfAngleDeg is half of the field of view.
type CameraSpec struct {
	Class        CameraClass
	Radius       float64
	HalfAngleDeg float64
}
