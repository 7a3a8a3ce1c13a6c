package device

// MotionRadius is the fixed detection radius for motion sensors, in layout
// units. Motion coverage is always clipped to the sensor's owning room.
const MotionRadius = 140.0

// cameraSpecs maps camera-capable kinds to their fixed detection-zone
// parameters. The angle is the half-angle: a sample point is inside the
// cone when its angular deviation from the facing direction is at most
// HalfAngleDeg. These values are frozen — downstream snapshot tests assert
// against them.
var cameraSpecs = map[Kind]CameraSpec{
	KindVideoDoorbell: {Class: CameraClassDoorbell, Radius: 140, HalfAngleDeg: 70},
	KindIndoorCamera:  {Class: CameraClassIndoor, Radius: 170, HalfAngleDeg: 90},
	KindOutdoorCamera: {Class: CameraClassOutdoor, Radius: 200, HalfAngleDeg: 95},
}

// entrySensorKinds are the contact-sensor kinds. They flag a room as having
// an entry sensor but contribute no area coverage.
var entrySensorKinds = map[Kind]struct{}{
	KindDoorSensor:   {},
	KindWindowSensor: {},
}

// wallAnchoredKinds are the kinds that carry a wall snap once placed in a
// room. Devices outside this set ignore any wall snap on their placement.
var wallAnchoredKinds = map[Kind]struct{}{
	KindDoorSensor:    {},
	KindWindowSensor:  {},
	KindVideoDoorbell: {},
	KindOutdoorCamera: {},
	KindSiren:         {},
}

// directionalKinds are the kinds whose rotation is meaningful: they project
// a field-of-view cone in their facing direction.
var directionalKinds = map[Kind]struct{}{
	KindVideoDoorbell: {},
	KindIndoorCamera:  {},
	KindOutdoorCamera: {},
}

// validKinds is the pre-computed set for O(1) kind validation.
var validKinds map[Kind]struct{}

func init() {
	validKinds = make(map[Kind]struct{}, len(AllKinds()))
	for _, k := range AllKinds() {
		validKinds[k] = struct{}{}
	}
}

// IsValidKind reports whether k is a known device kind.
func IsValidKind(k Kind) bool {
	_, ok := validKinds[k]
	return ok
}

// CameraSpecFor returns the camera detection-zone spec for a kind.
// The second return value is false for kinds with no camera class; this is
// not an error — most device kinds simply produce no cone.
func CameraSpecFor(k Kind) (CameraSpec, bool) {
	spec, ok := cameraSpecs[k]
	return spec, ok
}

// IsCamera reports whether k has a camera class.
func IsCamera(k Kind) bool {
	_, ok := cameraSpecs[k]
	return ok
}

// IsEntrySensor reports whether k is a door or window contact sensor.
func IsEntrySensor(k Kind) bool {
	_, ok := entrySensorKinds[k]
	return ok
}

// IsWallAnchored reports whether k should carry a wall snap once placed.
func IsWallAnchored(k Kind) bool {
	_, ok := wallAnchoredKinds[k]
	return ok
}

// IsDirectional reports whether rotation is meaningful for k.
func IsDirectional(k Kind) bool {
	_, ok := directionalKinds[k]
	return ok
}
