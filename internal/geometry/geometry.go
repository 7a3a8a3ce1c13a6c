package geometry

import "math"

// Point is a position in layout units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned rectangle in layout units.
// X and Y are the top-left corner (screen convention, Y grows down).
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// WallSide identifies one edge of a room rectangle.
type WallSide string

// Wall side constants. North is the top edge in screen coordinates.
const (
	WallNorth WallSide = "north"
	WallSouth WallSide = "south"
	WallEast  WallSide = "east"
	WallWest  WallSide = "west"
)

// AllWallSides returns all valid wall side values.
func AllWallSides() []WallSide {
	return []WallSide{WallNorth, WallSouth, WallEast, WallWest}
}

// degreesPerRadian converts between the math package's radians and the
// degree-based angles stored on device placements.
const degreesPerRadian = 180 / math.Pi

// fullCircle is the number of degrees in a full rotation.
const fullCircle = 360.0

// halfCircle is the maximum meaningful angular deviation.
const halfCircle = 180.0

// Contains reports whether p lies inside r, edges inclusive.
// A zero-area rectangle contains only its own corner point.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Area returns the rectangle's area. Degenerate rectangles return 0.
func (r Rect) Area() float64 {
	if r.Width <= 0 || r.Height <= 0 {
		return 0
	}
	return r.Width * r.Height
}

// Clamp01 clamps v to the [0,1] range. NaN clamps to 0.
func Clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// WallPoint returns the absolute position of a marker placed on the named
// wall of r at the given offset. Offset 0 is the top or left end of the
// wall, offset 1 the bottom or right end; values outside [0,1] are clamped.
// Unknown sides resolve to the south wall so a malformed marker still maps
// to a defined position.
func WallPoint(r Rect, side WallSide, offset float64) Point {
	t := Clamp01(offset)
	switch side {
	case WallNorth:
		return Point{X: r.X + r.Width*t, Y: r.Y}
	case WallEast:
		return Point{X: r.X + r.Width, Y: r.Y + r.Height*t}
	case WallWest:
		return Point{X: r.X, Y: r.Y + r.Height*t}
	case WallSouth:
		fallthrough
	default:
		return Point{X: r.X + r.Width*t, Y: r.Y + r.Height}
	}
}

// OutwardNormalDegrees returns the facing angle pointing out of the room
// through the named wall. A doorbell snapped to the south wall faces 0°
// (south), one on the north wall faces 180°.
func OutwardNormalDegrees(side WallSide) float64 {
	switch side {
	case WallNorth:
		return 180
	case WallEast:
		return 90
	case WallWest:
		return 270
	case WallSouth:
		fallthrough
	default:
		return 0
	}
}

// NearestWall returns the wall of r closest to p together with the offset
// of p projected onto that wall. Used by the editor to snap wall-anchored
// devices; ties resolve in north, south, east, west order.
func NearestWall(r Rect, p Point) (WallSide, float64) {
	type candidate struct {
		side   WallSide
		dist   float64
		offset float64
	}

	candidates := []candidate{
		{WallNorth, math.Abs(p.Y - r.Y), offsetAlong(p.X, r.X, r.Width)},
		{WallSouth, math.Abs(p.Y - (r.Y + r.Height)), offsetAlong(p.X, r.X, r.Width)},
		{WallEast, math.Abs(p.X - (r.X + r.Width)), offsetAlong(p.Y, r.Y, r.Height)},
		{WallWest, math.Abs(p.X - r.X), offsetAlong(p.Y, r.Y, r.Height)},
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.dist < best.dist {
			best = c
		}
	}
	return best.side, best.offset
}

// offsetAlong converts an absolute coordinate to a [0,1] offset along a wall
// starting at origin with the given length. Zero-length walls return 0.
func offsetAlong(v, origin, length float64) float64 {
	if length <= 0 {
		return 0
	}
	return Clamp01((v - origin) / length)
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// DirectionDegrees returns the compass facing from one point towards
// another: 0° south, 90° east, 180° north, 270° west. Coincident points
// return 0.
func DirectionDegrees(from, to Point) float64 {
	dx := to.X - from.X
	dy := to.Y - from.Y
	if dx == 0 && dy == 0 {
		return 0
	}
	return NormalizeDegrees(math.Atan2(dx, dy) * degreesPerRadian)
}

// NormalizeDegrees maps an angle to the [0,360) range.
func NormalizeDegrees(deg float64) float64 {
	d := math.Mod(deg, fullCircle)
	if d < 0 {
		d += fullCircle
	}
	return d
}

// AngularDelta returns the smallest absolute difference between two angles
// in degrees, always in [0,180].
func AngularDelta(a, b float64) float64 {
	d := math.Abs(NormalizeDegrees(a) - NormalizeDegrees(b))
	if d > halfCircle {
		d = fullCircle - d
	}
	return d
}
