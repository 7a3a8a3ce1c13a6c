// Package geometry provides the rectangle, point, and angle primitives used
// by the coverage engine.
//
// Coordinates follow the layout editor's screen convention: X grows right,
// Y grows down. Facing angles are expressed in compass-like degrees where
// 0° points south (+Y), 90° east, 180° north, and 270° west. All functions
// are pure and total: degenerate input (zero-area rectangles, zero-length
// walls) produces a defined result rather than an error.
package geometry
