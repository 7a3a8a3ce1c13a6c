// Package coverage computes the detection-zone overlay for one floor of a
// layout: camera view cones, motion circles, a per-room coverage state, and
// the list of exterior doors no camera watches.
//
// # Architecture
//
//	┌──────────────┐      ┌───────────────────────────────┐
//	│ layout.Floor │─────▶│ CameraCones / MotionZones     │
//	│ + Placements │      └───────────────┬───────────────┘
//	└──────────────┘                      │
//	                                      ▼
//	                      ┌───────────────────────────────┐
//	                      │ RoomStates (5×5 grid sampling)│
//	                      │ DoorExceptions (cone + 22u)   │
//	                      └───────────────┬───────────────┘
//	                                      ▼
//	                      ┌───────────────────────────────┐
//	                      │ Overlay → Summarize / Notes   │
//	                      └───────────────────────────────┘
//
// Coverage is a coarse, explainable estimate. Cones ignore wall occlusion
// and line of sight; a room's state comes from sampling a fixed 5x5 grid of
// cell-center points against the cones and motion circles. The thresholds
// (0.60 green, 0.30 yellow) and the grid size are frozen so that repeated
// runs over the same layout produce identical output.
//
// # Key Types
//
//   - CameraCone: a camera's field of view (origin, radius, half-angle,
//     facing direction).
//   - MotionZone: a motion sensor's circle, clipped to its owning room.
//   - RoomCoverage: one room's state (green/yellow/red), sample ratio, and
//     entry-sensor flag.
//   - DoorException: an exterior door outside every cone.
//   - Overlay: the composed result for one floor, ready for rendering.
//
// # Thread Safety
//
// Every function in this package is pure: no I/O, no shared state, no
// mutation of its arguments. Calls may run concurrently without
// coordination.
package coverage
