// Package layout defines the floor-plan data model the coverage engine
// consumes: layouts, floors, rooms with door/window markers, and device
// placements.
//
// The layout editor owns these entities; the engine only ever reads them.
// Persistence is provided by a SQLite-backed Repository in the same shape
// as the rest of the infrastructure — the engine itself never touches the
// repository, the API layer loads a layout and hands immutable values to
// the engine packages.
//
// # Key Types
//
//   - Layout: named set of floors, the unit of persistence
//   - Floor: ordered list of rooms
//   - Room: rectangular bounds plus door and window markers
//   - Placement: one security device positioned on a floor
//
// Room resolution for placements without an explicit room id is a pure
// point-in-rectangle lookup (first containing room wins); results are never
// cached back onto the placement.
package layout
