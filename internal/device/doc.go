// Package device defines the security device catalogue and its fixed
// classification tables.
//
// Every planning computation in Hearthwatch is table-driven: a device kind
// maps to at most one camera class (field-of-view radius and half-angle),
// a motion detection radius, or an entry-sensor flag. The tables are the
// single source of truth — coverage classification, device summaries, and
// tier recommendations all read the same values, so test fixtures can
// assert against exact numbers.
//
// # Key Types
//
//   - Kind: enumeration of placeable device kinds
//   - CameraClass: doorbell / indoor / outdoor camera classification
//   - CameraSpec: fixed (radius, half-angle) pair per camera class
//
// The tables are initialised once and never mutated at runtime.
package device
