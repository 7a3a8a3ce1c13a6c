package layout

import "errors"

// Domain errors for the layout package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, layout.ErrLayoutNotFound) {
//	    // handle not found case
//	}
var (
	// ErrLayoutNotFound is returned when a layout id does not exist.
	ErrLayoutNotFound = errors.New("layout: not found")

	// ErrLayoutExists is returned when creating a layout with an id that
	// already exists.
	ErrLayoutExists = errors.New("layout: already exists")

	// ErrInvalidLayout is returned when layout validation fails.
	ErrInvalidLayout = errors.New("layout: invalid")

	// ErrInvalidRoom is returned when a room fails validation.
	ErrInvalidRoom = errors.New("layout: invalid room")

	// ErrInvalidPlacement is returned when a placement fails validation.
	ErrInvalidPlacement = errors.New("layout: invalid placement")

	// ErrUnknownFloor is returned when a placement names a floor that is
	// not part of the layout being saved.
	ErrUnknownFloor = errors.New("layout: unknown floor")
)
