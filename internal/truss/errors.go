package truss

import "errors"

// Domain errors for structure editing operations. Every rejected edit
// leaves the structure unchanged.
var (
	// ErrDegenerateElement indicates an element between a node and itself
	// or between coincident nodes (zero rest length).
	ErrDegenerateElement = errors.New("truss: degenerate element (zero rest length)")

	// ErrInvalidReference indicates an operation naming a node, element,
	// or load id that is not present.
	ErrInvalidReference = errors.New("truss: invalid reference")
)
