package sim

import "errors"

var (
	// ErrInvalidOperationState indicates an operation that requires the
	// simulation to be in the opposite running state, e.g. starting a
	// recording while stopped or an impulse test while running. The
	// simulation and structure are left unchanged.
	ErrInvalidOperationState = errors.New("sim: invalid operation state")

	// ErrUnstable indicates the integration produced a NaN or Inf
	// position (state diverged).
	ErrUnstable = errors.New("sim: simulation unstable (state diverged)")
)
