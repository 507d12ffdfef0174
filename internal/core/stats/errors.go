package stats

import "errors"

// ErrInvalidArgument is returned when a pre-seeded accumulator is constructed
// from an internally inconsistent state.
var ErrInvalidArgument = errors.New("invalid accumulator argument")
