package core

import "errors"

// Error taxonomy shared by all processors. Callers test with errors.Is; the
// concrete errors wrap these with the offending parameter and value.
var (
	// ErrInvalidArgument reports an out-of-range or malformed parameter or input.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrAllocation reports that sample storage could not be obtained.
	ErrAllocation = errors.New("allocation failed")
)
