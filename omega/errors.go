package omega

import (
	"errors"
	"fmt"
)

// Error kinds for OMEGA operations. Pipeline stages wrap these with context
// and propagate immediately; there is no local recovery or retry policy.
//
// A receive with no buffered message, or with a buffered but non-resonant
// message, is not an error: both return a present-but-empty result, since
// frequency filtering is a normal outcome.
var (
	// ErrVectorization indicates a message could not be projected into the
	// vector space (empty input).
	ErrVectorization = errors.New("vectorization error")

	// ErrMasking indicates the masking transform failed.
	ErrMasking = errors.New("masking error")

	// ErrResonance indicates a vector could not be tested for resonance,
	// such as a polled vector of the wrong dimension.
	ErrResonance = errors.New("resonance error")

	// ErrNetwork indicates the transport rejected or lost a vector.
	ErrNetwork = errors.New("network error")

	// ErrParameter indicates invalid operator or node parameters.
	ErrParameter = errors.New("parameter error")

	// ErrIO wraps transport-layer I/O failures.
	ErrIO = errors.New("io error")
)

func errParam(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrParameter}, args...)...)
}
