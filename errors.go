package gochroma

import "errors"

// Error kinds, matched with [errors.Is]. Concrete errors returned by this
// package wrap one of these with additional context via fmt.Errorf's %w.
var (
	// ErrConfig marks an invalid or conflicting [Config]. Returned before
	// any solving starts.
	ErrConfig = errors.New("gochroma: invalid configuration")

	// ErrInput marks a missing or malformed graph.
	ErrInput = errors.New("gochroma: invalid input")

	// ErrCapacity marks a variable index overflow in an encoder. The
	// current k should be abandoned; the driver may retry with a looser
	// encoding.
	ErrCapacity = errors.New("gochroma: encoding exceeded variable capacity")

	// ErrBackend marks a SAT backend that returned Unknown or failed.
	// Surfaced to the driver, which terminates the current strategy.
	ErrBackend = errors.New("gochroma: SAT backend error")

	// ErrInvariant marks an internal consistency failure (union-find
	// mismatch, journal imbalance, cardinality encoder out of sync). This
	// signals a bug in gochroma itself and must never be silently
	// recovered from; callers should treat it as fatal.
	ErrInvariant = errors.New("gochroma: internal invariant violated")
)
