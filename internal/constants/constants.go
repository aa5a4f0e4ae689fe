// Package constants provides shared constants used across the codebase.
// Centralizing these values ensures consistency and makes them easier to modify.
package constants

import "time"

// Admission constants
const (
	// DefaultAdmissionLimit is the number of classification calls a caller may make per window
	DefaultAdmissionLimit = 5

	// DefaultAdmissionWindow is the trailing window over which calls are counted
	DefaultAdmissionWindow = 60 * time.Second
)

// Timeout constants
const (
	// DefaultClassifyTimeout bounds one vision provider call
	DefaultClassifyTimeout = 20 * time.Second

	// DefaultStoreTimeout bounds one dataset or rate event query
	DefaultStoreTimeout = 5 * time.Second
)

// Debug override constants
const (
	// DefaultDebugMarker is the age marker that requests the debug override
	DefaultDebugMarker = "999"
)

// Circuit breaker constants
const (
	// BreakerFailureThreshold is the number of consecutive provider failures that opens the breaker
	BreakerFailureThreshold = 5

	// BreakerOpenTimeout is how long the breaker stays open before probing again
	BreakerOpenTimeout = 30 * time.Second
)
