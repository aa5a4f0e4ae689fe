// Package constants provides shared constants used across the codebase.
package constants

import "time"

// File upload constants
const (
	// MaxUploadSize is the maximum photo size in bytes (10MB)
	MaxUploadSize = 10 << 20

	// MaxRequestBodySize leaves room for multipart framing and base64 expansion
	MaxRequestBodySize = MaxUploadSize*4/3 + 1<<20
)

// Server constants
const (
	// RequestTimeout bounds one HTTP request, classification included
	RequestTimeout = 60 * time.Second

	// ShutdownTimeout is the grace period for in-flight requests on shutdown
	ShutdownTimeout = 30 * time.Second
)

// Seed constants
const (
	// SeedProgressThreshold is the minimum record count before the seed command shows a progress bar
	SeedProgressThreshold = 20
)
