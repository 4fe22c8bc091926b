package server

import "time"

// Config holds the preview server configuration
type Config struct {
	// Addr is the listen address (default :8088)
	Addr string

	// MaxSourceBytes bounds the size of a submitted source file
	MaxSourceBytes int64

	// ExperimentalInheritance is the default for requests that leave it unset
	ExperimentalInheritance bool

	// EnableCORS enables CORS middleware (default: true)
	EnableCORS bool

	// ShutdownTimeout is the timeout for graceful shutdown (default: 10s)
	ShutdownTimeout time.Duration
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() Config {
	return Config{
		Addr:            ":8088",
		MaxSourceBytes:  1 << 20,
		EnableCORS:      true,
		ShutdownTimeout: 10 * time.Second,
	}
}
