// Package clients provides the instrumented HTTP client the collector
// uses to talk to quote sources.
package clients

import "errors"

// Client errors represent failures in the HTTP client layer.
// They are infrastructure failures; source adapters translate them to
// domain errors before they reach the application layer.
var (
	// ErrCircuitOpen is returned when the circuit breaker is open.
	// The source site is unhealthy and requests are being blocked.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrMaxRetriesExceeded is returned after all retry attempts have been
	// exhausted. The original error is wrapped for context.
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")
)
