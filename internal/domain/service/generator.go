package service

import "context"

// TextGenerator abstracts the remote text-generation model. Implementations
// own transport concerns (auth, timeouts, transient retries); callers see
// one completion or an error.
type TextGenerator interface {
	// Generate sends one prompt and returns the model's completion text.
	Generate(ctx context.Context, prompt string) (string, error)
}

// HealthChecker is implemented by transports that can probe their backend.
type HealthChecker interface {
	// Ready returns nil when the backend can accept generation requests.
	Ready(ctx context.Context) error
}
