package connection

import "context"

// Executor runs one command given as words (verb first).
type Executor interface {
	// Execute runs args and returns the response payload.
	Execute(ctx context.Context, args []string) ([]byte, error)

	// Name describes the target, for prompts and status output.
	Name() string

	// Close releases the underlying resources.
	Close() error
}
