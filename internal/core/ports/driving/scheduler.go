package driving

import "context"

// Scheduler runs background tasks such as periodic cloud sync.
type Scheduler interface {
	// Start begins running scheduled tasks.
	// Blocks until context is cancelled or Stop is called.
	Start(ctx context.Context) error

	// Stop waits for running tasks and stops the loop.
	Stop() error
}
