package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/gradebook-cli/internal/core/domain"
)

// DeadlineService lists assignment due dates across calculators.
type DeadlineService interface {
	// Upcoming returns ungraded assignments due on or after from, soonest
	// first, followed by those whose dates could not be read. A limit of
	// zero returns everything.
	Upcoming(ctx context.Context, from time.Time, limit int) ([]domain.Deadline, error)
}
