package agreement

import "context"

// Repository reads service agreements joined with their client's active flag.
type Repository interface {
	// ListActive returns agreements flagged active whose client is active,
	// ordered by client then agreement name. Contract-window and amount
	// eligibility is the projection engine's concern, not the query's.
	ListActive(ctx context.Context) ([]Agreement, error)
}
