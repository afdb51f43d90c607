package secondary

import "context"

// AttemptRepository defines the secondary port for the delivery audit log.
type AttemptRepository interface {
	// Record persists one delivery attempt.
	Record(ctx context.Context, attempt *AttemptRecord) error

	// List retrieves attempts matching the given filters, newest first.
	List(ctx context.Context, filters AttemptFilters) ([]*AttemptRecord, error)
}

// AttemptRecord represents a delivery attempt as stored in persistence.
type AttemptRecord struct {
	ID          int64
	MessageID   string
	SenderID    string
	RecipientID string
	Mode        string
	Outcome     string
	Error       string
	Timestamp   string
}

// AttemptFilters contains filter options for querying the audit log.
type AttemptFilters struct {
	RecipientID string
	Outcome     string
	Limit       int
}
