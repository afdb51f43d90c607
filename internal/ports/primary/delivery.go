// Package primary defines the primary ports (driving interfaces) for the application.
// Callers (CLI, bots) depend on these interfaces, never on service implementations.
package primary

import (
	"context"

	"github.com/example/courier/internal/models"
)

// SendMessageRequest contains the data needed to deliver a message.
type SendMessageRequest struct {
	SenderID string
	// Recipients holds agent IDs, or the broadcast marker "*".
	Recipients []string
	Body       string
	Priority   models.Priority
	Tags       []string
	// Mode selects the injection sequence; zero value means NORMAL.
	Mode models.SendMode
	// DryRun routes through the recording simulator without touching the
	// desktop or writing inbox files.
	DryRun bool
}

// DeliveryService is the caller-facing delivery API.
type DeliveryService interface {
	// SendMessage resolves the recipients and delivers to each, returning
	// one attempt per resolved recipient. It never returns an error for
	// individual delivery failures (those live in the report), only for
	// invalid requests.
	SendMessage(ctx context.Context, req SendMessageRequest) (*models.DeliveryReport, error)

	// Broadcast sends to every agent active at call time.
	Broadcast(ctx context.Context, req SendMessageRequest) (*models.DeliveryReport, error)
}
