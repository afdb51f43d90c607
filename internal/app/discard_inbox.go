package app

import (
	"context"

	"github.com/example/courier/internal/models"
	"github.com/example/courier/internal/ports/secondary"
)

// discardInbox accepts writes without touching the filesystem. Dry runs use
// it so a would-be fallback still shows up in the report.
type discardInbox struct{}

func (discardInbox) Write(ctx context.Context, msg *models.Message, recipientID string, meta secondary.InboxMeta) (*secondary.InboxEntry, error) {
	return &secondary.InboxEntry{MessageID: msg.ID, RecipientID: recipientID}, nil
}

func (discardInbox) List(ctx context.Context, recipientID string) ([]*secondary.InboxEntry, error) {
	return nil, nil
}
