package secondary

import (
	"context"
	"fmt"

	"github.com/example/courier/internal/models"
)

// InboxEntry is the on-disk record of one fallback-delivered message.
type InboxEntry struct {
	Path        string
	MessageID   string
	RecipientID string
}

// InboxWriter persists messages into per-recipient inbox directories when
// injection is skipped or fails. Writes for different recipients may run
// concurrently; entries are never overwritten.
type InboxWriter interface {
	// Write serializes the message into the recipient's inbox as a new,
	// uniquely named file. Two writes for the same message and recipient
	// produce two distinct entries.
	Write(ctx context.Context, msg *models.Message, recipientID string, meta InboxMeta) (*InboxEntry, error)

	// List returns the entries currently in a recipient's inbox, newest
	// first. Read-side convenience; consumption is the recipient's job.
	List(ctx context.Context, recipientID string) ([]*InboxEntry, error)
}

// InboxMeta is delivery metadata stored alongside the message fields.
type InboxMeta struct {
	// Reason records why the message fell back ("inactive recipient",
	// injection error text, or "dry run").
	Reason string
}

// InboxWriteError is an unrecoverable inbox persistence failure. It is the
// one delivery-side error surfaced to callers as a hard failure: the message
// could not be stored anywhere.
type InboxWriteError struct {
	RecipientID string
	Cause       error
}

func (e *InboxWriteError) Error() string {
	return fmt.Sprintf("inbox write for %s failed: %v", e.RecipientID, e.Cause)
}

func (e *InboxWriteError) Unwrap() error {
	return e.Cause
}
