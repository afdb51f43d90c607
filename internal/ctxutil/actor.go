// Package ctxutil provides context utilities that can be safely imported anywhere.
// This package has no internal dependencies to avoid import cycles.
package ctxutil

import "context"

// SenderKey is the context key for the sending agent's ID.
// Exported so it can be used consistently across packages.
type SenderKey struct{}

// WithSenderID returns a context with the sender agent ID embedded.
func WithSenderID(ctx context.Context, senderID string) context.Context {
	return context.WithValue(ctx, SenderKey{}, senderID)
}

// SenderFromContext returns the sender agent ID from context, or empty string if not set.
func SenderFromContext(ctx context.Context) string {
	if v := ctx.Value(SenderKey{}); v != nil {
		return v.(string)
	}
	return ""
}
