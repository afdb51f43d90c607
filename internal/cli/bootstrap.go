// Package cli contains the cobra command surface. Commands stay thin:
// argument parsing and output formatting here, behavior in the services.
package cli

import (
	gocontext "context"

	"github.com/example/courier/internal/agent"
	"github.com/example/courier/internal/ctxutil"
)

var globalSenderID string

// DetectAndStoreSender resolves the local agent identity once at startup.
// Called from the root command's PersistentPreRun.
func DetectAndStoreSender() {
	identity, err := agent.Current()
	if err != nil {
		return
	}
	globalSenderID = identity.ID
}

// SenderID returns the stored sender ID from CLI startup.
func SenderID() string {
	if globalSenderID == "" {
		return agent.CoordinatorID
	}
	return globalSenderID
}

// NewContext creates a context.Background() with the current sender ID embedded.
// CLI commands should use this instead of context.Background() directly.
func NewContext() gocontext.Context {
	return ctxutil.WithSenderID(gocontext.Background(), SenderID())
}
