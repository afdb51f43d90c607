// Package app contains the application services behind the primary ports.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/example/courier/internal/models"
	"github.com/example/courier/internal/ports/secondary"
	"github.com/example/courier/internal/registry"
)

// DeliveryEngine performs attempt-then-fallback delivery for one
// (message, recipient) pair:
//
//	resolve coordinates -> inject -> done (injected)
//
// Any failure at resolve or inject degrades to a fallback inbox write. Only
// a failed fallback write is a terminal failure: that is the one case where
// the message is truly lost.
type DeliveryEngine struct {
	registry *registry.Registry
	sim      secondary.InputSimulator
	inbox    secondary.InboxWriter
	attempts secondary.AttemptRepository
}

// NewDeliveryEngine creates an engine with injected dependencies. attempts
// may be nil to skip audit logging (dry runs).
func NewDeliveryEngine(reg *registry.Registry, sim secondary.InputSimulator, inbox secondary.InboxWriter, attempts secondary.AttemptRepository) *DeliveryEngine {
	return &DeliveryEngine{
		registry: reg,
		sim:      sim,
		inbox:    inbox,
		attempts: attempts,
	}
}

// Deliver resolves the recipient against the live registry and delivers.
// It never returns an error; every failure mode lands in the attempt record.
func (e *DeliveryEngine) Deliver(ctx context.Context, msg *models.Message, recipientID string, mode models.SendMode) models.DeliveryAttempt {
	profile, err := e.registry.Profile(recipientID)
	if err != nil {
		// Unknown recipient: the message still is not dropped, it goes to
		// the fallback inbox under the requested ID.
		return e.fallback(ctx, msg, recipientID, err.Error())
	}
	return e.DeliverResolved(ctx, msg, profile, mode)
}

// DeliverResolved delivers to an already-resolved profile. Broadcasts use
// this with profiles from one registry snapshot, so a reload mid-broadcast
// cannot change where later recipients receive their keystrokes.
func (e *DeliveryEngine) DeliverResolved(ctx context.Context, msg *models.Message, profile *models.AgentProfile, mode models.SendMode) models.DeliveryAttempt {
	if !profile.Active {
		// Injection is only attempted for active recipients.
		return e.fallback(ctx, msg, profile.ID, "inactive recipient")
	}

	coords := profile.ChatInput
	if mode == models.SendModeOnboarding {
		coords = profile.Onboarding
	}
	target := secondary.InjectionTarget{
		AgentID:    profile.ID,
		Coords:     coords,
		TmuxTarget: profile.TmuxTarget,
	}

	if err := e.sim.SendSequence(ctx, target, renderBody(msg), mode); err != nil {
		// Transient delivery error: degrade to the inbox, keep the cause.
		return e.fallback(ctx, msg, profile.ID, err.Error())
	}

	attempt := models.DeliveryAttempt{
		MessageID:   msg.ID,
		RecipientID: profile.ID,
		Mode:        models.ModeInjected,
		Outcome:     models.OutcomeSuccess,
		Timestamp:   time.Now().UTC(),
	}
	e.audit(ctx, msg, attempt)
	return attempt
}

// fallback writes the message into the recipient's inbox directory. reason
// records why injection was not completed.
func (e *DeliveryEngine) fallback(ctx context.Context, msg *models.Message, recipientID, reason string) models.DeliveryAttempt {
	attempt := models.DeliveryAttempt{
		MessageID:   msg.ID,
		RecipientID: recipientID,
		Mode:        models.ModeFallbackInbox,
		Timestamp:   time.Now().UTC(),
	}

	_, err := e.inbox.Write(ctx, msg, recipientID, secondary.InboxMeta{Reason: reason})
	if err != nil {
		attempt.Outcome = models.OutcomeFailed
		attempt.Error = fmt.Sprintf("%s; fallback write failed: %v", reason, err)
	} else {
		attempt.Outcome = models.OutcomeSuccess
		attempt.Error = reason
	}
	e.audit(ctx, msg, attempt)
	return attempt
}

// audit records the attempt in the delivery log. Audit failures never affect
// the delivery outcome.
func (e *DeliveryEngine) audit(ctx context.Context, msg *models.Message, a models.DeliveryAttempt) {
	if e.attempts == nil {
		return
	}
	_ = e.attempts.Record(ctx, &secondary.AttemptRecord{
		MessageID:   a.MessageID,
		SenderID:    msg.SenderID,
		RecipientID: a.RecipientID,
		Mode:        string(a.Mode),
		Outcome:     string(a.Outcome),
		Error:       a.Error,
	})
}

// renderBody prepends the urgency marker so an injected message is visually
// distinct in the recipient's window.
func renderBody(msg *models.Message) string {
	if msg.Priority == models.PriorityUrgent {
		return "[URGENT] " + msg.Body
	}
	return msg.Body
}
