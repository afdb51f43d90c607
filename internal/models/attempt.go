package models

import "time"

// DeliveryMode says how a message reached (or tried to reach) a recipient.
type DeliveryMode string

const (
	// ModeInjected means the text was typed into the recipient's input field.
	ModeInjected DeliveryMode = "INJECTED"
	// ModeFallbackInbox means the message was written to the recipient's
	// inbox directory instead.
	ModeFallbackInbox DeliveryMode = "FALLBACK_INBOX"
)

// DeliveryOutcome is the terminal result of one delivery attempt.
type DeliveryOutcome string

const (
	OutcomeSuccess DeliveryOutcome = "SUCCESS"
	OutcomeFailed  DeliveryOutcome = "FAILED"
)

// SendMode selects the injection sequence variant.
type SendMode string

const (
	// SendModeNormal is the standard click/clear/type/submit sequence.
	SendModeNormal SendMode = "NORMAL"
	// SendModeOnboarding primes a new conversation first and uses the
	// onboarding input location with longer settle pauses.
	SendModeOnboarding SendMode = "ONBOARDING"
)

// DeliveryAttempt records the outcome of delivering one message to one
// recipient. Exactly one attempt exists per (message, recipient) per send.
type DeliveryAttempt struct {
	MessageID   string
	RecipientID string
	Mode        DeliveryMode
	Outcome     DeliveryOutcome
	// Error holds the failure reason, and for successful fallbacks the
	// injection error that forced the fallback.
	Error     string
	Timestamp time.Time
}

// DeliveryReport aggregates the attempts of one send or broadcast.
type DeliveryReport struct {
	MessageID string
	Attempts  []DeliveryAttempt
	Injected  int
	Fallback  int
	Failed    int
}

// Add appends an attempt and updates the counters.
func (r *DeliveryReport) Add(a DeliveryAttempt) {
	r.Attempts = append(r.Attempts, a)
	switch {
	case a.Outcome == OutcomeFailed:
		r.Failed++
	case a.Mode == ModeInjected:
		r.Injected++
	default:
		r.Fallback++
	}
}

// AllDelivered reports whether every recipient got the message one way or
// another. Callers wanting detail must inspect Attempts.
func (r *DeliveryReport) AllDelivered() bool {
	return r.Failed == 0
}
