package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Priority orders messages from least to most urgent.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityNormal Priority = "NORMAL"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// PriorityRank resolves competing priorities (higher wins).
var PriorityRank = map[Priority]int{
	PriorityLow:    1,
	PriorityNormal: 2,
	PriorityHigh:   3,
	PriorityUrgent: 4,
}

// ValidPriority reports whether p is a known priority level.
func ValidPriority(p Priority) bool {
	_, ok := PriorityRank[p]
	return ok
}

// BroadcastRecipient is the reserved destination that resolves to every
// active agent at send time.
const BroadcastRecipient = "*"

// Message is an immutable inter-agent message. Construct with NewMessage;
// the zero value is not valid.
type Message struct {
	ID         string
	SenderID   string
	Recipients []string
	Body       string
	Priority   Priority
	Tags       []string
	CreatedAt  time.Time
}

// NewMessage builds a message with a fresh ID and creation timestamp.
func NewMessage(senderID string, recipients []string, body string, priority Priority, tags []string) (*Message, error) {
	if body == "" {
		return nil, fmt.Errorf("message body must not be empty")
	}
	if len(recipients) == 0 {
		return nil, fmt.Errorf("message must name at least one recipient")
	}
	if priority == "" {
		priority = PriorityNormal
	}
	if !ValidPriority(priority) {
		return nil, fmt.Errorf("unknown priority %q", priority)
	}
	return &Message{
		ID:         uuid.NewString(),
		SenderID:   senderID,
		Recipients: append([]string(nil), recipients...),
		Body:       body,
		Priority:   priority,
		Tags:       append([]string(nil), tags...),
		CreatedAt:  time.Now().UTC(),
	}, nil
}

// IsBroadcast reports whether the message targets all active agents.
func (m *Message) IsBroadcast() bool {
	for _, r := range m.Recipients {
		if r == BroadcastRecipient {
			return true
		}
	}
	return false
}
