package models

import "fmt"

// UnknownAgentError means a recipient ID is not in the roster, or names an
// agent whose coordinates cannot be used.
type UnknownAgentError struct {
	AgentID string
	Reason  string
}

func (e *UnknownAgentError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("unknown agent %q", e.AgentID)
	}
	return fmt.Sprintf("unknown agent %q: %s", e.AgentID, e.Reason)
}

// MalformedConfigError means a config source could not be parsed into valid
// profiles. Loads fail fast on this; nothing ever defaults to (0,0).
type MalformedConfigError struct {
	Source string
	Reason string
	Cause  error
}

func (e *MalformedConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed config %s: %s: %v", e.Source, e.Reason, e.Cause)
	}
	return fmt.Sprintf("malformed config %s: %s", e.Source, e.Reason)
}

func (e *MalformedConfigError) Unwrap() error {
	return e.Cause
}
