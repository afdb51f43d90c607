package models

// Severity ranks how damaging an SSOT divergence is.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
)

// SeverityRank orders severities for sorting (lower number sorts first).
var SeverityRank = map[Severity]int{
	SeverityCritical: 1,
	SeverityHigh:     2,
	SeverityMedium:   3,
	SeverityLow:      4,
}

// Tracked field names compared across SSOT sources.
const (
	FieldRole         = "role"
	FieldChatCoords   = "chat_input_coordinates"
	FieldActive       = "active"
	FieldCapabilities = "capabilities"
	FieldDisplayName  = "display_name"
)

// FieldSeverity is the fixed severity table for tracked fields. A field
// missing from the table reports as LOW.
var FieldSeverity = map[string]Severity{
	FieldRole:         SeverityCritical,
	FieldChatCoords:   SeverityHigh,
	FieldActive:       SeverityHigh,
	FieldCapabilities: SeverityMedium,
	FieldDisplayName:  SeverityLow,
}

// Conflict is one field-level divergence between SSOT sources.
type Conflict struct {
	EntityID  string
	FieldName string
	// SourceValues maps source name to that source's serialized value, one
	// entry per source that mentions the entity/field.
	SourceValues map[string]string
	Severity     Severity
}
