package secondary

import "fmt"

// ConfigSource is a uniform read interface over one SSOT config file,
// regardless of its underlying format. New file formats are supported by
// writing a new adapter, never by teaching the validator about formats.
type ConfigSource interface {
	// Name identifies the source in conflict reports (usually the filename).
	Name() string

	// EntityIDs returns every agent ID the source mentions.
	EntityIDs() ([]string, error)

	// Field returns the source's serialized value for (entityID, field).
	// ok is false when the source does not mention that entity/field;
	// absence is not a conflict.
	Field(entityID, field string) (value string, ok bool, err error)
}

// WritableSource is a ConfigSource that can accept approved corrections.
// SetField must preserve every other field byte-for-byte where the format
// allows, and must not commit a partial write: the file is rewritten
// all-or-nothing.
type WritableSource interface {
	ConfigSource
	SetField(entityID, field, value string) error
}

// SourceWriteError means a fix could not be applied to a source safely; the
// file was left untouched.
type SourceWriteError struct {
	Source string
	Cause  error
}

func (e *SourceWriteError) Error() string {
	return fmt.Sprintf("cannot apply fix to source %s: %v", e.Source, e.Cause)
}

func (e *SourceWriteError) Unwrap() error {
	return e.Cause
}
