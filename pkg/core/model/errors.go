package model

import "fmt"

// ConfigError reports malformed input detected before allocation starts
type ConfigError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// ReferentialError reports an entity that points at something missing,
// or a subject that does not have exactly one lecturer
type ReferentialError struct {
	Entity string
	ID     string
	Reason string
}

func (e *ReferentialError) Error() string {
	return fmt.Sprintf("%s %q: %s", e.Entity, e.ID, e.Reason)
}

// ConflictError is raised when a resource is committed twice at the same slot.
// It always indicates an allocator defect and aborts the run.
type ConflictError struct {
	Resource string
	ID       string
	Slot     Slot
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %q is already booked at %s", e.Resource, e.ID, e.Slot)
}

// CapacityWarning records a subject that ended the run under-allocated
type CapacityWarning struct {
	SubjectID string
	Required  int
	Scheduled int
}

// Shortfall is the number of blocks that could not be placed
func (w CapacityWarning) Shortfall() int {
	return w.Required - w.Scheduled
}

func (w CapacityWarning) String() string {
	return fmt.Sprintf("subject %s scheduled %d of %d blocks (%d short)", w.SubjectID, w.Scheduled, w.Required, w.Shortfall())
}
