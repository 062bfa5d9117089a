package services

import (
	"fmt"
	"strings"
)

// Entity kinds used in error values.
const (
	KindVenue   = "venue"
	KindEvent   = "event"
	KindBooking = "booking"
)

// FieldError ties a rejection to the offending attribute so callers can
// re-prompt precisely.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is a user-correctable rejection. No write was attempted.
type ValidationErrors []FieldError

func (e ValidationErrors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationErrors) add(field, message string) {
	*e = append(*e, FieldError{Field: field, Message: message})
}

type NotFoundError struct {
	Kind string
	ID   uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

type ConflictReason string

const (
	ReasonDoubleBooked           ConflictReason = "double_booked"
	ReasonConcurrentModification ConflictReason = "concurrent_modification"
)

// ConflictError reports a consistency collision: either the venue is already
// booked for the date, or the row changed under a concurrent editor.
type ConflictError struct {
	Kind    string
	ID      uint
	Reason  ConflictReason
	Field   string // set for double-booking so the rejection is field-tagged
	Message string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %d conflict (%s): %s", e.Kind, e.ID, e.Reason, e.Message)
}

// DependentsError means a delete was blocked because child rows still
// reference the entity.
type DependentsError struct {
	Kind string
	ID   uint
}

func (e *DependentsError) Error() string {
	return fmt.Sprintf("%s %d still has dependents, delete blocked", e.Kind, e.ID)
}

// AssetError reports a failed asset-store operation on the upload path, the
// one place where an asset failure aborts the owning mutation.
type AssetError struct {
	Op  string
	Err error
}

func (e *AssetError) Error() string {
	return fmt.Sprintf("asset store %s failed: %v", e.Op, e.Err)
}

func (e *AssetError) Unwrap() error { return e.Err }

// StoreError is an unexpected operational storage failure.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
