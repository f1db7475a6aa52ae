package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed operation so callers can decide
// between fixing input, refetching and retrying, or escalating.
type ErrorKind string

const (
	// ErrKindValidation — a required field is missing or out of domain.
	// Recoverable by resupplying corrected input.
	ErrKindValidation ErrorKind = "VALIDATION"
	// ErrKindGuard — the requested transition is illegal from the
	// booking's current status.
	ErrKindGuard ErrorKind = "GUARD_VIOLATION"
	// ErrKindStaleState — a concurrent transition raced and won;
	// refetch the booking and retry.
	ErrKindStaleState ErrorKind = "STALE_STATE"
	// ErrKindCatalog — a selected penalty references a catalog entry
	// that no longer exists. Fatal to the whole calculation.
	ErrKindCatalog ErrorKind = "CATALOG_INTEGRITY"
	// ErrKindExternal — a payment channel or storage dependency failed;
	// retryable, and the owning transition did not commit.
	ErrKindExternal ErrorKind = "EXTERNAL_DEPENDENCY"
	// ErrKindNotFound — the referenced entity does not exist.
	ErrKindNotFound ErrorKind = "NOT_FOUND"
)

// Error is the structured error surfaced by the booking core. Field
// names the offending input for validation failures; From/To name the
// rejected transition for guard failures.
type Error struct {
	Kind  ErrorKind
	Field string
	From  BookingStatus
	To    BookingStatus
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	switch {
	case e.Kind == ErrKindGuard && e.From != "":
		return fmt.Sprintf("%s: cannot move booking from %s to %s: %s", e.Kind, e.From, e.To, e.Msg)
	case e.Field != "":
		return fmt.Sprintf("%s: field %q: %s", e.Kind, e.Field, e.Msg)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
}

func (e *Error) Unwrap() error { return e.Cause }

// ValidationError reports a missing or out-of-domain input field.
func ValidationError(field, msg string) *Error {
	return &Error{Kind: ErrKindValidation, Field: field, Msg: msg}
}

// GuardError reports an illegal transition attempt.
func GuardError(from, to BookingStatus, msg string) *Error {
	return &Error{Kind: ErrKindGuard, From: from, To: to, Msg: msg}
}

// StaleStateError reports a lost concurrent-transition race.
func StaleStateError(bookingID int32) *Error {
	return &Error{Kind: ErrKindStaleState, Msg: fmt.Sprintf("booking %d changed concurrently", bookingID)}
}

// CatalogError reports a penalty selection referencing a missing entry.
func CatalogError(penaltyFeeID int32) *Error {
	return &Error{Kind: ErrKindCatalog, Msg: fmt.Sprintf("penalty fee %d not in catalog", penaltyFeeID)}
}

// ExternalError wraps a retryable dependency failure.
func ExternalError(msg string, cause error) *Error {
	return &Error{Kind: ErrKindExternal, Msg: msg, Cause: cause}
}

// NotFoundError reports a missing entity.
func NotFoundError(msg string) *Error {
	return &Error{Kind: ErrKindNotFound, Msg: msg}
}

// KindOf extracts the ErrorKind from err, or "" if err is not a
// domain error.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
