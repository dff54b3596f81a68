// Package errs provides the unified error type used across all of robotcql.
//
// Every subsystem (cassandra driver, connection cache, keywords, server)
// wraps its native errors into *errs.Error before returning them to callers.
// Callers use the Is* predicates to handle errors without importing
// driver-specific packages or matching on message text.
//
// Usage:
//
//	// In the driver — wrap native errors:
//	return errs.Wrap(errs.ErrKindStatementFailed, "statement failed", gocqlErr)
//
//	// In a handler — check error kind:
//	if errs.IsNoActiveConnection(err) {
//	    http.Error(w, "no open connection", http.StatusConflict)
//	}
package errs

import (
	"errors"
	"fmt"
)

// ErrKind categorises an error without exposing driver-specific codes.
// The driver maps gocql's native errors to one of these kinds, and the
// cache and keyword layers produce them directly, giving callers a single
// consistent API.
type ErrKind int

const (
	ErrKindUnknown            ErrKind = iota
	ErrKindNoActiveConnection         // operation issued with no current connection
	ErrKindUnknownConnection          // switch target matches no live entry
	ErrKindDuplicateAlias             // alias already bound to a live entry
	ErrKindConnectionSetup            // dial or authentication failure on connect
	ErrKindStatementFailed            // CQL execution error
	ErrKindOperationFailed            // asynchronous statement resolution failure
	ErrKindColumnNotFound             // projected column absent from a result row
	ErrKindTimeout                    // context deadline / cancellation
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindNoActiveConnection:
		return "no_active_connection"
	case ErrKindUnknownConnection:
		return "unknown_connection"
	case ErrKindDuplicateAlias:
		return "duplicate_alias"
	case ErrKindConnectionSetup:
		return "connection_setup"
	case ErrKindStatementFailed:
		return "statement_failed"
	case ErrKindOperationFailed:
		return "operation_failed"
	case ErrKindColumnNotFound:
		return "column_not_found"
	case ErrKindTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by all robotcql subsystems.
// The driver and cache produce it; callers inspect it via the Is*
// predicates below.
type Error struct {
	Kind    ErrKind
	Message string
	Cause   error // original driver-level error, preserved for logging
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap allows errors.Is / errors.As to traverse the cause chain.
func (e *Error) Unwrap() error {
	return e.Cause
}

// --- Constructors ---

// New creates an *Error with the given kind and message and no cause.
func New(kind ErrKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Wrap creates an *Error with the given kind, message, and an underlying cause.
func Wrap(kind ErrKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// --- Predicates ---

// IsNoActiveConnection reports whether err was raised because no
// connection is currently active.
func IsNoActiveConnection(err error) bool {
	return kindOf(err) == ErrKindNoActiveConnection
}

// IsUnknownConnection reports whether err was raised by a switch to an
// index or alias that matches no live connection.
func IsUnknownConnection(err error) bool {
	return kindOf(err) == ErrKindUnknownConnection
}

// IsDuplicateAlias reports whether err was raised by registering an alias
// that is already bound.
func IsDuplicateAlias(err error) bool {
	return kindOf(err) == ErrKindDuplicateAlias
}

// IsConnectionSetup reports whether err is a dial or authentication failure.
func IsConnectionSetup(err error) bool {
	return kindOf(err) == ErrKindConnectionSetup
}

// IsStatementFailed reports whether err is a CQL execution failure.
func IsStatementFailed(err error) bool {
	return kindOf(err) == ErrKindStatementFailed
}

// IsOperationFailed reports whether err is an asynchronous resolution failure.
func IsOperationFailed(err error) bool {
	return kindOf(err) == ErrKindOperationFailed
}

// IsColumnNotFound reports whether err was raised by projecting a column
// that is absent from a result row.
func IsColumnNotFound(err error) bool {
	return kindOf(err) == ErrKindColumnNotFound
}

// IsTimeout reports whether err was caused by a deadline or context cancellation.
func IsTimeout(err error) bool {
	return kindOf(err) == ErrKindTimeout
}

// kindOf extracts the ErrKind from any error in the chain.
func kindOf(err error) ErrKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ErrKindUnknown
}
