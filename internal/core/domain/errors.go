package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a domain error with a structured error code.
// Codes follow the format KY-<AREA>-<NNNN>.
type DomainError struct {
	Code    string // Error code (e.g., "KY-FLOW-4000")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a DomainError with the same code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// ============================================================================
// Storage Errors (STOR)
// ============================================================================

var (
	// ErrStorageFailure indicates a storage operation could not be applied.
	// No engine raises it yet; it is the failure channel for SET.
	ErrStorageFailure = NewDomainError("KY-STOR-5000", "storage operation failed")

	// ErrUnknownEngine indicates the configured storage engine kind is not supported.
	ErrUnknownEngine = NewDomainError("KY-STOR-4000", "unknown storage engine")
)

// ============================================================================
// Flow Errors (FLOW)
// ============================================================================

var (
	// ErrInvalidFlow indicates an instruction other than command execution
	// reached the dispatcher.
	ErrInvalidFlow = NewDomainError("KY-FLOW-4000", "Invalid flow.")
)

// ============================================================================
// Command Errors (CMD)
// ============================================================================

var (
	// ErrUnknownCommand indicates the command verb is not recognized.
	ErrUnknownCommand = NewDomainError("KY-CMD-4000", "unknown command")

	// ErrWrongArity indicates the command received the wrong number of arguments.
	ErrWrongArity = NewDomainError("KY-CMD-4001", "wrong number of arguments")
)

// ============================================================================
// HTTP Errors (HTTP)
// ============================================================================

var (
	// ErrForbidden indicates the client address is not in the admin allow list.
	ErrForbidden = NewDomainError("KY-HTTP-4031", "client not allowed")

	// ErrRateLimited indicates the client exceeded the admin request rate.
	ErrRateLimited = NewDomainError("KY-HTTP-4290", "too many requests")

	// ErrInternal indicates an unexpected server-side failure.
	ErrInternal = NewDomainError("KY-HTTP-5000", "internal server error")
)
