package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Common error types that can be used across the application
var (
	ErrNotFound         = new(ErrCodeNotFound, "resource not found")
	ErrValidation       = new(ErrCodeValidation, "validation error")
	ErrQuotaExceeded    = new(ErrCodeQuotaExceeded, "storage full, delete some records")
	ErrStoreWrite       = new(ErrCodeStoreWrite, "storage write error")
	ErrStoreParse       = new(ErrCodeStoreParse, "stored payload is not valid")
	ErrStoreUnavailable = new(ErrCodeStoreUnavailable, "storage unavailable")
	ErrSystem           = new(ErrCodeSystemError, "system error")
)

const (
	ErrCodeSystemError      = "system_error"
	ErrCodeNotFound         = "not_found"
	ErrCodeValidation       = "validation_error"
	ErrCodeQuotaExceeded    = "quota_exceeded"
	ErrCodeStoreWrite       = "store_write_error"
	ErrCodeStoreParse       = "store_parse_error"
	ErrCodeStoreUnavailable = "store_unavailable"
)

// InternalError represents a domain error
type InternalError struct {
	Code    string // Machine-readable error code
	Message string // Human-readable error message
	Op      string // Logical operation name
	Err     error  // Underlying error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return e.DisplayError()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Err.Error())
}

func (e *InternalError) DisplayError() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Is implements error matching for wrapped errors
func (e *InternalError) Is(target error) bool {
	if target == nil {
		return false
	}

	t, ok := target.(*InternalError)
	if !ok {
		return errors.Is(e.Err, target)
	}

	return e.Code == t.Code
}

// New creates a new InternalError
func new(code string, message string) *InternalError {
	return &InternalError{
		Code:    code,
		Message: message,
	}
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsQuotaExceeded checks if an error is a storage quota error
func IsQuotaExceeded(err error) bool {
	return errors.Is(err, ErrQuotaExceeded)
}

// IsStoreWrite checks if an error is a storage write error
func IsStoreWrite(err error) bool {
	return errors.Is(err, ErrStoreWrite)
}

// IsStoreParse checks if an error is a stored-payload parse error
func IsStoreParse(err error) bool {
	return errors.Is(err, ErrStoreParse)
}

// IsStoreUnavailable checks if an error is a storage availability error
func IsStoreUnavailable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}
