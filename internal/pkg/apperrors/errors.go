package apperrors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// Store errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrUnknownKind      = errors.New("unknown entity kind")
	ErrInvalidEntity    = errors.New("invalid entity")

	// Ingestion errors
	ErrIngestion = errors.New("ingestion failed")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")

	// Configuration errors
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Error codes attached to CustomError
const (
	CodeNotFound   = "RES_001"
	CodeUnknown    = "RES_002"
	CodeIngestion  = "ING_001"
	CodeValidation = "VAL_001"
	CodeConfig     = "CFG_001"
)

// NewResourceNotFoundError creates a new custom error for a missing entity
func NewResourceNotFoundError(kind, id string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: fmt.Sprintf("%s %q not found", kind, id),
		Code:    CodeNotFound,
		Details: map[string]interface{}{"kind": kind, "id": id},
	}
}

// NewUnknownKindError reports an entity kind the store does not hold
func NewUnknownKindError(kind string) error {
	return &CustomError{
		Err:     ErrUnknownKind,
		Message: fmt.Sprintf("unknown entity kind %q", kind),
		Code:    CodeUnknown,
	}
}

// NewIngestionError names the source that could not be decoded
func NewIngestionError(source string, err error) error {
	return &CustomError{
		Err:     errors.Join(ErrIngestion, err),
		Message: fmt.Sprintf("failed to ingest %q: %v", source, err),
		Code:    CodeIngestion,
		Details: map[string]interface{}{"source": source},
	}
}

// NewValidationFailedError summarises a report that carries errors
func NewValidationFailedError(errorCount, warningCount int) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: fmt.Sprintf("validation found %d error(s) and %d warning(s)", errorCount, warningCount),
		Code:    CodeValidation,
		Details: map[string]interface{}{"errors": errorCount, "warnings": warningCount},
	}
}

// NewConfigError wraps a configuration problem
func NewConfigError(err error) error {
	return &CustomError{
		Err:     errors.Join(ErrInvalidConfig, err),
		Message: fmt.Sprintf("invalid configuration: %v", err),
		Code:    CodeConfig,
	}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

// CodeOf returns the code of the first CustomError in err's chain
func CodeOf(err error) string {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}
