package errors

import (
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Field   string // offending configuration field, when applicable
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = fmt.Sprintf("%s (field %q)", msg, e.Field)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Field:   appErr.Field,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetCode returns the error code if it's an AppError, otherwise "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeConfigInvalid = "CONFIG_INVALID"
	CodeDataSize      = "DATA_SIZE_EXCEEDED"
	CodeLoadFailed    = "LOAD_FAILED"
	CodeRenderFailed  = "RENDER_FAILED"
	CodeInternalError = "INTERNAL_ERROR"
	CodeInvalidInput  = "INVALID_INPUT"
)

// ConfigInvalid builds a configuration error identifying the offending field
func ConfigInvalid(field, message string) *AppError {
	return &AppError{Code: CodeConfigInvalid, Field: field, Message: message}
}

// IsConfigInvalid reports whether err is a configuration error
func IsConfigInvalid(err error) bool {
	return GetCode(err) == CodeConfigInvalid
}

// DataSize builds a size-limit error raised before the core ever runs
func DataSize(message string) *AppError {
	return New(CodeDataSize, message)
}

// LoadFailed builds a load-time error distinct from core errors
func LoadFailed(message string, cause error) *AppError {
	return &AppError{Code: CodeLoadFailed, Message: message, Cause: cause}
}

// RenderFailed builds a rendering-layer error
func RenderFailed(message string, cause error) *AppError {
	return &AppError{Code: CodeRenderFailed, Message: message, Cause: cause}
}

// InternalError builds a generic internal error
func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}
