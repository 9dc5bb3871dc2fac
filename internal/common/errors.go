package common

import (
	"context"
	"errors"
	"fmt"
)

// AppError represents application-specific errors.
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Common application errors.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")

	// ErrDocumentEmpty means the document has no extractable pages. Terminal.
	ErrDocumentEmpty = errors.New("document has no extractable text")

	// ErrNoRelevantContent means scoring found no page worth extracting.
	// Terminal; the document likely isn't a register manual.
	ErrNoRelevantContent = errors.New("no register-relevant content found")

	// ErrUnrecognizedContent means the extraction reply could not be
	// salvaged into any register, even after repair.
	ErrUnrecognizedContent = errors.New("extraction reply not recognized")
)

// Error constructors.
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// IsCancellation reports whether err stems from caller-triggered
// cancellation (disconnect or timeout), a terminal state distinct from
// extraction failure.
func IsCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
