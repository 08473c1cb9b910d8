package conversation

import "context"

// Severity tags a user-facing notification emitted when an input provider or
// factory reports that it cannot proceed.
type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityError Severity = "error"
)

// UnavailableError signals that an input provider or a factory cannot supply
// what was asked of it. Conversation creation is aborted and Message is
// surfaced to the user with the given severity. This is a fully recoverable
// condition, not a failure of the core.
type UnavailableError struct {
	Severity Severity
	Message  string
}

func (e *UnavailableError) Error() string {
	return e.Message
}

func NewUnavailableError(severity Severity, message string) *UnavailableError {
	return &UnavailableError{Severity: severity, Message: message}
}

// InputProvider gathers one piece of context for conversation creation, for
// example the current editor selection. It returns the gathered value, or an
// *UnavailableError when the input cannot be provided right now.
type InputProvider func(ctx context.Context) (interface{}, error)
