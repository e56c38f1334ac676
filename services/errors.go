package services

import "errors"

// Kind is the closed set of failure categories the services report. Handlers
// map kinds to transport statuses; nothing in this package or below ever
// inspects error message text to decide behavior.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindUnauthorized
	KindNotFound
	KindConflict
	KindForbidden
	KindInternal
)

// Error carries a Kind alongside a caller-facing message. Details holds
// per-item context for batch validation failures.
type Error struct {
	Kind    Kind
	Message string
	Details []string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// E builds a tagged error
func E(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// wrap tags an underlying error, preserving it for logs via Unwrap
func wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the Kind from err, defaulting to KindInternal for untagged
// errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// DetailsOf returns the Details of a tagged error, nil otherwise.
func DetailsOf(err error) []string {
	var e *Error
	if errors.As(err, &e) {
		return e.Details
	}
	return nil
}
