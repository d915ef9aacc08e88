package service

import "errors"

// Error kinds surfaced to the HTTP layer. Match with errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrConflict           = errors.New("conflict")
	ErrPreconditionFailed = errors.New("precondition failed")
	ErrInternal           = errors.New("internal error")
)

// Error carries a user-facing message tagged with one of the kinds above.
// errors.Is matches on the kind only; Error returns the message alone.
type Error struct {
	kind  error
	msg   string
	cause error
}

func newError(kind error, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func internalError(msg string, cause error) *Error {
	return &Error{kind: ErrInternal, msg: msg, cause: cause}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

// Message is the text safe to show a client.
func (e *Error) Message() string {
	return e.msg
}

func (e *Error) Is(target error) bool {
	return target == e.kind
}

func (e *Error) Unwrap() error {
	return e.cause
}
