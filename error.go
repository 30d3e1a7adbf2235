package mailward

import (
	"bytes"
	"errors"
	"fmt"
)

// Machine-readable error codes
const (
	ErrInvalid      = "invalid"
	ErrUnauthorized = "unauthorized"
	ErrForbidden    = "forbidden"
	ErrNotFound     = "not_found"
	ErrConflict     = "conflict"
	ErrInternal     = "internal"
)

// Error is the application error type. Code classifies the failure,
// Message is safe to show to an end user, Op names the failing operation.
type Error struct {
	Code    string
	Message string
	Op      string
	Err     error
}

// ErrorCode returns the code of the first *Error in err's chain,
// or ErrInternal for foreign errors.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	}
	if errors.As(err, &e) && e.Code != "" {
		return e.Code
	}

	return ErrInternal
}

// ErrorMessage returns the user-facing message of the first *Error in
// err's chain, or a generic one for foreign errors.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	}
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}

	return "An internal error has occurred."
}

func (e *Error) Error() string {
	var buf bytes.Buffer

	if e.Op != "" {
		fmt.Fprintf(&buf, "%s: ", e.Op)
	}

	if e.Err != nil {
		buf.WriteString(e.Err.Error())
	} else {
		if e.Code != "" {
			fmt.Fprintf(&buf, "<%s> ", e.Code)
		}
		buf.WriteString(e.Message)
	}

	return buf.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}
