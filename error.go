package legalrights

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	ECONFLICT = "conflict"
	EINTERNAL = "internal"
	EINVALID  = "invalid"
	ENOTFOUND = "not_found"

	// ECONFIG reports a missing or invalid configuration parameter.
	ECONFIG = "config"
	// EEMPTY reports that an operation produced nothing to work with,
	// e.g. an index build over documents that yield no chunks.
	EEMPTY = "empty"
	// EDIMENSION reports a vector whose length differs from the index dimension.
	EDIMENSION = "dimension"
	// ENOTREADY reports an index queried before a successful build or load.
	ENOTREADY = "not_ready"
)

// Error represents an application-specific error. The message is safe to
// display to the end user.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("legalrights error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors return the error text.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
