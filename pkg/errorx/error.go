package errorx

import (
	"errors"
	"fmt"
)

type Error struct {
	Code    Code
	Message string

	// Fields holds per-field violations of a validation error, in the order
	// they were reported.
	Fields map[string][]string
}

func New(code Code, format string, a ...any) Error {
	return Error{Code: code, Message: fmt.Sprintf(format, a...)}
}

func NewValidation(fields map[string][]string) Error {
	return Error{Code: Validation, Message: "Validation failed", Fields: fields}
}

func (e Error) Error() string {
	return e.Message
}

// Detail is the value serialized under the "errors" key of a failed response.
// Rejected requests are described by an object, server failures by a plain
// string.
func (e Error) Detail() any {
	if len(e.Fields) > 0 {
		return e.Fields
	}

	if e.Code == Unknown.Code || e.Code == Internal {
		return e.Message
	}

	return map[string]string{"error": e.Message}
}

// Is reports whether err is an Error with the given code.
func Is(err error, code Code) bool {
	var errx Error
	if errors.As(err, &errx) {
		return errx.Code == code
	}

	return false
}
