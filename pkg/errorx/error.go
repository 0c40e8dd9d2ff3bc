package errorx

import (
	"errors"
	"fmt"
	"net/http"
)

type Error struct {
	Code    Code
	Message string
}

func New(code Code, format string, args ...any) Error {
	return Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func (e Error) Error() string {
	return e.Message
}

// Is matches errors by code, so errors.Is(err, errorx.Error{Code: c}) works
// regardless of the message.
func (e Error) Is(target error) bool {
	t, ok := target.(Error)
	if !ok {
		return false
	}

	return t.Code == e.Code
}

// HTTPStatus returns the status code the error should be rendered with.
// Errors which are not Error are internal failures.
func HTTPStatus(err error) int {
	var errx Error
	if !errors.As(err, &errx) {
		return http.StatusInternalServerError
	}

	if status, ok := httpStatuses[errx.Code]; ok {
		return status
	}

	return http.StatusInternalServerError
}
