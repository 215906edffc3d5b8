package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
)

type Code string

const (
	CodeBrowserLaunch Code = "BROWSER_LAUNCH"
	CodeNavigation    Code = "NAVIGATION"
	CodeTokenSource   Code = "TOKEN_SOURCE"
)

// Error carries a caller-facing message, an optional code and the cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(message string) error {
	return &Error{Message: message}
}

// Wrap returns nil for a nil err so it can wrap call results directly.
func Wrap(err error, message string) error {
	return WrapWithCode(err, "", message)
}

func WrapWithCode(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, Err: err}
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

// GetCode returns the code of the outermost coded Error in the chain.
func GetCode(err error) Code {
	var e *Error
	for errors.As(err, &e) {
		if e.Code != "" {
			return e.Code
		}
		err = e.Err
	}
	return ""
}

// GetMessage returns the message of the outermost Error, or err's text.
func GetMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// HTTPStatus maps the sentinel at the root of err onto a response status.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
