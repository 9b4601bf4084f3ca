// internal/apperr/apperr.go
package apperr

import (
	"errors"
	"fmt"
)

// Code identifies a business-rule failure. Codes are part of the API contract
// and must stay stable across releases.
type Code string

const (
	CodeNotAuthorized     Code = "NOT_AUTHORIZED"
	CodeNotFound          Code = "NOT_FOUND"
	CodeInsufficientFunds Code = "INSUFFICIENT_FUNDS"
	CodeAlreadyExists     Code = "ALREADY_EXISTS"
	CodeInvalidPrice      Code = "INVALID_PRICE"
	CodeProductInactive   Code = "PRODUCT_INACTIVE"
)

// Sentinels for errors.Is comparisons. Two *Error values match when their
// codes match, so wrapped service errors still compare against these.
var (
	ErrNotAuthorized     = &Error{Code: CodeNotAuthorized, Message: "not authorized"}
	ErrNotFound          = &Error{Code: CodeNotFound, Message: "not found"}
	ErrInsufficientFunds = &Error{Code: CodeInsufficientFunds, Message: "insufficient funds"}
	ErrAlreadyExists     = &Error{Code: CodeAlreadyExists, Message: "already exists"}
	ErrInvalidPrice      = &Error{Code: CodeInvalidPrice, Message: "invalid price"}
	ErrProductInactive   = &Error{Code: CodeProductInactive, Message: "product is inactive"}
)

type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Newf(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a taxonomy code to an underlying error while keeping it
// reachable through errors.Unwrap.
func Wrap(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

func NotAuthorized(message string) *Error {
	return New(CodeNotAuthorized, message)
}

func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

func InsufficientFunds(message string) *Error {
	return New(CodeInsufficientFunds, message)
}

func AlreadyExists(message string) *Error {
	return New(CodeAlreadyExists, message)
}

func InvalidPrice(message string) *Error {
	return New(CodeInvalidPrice, message)
}

func ProductInactive(message string) *Error {
	return New(CodeProductInactive, message)
}

// CodeOf extracts the taxonomy code from err, unwrapping as needed.
func CodeOf(err error) (Code, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return "", false
}
