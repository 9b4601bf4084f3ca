// internal/apperr/apperr_test.go
package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMatchesSentinelByCode(t *testing.T) {
	err := Newf(CodeNotFound, "product %d not found", 42)

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrAlreadyExists))
	assert.Equal(t, "NOT_FOUND: product 42 not found", err.Error())
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(CodeInsufficientFunds, "debit failed", cause)

	assert.True(t, errors.Is(err, ErrInsufficientFunds))
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "connection reset")
}

func TestCodeOf(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", InvalidPrice("price must be positive"))

	code, ok := CodeOf(wrapped)
	assert.True(t, ok)
	assert.Equal(t, CodeInvalidPrice, code)

	_, ok = CodeOf(errors.New("plain"))
	assert.False(t, ok)
}

func TestConstructorsCarryTheirCode(t *testing.T) {
	cases := []struct {
		err  *Error
		code Code
	}{
		{NotAuthorized("nope"), CodeNotAuthorized},
		{NotFound("gone"), CodeNotFound},
		{InsufficientFunds("broke"), CodeInsufficientFunds},
		{AlreadyExists("dup"), CodeAlreadyExists},
		{InvalidPrice("zero"), CodeInvalidPrice},
		{ProductInactive("pulled"), CodeProductInactive},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.code, tc.err.Code)
	}
}
