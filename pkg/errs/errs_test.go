package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name:     "message only",
			err:      &AppError{Kind: InvalidInput, Message: "no urls"},
			expected: "no urls",
		},
		{
			name:     "with cause",
			err:      &AppError{Kind: Unreachable, Message: "request failed", Cause: errors.New("connection refused")},
			expected: "request failed: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestKindOf_WrappedError(t *testing.T) {
	cause := errors.New("boom")
	appErr := New(Timeout, "fetch timed out", cause)
	wrapped := fmt.Errorf("page https://example.com: %w", appErr)

	assert.Equal(t, Timeout, KindOf(wrapped))
	assert.True(t, IsKind(wrapped, Timeout))
	assert.False(t, IsKind(wrapped, Unreachable))
	assert.ErrorIs(t, wrapped, cause)
}

func TestKindOf_PlainError(t *testing.T) {
	assert.Equal(t, Unknown, KindOf(errors.New("plain")))
	assert.False(t, IsKind(nil, Unknown))
}

func TestInvalid(t *testing.T) {
	err := Invalid("too many urls: %d", 600)

	assert.Equal(t, InvalidInput, err.Kind)
	assert.Equal(t, "too many urls: 600", err.Error())
	assert.Equal(t, "invalid_input", err.Kind.String())
}
