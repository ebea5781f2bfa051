package storage

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	cause := errors.New("disk full")

	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{"Without cause", &Error{Type: ErrNotFound, Message: "event not found"}, "not_found: event not found"},
		{"With cause", &Error{Type: ErrInvalidInput, Message: "bad event", Err: cause}, "invalid_input: bad event: disk full"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}

	assert.ErrorIs(t, &Error{Type: ErrInvalidInput, Err: cause}, cause)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(NotFound("42")))
	assert.True(t, IsNotFound(fmt.Errorf("update: %w", NotFound("42"))))
	assert.False(t, IsNotFound(&Error{Type: ErrAlreadyExists}))
	assert.False(t, IsNotFound(errors.New("not_found")))
	assert.False(t, IsNotFound(nil))
}
