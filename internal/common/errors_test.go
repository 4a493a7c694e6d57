package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserError(t *testing.T) {
	cause := errors.New("status 401")
	err := NewUserError("Falha ao ignorar produto MLB1", cause)

	assert.Equal(t, "Falha ao ignorar produto MLB1: status 401", err.Error())
	assert.ErrorIs(t, err, cause)

	var userErr *UserError
	assert.True(t, errors.As(fmt.Errorf("wrapped: %w", err), &userErr))
	assert.Equal(t, "Falha ao ignorar produto MLB1", userErr.UserMessage)

	assert.Equal(t, "sem causa", NewUserError("sem causa", nil).Error())
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		err  error
		name string
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "plain", err: ErrLoadFailed, want: "load failed"},
		{name: "user error", err: NewUserError("Falha", ErrWriteFailed), want: "Falha: write failed"},
		{name: "wrapped user error", err: fmt.Errorf("ctx: %w", NewUserError("Falha", nil)), want: "Falha"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
}
