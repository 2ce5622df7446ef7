package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsIllegal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "Not your turn", err: ErrNotYourTurn, expected: true},
		{name: "Missing target", err: ErrPlayerNotFound, expected: true},
		{name: "Bad index", err: ErrInvalidCardIndex, expected: true},
		{name: "Wrapped illegal", err: fmt.Errorf("draw: %w", ErrNotYourTurn), expected: true},
		{name: "Precondition", err: ErrNotEnoughPlayers, expected: false},
		{name: "Plain error", err: errors.New("boom"), expected: false},
		{name: "Nil", err: nil, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, IsIllegal(tt.err))
		})
	}
}

func TestGameError_Message(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Need at least 2 players to start", ErrNotEnoughPlayers.Error())
	assert.ErrorIs(t, fmt.Errorf("start: %w", ErrNotEnoughPlayers), ErrNotEnoughPlayers)
}
