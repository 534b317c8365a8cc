package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected error
	}{
		{"nil error", nil, nil},
		{"plain error", errors.New("boom"), nil},
		{"validation", fmt.Errorf("%w: end date must be after start date", ErrValidation), ErrValidation},
		{"double wrapped", fmt.Errorf("outer: %w", fmt.Errorf("%w: trip 4", ErrNotFound)), ErrNotFound},
		{"self interaction", fmt.Errorf("%w: own listing", ErrSelfInteraction), ErrSelfInteraction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Kind(tt.err))
		})
	}
}

func TestReason(t *testing.T) {
	err := fmt.Errorf("%w: end date must be after start date", ErrValidation)
	assert.Equal(t, "end date must be after start date", Reason(err))

	wrapped := fmt.Errorf("failed to create listing: %w", err)
	assert.Equal(t, "end date must be after start date", Reason(wrapped))

	assert.Equal(t, "not found", Reason(ErrNotFound))
	assert.Equal(t, "", Reason(errors.New("database is down")))
}
