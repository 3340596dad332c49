package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomErrorsUnwrapToTaxonomy(t *testing.T) {
	assert.True(t, errors.Is(NewNotFoundError("class not found"), ErrNotFound))
	assert.True(t, errors.Is(NewValidationError("name is required"), ErrValidation))
	assert.True(t, errors.Is(NewConflictError("duplicate"), ErrConflict))
	assert.True(t, errors.Is(NewUpstreamError("sms failed", errors.New("timeout")), ErrUpstream))

	roster := NewRosterConflictError("students already in this class: An")
	assert.True(t, errors.Is(roster, ErrConflict))
	assert.True(t, errors.Is(roster, ErrRosterConflict))
	assert.False(t, errors.Is(NewConflictError("duplicate"), ErrRosterConflict))

	wrapped := fmt.Errorf("error updating class: %w", NewNotFoundError("class not found"))
	assert.True(t, errors.Is(wrapped, ErrNotFound))
	assert.Equal(t, "class not found", Message(wrapped, "fallback"))
}

func TestInternalErrorKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewInternalError("update class", cause)

	assert.True(t, errors.Is(err, ErrInternal))
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "error performing update class")
	assert.Equal(t, "fallback", Message(err, "fallback"))
}

func TestIsMatchesAnyOfList(t *testing.T) {
	err := NewConflictError("taken")
	assert.True(t, Is(err, ErrNotFound, ErrValidation, ErrConflict))
	assert.False(t, Is(err, ErrNotFound, ErrValidation))
}

func TestDetails(t *testing.T) {
	err := NewCustomError(ErrConflict, "students already in this class").
		WithDetails(map[string]interface{}{"students": []string{"An"}})
	assert.Equal(t, []string{"An"}, Details(fmt.Errorf("wrap: %w", err))["students"])
	assert.Nil(t, Details(errors.New("plain")))
}
