package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/apperrors"
)

func TestLikePatternEscapesWildcards(t *testing.T) {
	assert.Equal(t, "%an%", likePattern(" an "))
	assert.Equal(t, `%50\%\_off%`, likePattern("50%_off"))
}

func TestTimestampKeepsCreatedAt(t *testing.T) {
	created := time.Date(2024, 9, 5, 0, 0, 0, 0, time.UTC)
	var updated time.Time
	Timestamp(&created, &updated)

	assert.Equal(t, 2024, created.Year())
	assert.False(t, updated.IsZero())

	var fresh time.Time
	Timestamp(&fresh, &updated)
	assert.Equal(t, updated, fresh)
}

func TestErrorHelpers(t *testing.T) {
	assert.True(t, apperrors.Is(notFound("class"), apperrors.ErrNotFound))
	assert.EqualError(t, notFound("class"), "class not found")

	err := opError("update class", assert.AnError)
	assert.True(t, apperrors.Is(err, apperrors.ErrInternal))
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "error performing update class")
	assert.NotEmpty(t, NewID())
}
