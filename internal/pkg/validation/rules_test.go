package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/apperrors"
)

func TestFieldErrors(t *testing.T) {
	errs := FieldErrors{}
	errs.Required("name", "  ")
	errs.Required("studentID", "S001")
	errs.MaxLength("school", "abcdef", 3)
	errs.Add("name", "second message is ignored")

	assert.False(t, errs.Empty())
	assert.Equal(t, "name is required", errs["name"])
	assert.NotContains(t, errs, "studentID")
	assert.Equal(t, "name is required; school must be at most 3 characters", errs.Summary("name", "school"))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("kinder2024"))
	assert.Error(t, ValidatePassword("short1"))
	assert.Error(t, ValidatePassword("onlyletters"))
	assert.Error(t, ValidatePassword("1234567890"))
}

func TestPhonePatterns(t *testing.T) {
	assert.Equal(t, "+84901234567", NormalizePhone("+84 901-234-567"))
	assert.True(t, CompiledPatterns.Phone.MatchString("+84901234567"))
	assert.True(t, CompiledPatterns.Phone.MatchString("0901234567"))
	assert.False(t, CompiledPatterns.Phone.MatchString("12345"))
	assert.True(t, CompiledPatterns.Code.MatchString("012345"))
	assert.False(t, CompiledPatterns.Code.MatchString("12345a"))
}

func TestFieldErrorsErr(t *testing.T) {
	assert.NoError(t, FieldErrors{}.Err())

	errs := FieldErrors{}
	errs.Required("className", "")
	err := errs.Err("className")

	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
	assert.Equal(t, "className is required", err.Error())
	assert.Equal(t, map[string]interface{}{"className": "className is required"}, apperrors.Details(err))
}
