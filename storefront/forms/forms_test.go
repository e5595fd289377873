package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrongPassword(t *testing.T) {
	assert.True(t, StrongPassword("greenleaf1"))
	assert.False(t, StrongPassword("short1"))
	assert.False(t, StrongPassword("onlyletters"))
	assert.False(t, StrongPassword("12345678"))
}

func TestSignupErrorsPerField(t *testing.T) {
	err := Check(Signup{Name: "Al", Email: "not-an-email", Password: "weakpass", Confirm: "other"})
	require.Error(t, err)

	fields := FieldErrors(err)
	assert.Equal(t, map[string]string{
		"name":            "must be at least 3 characters",
		"email":           "must be a valid email address",
		"password":        "must be at least 8 characters with a letter and a digit",
		"confirmPassword": "does not match",
	}, fields)
}

func TestValidForms(t *testing.T) {
	signup := Signup{Name: "Asha", Email: "asha@example.com", Password: "greenleaf1", Confirm: "greenleaf1"}
	require.NoError(t, Check(signup))
	assert.Equal(t, "asha@example.com", signup.Request().Email)

	require.NoError(t, Check(Login{Email: "asha@example.com", Password: "x"}))
	require.NoError(t, Check(PasswordChange{Current: "old", New: "greenleaf2", Confirm: "greenleaf2"}))

	category := Category{Name: "Indoor", Type: "Plants"}
	require.NoError(t, Check(category))
	assert.Equal(t, "Plants", string(category.Request().Type))
}

func TestCategoryType(t *testing.T) {
	fields := FieldErrors(Check(Category{Name: "Indoor", Type: "Trees"}))
	assert.Equal(t, "is not an allowed value", fields["type"])
	assert.Empty(t, FieldErrors(nil))
}
