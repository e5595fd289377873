package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondErrorHidesInternalCause(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, http.StatusInternalServerError, errors.New("pq: connection refused"), "Failed to get cart")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Failed to get cart", body["message"])
	assert.Empty(t, body["error"])
}

func TestRespondErrorKeepsClientCause(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, http.StatusBadRequest, errors.New("quantity too large"), "Requested quantity not available")

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "quantity too large", body["error"])
}

func TestParseBodyRejectsUnknownFields(t *testing.T) {
	var out struct {
		Name string `json:"name"`
	}
	err := ParseBody(strings.NewReader(`{"name":"Tulsi","extra":1}`), &out)
	assert.Error(t, err)
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("greenthumb9")
	require.NoError(t, err)
	assert.NoError(t, CheckPassword("greenthumb9", hash))
	assert.Error(t, CheckPassword("wrong", hash))
}

func TestValidationMessage(t *testing.T) {
	type body struct {
		Email string `validate:"required,email"`
	}
	err := Validate.Struct(body{Email: "nope"})
	assert.Equal(t, "Email failed on email", ValidationMessage(err))
	assert.Equal(t, "input field is invalid", ValidationMessage(errors.New("x")))
}
