package dto

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleValidationError_FieldErrors(t *testing.T) {
	v := validator.New()
	v.SetTagName("binding")

	err := v.Struct(CreateUserRequest{Email: "not-an-email"})
	require.Error(t, err)

	detail := HandleValidationError(err)

	assert.Equal(t, ErrorCodeValidationFailed, detail.Code)
	assert.Equal(t, "Validation failed", detail.Message)
	fields, ok := detail.Details.([]ErrorDetail)
	require.True(t, ok)
	require.Len(t, fields, 2)
	assert.Equal(t, "name", fields[0].Field)
	assert.Equal(t, "name is required", fields[0].Message)
	assert.Equal(t, "email must be a valid email address", fields[1].Message)
}

func TestHandleValidationError_SingleFieldPromoted(t *testing.T) {
	v := validator.New()
	v.SetTagName("binding")

	err := v.Struct(CreateUserRequest{Name: "Jane"})
	require.Error(t, err)

	detail := HandleValidationError(err)

	assert.Equal(t, "email", detail.Field)
	assert.Equal(t, "email is required", detail.Message)
}

func TestHandleValidationError_MalformedBody(t *testing.T) {
	detail := HandleValidationError(errors.New("unexpected EOF"))

	assert.Equal(t, "Invalid request format", detail.Message)
	assert.Equal(t, "unexpected EOF", detail.Details)
}

func TestAmountLiteral(t *testing.T) {
	cases := map[string]string{
		`{"amount": 20}`:      "20",
		`{"amount": "19.99"}`: "19.99",
		`{"amount": null}`:    "",
		`{}`:                  "",
	}
	for body, want := range cases {
		var req PaymentIntentRequest
		require.NoError(t, json.Unmarshal([]byte(body), &req))
		assert.Equal(t, want, req.AmountLiteral(), body)
	}
}
