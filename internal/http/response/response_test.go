package response_test

import (
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/booking-service/internal/http/response"
	"github.com/magabrotheeeer/booking-service/internal/lib/validate"
)

type sample struct {
	ID        string `validate:"required,uuid"`
	Email     string `validate:"required,email"`
	Password  string `validate:"min=6"`
	MaxGuests int    `validate:"gt=0"`
	CheckIn   string `validate:"omitempty,hhmm"`
}

func TestValidationError(t *testing.T) {
	err := validate.New().Struct(sample{
		ID:        "nope",
		Email:     "not-an-email",
		Password:  "123",
		MaxGuests: 0,
		CheckIn:   "25:99",
	})
	require.Error(t, err)

	resp := response.ValidationError(err.(validator.ValidationErrors))

	assert.Equal(t, response.StatusError, resp.Status)
	assert.Contains(t, resp.Error, "field ID can contain only uuid")
	assert.Contains(t, resp.Error, "field Email must be a valid email")
	assert.Contains(t, resp.Error, "field Password must be at least 6 long")
	assert.Contains(t, resp.Error, "field MaxGuests must be greater than 0")
	assert.Contains(t, resp.Error, "field CheckIn can contain only time in format HH:MM")
}

func TestError(t *testing.T) {
	resp := response.Error("boom")
	assert.Equal(t, response.ErrorResponse{Status: "Error", Error: "boom"}, resp)
}
