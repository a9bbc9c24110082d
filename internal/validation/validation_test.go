package validation_test

import (
	"testing"

	"github.com/MaxKochergin/NNGP-sub002/internal/validation"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type questionPayload struct {
	Type  string   `validate:"required,question_type"`
	Roles []string `validate:"omitempty,dive,role_name"`
}

func TestCustomValidators(t *testing.T) {
	v := validator.New()
	require.NoError(t, validation.RegisterOn(v))

	assert.NoError(t, v.Struct(questionPayload{Type: "SINGLE_CHOICE", Roles: []string{"hr", "admin"}}))
	assert.NoError(t, v.Struct(questionPayload{Type: "TEXT"}))
	assert.Error(t, v.Struct(questionPayload{Type: "single_choice"}))
	assert.Error(t, v.Struct(questionPayload{Type: "ESSAY"}))
	assert.Error(t, v.Struct(questionPayload{Type: "MULTIPLE_CHOICE", Roles: []string{"root"}}))
}
