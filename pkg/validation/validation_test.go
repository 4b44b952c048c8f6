package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type locationRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
	Method    string   `json:"method" validate:"omitempty,oneof=card wallet cash"`
}

func ptr(f float64) *float64 { return &f }

func TestValidateStruct_Valid(t *testing.T) {
	err := ValidateStruct(&locationRequest{Latitude: ptr(52.37), Longitude: ptr(4.89), Method: "card"})
	assert.NoError(t, err)
}

func TestValidateStruct_UsesJSONFieldNames(t *testing.T) {
	err := ValidateStruct(&locationRequest{Latitude: ptr(123), Method: "cheque"})
	require.Error(t, err)

	valErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "latitude must be a valid latitude (-90 to 90)", valErr.Errors["latitude"])
	assert.Equal(t, "longitude is required", valErr.Errors["longitude"])
	assert.Equal(t, "method must be one of: card wallet cash", valErr.Errors["method"])
	assert.Equal(t,
		"latitude must be a valid latitude (-90 to 90); longitude is required; method must be one of: card wallet cash",
		valErr.Error())
}

func TestValidationError_AddError(t *testing.T) {
	var v ValidationError
	assert.False(t, v.HasErrors())

	v.AddError("files", "at least one file is required")
	assert.True(t, v.HasErrors())
	assert.Equal(t, "at least one file is required", v.Error())
}
