package req_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/shotglass"
	"github.com/xy-planning-network/shotglass/http/req"
)

func TestValidationErrorsError(t *testing.T) {
	tcs := []struct {
		name     string
		errs     req.ValidationErrors
		expected string
	}{
		{"Zero-Value", nil, ""},
		{
			"Empty-Sum",
			req.ValidationErrors{{Field: "nums", Got: []float64{}, Rule: "min=1; []float64"}},
			"invalid: nums: min=1; []float64 (got [])",
		},
		{
			"Many",
			req.ValidationErrors{
				{Field: "nums", Rule: "required; []float64"},
				{Field: "loud", Got: "bad value at index 0", Rule: "must be bool"},
			},
			"invalid: nums: required; []float64 (got <nil>), loud: must be bool (got bad value at index 0)",
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			actual := tc.errs.Error()

			// Assert
			require.Equal(t, tc.expected, actual)
		})
	}
}

func TestValidationErrorsMarshalJSON(t *testing.T) {
	tcs := []struct {
		name     string
		errs     req.ValidationErrors
		expected string
	}{
		{"Zero-Value", nil, "{}"},
		{
			"Empty-Sum",
			req.ValidationErrors{{Field: "nums", Got: []float64{}, Rule: "min=1; []float64"}},
			`{"validationErrors":[{"field":"nums","got":[],"rule":"min=1; []float64"}]}`,
		},
		{
			"No-Rule",
			req.ValidationErrors{{Field: "nums", Got: "value is set"}},
			`{"validationErrors":[{"field":"nums","got":"value is set"}]}`,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			actual, err := json.Marshal(tc.errs)

			// Assert
			require.Nil(t, err)
			require.Equal(t, tc.expected, string(actual))
		})
	}
}

func TestValidationErrorsUnwrap(t *testing.T) {
	require.ErrorIs(t, req.ValidationErrors{}, shotglass.ErrNotValid)
}
