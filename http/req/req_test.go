package req_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/shotglass"
	"github.com/xy-planning-network/shotglass/http/req"
	"github.com/xy-planning-network/shotglass/http/route"
)

func TestParserParseBody(t *testing.T) {
	// Arrange
	parser := req.NewParser()

	var actual req.ValidationErrors

	type test struct {
		A string `json:"a,omitempty" validate:"required"`
		B int64  `json:"b" validate:"gt=10,required"`
		C struct {
			Nested bool `json:"nested" validate:"eq=true"`
		} `json:"c"`
		F string `json:"-"`
	}
	var input, output test

	b, err := json.Marshal(input)
	require.Nil(t, err)

	// Act
	err = parser.ParseBody(b, struct{}{})

	// Assert
	require.ErrorIs(t, err, shotglass.ErrBadAny)

	// Act
	err = parser.ParseBody(nil, &output)

	// Assert
	require.ErrorIs(t, err, shotglass.ErrMissingData)

	// Act
	err = parser.ParseBody([]byte{'\x00'}, &output)

	// Assert
	require.ErrorIs(t, err, shotglass.ErrBadFormat)

	// Arrange
	expected := req.ValidationErrors{
		req.ValidationError{
			Field: "a",
			Got:   "",
			Rule:  "required; string",
		},
		req.ValidationError{
			Field: "b",
			Got:   int64(0),
			Rule:  "gt=10; int64",
		},
		req.ValidationError{
			Field: "c.nested",
			Got:   false,
			Rule:  "eq=true; bool",
		},
	}

	// Act
	err = parser.ParseBody(b, &output)

	// Assert
	require.ErrorIs(t, err, shotglass.ErrNotValid)
	require.Equal(t, input, output)
	require.ErrorAs(t, err, &actual)
	require.Len(t, actual, 3)
	require.Equal(t, expected[0], actual[0])
	require.Equal(t, expected[1], actual[1])
	require.Equal(t, expected[2], actual[2])

	// Arrange
	input.A = "hello"
	input.B = 20
	input.C.Nested = true
	input.F = "ignore"

	b, err = json.Marshal(input)
	require.Nil(t, err)

	// Act
	err = parser.ParseBody(b, &output)

	// Assert
	require.Nil(t, err)
	require.Equal(t, input.A, output.A)
	require.Equal(t, input.B, output.B)
	require.Equal(t, input.C, output.C)
	require.Equal(t, "", output.F)
}

func TestParserParseParams(t *testing.T) {
	// Arrange
	parser := req.NewParser()
	params := make(map[string]string)

	// Act
	err := parser.ParseParams(params, struct{}{})

	// Assert
	require.ErrorIs(t, err, shotglass.ErrBadAny)

	// Act
	err = parser.ParseParams(params, new(struct {
		A string `schema:"a,required"`
	}))

	// Assert
	require.ErrorIs(t, err, shotglass.ErrNotImplemented)

	// Arrange
	params["a"] = "test"

	// Act
	err = parser.ParseParams(params, new(struct {
		A struct{} `schema:"a"`
	}))

	// Assert
	require.ErrorIs(t, err, shotglass.ErrNotImplemented)

	// Arrange
	type test struct {
		A string `schema:"a" validate:"required"`
		B int64  `schema:"b" validate:"gt=10,required"`
		C string `schema:"c" validate:"oneof=red green"`
		D string `schema:"-"`
	}

	params["b"] = "test"

	var actual req.ValidationErrors
	expected := req.ValidationErrors{{
		Field: "b",
		Got:   "bad value at index 0",
		Rule:  "must be int64",
	}}

	// Act
	err = parser.ParseParams(params, new(test))

	// Assert
	require.ErrorIs(t, err, shotglass.ErrNotValid)
	require.ErrorAs(t, err, &actual)
	require.Len(t, actual, 1)
	require.Equal(t, expected[0], actual[0])

	// Arrange
	params["b"] = "1"
	params["c"] = "blue"

	expected = req.ValidationErrors{
		{
			Field: "b",
			Got:   int64(1),
			Rule:  "gt=10; int64",
		},
		{
			Field: "c",
			Got:   "blue",
			Rule:  "oneof=red green; string",
		},
	}

	// Act
	err = parser.ParseParams(params, new(test))

	// Assert
	require.ErrorIs(t, err, shotglass.ErrNotValid)
	require.ErrorAs(t, err, &actual)
	require.Len(t, actual, 2)
	require.Equal(t, expected[0], actual[0])
	require.Equal(t, expected[1], actual[1])

	// Arrange
	params["b"] = "20"
	params["c"] = "green"
	params["d"] = "ignore"
	actualVal := new(test)

	// Act
	err = parser.ParseParams(params, actualVal)

	// Assert
	require.Nil(t, err)
	require.Equal(t, "test", actualVal.A)
	require.Equal(t, int64(20), actualVal.B)
	require.Equal(t, "green", actualVal.C)
	require.Equal(t, "", actualVal.D)
}

func TestParserParse(t *testing.T) {
	type test struct {
		Name string `json:"name" schema:"name" validate:"required"`
	}

	tcs := []struct {
		name     string
		body     []byte
		params   map[string]string
		expected string
		err      error
	}{
		{"Body", []byte(`{"name":"body"}`), map[string]string{"name": "params"}, "body", nil},
		{"Params", nil, map[string]string{"name": "params"}, "params", nil},
		{"Neither", nil, nil, "", shotglass.ErrNotValid},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			r := route.NewRequest(context.Background(), http.MethodPost, "/")
			r.Body = tc.body
			if tc.params != nil {
				r.Params = tc.params
			}

			var actual test

			// Act
			err := req.NewParser().Parse(r, &actual)

			// Assert
			require.ErrorIs(t, err, tc.err)
			require.Equal(t, tc.expected, actual.Name)
		})
	}
}
