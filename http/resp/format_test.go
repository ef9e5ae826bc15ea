package resp_test

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/shotglass/http/resp"
)

func TestFormat(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G'}
	tcs := []struct {
		name     string
		input    resp.Response
		wantType string
		wantBody string
	}{
		{"Bytes", resp.Bytes("<p>hi</p>"), "text/html", "<p>hi</p>"},
		{"Empty-Bytes", resp.Bytes(nil), "text/html", ""},
		{"Text", resp.Text("hello Ada"), "text/html", "hello Ada"},
		{"Text-UTF-8", resp.Text("héllo"), "text/html", "h\xc3\xa9llo"},
		{"Typed", resp.Typed{ContentType: "image/png", Body: png}, "image/png", string(png)},
		{"JSON-Map", resp.JSON{Value: map[string]any{"a": 1}}, "application/json", "{\"a\":1}\n"},
		{"JSON-Slice", resp.JSON{Value: []int{1, 2}}, "application/json", "[1,2]\n"},
		{"JSON-Bytes", resp.JSON{Value: []byte("hi")}, "application/json", "\"aGk=\"\n"},
		{"JSON-Nil", resp.JSON{}, "application/json", "null\n"},
		{"Nil", nil, "application/json", "null\n"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			ct, b, err := resp.Format(tc.input)

			// Assert
			require.Nil(t, err)
			require.Equal(t, tc.wantType, ct)
			require.Equal(t, tc.wantBody, string(b))
		})
	}

	t.Run("Typed-No-Content-Type", func(t *testing.T) {
		_, _, err := resp.Format(resp.Typed{Body: png})
		require.ErrorIs(t, err, resp.ErrInvalid)
	})

	t.Run("JSON-Unencodable", func(t *testing.T) {
		_, _, err := resp.Format(resp.JSON{Value: math.Inf(1)})
		require.ErrorIs(t, err, resp.ErrInvalid)
	})
}

func TestWrite(t *testing.T) {
	// Arrange
	w := httptest.NewRecorder()

	// Act
	err := resp.Write(w, resp.Typed{ContentType: "text/css", Body: []byte("body{}")})

	// Assert
	require.Nil(t, err)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "text/css", w.Header().Get("Content-Type"))
	require.Equal(t, "6", w.Header().Get("Content-Length"))
	require.Equal(t, "body{}", w.Body.String())

	// Arrange
	w = httptest.NewRecorder()

	// Act
	err = resp.WriteHeader(w, resp.Text("hello"))

	// Assert
	require.Nil(t, err)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "5", w.Header().Get("Content-Length"))
	require.Zero(t, w.Body.Len())

	// Arrange
	w = httptest.NewRecorder()

	// Act
	err = resp.Write(w, resp.JSON{Value: func() {}})

	// Assert
	require.ErrorIs(t, err, resp.ErrInvalid)
	require.Empty(t, w.Header().Get("Content-Type"))
}

func TestError(t *testing.T) {
	w := httptest.NewRecorder()
	resp.Error(w, http.StatusNotFound, "Unsupported path: /nope")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "Unsupported path: /nope\n", w.Body.String())

	w = httptest.NewRecorder()
	resp.Error(w, http.StatusInternalServerError, "")
	require.Equal(t, "Internal Server Error\n", w.Body.String())
}
