package resp

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
)

const (
	HTMLType = "text/html"
	JSONType = "application/json"
)

// Format converts r into the content type and payload to write.
//
// Format checks, in order: Bytes, Text, Typed, then everything else as JSON.
// A nil r is everything else and becomes "null\n".
func Format(r Response) (string, []byte, error) {
	switch v := r.(type) {
	case Bytes:
		return HTMLType, []byte(v), nil
	case Text:
		return HTMLType, []byte(v), nil
	case Typed:
		if v.ContentType == "" {
			return "", nil, fmt.Errorf("%w: Typed without content type", ErrInvalid)
		}

		return v.ContentType, v.Body, nil
	case JSON:
		return formatJSON(v.Value)
	default:
		return formatJSON(nil)
	}
}

// formatJSON encodes v as JSON followed by a single newline.
func formatJSON(v any) (string, []byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %T not JSON encodable: %s", ErrInvalid, v, err)
	}

	return JSONType, append(b, '\n'), nil
}

// Write formats r and writes it to w with http.StatusOK.
//
// If r cannot be formatted, nothing is written and the error returns
// so the caller can respond with an error status instead.
func Write(w http.ResponseWriter, r Response) error {
	b, err := writeHeader(w, r)
	if err != nil {
		return err
	}

	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("%w: %s", ErrWrite, err)
	}

	return nil
}

// WriteHeader writes the headers Write would, without a body,
// answering a HEAD request.
func WriteHeader(w http.ResponseWriter, r Response) error {
	_, err := writeHeader(w, r)
	return err
}

func writeHeader(w http.ResponseWriter, r Response) ([]byte, error) {
	ct, b, err := Format(r)
	if err != nil {
		return nil, err
	}

	w.Header().Set("Content-Type", ct)
	w.Header().Set("Content-Length", strconv.Itoa(len(b)))
	w.WriteHeader(http.StatusOK)
	return b, nil
}

// Error writes code and msg as plain text.
// If msg is empty, the status text for code is written instead.
func Error(w http.ResponseWriter, code int, msg string) {
	if msg == "" {
		msg = http.StatusText(code)
	}

	http.Error(w, msg, code)
}
