package resp

// A Response is what a handler returns for shotglass to write back to the client.
//
// Response is sealed: Bytes, Text, Typed and JSON are its only implementations.
type Response interface {
	response()
}

// Bytes is written as "text/html", passed through unchanged.
type Bytes []byte

// Text is written as "text/html", UTF-8 encoded.
type Text string

// Typed is written with ContentType, Body passed through unchanged.
//
// Static file handlers return a Typed.
type Typed struct {
	ContentType string
	Body        []byte
}

// JSON is written as "application/json".
// Value must be representable by [encoding/json].
type JSON struct {
	Value any
}

func (Bytes) response() {}
func (Text) response()  {}
func (Typed) response() {}
func (JSON) response()  {}
