/*
The resp package shapes what a handler returns into an HTTP response.

A handler returns a [Response], which is exactly one of:
  - [Bytes], written as "text/html" unchanged
  - [Text], written as "text/html" in UTF-8
  - [Typed], written with its own content type unchanged
  - [JSON], written as "application/json" followed by a single newline

[Format] applies those rules in that order.
A nil Response formats as the JSON null value.

[ContentType] guesses a MIME type from a file name's extension,
falling back to "text/plain".

[Responder] writes a formatted Response, or an error status, to an [net/http.ResponseWriter].
*/
package resp
