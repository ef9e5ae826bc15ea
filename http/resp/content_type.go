package resp

import "strings"

const defaultContentType = "text/plain"

// knownTypes follows
// https://developer.mozilla.org/en-US/docs/Web/HTTP/Basics_of_HTTP/MIME_types/Common_types
var knownTypes = map[string]string{
	"css":  "text/css",
	"gif":  "image/gif",
	"htm":  "text/html",
	"html": "text/html",
	"ico":  "image/vnd.microsoft.icon",
	"jpeg": "image/jpeg",
	"jpg":  "image/jpeg",
	"js":   "text/javascript",
	"json": "application/json",
	"mjs":  "text/javascript",
	"pdf":  "application/pdf",
	"png":  "image/png",
	"svg":  "image/svg+xml",
	"txt":  "text/plain",
}

// ContentType guesses the MIME type of name from the text after its last ".".
// Unknown extensions, and names without one, are "text/plain".
func ContentType(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return defaultContentType
	}

	if ct, ok := knownTypes[name[i+1:]]; ok {
		return ct
	}

	return defaultContentType
}
