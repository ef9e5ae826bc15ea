package shotglass

import (
	"net/url"
	"strings"
)

// LogMaskVal replaces sensitive values before they are logged.
const LogMaskVal = "xxxxxx"

// LogMaskKeys are the query parameters Mask hides when called without keys.
var LogMaskKeys = []string{"password", "token"}

// Mask replaces every value set for each of keys in vals with a single LogMaskVal.
// Keys match case-insensitively, the way route literals do.
//
// Without keys, Mask hides LogMaskKeys.
func Mask(vals url.Values, keys ...string) {
	if len(keys) == 0 {
		keys = LogMaskKeys
	}

	for k := range vals {
		for _, key := range keys {
			if strings.EqualFold(k, key) {
				vals[k] = []string{LogMaskVal}
				break
			}
		}
	}
}

// MaskURL renders u's escaped path and query with the values of LogMaskKeys hidden.
// A query that does not parse is dropped.
func MaskURL(u *url.URL) string {
	uri := u.EscapedPath()
	q, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		return uri
	}

	Mask(q)
	if query := q.Encode(); query != "" {
		uri += "?" + query
	}

	return uri
}
