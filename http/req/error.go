package req

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xy-planning-network/shotglass"
)

// A ValidationError is an issue with a concrete value not matching the rule set on its field.
type ValidationError struct {
	Field string `json:"field"`
	Got   any    `json:"got"`
	Rule  string `json:"rule,omitempty"`
}

func (e ValidationError) String() string {
	return fmt.Sprintf("%s: %s (got %v)", e.Field, e.Rule, e.Got)
}

// ValidationErrors is a set of ValidationError.
//
// Handlers answer with it as-is: it marshals to {"validationErrors": [...]}.
type ValidationErrors []ValidationError

// Error lists every ValidationError on one line, so it logs as a single entry.
func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}

	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.String()
	}

	return fmt.Sprintf("%s: %s", shotglass.ErrNotValid, strings.Join(msgs, ", "))
}

func (v ValidationErrors) MarshalJSON() ([]byte, error) {
	if len(v) == 0 {
		return []byte("{}"), nil
	}

	return json.Marshal(map[string][]ValidationError{"validationErrors": v})
}

func (ValidationErrors) Unwrap() error { return shotglass.ErrNotValid }
