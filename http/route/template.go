package route

import (
	"fmt"
	"strings"

	"github.com/xy-planning-network/shotglass"
)

const varMarker = '$'

// A Segment is one "/"-delimited piece of a Template.
type Segment struct {
	// Text is the literal text to match, or the name of the variable.
	Text string

	// Var marks the segment as a variable.
	Var bool
}

// A Template is a parsed route template.
type Template struct {
	raw      string
	segments []Segment
}

// ParseTemplate splits raw into Segments.
//
// A segment that starts and ends with "$" is a variable named by the text between them.
// A lone "$" is an unnamed variable.
// raw must start with "/".
func ParseTemplate(raw string) (Template, error) {
	if !strings.HasPrefix(raw, "/") {
		return Template{}, fmt.Errorf("%w: template %q does not start with /", shotglass.ErrNotValid, raw)
	}

	parts := strings.Split(raw, "/")
	segs := make([]Segment, len(parts))
	for i, part := range parts {
		if part == string(varMarker) {
			segs[i] = Segment{Var: true}
			continue
		}

		if len(part) >= 2 && part[0] == varMarker && part[len(part)-1] == varMarker {
			segs[i] = Segment{Text: part[1 : len(part)-1], Var: true}
			continue
		}

		segs[i] = Segment{Text: part}
	}

	return Template{raw: raw, segments: segs}, nil
}

// MustParseTemplate is like ParseTemplate but panics if raw is not valid.
func MustParseTemplate(raw string) Template {
	t, err := ParseTemplate(raw)
	if err != nil {
		panic(err)
	}

	return t
}

// Segments returns a copy of the Template's Segments.
func (t Template) Segments() []Segment {
	return append([]Segment(nil), t.segments...)
}

// String returns the template as it was registered.
func (t Template) String() string { return t.raw }

// Vars returns the names of the variable segments, in order.
func (t Template) Vars() []string {
	var names []string
	for _, seg := range t.segments {
		if seg.Var {
			names = append(names, seg.Text)
		}
	}

	return names
}

// Match compares path against t.
//
// When path matches, Match returns true and the captured variable segments in order.
// A template without variables matches with no args.
func (t Template) Match(path string) ([]string, bool) {
	// NOTE: counting first keeps mismatched lengths from allocating
	if strings.Count(path, "/")+1 != len(t.segments) {
		return nil, false
	}

	args := make([]string, 0, len(t.segments))
	rest := path
	for _, seg := range t.segments {
		var part string
		part, rest, _ = strings.Cut(rest, "/")
		if seg.Var {
			args = append(args, decodeArg(part))
			continue
		}

		if !strings.EqualFold(part, seg.Text) {
			return nil, false
		}
	}

	return args, true
}

// Match parses template and compares path against it.
//
// An invalid template matches nothing.
func Match(path, template string) ([]string, bool) {
	t, err := ParseTemplate(template)
	if err != nil {
		return nil, false
	}

	return t.Match(path)
}

// decodeArg replaces "_" with " " then percent-decodes seg.
//
// Escapes that are not "%" followed by two hex digits are kept as is;
// the valid ones around them are still decoded.
func decodeArg(seg string) string {
	seg = strings.ReplaceAll(seg, "_", " ")
	if !strings.Contains(seg, "%") {
		return seg
	}

	var b strings.Builder
	b.Grow(len(seg))
	for i := 0; i < len(seg); i++ {
		if seg[i] == '%' && i+2 < len(seg) && isHex(seg[i+1]) && isHex(seg[i+2]) {
			b.WriteByte(unhex(seg[i+1])<<4 | unhex(seg[i+2]))
			i += 2
			continue
		}

		b.WriteByte(seg[i])
	}

	return b.String()
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
