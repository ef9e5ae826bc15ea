package req

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/gorilla/schema"
	"github.com/xy-planning-network/shotglass"
)

// A paramDecoder decodes query parameters into a pointer to a struct.
type paramDecoder struct {
	dec *schema.Decoder
}

func newParamDecoder() paramDecoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)

	return paramDecoder{dec}
}

// decode decodes params into structPtr, translating the *schema.Decoder's errors.
func (d paramDecoder) decode(structPtr any, params map[string]string) error {
	vals := make(url.Values, len(params))
	for k, v := range params {
		vals.Set(k, v)
	}

	if err := d.dec.Decode(structPtr, vals); err != nil {
		return translateDecoderError(err)
	}

	return nil
}

// translateDecoderError converts an error returned by *schema.Decoder into standardized errors.
// Some *schema.Decoder errors are issues with calling code;
// some errors are unexpected issues;
// still some are issues with mismatches between a request's query params and the expected shape.
func translateDecoderError(err error) error {
	if err.Error() == "schema: interface must be a pointer to struct" {
		return fmt.Errorf("%w: %s", shotglass.ErrBadAny, err)
	}

	var pkgErrs schema.MultiError
	if !errors.As(err, &pkgErrs) {
		return fmt.Errorf("%w: %s", shotglass.ErrBadFormat, err)
	}

	var validErrs ValidationErrors
	for _, pkgErr := range pkgErrs {
		switch err := pkgErr.(type) {
		case schema.ConversionError:
			validErrs = append(validErrs, ValidationError{
				Field: err.Key,
				// For non-slice values, err.Index is -1.
				Got:  fmt.Sprintf("bad value at index %d", max(0, err.Index)),
				Rule: "must be " + err.Type.String(),
			})

		case schema.EmptyFieldError:
			return fmt.Errorf(`%w: use validate tags to set "required" fields, not schema`, shotglass.ErrNotImplemented)

		case schema.UnknownKeyError:
			validErrs = append(validErrs, ValidationError{
				Field: err.Key,
				Got:   "value is set",
				Rule:  "unexpected key should not be set",
			})

		default:
			// A field without a registered converter only errors once a value is set for it.
			if strings.Contains(err.Error(), "schema: converter not found for") {
				return fmt.Errorf("%w: cannot convert values into unsupported type", shotglass.ErrNotImplemented)
			}

			return fmt.Errorf("%w: %s", shotglass.ErrUnexpected, err)
		}
	}

	return validErrs
}
