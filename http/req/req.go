package req

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/xy-planning-network/shotglass"
	"github.com/xy-planning-network/shotglass/http/route"
)

// A Parser decodes and validates request payloads.
// A Parser is safe for concurrent use.
type Parser struct {
	paramDecoder paramDecoder
	validator
}

func NewParser() *Parser {
	return &Parser{
		paramDecoder: newParamDecoder(),
		validator:    newValidator(),
	}
}

// Parse decodes r into structPtr:
// its Body if it has one, otherwise its Params.
func (p *Parser) Parse(r *route.Request, structPtr any) error {
	if len(r.Body) > 0 {
		return p.ParseBody(r.Body, structPtr)
	}

	return p.ParseParams(r.Params, structPtr)
}

// ParseBody decodes into a pointer to a struct the JSON data in body.
// If successful, ParseBody runs validation against the contents,
// returning an ErrNotValid if the data fails validation rules.
func (p *Parser) ParseBody(body []byte, structPtr any) error {
	if len(body) == 0 {
		return fmt.Errorf("%w: no body to parse", shotglass.ErrMissingData)
	}

	var ourFault *json.InvalidUnmarshalError
	err := json.NewDecoder(bytes.NewReader(body)).Decode(structPtr)
	if errors.As(err, &ourFault) {
		return fmt.Errorf("%w: ParseBody called with non-pointer: %s", shotglass.ErrBadAny, err)
	}

	if err != nil {
		return fmt.Errorf("%w: failed decoding request body: %s", shotglass.ErrBadFormat, err)
	}

	if err := p.validate(structPtr); err != nil {
		return fmt.Errorf("%T failed validation: %w", structPtr, err)
	}

	return nil
}

// ParseParams decodes into a pointer to a struct the allowed query parameters of a request.
// If successful, ParseParams runs validation against the contents,
// returning an ErrNotValid if the data fails validation rules.
func (p *Parser) ParseParams(params map[string]string, structPtr any) error {
	if err := p.paramDecoder.decode(structPtr, params); err != nil {
		return fmt.Errorf("failed decoding request query params: %w", err)
	}

	if err := p.validate(structPtr); err != nil {
		return fmt.Errorf("%T failed validation: %w", structPtr, err)
	}

	return nil
}
